// Package fetcher
package fetcher

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"ingest/packages/domain"
)

const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Error is a classified fetch failure. StatusCode is zero for
// transport-level failures.
type Error struct {
	URL        string
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("failed to fetch %s: %s", e.URL, e.Message)
}

type Fetcher struct {
	client *http.Client
}

// New builds a fetcher. A zero timeout means none, matching the
// original tool; a hung server can then stall the batch.
func New(timeout time.Duration) *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: timeout},
	}
}

// Fetch retrieves the raw HTML for a product page. Redirects are
// followed by the client. There is no retry; pacing between requests
// is the batch driver's job.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*domain.RawDocument, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, &Error{URL: rawURL, Message: err.Error()}
	}
	origin := parsed.Scheme + "://" + parsed.Host

	req, err := http.NewRequestWithContext(ctx, "GET", rawURL, nil)
	if err != nil {
		return nil, &Error{URL: rawURL, Message: err.Error()}
	}

	// A realistic browser header set reduces trivial bot-blocking.
	// Sites that demand JS execution will still serve shells we
	// cannot extract from.
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8,application/signed-exchange;v=b3;q=0.7")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Referer", origin)
	req.Header.Set("Origin", origin)
	req.Header.Set("Connection", "keep-alive")
	req.Header.Set("Upgrade-Insecure-Requests", "1")
	req.Header.Set("Sec-Fetch-Dest", "document")
	req.Header.Set("Sec-Fetch-Mode", "navigate")
	req.Header.Set("Sec-Fetch-Site", "same-origin")
	req.Header.Set("Sec-Fetch-User", "?1")
	req.Header.Set("Cache-Control", "max-age=0")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &Error{URL: rawURL, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 500))
		slog.Error("Fetch returned bad status",
			"url", rawURL, "status_code", resp.StatusCode, "body", string(body))

		if resp.StatusCode == http.StatusForbidden {
			return nil, &Error{
				URL:        rawURL,
				StatusCode: resp.StatusCode,
				Message:    "403 Forbidden - website is blocking automated requests; this site may require manual entry or a JS-capable browser",
			}
		}
		return nil, &Error{
			URL:        rawURL,
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("HTTP error, status: %d", resp.StatusCode),
		}
	}

	html, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{URL: rawURL, Message: err.Error()}
	}

	return &domain.RawDocument{
		URL:        rawURL,
		FinalURL:   resp.Request.URL.String(),
		StatusCode: resp.StatusCode,
		HTML:       string(html),
	}, nil
}
