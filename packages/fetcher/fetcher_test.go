package fetcher

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestFetchSuccess(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); !strings.Contains(ua, "Mozilla") {
			t.Errorf("expected a browser User-Agent, got %q", ua)
		}
		if r.Header.Get("Sec-Fetch-Mode") != "navigate" {
			t.Error("expected navigation Sec-Fetch hints")
		}
		w.Write([]byte("<html><body><h1>Product</h1></body></html>"))
	}))
	defer ts.Close()

	doc, err := New(0).Fetch(context.Background(), ts.URL+"/p/1")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if doc.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", doc.StatusCode)
	}
	if !strings.Contains(doc.HTML, "<h1>Product</h1>") {
		t.Errorf("unexpected body: %q", doc.HTML)
	}
}

func TestFetchRefererFromOrigin(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Referer"); !strings.HasPrefix(got, "http://127.0.0.1") {
			t.Errorf("expected Referer derived from the target origin, got %q", got)
		}
		w.Write([]byte("ok"))
	}))
	defer ts.Close()

	if _, err := New(0).Fetch(context.Background(), ts.URL); err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
}

func TestFetchForbiddenClassified(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "denied", http.StatusForbidden)
	}))
	defer ts.Close()

	_, err := New(0).Fetch(context.Background(), ts.URL)
	if err == nil {
		t.Fatal("expected an error")
	}

	var fe *Error
	if !errors.As(err, &fe) {
		t.Fatalf("expected *fetcher.Error, got %T", err)
	}
	if fe.StatusCode != http.StatusForbidden {
		t.Errorf("expected 403, got %d", fe.StatusCode)
	}
	if !strings.Contains(fe.Message, "blocking automated requests") {
		t.Errorf("403 should carry the blocking advisory, got %q", fe.Message)
	}
}

func TestFetchServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer ts.Close()

	_, err := New(0).Fetch(context.Background(), ts.URL)
	var fe *Error
	if !errors.As(err, &fe) {
		t.Fatalf("expected *fetcher.Error, got %v", err)
	}
	if fe.StatusCode != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", fe.StatusCode)
	}
}

func TestFetchFollowsRedirects(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/old" {
			http.Redirect(w, r, "/new", http.StatusMovedPermanently)
			return
		}
		w.Write([]byte("landed"))
	}))
	defer ts.Close()

	doc, err := New(0).Fetch(context.Background(), ts.URL+"/old")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if !strings.HasSuffix(doc.FinalURL, "/new") {
		t.Errorf("expected the redirect target as final URL, got %q", doc.FinalURL)
	}
}

func TestFetchNetworkError(t *testing.T) {
	_, err := New(0).Fetch(context.Background(), "http://127.0.0.1:1/unreachable")
	var fe *Error
	if !errors.As(err, &fe) {
		t.Fatalf("expected *fetcher.Error, got %v", err)
	}
	if fe.StatusCode != 0 {
		t.Errorf("transport failure should carry no status code, got %d", fe.StatusCode)
	}
}
