// Package pipeline orchestrates one ingestion run: fetch each product
// page, extract and classify its fields, and create-or-skip against
// the catalog store. One bad URL never aborts the batch.
package pipeline

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"ingest/packages/classify"
	"ingest/packages/domain"
	"ingest/packages/extract"
	"ingest/packages/fetcher"
	"ingest/packages/metrics"
)

// Store is the catalog surface the pipeline consumes. Injected so
// tests run against a fake.
type Store interface {
	FindBrandByName(ctx context.Context, name string) (*domain.Brand, error)
	CreateBrand(ctx context.Context, name string) (*domain.Brand, error)
	FindProductByURL(ctx context.Context, url string) (*int64, error)
	InsertProduct(ctx context.Context, p *domain.Product) (int64, error)
}

type Runner struct {
	store     Store
	fetcher   *fetcher.Fetcher
	selectors extract.Selectors
	delay     time.Duration
}

func New(store Store, f *fetcher.Fetcher, delay time.Duration) *Runner {
	return &Runner{
		store:     store,
		fetcher:   f,
		selectors: extract.Defaults(),
		delay:     delay,
	}
}

// Run processes URLs strictly sequentially with a politeness delay
// before every request after the first. Per-URL failures become
// counters; processing always continues with the next URL.
func (r *Runner) Run(ctx context.Context, urls []string) domain.Summary {
	slog.Info("Processing product URLs", "count", len(urls))

	var summary domain.Summary
	for i, url := range urls {
		if i > 0 && !sleep(ctx, r.delay) {
			slog.Warn("Run cancelled", "remaining", len(urls)-i)
			summary.Errors += len(urls) - i
			break
		}

		if !strings.HasPrefix(url, "http") {
			slog.Error("Invalid URL, expected http(s) scheme", "url", url)
			summary.Errors++
			continue
		}

		product := r.Assemble(ctx, url)
		if product == nil {
			summary.Errors++
			continue
		}

		result, err := r.Upsert(ctx, product)
		switch {
		case err != nil:
			slog.Error("Failed to add product to catalog", "url", url, "error", err)
			summary.Errors++
		case result.Skipped:
			slog.Info("Product already exists, skipping", "url", url, "product_id", result.ProductID)
			summary.Skipped++
		default:
			slog.Info("Added product to catalog", "url", url, "product_id", result.ProductID)
			summary.Added++
		}
	}

	slog.Info("Batch summary",
		"added", summary.Added, "skipped", summary.Skipped, "errors", summary.Errors)
	return summary
}

// Assemble scrapes one product page into a normalized record. Returns
// nil after logging on any unrecoverable error so the batch can
// continue.
func (r *Runner) Assemble(ctx context.Context, url string) *domain.Product {
	slog.Info("Scraping product page", "url", url)

	raw, err := r.fetcher.Fetch(ctx, url)
	if err != nil {
		slog.Error("Error scraping product page", "url", url, "error", err)
		metrics.FetchErrors.WithLabelValues(fetchErrorReason(err)).Inc()
		return nil
	}
	metrics.PagesFetched.Inc()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw.HTML))
	if err != nil {
		slog.Error("Error parsing product page", "url", url, "error", err)
		return nil
	}

	title := extract.Text(doc, r.selectors.Title, "Untitled Product")
	description := extract.Text(doc, r.selectors.Description, "")
	colors := extract.Values(doc, r.selectors.Colors)
	sizes := extract.Values(doc, r.selectors.Sizes)
	images := extract.Images(doc, r.selectors.Images, url)

	var price *float64
	if v, ok := extract.Price(doc, r.selectors.Price); ok {
		price = &v
	}

	if lang := classify.Language(title, description); lang != "" && lang != "eng" {
		slog.Warn("Page text is not English, classifiers may fall back to defaults",
			"url", url, "language", lang)
	}

	product := &domain.Product{
		Title:      title,
		URL:        url,
		Price:      price,
		Currency:   classify.Currency(extract.PriceText(doc, r.selectors.Price)),
		Gender:     classify.Gender(title, description),
		Colors:     colors,
		Sizes:      sizes,
		Images:     images,
		CategoryID: classify.Category(title, description),
		BrandID:    r.resolveBrand(ctx, classify.BrandFromURL(url)),
		InStock:    true,
	}
	if description != "" {
		product.Description = &description
	}

	slog.Debug("Assembled product record",
		"url", url, "title", product.Title, "price", price,
		"currency", product.Currency, "category_id", product.CategoryID,
		"gender", product.Gender, "images", len(images))
	return product
}

// Upsert is the dedup gateway: at-most-once ingestion per URL, no
// overwrite on rescrape.
func (r *Runner) Upsert(ctx context.Context, p *domain.Product) (domain.UpsertResult, error) {
	existing, err := r.store.FindProductByURL(ctx, p.URL)
	if err != nil {
		return domain.UpsertResult{}, err
	}
	if existing != nil {
		metrics.ProductsSkipped.Inc()
		return domain.UpsertResult{Skipped: true, ProductID: *existing}, nil
	}

	id, err := r.store.InsertProduct(ctx, p)
	if err != nil {
		return domain.UpsertResult{}, err
	}
	metrics.ProductsAdded.Inc()
	return domain.UpsertResult{Created: true, ProductID: id}, nil
}

// resolveBrand looks the brand up by name, creating it on first
// encounter. A store failure degrades to a nil brand id rather than
// failing the record.
func (r *Runner) resolveBrand(ctx context.Context, name string) *int64 {
	brand, err := r.store.FindBrandByName(ctx, name)
	if err != nil {
		slog.Warn("Brand lookup failed", "name", name, "error", err)
		return nil
	}
	if brand != nil {
		slog.Debug("Brand resolved", "name", brand.Name, "brand_id", brand.ID)
		return &brand.ID
	}

	brand, err = r.store.CreateBrand(ctx, name)
	if err != nil {
		slog.Warn("Brand creation failed", "name", name, "error", err)
		return nil
	}
	slog.Info("Brand created", "name", name, "brand_id", brand.ID)
	return &brand.ID
}

func fetchErrorReason(err error) string {
	if fe, ok := err.(*fetcher.Error); ok {
		switch {
		case fe.StatusCode == 403:
			return "blocked"
		case fe.StatusCode != 0:
			return "http_error"
		}
	}
	return "network"
}

// sleep waits for d unless the context is cancelled first.
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
