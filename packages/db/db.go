// Package db
package db

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ingest/packages/domain"
	"ingest/packages/metrics"
)

type Storage struct {
	DB   *pgxpool.Pool
	seen *SeenCache
}

func New(ctx context.Context, databaseURL string, seen *SeenCache) (*Storage, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}
	return &Storage{DB: pool, seen: seen}, nil
}

func (s *Storage) Close() {
	s.DB.Close()
}

// URLHash is the stable dedup key: hex SHA-256 of the exact URL string.
func URLHash(url string) string {
	sum := sha256.Sum256([]byte(url))
	return hex.EncodeToString(sum[:])
}

func observe(queryName string, start time.Time) {
	metrics.DBQueryDuration.WithLabelValues(queryName).Observe(time.Since(start).Seconds())
}

// FindBrandByName looks a brand up case-insensitively, falling back to
// an exact match if the ILIKE query itself fails.
func (s *Storage) FindBrandByName(ctx context.Context, name string) (*domain.Brand, error) {
	defer observe("find_brand", time.Now())

	brand := &domain.Brand{}
	err := s.DB.QueryRow(ctx,
		`SELECT id, name, website_url, logo_url, country FROM brands WHERE name ILIKE $1 LIMIT 1`,
		name,
	).Scan(&brand.ID, &brand.Name, &brand.WebsiteURL, &brand.LogoURL, &brand.Country)
	if err == nil {
		return brand, nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}

	slog.Warn("Case-insensitive brand lookup failed, trying exact match", "name", name, "error", err)
	err = s.DB.QueryRow(ctx,
		`SELECT id, name, website_url, logo_url, country FROM brands WHERE name = $1 LIMIT 1`,
		name,
	).Scan(&brand.ID, &brand.Name, &brand.WebsiteURL, &brand.LogoURL, &brand.Country)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find brand %q: %w", name, err)
	}
	return brand, nil
}

func (s *Storage) CreateBrand(ctx context.Context, name string) (*domain.Brand, error) {
	defer observe("create_brand", time.Now())

	brand := &domain.Brand{Name: name}
	err := s.DB.QueryRow(ctx,
		`INSERT INTO brands (name, website_url, logo_url, country) VALUES ($1, NULL, NULL, NULL) RETURNING id`,
		name,
	).Scan(&brand.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create brand %q: %w", name, err)
	}
	return brand, nil
}

// FindProductByURL reports the id of an already-ingested product, or
// nil. The optional seen cache is consulted first; cache errors are
// logged and ignored since Postgres stays authoritative.
func (s *Storage) FindProductByURL(ctx context.Context, url string) (*int64, error) {
	if s.seen != nil {
		hit, err := s.seen.Seen(ctx, URLHash(url))
		if err != nil {
			slog.Warn("Seen cache lookup failed", "url", url, "error", err)
		} else if hit != nil {
			return hit, nil
		}
	}

	defer observe("find_product", time.Now())

	var id int64
	err := s.DB.QueryRow(ctx, `SELECT id FROM products WHERE url = $1 LIMIT 1`, url).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to check product existence: %w", err)
	}

	if s.seen != nil {
		if err := s.seen.Mark(ctx, URLHash(url), id); err != nil {
			slog.Warn("Seen cache mark failed", "url", url, "error", err)
		}
	}
	return &id, nil
}

func (s *Storage) InsertProduct(ctx context.Context, p *domain.Product) (int64, error) {
	defer observe("insert_product", time.Now())

	var id int64
	err := s.DB.QueryRow(ctx,
		`INSERT INTO products
		   (title, description, url, url_hash, price, currency, gender,
		    colors, sizes, images, category_id, brand_id, in_stock)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		 RETURNING id`,
		p.Title, p.Description, p.URL, URLHash(p.URL), p.Price, p.Currency,
		string(p.Gender), p.Colors, p.Sizes, p.Images, p.CategoryID, p.BrandID, p.InStock,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert product: %w", err)
	}

	if s.seen != nil {
		if err := s.seen.Mark(ctx, URLHash(p.URL), id); err != nil {
			slog.Warn("Seen cache mark failed", "url", p.URL, "error", err)
		}
	}
	return id, nil
}
