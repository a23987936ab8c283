// Package domain
package domain

import "fmt"

type Gender string

const (
	Women  Gender = "women"
	Men    Gender = "men"
	Unisex Gender = "unisex"
)

// Fixed category taxonomy. IDs match the catalog's categories table.
const (
	CategoryTops        = 1
	CategoryBottoms     = 2
	CategoryShoes       = 3
	CategoryAccessories = 4
	CategoryOuterwear   = 5
	CategoryDresses     = 6
	CategoryBags        = 7
	CategoryJewelry     = 8
)

// RawDocument is the HTML and response metadata for one fetched page.
// It is consumed once by extraction and then discarded.
type RawDocument struct {
	URL        string
	FinalURL   string
	StatusCode int
	HTML       string
}

// Product is the normalized record assembled from one product page.
type Product struct {
	Title       string   `json:"title"`
	Description *string  `json:"description"`
	URL         string   `json:"url"`
	Price       *float64 `json:"price"`
	Currency    string   `json:"currency"`
	Gender      Gender   `json:"gender"`
	Colors      []string `json:"colors"`
	Sizes       []string `json:"sizes"`
	Images      []string `json:"images"`
	CategoryID  int      `json:"category_id"`
	BrandID     *int64   `json:"brand_id"`
	InStock     bool     `json:"in_stock"`
}

type Brand struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	WebsiteURL *string `json:"website_url"`
	LogoURL    *string `json:"logo_url"`
	Country    *string `json:"country"`
}

// UpsertResult reports what the dedup gateway did with one product.
type UpsertResult struct {
	Created   bool
	Skipped   bool
	ProductID int64
}

// Summary accumulates per-URL outcomes across one batch run.
type Summary struct {
	Added   int
	Skipped int
	Errors  int
}

func (s Summary) String() string {
	return fmt.Sprintf("added=%d skipped=%d errors=%d", s.Added, s.Skipped, s.Errors)
}
