// setimage patches a product's primary image by hand, for the rows the
// scraper picked a bad shot for.
//
// Usage:
//
//	setimage --find "steve madden"      list matching products
//	setimage <productID> <imageURL>     set the primary image
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"

	"ingest/packages/config"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	args := os.Args[1:]
	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  setimage --find <search term>")
		fmt.Fprintln(os.Stderr, "  setimage <productID> <imageURL>")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("Failed to connect to catalog store", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if args[0] == "--find" {
		if err := findProducts(ctx, pool, args[1]); err != nil {
			slog.Error("Search failed", "error", err)
			os.Exit(1)
		}
		return
	}

	productID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid product ID %q\n", args[0])
		os.Exit(1)
	}
	if err := updateProductImage(ctx, pool, productID, args[1]); err != nil {
		slog.Error("Update failed", "product_id", productID, "error", err)
		os.Exit(1)
	}
}

func findProducts(ctx context.Context, pool *pgxpool.Pool, term string) error {
	rows, err := pool.Query(ctx,
		`SELECT id, title, url FROM products
		 WHERE title ILIKE '%' || $1 || '%' OR url ILIKE '%' || $1 || '%'
		 LIMIT 10`,
		term,
	)
	if err != nil {
		return fmt.Errorf("failed to search products: %w", err)
	}
	defer rows.Close()

	found := 0
	for rows.Next() {
		var id int64
		var title, url string
		if err := rows.Scan(&id, &title, &url); err != nil {
			return err
		}
		found++
		fmt.Printf("%d\t%s\t%s\n", id, title, url)
	}
	if found == 0 {
		fmt.Println("No products matched", term)
	}
	return rows.Err()
}

// updateProductImage sets imageURL as the primary image while keeping
// any other images the product already has.
func updateProductImage(ctx context.Context, pool *pgxpool.Pool, productID int64, imageURL string) error {
	var existing []string
	err := pool.QueryRow(ctx,
		`SELECT COALESCE(images, '{}') FROM products WHERE id = $1`, productID,
	).Scan(&existing)
	if err != nil {
		return fmt.Errorf("failed to load product %d: %w", productID, err)
	}

	images := []string{imageURL}
	for _, img := range existing {
		if img != imageURL {
			images = append(images, img)
		}
	}

	_, err = pool.Exec(ctx,
		`UPDATE products SET images = $1 WHERE id = $2`, images, productID,
	)
	if err != nil {
		return fmt.Errorf("failed to update product %d: %w", productID, err)
	}

	slog.Info("Product image updated", "product_id", productID, "primary_image", imageURL)
	return nil
}
