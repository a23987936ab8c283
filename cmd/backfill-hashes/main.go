// backfill-hashes stamps url_hash on catalog rows that predate
// hash-at-insert. The digest is the dedup key, so healed rows are what
// keeps the uniqueness invariant enforceable DB-side.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"ingest/packages/config"
	"ingest/packages/db"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	workers := flag.Int("workers", 8, "concurrent update workers")
	flag.Parse()

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

	if err := backfill(ctx, pool, *workers); err != nil {
		slog.Error("Backfill failed", "error", err)
		os.Exit(1)
	}
}

type row struct {
	id  int64
	url string
}

func backfill(ctx context.Context, pool *pgxpool.Pool, workers int) error {
	rows, err := pool.Query(ctx,
		`SELECT id, url FROM products WHERE url_hash IS NULL OR url_hash = ''`)
	if err != nil {
		return err
	}

	var pending []row
	for rows.Next() {
		var r row
		if err := rows.Scan(&r.id, &r.url); err != nil {
			rows.Close()
			return err
		}
		pending = append(pending, r)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	if len(pending) == 0 {
		slog.Info("No rows missing url_hash")
		return nil
	}
	slog.Info("Backfilling url_hash", "rows", len(pending))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, r := range pending {
		current := r
		g.Go(func() error {
			_, err := pool.Exec(gCtx,
				`UPDATE products SET url_hash = $1 WHERE id = $2`,
				db.URLHash(current.url), current.id)
			if err != nil {
				slog.Error("Failed to stamp url_hash", "product_id", current.id, "error", err)
			}
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	slog.Info("Backfill complete", "rows", len(pending))
	return nil
}
