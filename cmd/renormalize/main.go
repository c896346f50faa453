// Command renormalize rewrites every stored connection through the domain
// normalizer, migrating legacy field spellings (old telemetry values, unspaced
// IBANs, companyActive keywords) in place.
// Usage: go run ./cmd/renormalize
package main

import (
	"context"
	"fmt"
	"log"

	"aansluitintake/internal/config"
	"aansluitintake/internal/repository/postgres"
)

const batchSize = 100

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer func() { _ = db.Close() }()

	repo := postgres.NewConnectionRepo(db)

	ctx := context.Background()
	offset := 0
	total := 0

	for {
		// List normalizes on read; Put normalizes again on write.
		conns, _, err := repo.List(ctx, offset, batchSize)
		if err != nil {
			return fmt.Errorf("listing connections at offset %d: %w", offset, err)
		}
		if len(conns) == 0 {
			break
		}

		for i := range conns {
			if err := repo.Put(ctx, &conns[i]); err != nil {
				return fmt.Errorf("rewriting connection %s: %w", conns[i].ID, err)
			}
			total++
		}
		offset += len(conns)
	}

	log.Printf("renormalize: rewrote %d connections", total)
	return nil
}
