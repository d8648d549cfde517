package db

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Connect opens the settlement database pool from POSTGRES_URL and verifies it
// with a ping. The caller owns the returned pool and closes it on shutdown.
func Connect(ctx context.Context) (*pgxpool.Pool, error) {
	dsn := os.Getenv("POSTGRES_URL")

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("open settlement db: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping settlement db: %w", err)
	}

	return pool, nil
}
