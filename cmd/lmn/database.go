package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

const (
	connectAttempts = 10
	pingTimeout     = 3 * time.Second
)

// openDatabase connects and waits for the instance to answer a ping,
// retrying with a doubling delay. The database regularly comes up a
// few seconds after the app when both start together.
func openDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	wait := 250 * time.Millisecond
	var lastErr error
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		lastErr = db.PingContext(pingCtx)
		cancel()
		if lastErr == nil {
			return db, nil
		}

		select {
		case <-ctx.Done():
			_ = db.Close()
			return nil, ctx.Err()
		case <-time.After(wait):
		}
		wait *= 2
	}

	_ = db.Close()
	return nil, fmt.Errorf("ping database after %d attempts: %w", connectAttempts, lastErr)
}
