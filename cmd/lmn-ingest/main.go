// Command lmn-ingest pulls events from the Ticketmaster Discovery API
// and loads them into the catalog, or dumps them to a file for
// inspection.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"livemusicnotes/internal/logging"
	"livemusicnotes/internal/store"
	"livemusicnotes/internal/ticketmaster"
)

func main() {
	_ = godotenv.Load("config/local.env")

	logger := logging.New(logging.Config{
		Level:  envOrDefault("LOG_LEVEL", "info"),
		Format: envOrDefault("LOG_FORMAT", "text"),
		Output: os.Stderr,
	})

	cmd := &cli.Command{
		Name:  "lmn-ingest",
		Usage: "Load shows, artists and venues from the Ticketmaster Discovery API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "api-key",
				Usage:   "Ticketmaster API key",
				Sources: cli.EnvVars("TICKETMASTER"),
			},
			&cli.StringFlag{
				Name:  "sink",
				Usage: "Where events go: db, file or json",
				Value: "db",
			},
			&cli.StringFlag{
				Name:  "out",
				Usage: "Output path for the file and json sinks",
				Value: "ticketmaster_data.txt",
			},
			&cli.StringFlag{
				Name:  "state",
				Usage: "Two-letter state code to search",
				Value: "MN",
			},
			&cli.StringFlag{
				Name:  "classification",
				Usage: "Event classification",
				Value: "music",
			},
			&cli.IntFlag{
				Name:  "size",
				Usage: "Page size (max 200)",
				Value: 200,
			},
			&cli.StringFlag{
				Name:  "start",
				Usage: "Earliest event date (YYYY-MM-DD)",
			},
			&cli.StringFlag{
				Name:  "end",
				Usage: "Latest event date (YYYY-MM-DD)",
			},
			&cli.FloatFlag{
				Name:  "rate",
				Usage: "API requests per second",
				Value: 5,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			apiKey := cmd.String("api-key")
			if apiKey == "" {
				return fmt.Errorf("an API key is required (--api-key or TICKETMASTER)")
			}

			client, err := ticketmaster.NewClient(ticketmaster.Config{
				APIKey:            apiKey,
				RequestsPerSecond: cmd.Float("rate"),
			}, logger)
			if err != nil {
				return err
			}

			query := ticketmaster.EventQuery{
				StateCode:      cmd.String("state"),
				Classification: cmd.String("classification"),
				Size:           int(cmd.Int("size")),
			}
			if raw := cmd.String("start"); raw != "" {
				start, err := time.Parse("2006-01-02", raw)
				if err != nil {
					return fmt.Errorf("parse --start: %w", err)
				}
				query.StartDateTime = start
			}
			if raw := cmd.String("end"); raw != "" {
				end, err := time.Parse("2006-01-02", raw)
				if err != nil {
					return fmt.Errorf("parse --end: %w", err)
				}
				query.EndDateTime = end
			}

			sink, cleanup, err := newSink(ctx, cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			summary, err := ticketmaster.NewIngestor(client, sink, logger).Run(ctx, query)
			if err != nil {
				return err
			}

			fmt.Printf("Ingested %d events (%d artists, %d venues, %d shows created; %d local artists; %d skipped)\n",
				summary.Events, summary.Artists, summary.Venues, summary.Shows,
				summary.LocalArtists, summary.Skipped)
			return nil
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		logger.Fatal().Err(err).Msg("ingest failed")
	}
}

func newSink(ctx context.Context, cmd *cli.Command) (ticketmaster.Sink, func(), error) {
	noop := func() {}

	switch cmd.String("sink") {
	case "db":
		dsn := os.Getenv("DATABASE_URL")
		if dsn == "" {
			return nil, noop, fmt.Errorf("DATABASE_URL env var is required for the db sink")
		}
		db, err := openDatabase(ctx, dsn)
		if err != nil {
			return nil, noop, err
		}
		return ticketmaster.NewDBSink(store.New(db)), func() { db.Close() }, nil

	case "file":
		f, err := os.Create(cmd.String("out"))
		if err != nil {
			return nil, noop, fmt.Errorf("create output file: %w", err)
		}
		return ticketmaster.NewTextSink(f), func() { f.Close() }, nil

	case "json":
		f, err := os.Create(cmd.String("out"))
		if err != nil {
			return nil, noop, fmt.Errorf("create output file: %w", err)
		}
		return ticketmaster.NewJSONSink(f), func() { f.Close() }, nil

	default:
		return nil, noop, fmt.Errorf("unknown sink %q", cmd.String("sink"))
	}
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
