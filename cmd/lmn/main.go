package main

import (
	"context"
	"net/http"
	"os"

	"livemusicnotes/internal/auth"
	"livemusicnotes/internal/logging"
	"livemusicnotes/internal/photostore"
	s3store "livemusicnotes/internal/photostore/s3"
	"livemusicnotes/internal/store"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		bootLogger := logging.New(logging.Config{})
		bootLogger.Fatal().Err(err).Msg("load config")
	}

	logger := logging.New(logging.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: os.Stderr,
	})
	logging.SetGlobal(logger)

	ctx := context.Background()

	db, err := openDatabase(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect to database")
	}
	defer db.Close()

	dataStore := store.New(db)
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)

	photos, err := newPhotoStore(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("init photo store")
	}

	handler := newHTTPHandler(cfg, dataStore, photos, tokens)

	logger.Info().Str("addr", cfg.Addr).Str("photo_store", cfg.PhotoStore).Msg("starting server")
	if err := http.ListenAndServe(cfg.Addr, handler); err != nil {
		logger.Fatal().Err(err).Msg("server error")
	}
}

func newPhotoStore(ctx context.Context, cfg Config) (photostore.Store, error) {
	if cfg.PhotoStore == "s3" {
		return s3store.New(ctx, s3store.Config{
			Region:        cfg.S3Region,
			Bucket:        cfg.S3Bucket,
			Endpoint:      cfg.S3Endpoint,
			PathStyle:     cfg.S3PathStyle,
			PublicBaseURL: cfg.S3PublicBaseURL,
		})
	}
	return photostore.NewFSStore(cfg.MediaDir)
}
