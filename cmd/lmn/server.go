package main

import (
	"net/http"

	"livemusicnotes/internal/app/artists"
	"livemusicnotes/internal/app/notes"
	"livemusicnotes/internal/app/shows"
	"livemusicnotes/internal/app/users"
	"livemusicnotes/internal/app/venues"
	"livemusicnotes/internal/auth"
	"livemusicnotes/internal/httpapi"
	"livemusicnotes/internal/middleware"
	"livemusicnotes/internal/photostore"
	"livemusicnotes/internal/store"
)

func newHTTPHandler(cfg Config, dataStore *store.Store, photos photostore.Store, tokens *auth.TokenManager) http.Handler {
	artistSvc := artists.New(dataStore)
	venueSvc := venues.New(dataStore)
	showSvc := shows.New(dataStore)
	noteSvc := notes.New(dataStore, photos)
	userSvc := users.New(dataStore, tokens)

	api := httpapi.New(artistSvc, venueSvc, showSvc, noteSvc, userSvc, tokens)

	mux := http.NewServeMux()
	mux.Handle("/", api.Routes())
	mux.Handle("GET /metrics", middleware.MetricsHandler())

	// Photos are served straight off disk for the filesystem backend;
	// the S3 backend returns absolute URLs instead.
	if fs, ok := photos.(*photostore.FSStore); ok {
		mux.Handle("GET /media/", fs.Handler())
	}

	var handler http.Handler = mux
	handler = middleware.CORS(cfg.AllowedOrigins)(handler)
	handler = middleware.Metrics()(handler)
	handler = middleware.RequestLogging()(handler)
	handler = middleware.Recovery()(handler)
	return handler
}
