package shows

import (
	"context"

	"livemusicnotes/internal/forms"
	"livemusicnotes/internal/models"
)

// Store describes the persistence operations required by the show
// service.
type Store interface {
	ListShows(ctx context.Context, filter models.ShowFilter) ([]*models.ShowWithDetails, error)
	GetShow(ctx context.Context, id int64) (*models.ShowWithDetails, error)
}

// Service exposes show browsing workflows.
type Service interface {
	List(ctx context.Context, filter models.ShowFilter) ([]*models.ShowWithDetails, error)
	Get(ctx context.Context, id int64) (*models.ShowWithDetails, error)
}

type service struct {
	store Store
}

// New wires a Service backed by the provided Store.
func New(store Store) Service {
	return &service{store: store}
}

// List filters shows by artist and venue name. Both search terms go
// through the same length check the artist and venue listings apply.
func (s *service) List(ctx context.Context, filter models.ShowFilter) ([]*models.ShowWithDetails, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := forms.ValidateSearch(filter.Artist); err != nil {
		return nil, err
	}
	if err := forms.ValidateSearch(filter.Venue); err != nil {
		return nil, err
	}
	return s.store.ListShows(ctx, filter)
}

func (s *service) Get(ctx context.Context, id int64) (*models.ShowWithDetails, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.GetShow(ctx, id)
}
