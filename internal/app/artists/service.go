package artists

import (
	"context"

	"livemusicnotes/internal/forms"
	"livemusicnotes/internal/models"
)

// Store describes the persistence operations required by the artist
// service.
type Store interface {
	ListArtists(ctx context.Context, searchName string) ([]*models.Artist, error)
	GetArtist(ctx context.Context, id int64) (*models.Artist, error)
	ListShowsForArtist(ctx context.Context, artistID int64) ([]*models.ShowWithDetails, error)
}

// Service exposes artist browsing workflows.
type Service interface {
	List(ctx context.Context, searchName string) ([]*models.Artist, error)
	Get(ctx context.Context, id int64) (*models.Artist, error)
	Shows(ctx context.Context, artistID int64) ([]*models.ShowWithDetails, error)
}

type service struct {
	store Store
}

// New wires a Service backed by the provided Store.
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) List(ctx context.Context, searchName string) ([]*models.Artist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := forms.ValidateSearch(searchName); err != nil {
		return nil, err
	}
	return s.store.ListArtists(ctx, searchName)
}

func (s *service) Get(ctx context.Context, id int64) (*models.Artist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.GetArtist(ctx, id)
}

// Shows lists where this artist has played, most recent first. The
// artist must exist so a missing id surfaces as a 404 rather than an
// empty list.
func (s *service) Shows(ctx context.Context, artistID int64) ([]*models.ShowWithDetails, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := s.store.GetArtist(ctx, artistID); err != nil {
		return nil, err
	}
	return s.store.ListShowsForArtist(ctx, artistID)
}
