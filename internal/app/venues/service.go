package venues

import (
	"context"

	"livemusicnotes/internal/forms"
	"livemusicnotes/internal/models"
)

// Store describes the persistence operations required by the venue
// service.
type Store interface {
	ListVenues(ctx context.Context, searchName string) ([]*models.Venue, error)
	GetVenue(ctx context.Context, id int64) (*models.Venue, error)
	CreateVenue(ctx context.Context, venue *models.Venue) (*models.Venue, error)
	ListShowsForVenue(ctx context.Context, venueID int64) ([]*models.ShowWithDetails, error)
}

// Service exposes venue browsing workflows.
type Service interface {
	List(ctx context.Context, searchName string) ([]*models.Venue, error)
	Get(ctx context.Context, id int64) (*models.Venue, error)
	Create(ctx context.Context, venue *models.Venue) (*models.Venue, error)
	Shows(ctx context.Context, venueID int64) ([]*models.ShowWithDetails, error)
}

type service struct {
	store Store
}

// New wires a Service backed by the provided Store.
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) List(ctx context.Context, searchName string) ([]*models.Venue, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := forms.ValidateSearch(searchName); err != nil {
		return nil, err
	}
	return s.store.ListVenues(ctx, searchName)
}

func (s *service) Get(ctx context.Context, id int64) (*models.Venue, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.GetVenue(ctx, id)
}

func (s *service) Create(ctx context.Context, venue *models.Venue) (*models.Venue, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.CreateVenue(ctx, venue)
}

// Shows lists what has played at this venue, most recent first.
func (s *service) Shows(ctx context.Context, venueID int64) ([]*models.ShowWithDetails, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := s.store.GetVenue(ctx, venueID); err != nil {
		return nil, err
	}
	return s.store.ListShowsForVenue(ctx, venueID)
}
