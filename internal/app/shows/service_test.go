package shows

import (
	"context"
	"errors"
	"strings"
	"testing"

	"livemusicnotes/internal/forms"
	"livemusicnotes/internal/models"
)

type stubStore struct {
	listCalls int
	shows     []*models.ShowWithDetails
}

func (s *stubStore) ListShows(_ context.Context, _ models.ShowFilter) ([]*models.ShowWithDetails, error) {
	s.listCalls++
	return s.shows, nil
}

func (s *stubStore) GetShow(_ context.Context, _ int64) (*models.ShowWithDetails, error) {
	return nil, errors.New("not implemented")
}

func TestListRejectsOversizedSearchTerms(t *testing.T) {
	store := &stubStore{}
	svc := New(store)
	long := strings.Repeat("x", forms.MaxTitleLen+1)

	for _, filter := range []models.ShowFilter{
		{Artist: long},
		{Venue: long},
	} {
		var fe forms.FieldErrors
		_, err := svc.List(context.Background(), filter)
		if !errors.As(err, &fe) {
			t.Fatalf("expected field errors for %+v, got %v", filter, err)
		}
	}
	if store.listCalls != 0 {
		t.Fatalf("store consulted %d times for invalid filters", store.listCalls)
	}
}

func TestListPassesFilterThrough(t *testing.T) {
	store := &stubStore{shows: []*models.ShowWithDetails{{ArtistName: "Yes"}}}
	svc := New(store)

	shows, err := svc.List(context.Background(), models.ShowFilter{Artist: "yes"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(shows) != 1 || shows[0].ArtistName != "Yes" {
		t.Fatalf("unexpected shows: %#v", shows)
	}
}
