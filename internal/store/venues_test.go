package store

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"livemusicnotes/internal/models"
)

func TestListVenuesSearch(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT id, name, city, state
		FROM venues
		WHERE name ILIKE $1
		ORDER BY name ASC
	`)).
		WithArgs("%first%").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "city", "state"}).
			AddRow(int64(1), "First Avenue", "Minneapolis", "MN"))

	venues, err := s.ListVenues(context.Background(), "first")
	if err != nil {
		t.Fatalf("ListVenues: %v", err)
	}
	if len(venues) != 1 || venues[0].Name != "First Avenue" {
		t.Fatalf("unexpected venues: %#v", venues)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateVenueTrimsName(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(regexp.QuoteMeta(`
		INSERT INTO venues (name, city, state)
		VALUES ($1, $2, $3)
		RETURNING id
	`)).
		WithArgs("First Avenue", "Minneapolis", "MN").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	venue, err := s.CreateVenue(context.Background(), &models.Venue{
		Name:  "  First Avenue ",
		City:  "Minneapolis",
		State: "MN",
	})
	if err != nil {
		t.Fatalf("CreateVenue: %v", err)
	}
	if venue.ID != 7 {
		t.Fatalf("expected venue id 7, got %d", venue.ID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateVenueDuplicateName(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(regexp.QuoteMeta(`
		INSERT INTO venues (name, city, state)
		VALUES ($1, $2, $3)
		RETURNING id
	`)).
		WithArgs("First Avenue", "Minneapolis", "MN").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "venues_name_key"})

	_, err = s.CreateVenue(context.Background(), &models.Venue{
		Name:  "First Avenue",
		City:  "Minneapolis",
		State: "MN",
	})
	if !errors.Is(err, ErrDuplicateVenue) {
		t.Fatalf("expected ErrDuplicateVenue, got %v", err)
	}
}

func TestGetOrCreateVenueLostRace(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT id, name, city, state
		FROM venues
		WHERE name = $1
	`)).
		WithArgs("First Avenue").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "city", "state"}))

	mock.ExpectQuery(regexp.QuoteMeta(`
		INSERT INTO venues (name, city, state)
		VALUES ($1, $2, $3)
		RETURNING id
	`)).
		WithArgs("First Avenue", "Minneapolis", "MN").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "venues_name_key"})

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT id, name, city, state
		FROM venues
		WHERE name = $1
	`)).
		WithArgs("First Avenue").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "city", "state"}).
			AddRow(int64(7), "First Avenue", "Minneapolis", "MN"))

	venue, created, err := s.GetOrCreateVenue(context.Background(), "First Avenue", "Minneapolis", "MN")
	if err != nil {
		t.Fatalf("GetOrCreateVenue: %v", err)
	}
	if created {
		t.Fatalf("expected created=false after losing the race")
	}
	if venue.ID != 7 {
		t.Fatalf("expected venue id 7, got %d", venue.ID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
