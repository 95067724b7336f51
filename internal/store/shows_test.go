package store

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"livemusicnotes/internal/models"
)

var showColumns = []string{
	"id", "show_date", "artist_id", "venue_id",
	"artist_name", "venue_name", "venue_city", "venue_state", "is_future",
}

func TestListShowsOrderedMostRecentFirst(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)
	newer := time.Date(2024, 6, 1, 20, 0, 0, 0, time.UTC)
	older := time.Date(2023, 2, 14, 19, 30, 0, 0, time.UTC)

	rows := sqlmock.NewRows(showColumns).
		AddRow(int64(2), newer, int64(1), int64(1), "Yes", "First Avenue", "Minneapolis", "MN", false).
		AddRow(int64(1), older, int64(2), int64(1), "REM", "First Avenue", "Minneapolis", "MN", false)

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY s.show_date DESC")).
		WillReturnRows(rows)

	shows, err := s.ListShows(context.Background(), models.ShowFilter{})
	if err != nil {
		t.Fatalf("ListShows: %v", err)
	}
	if len(shows) != 2 {
		t.Fatalf("expected 2 shows, got %d", len(shows))
	}
	if !shows[0].ShowDate.After(shows[1].ShowDate) {
		t.Fatalf("shows out of order: %v before %v", shows[0].ShowDate, shows[1].ShowDate)
	}
	if shows[0].ArtistName != "Yes" || shows[0].VenueName != "First Avenue" {
		t.Fatalf("unexpected first show: %#v", shows[0])
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestListShowsFiltered(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)
	date := time.Date(2024, 6, 1, 20, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE a.name ILIKE $1 AND v.name ILIKE $2 ORDER BY s.show_date DESC")).
		WithArgs("%yes%", "%first%").
		WillReturnRows(sqlmock.NewRows(showColumns).
			AddRow(int64(2), date, int64(1), int64(1), "Yes", "First Avenue", "Minneapolis", "MN", false))

	shows, err := s.ListShows(context.Background(), models.ShowFilter{Artist: "yes", Venue: "first"})
	if err != nil {
		t.Fatalf("ListShows: %v", err)
	}
	if len(shows) != 1 || shows[0].ID != 2 {
		t.Fatalf("unexpected shows: %#v", shows)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetShowNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE s.id = $1")).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows(showColumns))

	_, err = s.GetShow(context.Background(), 99)
	if !errors.Is(err, ErrShowNotFound) {
		t.Fatalf("expected ErrShowNotFound, got %v", err)
	}
}

func TestCreateShowDuplicateTriple(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)
	date := time.Date(2024, 6, 1, 20, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`
		INSERT INTO shows (show_date, artist_id, venue_id)
		VALUES ($1, $2, $3)
		RETURNING id
	`)).
		WithArgs(date, int64(1), int64(1)).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "shows_show_date_artist_id_venue_id_key"})

	_, err = s.CreateShow(context.Background(), date, 1, 1)
	if !errors.Is(err, ErrDuplicateShow) {
		t.Fatalf("expected ErrDuplicateShow, got %v", err)
	}
}

func TestGetOrCreateShowExisting(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)
	date := time.Date(2024, 6, 1, 20, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT id, show_date, artist_id, venue_id
		FROM shows
		WHERE show_date = $1 AND artist_id = $2 AND venue_id = $3
	`)).
		WithArgs(date, int64(1), int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "show_date", "artist_id", "venue_id"}).
			AddRow(int64(4), date, int64(1), int64(1)))

	show, created, err := s.GetOrCreateShow(context.Background(), date, 1, 1)
	if err != nil {
		t.Fatalf("GetOrCreateShow: %v", err)
	}
	if created {
		t.Fatalf("expected created=false for an existing show")
	}
	if show.ID != 4 {
		t.Fatalf("expected show id 4, got %d", show.ID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
