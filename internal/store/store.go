package store

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrArtistNotFound signals a lookup for a missing artist id.
	ErrArtistNotFound = errors.New("artist not found")
	// ErrVenueNotFound signals a lookup for a missing venue id.
	ErrVenueNotFound = errors.New("venue not found")
	// ErrShowNotFound signals a lookup for a missing show id.
	ErrShowNotFound = errors.New("show not found")
	// ErrNoteNotFound signals a lookup for a missing note id.
	ErrNoteNotFound = errors.New("note not found")
	// ErrUserNotFound signals a lookup for a missing user id.
	ErrUserNotFound = errors.New("user not found")

	// ErrDuplicateNote is returned when a user already holds a note for
	// the show. The message is surfaced to the user verbatim.
	ErrDuplicateNote = errors.New("You can only create one note per show")
	// ErrFutureShow is returned when the show has not happened yet.
	// The message is surfaced to the user verbatim.
	ErrFutureShow = errors.New("Cannot add notes to future shows.")
	// ErrNotOwner is returned when a user tries to modify or delete a
	// note posted by somebody else.
	ErrNotOwner = errors.New("not the owner of this note")

	// ErrDuplicateVenue indicates the venue name is already taken.
	ErrDuplicateVenue = errors.New("a venue with that name already exists")
	// ErrDuplicateShow indicates the (date, artist, venue) triple exists.
	ErrDuplicateShow = errors.New("show already exists")

	// ErrUsernameTaken and ErrEmailTaken mirror the registration form
	// messages; uniqueness is checked case-insensitively.
	ErrUsernameTaken = errors.New("a user with that username already exists")
	ErrEmailTaken    = errors.New("a user with that email address already exists")

	// ErrInvalidCredentials indicates a login failure.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// Store provides persistence backed by Postgres.
type Store struct {
	db *sql.DB
}

// New sets up a Store using the provided database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation, optionally on one specific named constraint.
func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	if pgErr.Code != "23505" {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}
