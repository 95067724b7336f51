package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"livemusicnotes/internal/models"
)

// ListVenues returns all venues ordered by name. When searchName is
// non-empty only venues whose name contains it, case-insensitively,
// are included.
func (s *Store) ListVenues(ctx context.Context, searchName string) ([]*models.Venue, error) {
	query := `
		SELECT id, name, city, state
		FROM venues
		ORDER BY name ASC
	`
	args := []any{}
	if searchName != "" {
		query = `
		SELECT id, name, city, state
		FROM venues
		WHERE name ILIKE $1
		ORDER BY name ASC
	`
		args = append(args, "%"+searchName+"%")
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select venues: %w", err)
	}
	defer rows.Close()

	var venues []*models.Venue
	for rows.Next() {
		var v models.Venue
		if err := rows.Scan(&v.ID, &v.Name, &v.City, &v.State); err != nil {
			return nil, fmt.Errorf("scan venue: %w", err)
		}
		venues = append(venues, &v)
	}

	return venues, rows.Err()
}

// GetVenue retrieves a single venue by ID.
func (s *Store) GetVenue(ctx context.Context, id int64) (*models.Venue, error) {
	var v models.Venue
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, city, state
		FROM venues
		WHERE id = $1
	`, id).Scan(&v.ID, &v.Name, &v.City, &v.State)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrVenueNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select venue: %w", err)
	}

	return &v, nil
}

// CreateVenue inserts a new venue. Venue names are unique; a second
// insert with the same name fails with ErrDuplicateVenue.
func (s *Store) CreateVenue(ctx context.Context, venue *models.Venue) (*models.Venue, error) {
	venue.Name = strings.TrimSpace(venue.Name)

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO venues (name, city, state)
		VALUES ($1, $2, $3)
		RETURNING id
	`, venue.Name, venue.City, venue.State).Scan(&venue.ID)

	if isUniqueViolation(err, "venues_name_key") {
		return nil, ErrDuplicateVenue
	}
	if err != nil {
		return nil, fmt.Errorf("insert venue: %w", err)
	}

	return venue, nil
}

// GetOrCreateVenue returns the venue with the given name, inserting a
// new row when none exists. The unique constraint on name covers the
// race between concurrent ingestion runs.
func (s *Store) GetOrCreateVenue(ctx context.Context, name, city, state string) (*models.Venue, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, false, fmt.Errorf("venue name is required")
	}

	var v models.Venue
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, city, state
		FROM venues
		WHERE name = $1
	`, name).Scan(&v.ID, &v.Name, &v.City, &v.State)
	if err == nil {
		return &v, false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, false, fmt.Errorf("select venue by name: %w", err)
	}

	err = s.db.QueryRowContext(ctx, `
		INSERT INTO venues (name, city, state)
		VALUES ($1, $2, $3)
		RETURNING id
	`, name, city, state).Scan(&v.ID)
	if isUniqueViolation(err, "venues_name_key") {
		// Lost the race to another writer; the row exists now.
		err = s.db.QueryRowContext(ctx, `
			SELECT id, name, city, state
			FROM venues
			WHERE name = $1
		`, name).Scan(&v.ID, &v.Name, &v.City, &v.State)
		if err != nil {
			return nil, false, fmt.Errorf("reselect venue: %w", err)
		}
		return &v, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("insert venue: %w", err)
	}

	v.Name = name
	v.City = city
	v.State = state
	return &v, true, nil
}
