package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"livemusicnotes/internal/models"
)

// ListArtists returns all artists ordered by name. When searchName is
// non-empty only artists whose name contains it, case-insensitively,
// are included.
func (s *Store) ListArtists(ctx context.Context, searchName string) ([]*models.Artist, error) {
	query := `
		SELECT id, name
		FROM artists
		ORDER BY name ASC
	`
	args := []any{}
	if searchName != "" {
		query = `
		SELECT id, name
		FROM artists
		WHERE name ILIKE $1
		ORDER BY name ASC
	`
		args = append(args, "%"+searchName+"%")
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select artists: %w", err)
	}
	defer rows.Close()

	var artists []*models.Artist
	for rows.Next() {
		var a models.Artist
		if err := rows.Scan(&a.ID, &a.Name); err != nil {
			return nil, fmt.Errorf("scan artist: %w", err)
		}
		artists = append(artists, &a)
	}

	return artists, rows.Err()
}

// GetArtist retrieves a single artist by ID.
func (s *Store) GetArtist(ctx context.Context, id int64) (*models.Artist, error) {
	var a models.Artist
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name
		FROM artists
		WHERE id = $1
	`, id).Scan(&a.ID, &a.Name)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrArtistNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select artist: %w", err)
	}

	return &a, nil
}

// GetOrCreateArtist returns the artist with the given name, inserting a
// new row when none exists. Used by the ingestion path so repeated runs
// do not duplicate artists.
func (s *Store) GetOrCreateArtist(ctx context.Context, name string) (*models.Artist, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, false, fmt.Errorf("artist name is required")
	}

	var a models.Artist
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name
		FROM artists
		WHERE name = $1
		ORDER BY id ASC
		LIMIT 1
	`, name).Scan(&a.ID, &a.Name)
	if err == nil {
		return &a, false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, false, fmt.Errorf("select artist by name: %w", err)
	}

	err = s.db.QueryRowContext(ctx, `
		INSERT INTO artists (name)
		VALUES ($1)
		RETURNING id
	`, name).Scan(&a.ID)
	if err != nil {
		return nil, false, fmt.Errorf("insert artist: %w", err)
	}

	a.Name = name
	return &a, true, nil
}
