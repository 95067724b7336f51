package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"livemusicnotes/internal/models"
)

const showSelect = `
	SELECT
		s.id, s.show_date, s.artist_id, s.venue_id,
		a.name AS artist_name,
		v.name AS venue_name, v.city AS venue_city, v.state AS venue_state,
		s.show_date >= NOW() AS is_future
	FROM shows s
	INNER JOIN artists a ON s.artist_id = a.id
	INNER JOIN venues v ON s.venue_id = v.id
`

func scanShows(rows *sql.Rows) ([]*models.ShowWithDetails, error) {
	var shows []*models.ShowWithDetails
	for rows.Next() {
		var sh models.ShowWithDetails
		err := rows.Scan(
			&sh.ID, &sh.ShowDate, &sh.ArtistID, &sh.VenueID,
			&sh.ArtistName,
			&sh.VenueName, &sh.VenueCity, &sh.VenueState,
			&sh.IsFuture,
		)
		if err != nil {
			return nil, fmt.Errorf("scan show: %w", err)
		}
		shows = append(shows, &sh)
	}
	return shows, rows.Err()
}

// ListShows returns shows ordered most recent first, optionally
// filtered by case-insensitive substring match on the related artist
// and/or venue name. An empty result is not an error.
func (s *Store) ListShows(ctx context.Context, filter models.ShowFilter) ([]*models.ShowWithDetails, error) {
	query := showSelect
	var (
		conds []string
		args  []any
	)
	if filter.Artist != "" {
		args = append(args, "%"+filter.Artist+"%")
		conds = append(conds, fmt.Sprintf("a.name ILIKE $%d", len(args)))
	}
	if filter.Venue != "" {
		args = append(args, "%"+filter.Venue+"%")
		conds = append(conds, fmt.Sprintf("v.name ILIKE $%d", len(args)))
	}
	for i, cond := range conds {
		if i == 0 {
			query += "	WHERE " + cond + "\n"
		} else {
			query += "	AND " + cond + "\n"
		}
	}
	query += "	ORDER BY s.show_date DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select shows: %w", err)
	}
	defer rows.Close()

	return scanShows(rows)
}

// ListShowsForArtist returns the shows by one artist, most recent first.
func (s *Store) ListShowsForArtist(ctx context.Context, artistID int64) ([]*models.ShowWithDetails, error) {
	query := showSelect + `
	WHERE s.artist_id = $1
	ORDER BY s.show_date DESC`

	rows, err := s.db.QueryContext(ctx, query, artistID)
	if err != nil {
		return nil, fmt.Errorf("select shows for artist: %w", err)
	}
	defer rows.Close()

	return scanShows(rows)
}

// ListShowsForVenue returns the shows at one venue, most recent first.
func (s *Store) ListShowsForVenue(ctx context.Context, venueID int64) ([]*models.ShowWithDetails, error) {
	query := showSelect + `
	WHERE s.venue_id = $1
	ORDER BY s.show_date DESC`

	rows, err := s.db.QueryContext(ctx, query, venueID)
	if err != nil {
		return nil, fmt.Errorf("select shows for venue: %w", err)
	}
	defer rows.Close()

	return scanShows(rows)
}

// GetShow retrieves a single show with artist and venue details.
func (s *Store) GetShow(ctx context.Context, id int64) (*models.ShowWithDetails, error) {
	query := showSelect + `
	WHERE s.id = $1`

	var sh models.ShowWithDetails
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&sh.ID, &sh.ShowDate, &sh.ArtistID, &sh.VenueID,
		&sh.ArtistName,
		&sh.VenueName, &sh.VenueCity, &sh.VenueState,
		&sh.IsFuture,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrShowNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select show: %w", err)
	}

	return &sh, nil
}

// CreateShow inserts a new show. The (show_date, artist, venue) triple
// is unique; inserting the same performance twice fails with
// ErrDuplicateShow.
func (s *Store) CreateShow(ctx context.Context, showDate time.Time, artistID, venueID int64) (*models.Show, error) {
	var sh models.Show
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO shows (show_date, artist_id, venue_id)
		VALUES ($1, $2, $3)
		RETURNING id
	`, showDate, artistID, venueID).Scan(&sh.ID)

	if isUniqueViolation(err, "shows_show_date_artist_id_venue_id_key") {
		return nil, ErrDuplicateShow
	}
	if err != nil {
		return nil, fmt.Errorf("insert show: %w", err)
	}

	sh.ShowDate = showDate
	sh.ArtistID = artistID
	sh.VenueID = venueID
	return &sh, nil
}

// GetOrCreateShow returns the show matching the unique triple,
// inserting a new row when none exists.
func (s *Store) GetOrCreateShow(ctx context.Context, showDate time.Time, artistID, venueID int64) (*models.Show, bool, error) {
	var sh models.Show
	err := s.db.QueryRowContext(ctx, `
		SELECT id, show_date, artist_id, venue_id
		FROM shows
		WHERE show_date = $1 AND artist_id = $2 AND venue_id = $3
	`, showDate, artistID, venueID).Scan(&sh.ID, &sh.ShowDate, &sh.ArtistID, &sh.VenueID)
	if err == nil {
		return &sh, false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, false, fmt.Errorf("select show by triple: %w", err)
	}

	created, err := s.CreateShow(ctx, showDate, artistID, venueID)
	if errors.Is(err, ErrDuplicateShow) {
		err = s.db.QueryRowContext(ctx, `
			SELECT id, show_date, artist_id, venue_id
			FROM shows
			WHERE show_date = $1 AND artist_id = $2 AND venue_id = $3
		`, showDate, artistID, venueID).Scan(&sh.ID, &sh.ShowDate, &sh.ArtistID, &sh.VenueID)
		if err != nil {
			return nil, false, fmt.Errorf("reselect show: %w", err)
		}
		return &sh, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	return created, true, nil
}
