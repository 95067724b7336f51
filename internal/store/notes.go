package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"livemusicnotes/internal/forms"
	"livemusicnotes/internal/models"
)

// LatestNotesLimit caps how many notes the latest-notes listing returns.
const LatestNotesLimit = 20

const noteSelect = `
	SELECT
		n.id, n.show_id, n.user_id, n.title, n.text, n.rating,
		n.posted_date, COALESCE(n.photo_key, ''),
		u.username,
		s.show_date,
		a.name AS artist_name,
		v.name AS venue_name
	FROM notes n
	INNER JOIN users u ON n.user_id = u.id
	INNER JOIN shows s ON n.show_id = s.id
	INNER JOIN artists a ON s.artist_id = a.id
	INNER JOIN venues v ON s.venue_id = v.id
`

func scanNotes(rows *sql.Rows) ([]*models.NoteWithDetails, error) {
	var notes []*models.NoteWithDetails
	for rows.Next() {
		var n models.NoteWithDetails
		err := rows.Scan(
			&n.ID, &n.ShowID, &n.UserID, &n.Title, &n.Text, &n.Rating,
			&n.PostedDate, &n.PhotoKey,
			&n.Username,
			&n.ShowDate,
			&n.ArtistName,
			&n.VenueName,
		)
		if err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		notes = append(notes, &n)
	}
	return notes, rows.Err()
}

// LatestNotes returns up to limit notes across all shows, most recent
// first. Limits outside (0, LatestNotesLimit] fall back to the cap.
func (s *Store) LatestNotes(ctx context.Context, limit int) ([]*models.NoteWithDetails, error) {
	if limit <= 0 || limit > LatestNotesLimit {
		limit = LatestNotesLimit
	}

	query := noteSelect + `
	ORDER BY n.posted_date DESC
	LIMIT $1`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("select latest notes: %w", err)
	}
	defer rows.Close()

	return scanNotes(rows)
}

// NotesForShow returns the notes for one show, most recent first. The
// show must exist.
func (s *Store) NotesForShow(ctx context.Context, showID int64) ([]*models.NoteWithDetails, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM shows WHERE id = $1)
	`, showID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("check show exists: %w", err)
	}
	if !exists {
		return nil, ErrShowNotFound
	}

	query := noteSelect + `
	WHERE n.show_id = $1
	ORDER BY n.posted_date DESC`

	rows, err := s.db.QueryContext(ctx, query, showID)
	if err != nil {
		return nil, fmt.Errorf("select notes for show: %w", err)
	}
	defer rows.Close()

	return scanNotes(rows)
}

// NotesForUser returns all notes posted by one user, most recent first.
func (s *Store) NotesForUser(ctx context.Context, userID int64) ([]*models.NoteWithDetails, error) {
	query := noteSelect + `
	WHERE n.user_id = $1
	ORDER BY n.posted_date DESC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("select notes for user: %w", err)
	}
	defer rows.Close()

	return scanNotes(rows)
}

// GetNote retrieves a single note with show and poster details.
func (s *Store) GetNote(ctx context.Context, id int64) (*models.NoteWithDetails, error) {
	query := noteSelect + `
	WHERE n.id = $1`

	var n models.NoteWithDetails
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&n.ID, &n.ShowID, &n.UserID, &n.Title, &n.Text, &n.Rating,
		&n.PostedDate, &n.PhotoKey,
		&n.Username,
		&n.ShowDate,
		&n.ArtistName,
		&n.VenueName,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoteNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select note: %w", err)
	}

	return &n, nil
}

// CreateNote persists a new note for a show, enforcing the lifecycle
// rules in order: the show must exist, the user must not already hold a
// note for it, the show must not be in the future, and only then are
// the submitted fields validated. A missing show therefore surfaces as
// ErrShowNotFound even when the fields are also invalid. photoKey may
// be empty.
//
// The UNIQUE (user_id, show_id) constraint backs the duplicate check, so
// two concurrent creates for the same pair cannot both commit.
func (s *Store) CreateNote(ctx context.Context, userID, showID int64, input models.NoteInput, photoKey string) (*models.Note, error) {
	var showDate time.Time
	err := s.db.QueryRowContext(ctx, `
		SELECT show_date
		FROM shows
		WHERE id = $1
	`, showID).Scan(&showDate)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrShowNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select show date: %w", err)
	}

	var exists bool
	err = s.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM notes WHERE user_id = $1 AND show_id = $2)
	`, userID, showID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("check existing note: %w", err)
	}
	if exists {
		return nil, ErrDuplicateNote
	}

	if showDate.After(time.Now()) {
		return nil, ErrFutureShow
	}

	if err := forms.ValidateNote(input); err != nil {
		return nil, err
	}

	rating := models.DefaultRating
	if input.Rating != nil {
		rating = *input.Rating
	}

	note := models.Note{
		ShowID:   showID,
		UserID:   userID,
		Title:    strings.TrimSpace(input.Title),
		Text:     strings.TrimSpace(input.Text),
		Rating:   rating,
		PhotoKey: photoKey,
	}

	err = s.db.QueryRowContext(ctx, `
		INSERT INTO notes (show_id, user_id, title, text, rating, photo_key)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''))
		RETURNING id, posted_date
	`, note.ShowID, note.UserID, note.Title, note.Text, note.Rating, photoKey).
		Scan(&note.ID, &note.PostedDate)

	if isUniqueViolation(err, "notes_user_id_show_id_key") {
		return nil, ErrDuplicateNote
	}
	if err != nil {
		return nil, fmt.Errorf("insert note: %w", err)
	}

	return &note, nil
}

// UpdateNote edits the title and text of an existing note. Only the
// owning user may edit; rating and photo are not editable after
// posting. The note must exist before the fields are validated. The
// future-show rule is not re-checked here: a note can only exist for a
// show that had already happened when it was created.
func (s *Store) UpdateNote(ctx context.Context, userID, noteID int64, title, text string) (*models.Note, error) {
	owner, err := s.noteOwner(ctx, noteID)
	if err != nil {
		return nil, err
	}
	if owner != userID {
		return nil, ErrNotOwner
	}

	if err := forms.ValidateNote(models.NoteInput{Title: title, Text: text}); err != nil {
		return nil, err
	}

	var n models.Note
	var photoKey sql.NullString
	err = s.db.QueryRowContext(ctx, `
		UPDATE notes
		SET title = $1, text = $2
		WHERE id = $3 AND user_id = $4
		RETURNING id, show_id, user_id, title, text, rating, posted_date, photo_key
	`, strings.TrimSpace(title), strings.TrimSpace(text), noteID, userID).Scan(
		&n.ID, &n.ShowID, &n.UserID, &n.Title, &n.Text, &n.Rating,
		&n.PostedDate, &photoKey,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoteNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update note: %w", err)
	}

	n.PhotoKey = photoKey.String
	return &n, nil
}

// DeleteNote removes a note. Only the owning user may delete. The
// removed note's photo key is returned so the caller can clean up the
// stored photo bytes.
func (s *Store) DeleteNote(ctx context.Context, userID, noteID int64) (string, error) {
	owner, err := s.noteOwner(ctx, noteID)
	if err != nil {
		return "", err
	}
	if owner != userID {
		return "", ErrNotOwner
	}

	var photoKey sql.NullString
	err = s.db.QueryRowContext(ctx, `
		DELETE FROM notes
		WHERE id = $1 AND user_id = $2
		RETURNING photo_key
	`, noteID, userID).Scan(&photoKey)

	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNoteNotFound
	}
	if err != nil {
		return "", fmt.Errorf("delete note: %w", err)
	}

	return photoKey.String, nil
}

func (s *Store) noteOwner(ctx context.Context, noteID int64) (int64, error) {
	var owner int64
	err := s.db.QueryRowContext(ctx, `
		SELECT user_id
		FROM notes
		WHERE id = $1
	`, noteID).Scan(&owner)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNoteNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("select note owner: %w", err)
	}
	return owner, nil
}
