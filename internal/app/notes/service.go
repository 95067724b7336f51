package notes

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"livemusicnotes/internal/models"
	"livemusicnotes/internal/photostore"
)

// Store describes the persistence operations required by the note
// service.
type Store interface {
	LatestNotes(ctx context.Context, limit int) ([]*models.NoteWithDetails, error)
	NotesForShow(ctx context.Context, showID int64) ([]*models.NoteWithDetails, error)
	GetNote(ctx context.Context, id int64) (*models.NoteWithDetails, error)
	CreateNote(ctx context.Context, userID, showID int64, input models.NoteInput, photoKey string) (*models.Note, error)
	UpdateNote(ctx context.Context, userID, noteID int64, title, text string) (*models.Note, error)
	DeleteNote(ctx context.Context, userID, noteID int64) (photoKey string, err error)
}

// Service coordinates the note lifecycle: validation, photo storage and
// the one-note-per-show guard enforced by the store.
type Service interface {
	Latest(ctx context.Context, limit int) ([]*models.NoteWithDetails, error)
	ForShow(ctx context.Context, showID int64) ([]*models.NoteWithDetails, error)
	Get(ctx context.Context, id int64) (*models.NoteWithDetails, error)
	Create(ctx context.Context, userID, showID int64, input models.NoteInput) (*models.Note, error)
	Update(ctx context.Context, userID, noteID int64, title, text string) (*models.Note, error)
	Delete(ctx context.Context, userID, noteID int64) error
}

type service struct {
	store  Store
	photos photostore.Store
}

// New wires a Service backed by the provided Store and photo storage.
func New(store Store, photos photostore.Store) Service {
	return &service{store: store, photos: photos}
}

func (s *service) Latest(ctx context.Context, limit int) ([]*models.NoteWithDetails, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	notes, err := s.store.LatestNotes(ctx, limit)
	if err != nil {
		return nil, err
	}
	s.fillPhotoURLs(notes)
	return notes, nil
}

func (s *service) ForShow(ctx context.Context, showID int64) ([]*models.NoteWithDetails, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	notes, err := s.store.NotesForShow(ctx, showID)
	if err != nil {
		return nil, err
	}
	s.fillPhotoURLs(notes)
	return notes, nil
}

func (s *service) Get(ctx context.Context, id int64) (*models.NoteWithDetails, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	note, err := s.store.GetNote(ctx, id)
	if err != nil {
		return nil, err
	}
	if note.PhotoKey != "" {
		note.PhotoURL = s.photos.URL(note.PhotoKey)
	}
	return note, nil
}

// Create stores the photo (if any) and persists the note. The store
// runs the lifecycle checks ahead of field validation, so a missing
// show wins over an invalid title. The photo is written first so the
// row never references a missing blob; it is removed again when the
// store rejects the insert.
func (s *service) Create(ctx context.Context, userID, showID int64, input models.NoteInput) (*models.Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	photoKey := ""
	if len(input.Photo) > 0 {
		photoKey = newPhotoKey(input.PhotoFilename)
		if err := s.photos.Save(ctx, photoKey, input.PhotoContentType, input.Photo); err != nil {
			return nil, fmt.Errorf("store photo: %w", err)
		}
	}

	note, err := s.store.CreateNote(ctx, userID, showID, input, photoKey)
	if err != nil {
		if photoKey != "" {
			if rmErr := s.photos.Remove(ctx, photoKey); rmErr != nil {
				log.Warn().Err(rmErr).Str("photo_key", photoKey).Msg("orphaned photo not removed")
			}
		}
		return nil, err
	}

	if note.PhotoKey != "" {
		note.PhotoURL = s.photos.URL(note.PhotoKey)
	}
	return note, nil
}

// Update edits title and text only; the posted photo and rating are
// immutable.
func (s *service) Update(ctx context.Context, userID, noteID int64, title, text string) (*models.Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	note, err := s.store.UpdateNote(ctx, userID, noteID, title, text)
	if err != nil {
		return nil, err
	}
	if note.PhotoKey != "" {
		note.PhotoURL = s.photos.URL(note.PhotoKey)
	}
	return note, nil
}

// Delete removes the note and its stored photo.
func (s *service) Delete(ctx context.Context, userID, noteID int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	photoKey, err := s.store.DeleteNote(ctx, userID, noteID)
	if err != nil {
		return err
	}
	if photoKey != "" {
		if err := s.photos.Remove(ctx, photoKey); err != nil {
			log.Warn().Err(err).Str("photo_key", photoKey).Msg("orphaned photo not removed")
		}
	}
	return nil
}

func (s *service) fillPhotoURLs(notes []*models.NoteWithDetails) {
	for _, n := range notes {
		if n.PhotoKey != "" {
			n.PhotoURL = s.photos.URL(n.PhotoKey)
		}
	}
}

// newPhotoKey builds a collision-free object key, keeping the original
// extension so stored files stay recognizable.
func newPhotoKey(filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return "user_images/" + uuid.New().String() + ext
}
