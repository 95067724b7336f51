package notes

import (
	"context"
	"errors"
	"io"
	"testing"

	"livemusicnotes/internal/models"
	"livemusicnotes/internal/store"
)

type stubStore struct {
	createErr   error
	createCalls int
}

func (s *stubStore) LatestNotes(_ context.Context, _ int) ([]*models.NoteWithDetails, error) {
	return nil, nil
}

func (s *stubStore) NotesForShow(_ context.Context, _ int64) ([]*models.NoteWithDetails, error) {
	return nil, nil
}

func (s *stubStore) GetNote(_ context.Context, _ int64) (*models.NoteWithDetails, error) {
	return nil, errors.New("not implemented")
}

func (s *stubStore) CreateNote(_ context.Context, _, _ int64, _ models.NoteInput, _ string) (*models.Note, error) {
	s.createCalls++
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &models.Note{ID: 1}, nil
}

func (s *stubStore) UpdateNote(_ context.Context, _, _ int64, _, _ string) (*models.Note, error) {
	return nil, errors.New("not implemented")
}

func (s *stubStore) DeleteNote(_ context.Context, _, _ int64) (string, error) {
	return "", errors.New("not implemented")
}

type stubPhotos struct {
	saved   []string
	removed []string
}

func (p *stubPhotos) Save(_ context.Context, key, _ string, _ []byte) error {
	p.saved = append(p.saved, key)
	return nil
}

func (p *stubPhotos) Open(_ context.Context, _ string) (io.ReadCloser, error) {
	return nil, errors.New("not implemented")
}

func (p *stubPhotos) Remove(_ context.Context, key string) error {
	p.removed = append(p.removed, key)
	return nil
}

func (p *stubPhotos) URL(key string) string { return "/media/" + key }

func TestCreateConsultsStoreBeforeFieldChecks(t *testing.T) {
	st := &stubStore{createErr: store.ErrShowNotFound}
	svc := New(st, &stubPhotos{})

	// Blank fields would fail validation, but the store decides first
	// and its missing-show answer comes back unchanged.
	_, err := svc.Create(context.Background(), 42, 99, models.NoteInput{})
	if !errors.Is(err, store.ErrShowNotFound) {
		t.Fatalf("expected ErrShowNotFound, got %v", err)
	}
	if st.createCalls != 1 {
		t.Fatalf("expected the store to be consulted once, got %d", st.createCalls)
	}
}

func TestCreateRemovesPhotoWhenStoreRejects(t *testing.T) {
	st := &stubStore{createErr: store.ErrDuplicateNote}
	photos := &stubPhotos{}
	svc := New(st, photos)

	input := models.NoteInput{
		Title:            "Great show",
		Text:             "Front row.",
		Photo:            []byte("pretend image bytes"),
		PhotoContentType: "image/png",
		PhotoFilename:    "stage.png",
	}
	_, err := svc.Create(context.Background(), 42, 3, input)
	if !errors.Is(err, store.ErrDuplicateNote) {
		t.Fatalf("expected ErrDuplicateNote, got %v", err)
	}
	if len(photos.saved) != 1 {
		t.Fatalf("expected 1 saved photo, got %d", len(photos.saved))
	}
	if len(photos.removed) != 1 || photos.removed[0] != photos.saved[0] {
		t.Fatalf("expected the saved photo to be removed, saved %v removed %v", photos.saved, photos.removed)
	}
}
