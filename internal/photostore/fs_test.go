package photostore

import (
	"context"
	"errors"
	"io"
	"testing"
)

func TestFSStoreRoundTrip(t *testing.T) {
	s, err := NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFSStore: %v", err)
	}

	ctx := context.Background()
	data := []byte("photo-bytes")

	if err := s.Save(ctx, "user_images/abc.png", "image/png", data); err != nil {
		t.Fatalf("Save: %v", err)
	}

	rc, err := s.Open(ctx, "user_images/abc.png")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rc.Close()

	got, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read photo: %v", err)
	}
	if string(got) != string(data) {
		t.Fatalf("round trip mismatch: got %q", got)
	}
}

func TestFSStoreOpenMissing(t *testing.T) {
	s, err := NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFSStore: %v", err)
	}

	_, err = s.Open(context.Background(), "user_images/missing.png")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFSStoreRemove(t *testing.T) {
	s, err := NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFSStore: %v", err)
	}

	ctx := context.Background()
	if err := s.Save(ctx, "user_images/abc.png", "image/png", []byte("x")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Remove(ctx, "user_images/abc.png"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := s.Open(ctx, "user_images/abc.png"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after remove, got %v", err)
	}

	// Removing an already-missing key is fine.
	if err := s.Remove(ctx, "user_images/abc.png"); err != nil {
		t.Fatalf("Remove missing: %v", err)
	}
}

func TestFSStoreRejectsTraversal(t *testing.T) {
	s, err := NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFSStore: %v", err)
	}

	if err := s.Save(context.Background(), "../outside.png", "image/png", []byte("x")); err == nil {
		t.Fatalf("expected error for traversal key")
	}
}

func TestFSStoreURL(t *testing.T) {
	s, err := NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFSStore: %v", err)
	}
	if got := s.URL("user_images/abc.png"); got != "/media/user_images/abc.png" {
		t.Fatalf("URL = %q", got)
	}
}
