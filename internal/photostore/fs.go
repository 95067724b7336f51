package photostore

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// FSStore stores photos as files under a base directory and serves
// them back at /media/.
type FSStore struct {
	dir string
}

// NewFSStore creates the base directory if needed.
func NewFSStore(dir string) (*FSStore, error) {
	if dir == "" {
		dir = "media"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create media dir: %w", err)
	}
	return &FSStore{dir: dir}, nil
}

func (s *FSStore) path(key string) (string, error) {
	// Keys are server-generated, but reject traversal anyway.
	if strings.Contains(key, "..") || path.IsAbs(key) {
		return "", fmt.Errorf("invalid photo key %q", key)
	}
	return filepath.Join(s.dir, filepath.FromSlash(path.Clean(key))), nil
}

// Save writes the photo bytes to disk.
func (s *FSStore) Save(ctx context.Context, key, contentType string, data []byte) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("create photo dir: %w", err)
	}
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return fmt.Errorf("write photo: %w", err)
	}
	return nil
}

// Open returns a reader over the stored file.
func (s *FSStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	p, err := s.path(key)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(p)
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("open photo: %w", err)
	}
	return f, nil
}

// Remove deletes the stored file. A missing file is not an error.
func (s *FSStore) Remove(ctx context.Context, key string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove photo: %w", err)
	}
	return nil
}

// URL returns the media path the HTTP server mounts for this store.
func (s *FSStore) URL(key string) string {
	return "/media/" + key
}

// Handler serves the media directory; mounted at /media/ by the server.
func (s *FSStore) Handler() http.Handler {
	return http.StripPrefix("/media/", http.FileServer(http.Dir(s.dir)))
}
