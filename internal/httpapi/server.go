package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"livemusicnotes/internal/auth"
	"livemusicnotes/internal/forms"
	"livemusicnotes/internal/models"
	"livemusicnotes/internal/store"
)

// ArtistService captures the artist browsing operations needed by the
// HTTP handlers.
type ArtistService interface {
	List(ctx context.Context, searchName string) ([]*models.Artist, error)
	Get(ctx context.Context, id int64) (*models.Artist, error)
	Shows(ctx context.Context, artistID int64) ([]*models.ShowWithDetails, error)
}

// VenueService captures venue browsing and creation.
type VenueService interface {
	List(ctx context.Context, searchName string) ([]*models.Venue, error)
	Get(ctx context.Context, id int64) (*models.Venue, error)
	Create(ctx context.Context, venue *models.Venue) (*models.Venue, error)
	Shows(ctx context.Context, venueID int64) ([]*models.ShowWithDetails, error)
}

// ShowService captures show browsing.
type ShowService interface {
	List(ctx context.Context, filter models.ShowFilter) ([]*models.ShowWithDetails, error)
	Get(ctx context.Context, id int64) (*models.ShowWithDetails, error)
}

// NoteService coordinates the note lifecycle.
type NoteService interface {
	Latest(ctx context.Context, limit int) ([]*models.NoteWithDetails, error)
	ForShow(ctx context.Context, showID int64) ([]*models.NoteWithDetails, error)
	Get(ctx context.Context, id int64) (*models.NoteWithDetails, error)
	Create(ctx context.Context, userID, showID int64, input models.NoteInput) (*models.Note, error)
	Update(ctx context.Context, userID, noteID int64, title, text string) (*models.Note, error)
	Delete(ctx context.Context, userID, noteID int64) error
}

// UserService captures registration, login and profiles.
type UserService interface {
	Register(ctx context.Context, reg models.Registration) (*models.User, string, error)
	Login(ctx context.Context, username, password string) (*models.User, string, error)
	Profile(ctx context.Context, userID int64) (*models.User, []*models.NoteWithDetails, error)
}

// TokenVerifier resolves a bearer token to a user id.
type TokenVerifier interface {
	Verify(token string) (int64, error)
}

// Server wires HTTP handlers to the underlying services.
type Server struct {
	artists ArtistService
	venues  VenueService
	shows   ShowService
	notes   NoteService
	users   UserService
	tokens  TokenVerifier
}

// New configures a Server with the given services.
func New(
	artists ArtistService,
	venues VenueService,
	shows ShowService,
	notes NoteService,
	users UserService,
	tokens TokenVerifier,
) *Server {
	return &Server{
		artists: artists,
		venues:  venues,
		shows:   shows,
		notes:   notes,
		users:   users,
		tokens:  tokens,
	}
}

// Routes exposes the JSON API.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	mux.HandleFunc("POST /api/v1/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/v1/auth/login", s.handleLogin)
	mux.HandleFunc("GET /api/v1/users/{id}", s.handleUserProfile)

	mux.HandleFunc("GET /api/v1/artists", s.handleListArtists)
	mux.HandleFunc("GET /api/v1/artists/{id}", s.handleGetArtist)
	mux.HandleFunc("GET /api/v1/artists/{id}/shows", s.handleArtistShows)

	mux.HandleFunc("GET /api/v1/venues", s.handleListVenues)
	mux.HandleFunc("POST /api/v1/venues", s.handleCreateVenue)
	mux.HandleFunc("GET /api/v1/venues/{id}", s.handleGetVenue)
	mux.HandleFunc("GET /api/v1/venues/{id}/shows", s.handleVenueShows)

	mux.HandleFunc("GET /api/v1/shows", s.handleListShows)
	mux.HandleFunc("GET /api/v1/shows/{id}", s.handleGetShow)
	mux.HandleFunc("GET /api/v1/shows/{id}/notes", s.handleNotesForShow)
	mux.HandleFunc("POST /api/v1/shows/{id}/notes", s.handleCreateNote)

	mux.HandleFunc("GET /api/v1/notes/latest", s.handleLatestNotes)
	mux.HandleFunc("GET /api/v1/notes/{id}", s.handleGetNote)
	mux.HandleFunc("PUT /api/v1/notes/{id}", s.handleUpdateNote)
	mux.HandleFunc("DELETE /api/v1/notes/{id}", s.handleDeleteNote)

	return mux
}

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

var (
	errInvalidForm   = errors.New("malformed form data")
	errPhotoTooLarge = errors.New("photo exceeds the maximum upload size")
)

// requireUser authenticates the request from its bearer token.
func (s *Server) requireUser(r *http.Request) (int64, error) {
	token := parseBearerToken(r.Header.Get("Authorization"))
	if token == "" {
		return 0, auth.ErrInvalidToken
	}
	return s.tokens.Verify(token)
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

func parseBearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// writeError maps domain errors onto HTTP responses. Validation errors
// carry field-level annotations; lifecycle errors keep their
// user-visible message.
func writeError(w http.ResponseWriter, err error) {
	var fe forms.FieldErrors
	if errors.As(err, &fe) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "validation failed", Fields: fe})
		return
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, auth.ErrInvalidToken):
		status = http.StatusUnauthorized
	case errors.Is(err, store.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, store.ErrNotOwner):
		status = http.StatusForbidden
	case errors.Is(err, store.ErrArtistNotFound),
		errors.Is(err, store.ErrVenueNotFound),
		errors.Is(err, store.ErrShowNotFound),
		errors.Is(err, store.ErrNoteNotFound),
		errors.Is(err, store.ErrUserNotFound):
		status = http.StatusNotFound
	case errors.Is(err, store.ErrDuplicateNote),
		errors.Is(err, store.ErrDuplicateVenue),
		errors.Is(err, store.ErrDuplicateShow),
		errors.Is(err, store.ErrUsernameTaken),
		errors.Is(err, store.ErrEmailTaken):
		status = http.StatusConflict
	case errors.Is(err, store.ErrFutureShow):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, forms.ErrInvalidImage):
		status = http.StatusBadRequest
	}

	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}
