package users

import (
	"context"

	"livemusicnotes/internal/auth"
	"livemusicnotes/internal/forms"
	"livemusicnotes/internal/models"
)

// Store describes the persistence operations required by the user
// service.
type Store interface {
	CreateUser(ctx context.Context, reg models.Registration) (*models.User, error)
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
	GetUser(ctx context.Context, id int64) (*models.User, error)
	NotesForUser(ctx context.Context, userID int64) ([]*models.NoteWithDetails, error)
}

// Service exposes registration, login and profile workflows.
type Service interface {
	Register(ctx context.Context, reg models.Registration) (*models.User, string, error)
	Login(ctx context.Context, username, password string) (*models.User, string, error)
	Profile(ctx context.Context, userID int64) (*models.User, []*models.NoteWithDetails, error)
}

type service struct {
	store  Store
	tokens *auth.TokenManager
}

// New wires a Service backed by the provided Store and token manager.
func New(store Store, tokens *auth.TokenManager) Service {
	return &service{store: store, tokens: tokens}
}

// Register validates the form, creates the account and logs the new
// user straight in by returning a token.
func (s *service) Register(ctx context.Context, reg models.Registration) (*models.User, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}

	if err := forms.ValidateRegistration(reg); err != nil {
		return nil, "", err
	}

	user, err := s.store.CreateUser(ctx, reg)
	if err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *service) Login(ctx context.Context, username, password string) (*models.User, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}

	user, err := s.store.Authenticate(ctx, username, password)
	if err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Profile returns a user together with their notes, most recent first.
func (s *service) Profile(ctx context.Context, userID int64) (*models.User, []*models.NoteWithDetails, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	notes, err := s.store.NotesForUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	return user, notes, nil
}
