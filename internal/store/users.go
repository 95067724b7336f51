package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"livemusicnotes/internal/models"
)

// Comparing against this keeps login timing uniform when the username
// does not exist.
var dummyPasswordHash = []byte("$2a$10$CwTycUXWue0Thq9StjUM0uJ8n4VWeNseyX2fA9DE.D7su7J6iYGTC")

// CreateUser registers a new account. Username and email uniqueness is
// case-insensitive and enforced by functional unique indexes, so a
// losing racer gets the same error as a pre-checked duplicate. The
// caller is responsible for field validation.
func (s *Store) CreateUser(ctx context.Context, reg models.Registration) (*models.User, error) {
	username := strings.TrimSpace(reg.Username)
	email := strings.TrimSpace(reg.Email)

	var taken bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM users WHERE LOWER(username) = LOWER($1))
	`, username).Scan(&taken)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if taken {
		return nil, ErrUsernameTaken
	}

	err = s.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM users WHERE LOWER(email) = LOWER($1))
	`, email).Scan(&taken)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if taken {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Username:  username,
		FirstName: strings.TrimSpace(reg.FirstName),
		LastName:  strings.TrimSpace(reg.LastName),
		Email:     email,
	}

	err = s.db.QueryRowContext(ctx, `
		INSERT INTO users (username, first_name, last_name, email, password_hash)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, user.Username, user.FirstName, user.LastName, user.Email, hash).Scan(&user.ID)

	if isUniqueViolation(err, "users_username_lower_idx") {
		return nil, ErrUsernameTaken
	}
	if isUniqueViolation(err, "users_email_lower_idx") {
		return nil, ErrEmailTaken
	}
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}

	return &user, nil
}

// Authenticate validates credentials and returns the matching user.
func (s *Store) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	var u models.User
	err := s.db.QueryRowContext(ctx, `
		SELECT id, username, first_name, last_name, email, password_hash
		FROM users
		WHERE LOWER(username) = LOWER($1)
	`, username).Scan(&u.ID, &u.Username, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		_ = bcrypt.CompareHashAndPassword(dummyPasswordHash, []byte(password))
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return &u, nil
}

// GetUser retrieves a single user by ID.
func (s *Store) GetUser(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	err := s.db.QueryRowContext(ctx, `
		SELECT id, username, first_name, last_name, email
		FROM users
		WHERE id = $1
	`, id).Scan(&u.ID, &u.Username, &u.FirstName, &u.LastName, &u.Email)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select user: %w", err)
	}

	return &u, nil
}
