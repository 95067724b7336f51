package store

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"golang.org/x/crypto/bcrypt"

	"livemusicnotes/internal/models"
)

func TestCreateUserSuccess(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT EXISTS (SELECT 1 FROM users WHERE LOWER(username) = LOWER($1))
	`)).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT EXISTS (SELECT 1 FROM users WHERE LOWER(email) = LOWER($1))
	`)).
		WithArgs("alice@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	mock.ExpectQuery(regexp.QuoteMeta(`
		INSERT INTO users (username, first_name, last_name, email, password_hash)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`)).
		WithArgs("alice", "Alice", "Anderson", "alice@example.com", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))

	user, err := s.CreateUser(context.Background(), models.Registration{
		Username:  "alice",
		FirstName: "Alice",
		LastName:  "Anderson",
		Email:     "alice@example.com",
		Password:  "sekrit-pass",
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if user.ID != 1 || user.Username != "alice" {
		t.Fatalf("unexpected user: %#v", user)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateUserUsernameTaken(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT EXISTS (SELECT 1 FROM users WHERE LOWER(username) = LOWER($1))
	`)).
		WithArgs("Alice").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	_, err = s.CreateUser(context.Background(), models.Registration{
		Username: "Alice",
		Email:    "other@example.com",
		Password: "sekrit-pass",
	})
	if !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestAuthenticateSuccess(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	hash, err := bcrypt.GenerateFromPassword([]byte("sekrit-pass"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT id, username, first_name, last_name, email, password_hash
		FROM users
		WHERE LOWER(username) = LOWER($1)
	`)).
		WithArgs("ALICE").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "first_name", "last_name", "email", "password_hash"}).
			AddRow(int64(1), "alice", "Alice", "Anderson", "alice@example.com", hash))

	user, err := s.Authenticate(context.Background(), "ALICE", "sekrit-pass")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if user.Username != "alice" {
		t.Fatalf("unexpected user: %#v", user)
	}
}

func TestAuthenticateWrongPassword(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	hash, err := bcrypt.GenerateFromPassword([]byte("sekrit-pass"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT id, username, first_name, last_name, email, password_hash
		FROM users
		WHERE LOWER(username) = LOWER($1)
	`)).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "first_name", "last_name", "email", "password_hash"}).
			AddRow(int64(1), "alice", "Alice", "Anderson", "alice@example.com", hash))

	_, err = s.Authenticate(context.Background(), "alice", "wrong")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthenticateUnknownUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT id, username, first_name, last_name, email, password_hash
		FROM users
		WHERE LOWER(username) = LOWER($1)
	`)).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "first_name", "last_name", "email", "password_hash"}))

	_, err = s.Authenticate(context.Background(), "ghost", "whatever")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
