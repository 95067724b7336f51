package forms

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"strings"
	"testing"

	"livemusicnotes/internal/models"
)

func tinyPNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func ratingOf(r int) *int { return &r }

func TestValidateNote(t *testing.T) {
	tests := []struct {
		name      string
		input     models.NoteInput
		wantField string
	}{
		{
			name:  "valid note",
			input: models.NoteInput{Title: "Great show", Text: "Front row."},
		},
		{
			name:  "valid rating",
			input: models.NoteInput{Title: "Great show", Text: "Front row.", Rating: ratingOf(5)},
		},
		{
			name:      "missing title",
			input:     models.NoteInput{Text: "Front row."},
			wantField: "title",
		},
		{
			name:      "whitespace title",
			input:     models.NoteInput{Title: "   ", Text: "Front row."},
			wantField: "title",
		},
		{
			name:      "title too long",
			input:     models.NoteInput{Title: strings.Repeat("x", MaxTitleLen+1), Text: "Front row."},
			wantField: "title",
		},
		{
			name:  "multibyte title at the limit",
			input: models.NoteInput{Title: strings.Repeat("é", MaxTitleLen), Text: "Front row."},
		},
		{
			name:      "multibyte title over the limit",
			input:     models.NoteInput{Title: strings.Repeat("é", MaxTitleLen+1), Text: "Front row."},
			wantField: "title",
		},
		{
			name:      "missing text",
			input:     models.NoteInput{Title: "Great show"},
			wantField: "text",
		},
		{
			name:      "text too long",
			input:     models.NoteInput{Title: "Great show", Text: strings.Repeat("x", MaxTextLen+1)},
			wantField: "text",
		},
		{
			name:      "rating too low",
			input:     models.NoteInput{Title: "Great show", Text: "Front row.", Rating: ratingOf(0)},
			wantField: "rating",
		},
		{
			name:      "rating too high",
			input:     models.NoteInput{Title: "Great show", Text: "Front row.", Rating: ratingOf(6)},
			wantField: "rating",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateNote(tc.input)
			if tc.wantField == "" {
				if err != nil {
					t.Fatalf("expected nil error, got %v", err)
				}
				return
			}
			var fe FieldErrors
			if !errors.As(err, &fe) {
				t.Fatalf("expected FieldErrors, got %v", err)
			}
			if _, ok := fe[tc.wantField]; !ok {
				t.Fatalf("expected error on %q, got %v", tc.wantField, fe)
			}
		})
	}
}

func TestValidateNoteWithPhoto(t *testing.T) {
	input := models.NoteInput{
		Title:            "With photo",
		Text:             "See attached.",
		Photo:            tinyPNG(t),
		PhotoContentType: "image/png",
	}
	if err := ValidateNote(input); err != nil {
		t.Fatalf("expected valid note, got %v", err)
	}
}

func TestValidatePhoto(t *testing.T) {
	validPNG := tinyPNG(t)

	tests := []struct {
		name        string
		data        []byte
		contentType string
		wantErr     bool
	}{
		{name: "valid png", data: validPNG, contentType: "image/png"},
		{name: "wrong content type", data: validPNG, contentType: "text/plain", wantErr: true},
		{name: "declared image but not one", data: []byte("not an image"), contentType: "image/png", wantErr: true},
		{name: "empty payload", data: nil, contentType: "image/png", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidatePhoto(tc.data, tc.contentType)
			if tc.wantErr && !errors.Is(err, ErrInvalidImage) {
				t.Fatalf("expected ErrInvalidImage, got %v", err)
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("expected nil error, got %v", err)
			}
		})
	}
}

func TestValidateRegistration(t *testing.T) {
	valid := models.Registration{
		Username:        "alice",
		FirstName:       "Alice",
		LastName:        "Anderson",
		Email:           "alice@example.com",
		Password:        "sekrit-pass",
		PasswordConfirm: "sekrit-pass",
	}

	if err := ValidateRegistration(valid); err != nil {
		t.Fatalf("expected valid registration, got %v", err)
	}

	tests := []struct {
		name      string
		mutate    func(*models.Registration)
		wantField string
	}{
		{
			name:      "missing username",
			mutate:    func(r *models.Registration) { r.Username = "" },
			wantField: "username",
		},
		{
			name:      "missing first name",
			mutate:    func(r *models.Registration) { r.FirstName = " " },
			wantField: "first_name",
		},
		{
			name:      "missing last name",
			mutate:    func(r *models.Registration) { r.LastName = "" },
			wantField: "last_name",
		},
		{
			name:      "missing email",
			mutate:    func(r *models.Registration) { r.Email = "" },
			wantField: "email",
		},
		{
			name:      "missing password",
			mutate:    func(r *models.Registration) { r.Password = ""; r.PasswordConfirm = "" },
			wantField: "password",
		},
		{
			name:      "short password",
			mutate:    func(r *models.Registration) { r.Password = "short"; r.PasswordConfirm = "short" },
			wantField: "password",
		},
		{
			name:      "password mismatch",
			mutate:    func(r *models.Registration) { r.PasswordConfirm = "different-pass" },
			wantField: "password_confirm",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			reg := valid
			tc.mutate(&reg)

			var fe FieldErrors
			if err := ValidateRegistration(reg); !errors.As(err, &fe) {
				t.Fatalf("expected FieldErrors, got %v", err)
			} else if _, ok := fe[tc.wantField]; !ok {
				t.Fatalf("expected error on %q, got %v", tc.wantField, fe)
			}
		})
	}
}

func TestValidateSearch(t *testing.T) {
	if err := ValidateSearch(""); err != nil {
		t.Fatalf("empty search should be valid, got %v", err)
	}
	if err := ValidateSearch("the cure"); err != nil {
		t.Fatalf("short search should be valid, got %v", err)
	}
	if err := ValidateSearch(strings.Repeat("x", MaxTitleLen+1)); err == nil {
		t.Fatalf("expected error for oversized search term")
	}
	// Characters, not bytes: a 200-rune multibyte term is still fine.
	if err := ValidateSearch(strings.Repeat("ø", MaxTitleLen)); err != nil {
		t.Fatalf("multibyte search at the limit should be valid, got %v", err)
	}
}

func TestFieldErrorsMessage(t *testing.T) {
	fe := FieldErrors{"title": "this field is required", "text": "this field is required"}
	got := fe.Error()
	want := "text: this field is required; title: this field is required"
	if got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
}
