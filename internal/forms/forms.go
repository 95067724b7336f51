// Package forms validates submitted note and registration data before
// it reaches the store.
package forms

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"sort"
	"strings"
	"unicode/utf8"

	// Registered so image.DecodeConfig can verify the common upload formats.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"livemusicnotes/internal/models"
)

const (
	// MaxTitleLen bounds note titles and search terms.
	MaxTitleLen = 200
	// MaxTextLen bounds the note body.
	MaxTextLen = 1000
)

// ErrInvalidImage is returned when an uploaded photo either does not
// declare an image content type or does not decode as one.
var ErrInvalidImage = errors.New("invalid photo upload: this upload was not an image")

// FieldErrors maps form field names to a validation message. It is
// recovered at the HTTP boundary and rendered as field-level
// annotations instead of a generic failure.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	fields := make([]string, 0, len(fe))
	for f := range fe {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	var b strings.Builder
	for i, f := range fields {
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(&b, "%s: %s", f, fe[f])
	}
	return b.String()
}

// ValidateNote checks the note form fields. Title and text are
// required and length-limited; the rating, when given, must be within
// 1-5 stars; an attached photo must really be an image.
func ValidateNote(input models.NoteInput) error {
	fe := FieldErrors{}

	if strings.TrimSpace(input.Title) == "" {
		fe["title"] = "this field is required"
	} else if utf8.RuneCountInString(input.Title) > MaxTitleLen {
		fe["title"] = fmt.Sprintf("ensure this value has at most %d characters", MaxTitleLen)
	}

	if strings.TrimSpace(input.Text) == "" {
		fe["text"] = "this field is required"
	} else if utf8.RuneCountInString(input.Text) > MaxTextLen {
		fe["text"] = fmt.Sprintf("ensure this value has at most %d characters", MaxTextLen)
	}

	if input.Rating != nil && (*input.Rating < 1 || *input.Rating > 5) {
		fe["rating"] = "rating must be between 1 and 5 stars"
	}

	if len(input.Photo) > 0 {
		if err := ValidatePhoto(input.Photo, input.PhotoContentType); err != nil {
			fe["photo"] = err.Error()
		}
	}

	if len(fe) > 0 {
		return fe
	}
	return nil
}

// ValidatePhoto verifies both the declared content type and the actual
// bytes of an upload. Declaring image/* is not trusted on its own; the
// content has to decode as a real image.
func ValidatePhoto(data []byte, contentType string) error {
	if !strings.HasPrefix(contentType, "image/") {
		return ErrInvalidImage
	}
	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return ErrInvalidImage
	}
	return nil
}

// ValidateRegistration checks the signup form fields. Uniqueness of
// username and email is the store's job; this covers presence and the
// password confirmation.
func ValidateRegistration(reg models.Registration) error {
	fe := FieldErrors{}

	if strings.TrimSpace(reg.Username) == "" {
		fe["username"] = "please enter a username"
	}
	if strings.TrimSpace(reg.FirstName) == "" {
		fe["first_name"] = "please enter your first name"
	}
	if strings.TrimSpace(reg.LastName) == "" {
		fe["last_name"] = "please enter your last name"
	}
	if strings.TrimSpace(reg.Email) == "" {
		fe["email"] = "please enter an email address"
	}

	switch {
	case reg.Password == "":
		fe["password"] = "please enter a password"
	case len(reg.Password) < 8:
		fe["password"] = "password must be at least 8 characters"
	case reg.Password != reg.PasswordConfirm:
		fe["password_confirm"] = "the two password fields didn't match"
	}

	if len(fe) > 0 {
		return fe
	}
	return nil
}

// ValidateSearch bounds an optional search term. Empty is always valid.
func ValidateSearch(term string) error {
	if utf8.RuneCountInString(term) > MaxTitleLen {
		return FieldErrors{"search_name": fmt.Sprintf("ensure this value has at most %d characters", MaxTitleLen)}
	}
	return nil
}
