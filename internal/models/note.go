package models

import "time"

// DefaultRating is applied when a note is posted without a star rating.
const DefaultRating = 3

// Note is one user's opinion of one show. A user may hold at most one
// note per show.
type Note struct {
	ID         int64     `json:"id"`
	ShowID     int64     `json:"show_id"`
	UserID     int64     `json:"user_id"`
	Title      string    `json:"title"`
	Text       string    `json:"text"`
	Rating     int       `json:"rating"`
	PostedDate time.Time `json:"posted_date"`
	PhotoKey   string    `json:"-"`
	PhotoURL   string    `json:"photo_url,omitempty"`
}

// NoteWithDetails adds the joined show and poster context used on list
// and detail pages.
type NoteWithDetails struct {
	Note
	Username   string    `json:"username"`
	ShowDate   time.Time `json:"show_date"`
	ArtistName string    `json:"artist_name"`
	VenueName  string    `json:"venue_name"`
}

// NoteInput is the submitted form payload for creating a note.
type NoteInput struct {
	Title  string
	Text   string
	Rating *int // nil means DefaultRating

	// Photo is optional. ContentType is the declared MIME type; the
	// bytes still have to decode as a real image.
	Photo            []byte
	PhotoContentType string
	PhotoFilename    string
}
