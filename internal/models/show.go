package models

import "time"

// Show is one Artist playing at one Venue at a particular date and time.
type Show struct {
	ID       int64     `json:"id"`
	ShowDate time.Time `json:"show_date"`
	ArtistID int64     `json:"artist_id"`
	VenueID  int64     `json:"venue_id"`
}

// ShowWithDetails carries the joined artist and venue names plus a
// presentation flag for shows that have not happened yet.
type ShowWithDetails struct {
	Show
	ArtistName string `json:"artist_name"`
	VenueName  string `json:"venue_name"`
	VenueCity  string `json:"venue_city"`
	VenueState string `json:"venue_state"`
	IsFuture   bool   `json:"is_future"`
}

// ShowFilter narrows show listings by related artist or venue name,
// matched case-insensitively as substrings.
type ShowFilter struct {
	Artist string
	Venue  string
}
