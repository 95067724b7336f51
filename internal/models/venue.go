package models

// Venue represents a place that shows take place at. Names are unique
// across the whole table.
type Venue struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	City  string `json:"city"`
	State string `json:"state"` // two-letter state code
}
