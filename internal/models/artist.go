package models

// Artist represents a musician or a band.
type Artist struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
