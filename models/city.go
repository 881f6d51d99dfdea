package models

import "time"

// CityCoordinates is one row of the city gazetteer used by the map view.
type CityCoordinates struct {
	Name      string    `db:"name" json:"name"`
	Latitude  float64   `db:"latitude" json:"latitude"`
	Longitude float64   `db:"longitude" json:"longitude"`
	Source    string    `db:"source" json:"source"` // "seed" for the built-in rows
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Marker is a pin on the map view.
type Marker struct {
	Name        string  `json:"name"`
	Designation string  `json:"designation"`
	City        string  `json:"city"`
	Latitude    float64 `json:"lat"`
	Longitude   float64 `json:"lng"`
	// Approximate is set when the city is not in the gazetteer.
	Approximate bool `json:"approximate"`
}
