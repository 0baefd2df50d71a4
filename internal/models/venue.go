package models

import "time"

// Venue represents a place a band plays at
type Venue struct {
	ID         string    `json:"id"`
	OrgID      string    `json:"orgId"`
	Name       string    `json:"name"`
	Address    string    `json:"address"`
	City       string    `json:"city,omitempty"`
	State      string    `json:"state,omitempty"`
	PostalCode string    `json:"postalCode,omitempty"`
	Lat        *float64  `json:"lat"`
	Lng        *float64  `json:"lng"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Geocoded reports whether both coordinates are present.
func (v *Venue) Geocoded() bool {
	return v.Lat != nil && v.Lng != nil
}

// Location returns the venue coordinates. Only meaningful when Geocoded is true.
func (v *Venue) Location() LatLng {
	if !v.Geocoded() {
		return LatLng{}
	}
	return LatLng{Lat: *v.Lat, Lng: *v.Lng}
}

// LatLng is a WGS84 coordinate pair.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// VenueLocation holds the fields written back after geocoding.
type VenueLocation struct {
	LatLng
	City       string
	State      string
	PostalCode string
}
