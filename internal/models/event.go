package models

import "time"

// Event represents a single show on a band's tour calendar.
type Event struct {
	ID        string     `json:"id"`
	OrgID     string     `json:"orgId"`
	Title     string     `json:"title"`
	Date      string     `json:"date"`                // YYYY-MM-DD, no timezone
	StartTime string     `json:"startTime,omitempty"` // HH:MM
	EndTime   string     `json:"endTime,omitempty"`   // HH:MM
	Order     *int       `json:"order,omitempty"`     // Tie-break for equal start times
	VenueID   *string    `json:"venueId"`
	BandID    *string    `json:"bandId"`
	Status    string     `json:"status"`
	Logistics *Logistics `json:"logistics,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// Logistics is the outbound leg annotation stored on an event.
// It is replaced wholesale on every recompute.
type Logistics struct {
	ToNextKm        *float64  `json:"toNextKm"`
	ToNextMinutes   *int      `json:"toNextMinutes"`
	ToNextVenueID   *string   `json:"toNextVenueId"`
	ToNextUpdatedAt time.Time `json:"toNextUpdatedAt"`
	Error           *string   `json:"error,omitempty"`
}

// DayKey identifies one tenant's calendar day.
type DayKey struct {
	OrgID string
	Date  string
}
