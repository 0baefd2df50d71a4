// Package logistics computes the drive legs between consecutive shows of a
// day and derives delay-risk alerts from them.
package logistics

import (
	"context"
	"errors"
	"fmt"

	"tourlogistics/internal/clock"
	"tourlogistics/internal/logging"
	"tourlogistics/internal/maps"
	"tourlogistics/internal/models"
	"tourlogistics/internal/schedule"
	"tourlogistics/internal/store"
)

// Messages recorded in Logistics.Error for legs that could not be routed.
const (
	MsgVenueNotFound      = "venue not found"
	MsgVenueMissingCoords = "venue missing coordinates"
)

// Store defines the persistence operations the engine needs
type Store interface {
	ListEventsByDate(ctx context.Context, orgID, date string) ([]*models.Event, error)
	GetVenue(ctx context.Context, orgID, id string) (*models.Venue, error)
	UpdateEventLogistics(ctx context.Context, orgID, eventID string, logistics models.Logistics) error
	ListBandsByIDs(ctx context.Context, orgID string, ids []string) (map[string]*models.Band, error)
}

// Router computes a driving leg between two coordinates.
type Router interface {
	Route(ctx context.Context, origin, dest models.LatLng) (maps.Leg, error)
}

// Service exposes the itinerary operations
type Service interface {
	Recompute(ctx context.Context, orgID, date string) (RecomputeSummary, error)
	Day(ctx context.Context, orgID, date string) (DayView, error)
}

// RecomputeSummary reports the outcome of one recompute.
type RecomputeSummary struct {
	Date        string `json:"date"`
	Updated     int    `json:"updated"`
	EventsCount int    `json:"eventsCount"`
}

type service struct {
	store  Store
	router Router
	clock  clock.Clock
}

// New constructs a logistics Service
func New(store Store, router Router, clk clock.Clock) Service {
	if clk == nil {
		clk = clock.NewSystem()
	}
	return &service{
		store:  store,
		router: router,
		clock:  clk,
	}
}

type outcome int

const (
	outcomeTerminal outcome = iota
	outcomeMissingVenue
	outcomeUngeocoded
	outcomeComputed
)

func (o outcome) String() string {
	switch o {
	case outcomeTerminal:
		return "terminal"
	case outcomeMissingVenue:
		return "missing_venue"
	case outcomeUngeocoded:
		return "ungeocoded"
	case outcomeComputed:
		return "computed"
	default:
		return "unknown"
	}
}

// classify picks the leg outcome for cur given the event that follows it.
// next is nil for the last event of the day.
func classify(cur, next *models.Event, venues map[string]*models.Venue) outcome {
	if next == nil {
		return outcomeTerminal
	}
	a, b := venues[venueRef(cur)], venues[venueRef(next)]
	switch {
	case a == nil || b == nil:
		return outcomeMissingVenue
	case !a.Geocoded() || !b.Geocoded():
		return outcomeUngeocoded
	default:
		return outcomeComputed
	}
}

// Recompute rewrites the logistics record of every event on the day.
// A routing or store failure aborts the run; events already written keep
// their new record.
func (s *service) Recompute(ctx context.Context, orgID, date string) (RecomputeSummary, error) {
	summary := RecomputeSummary{Date: date}
	if err := ctx.Err(); err != nil {
		return summary, err
	}

	events, err := s.store.ListEventsByDate(ctx, orgID, date)
	if err != nil {
		return summary, fmt.Errorf("load events: %w", err)
	}
	schedule.SortEvents(events)
	summary.EventsCount = len(events)

	venues := s.loadVenues(ctx, orgID, events)
	logger := logging.FromContext(ctx)

	for i, ev := range events {
		var next *models.Event
		if i+1 < len(events) {
			next = events[i+1]
		}

		logistics := models.Logistics{ToNextUpdatedAt: s.clock.Now()}
		o := classify(ev, next, venues)
		switch o {
		case outcomeTerminal:
		case outcomeMissingVenue:
			logistics.ToNextVenueID = next.VenueID
			logistics.Error = strPtr(MsgVenueNotFound)
		case outcomeUngeocoded:
			logistics.ToNextVenueID = next.VenueID
			logistics.Error = strPtr(MsgVenueMissingCoords)
		case outcomeComputed:
			from, to := venues[venueRef(ev)], venues[venueRef(next)]
			leg, err := s.router.Route(ctx, from.Location(), to.Location())
			if err != nil {
				return summary, fmt.Errorf("route %s -> %s: %w", from.ID, to.ID, err)
			}
			logistics.ToNextVenueID = next.VenueID
			logistics.ToNextKm = &leg.Km
			logistics.ToNextMinutes = &leg.Minutes
		}

		if err := s.store.UpdateEventLogistics(ctx, orgID, ev.ID, logistics); err != nil {
			return summary, fmt.Errorf("update logistics for event %s: %w", ev.ID, err)
		}
		summary.Updated++

		logger.Debug().
			Str("org_id", orgID).
			Str("event_id", ev.ID).
			Stringer("outcome", o).
			Msg("event logistics updated")
	}

	logger.Info().
		Str("org_id", orgID).
		Str("date", date).
		Int("events", summary.EventsCount).
		Int("updated", summary.Updated).
		Msg("logistics recomputed")

	return summary, nil
}

// loadVenues fetches each distinct venue referenced by events once.
// Venues that are missing or fail to load are left out of the map.
func (s *service) loadVenues(ctx context.Context, orgID string, events []*models.Event) map[string]*models.Venue {
	venues := make(map[string]*models.Venue)
	seen := make(map[string]bool)

	for _, ev := range events {
		id := venueRef(ev)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true

		v, err := s.store.GetVenue(ctx, orgID, id)
		if err != nil {
			if !errors.Is(err, store.ErrVenueNotFound) {
				logging.FromContext(ctx).Warn().Err(err).
					Str("org_id", orgID).
					Str("venue_id", id).
					Msg("venue lookup failed, treating as missing")
			}
			continue
		}
		venues[id] = v
	}

	return venues
}

func venueRef(e *models.Event) string {
	if e == nil || e.VenueID == nil {
		return ""
	}
	return *e.VenueID
}

func strPtr(s string) *string {
	return &s
}
