package main

import (
	"context"
	"fmt"
	"testing"
	"time"

	"tourlogistics/internal/clock"
	"tourlogistics/internal/models"
)

type memoryStore struct {
	venues []*models.Venue
	bands  []*models.Band
	events []*models.Event
}

func (m *memoryStore) ListVenues(ctx context.Context, orgID string) ([]*models.Venue, error) {
	return m.venues, nil
}

func (m *memoryStore) CreateVenue(ctx context.Context, venue *models.Venue) (*models.Venue, error) {
	venue.ID = fmt.Sprintf("venue-%d", len(m.venues)+1)
	m.venues = append(m.venues, venue)
	return venue, nil
}

func (m *memoryStore) CreateBand(ctx context.Context, band *models.Band) (*models.Band, error) {
	band.ID = fmt.Sprintf("band-%d", len(m.bands)+1)
	m.bands = append(m.bands, band)
	return band, nil
}

func (m *memoryStore) CreateEvent(ctx context.Context, event *models.Event) (*models.Event, error) {
	m.events = append(m.events, event)
	return event, nil
}

func TestEmbeddedDemoTourParses(t *testing.T) {
	tour, err := parseDemoTour(demoTourYAML)
	if err != nil {
		t.Fatalf("parseDemoTour error: %v", err)
	}
	if tour.OrgID != "demo-org" || len(tour.Venues) == 0 || len(tour.Events) == 0 {
		t.Fatalf("unexpected tour %+v", tour)
	}
}

func TestParseDemoTourRequiresOrg(t *testing.T) {
	if _, err := parseDemoTour([]byte("venues: []\n")); err == nil {
		t.Fatal("expected error without orgId")
	}
}

func TestBootstrapDemoTourIsIdempotent(t *testing.T) {
	st := &memoryStore{}
	clk := clock.NewFixed(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))

	if err := bootstrapDemoTour(context.Background(), st, clk); err != nil {
		t.Fatalf("bootstrap error: %v", err)
	}
	venues, events := len(st.venues), len(st.events)
	if venues != 3 || events != 4 {
		t.Fatalf("expected 3 venues and 4 events, got %d and %d", venues, events)
	}

	first := st.events[0]
	if first.Date != "2025-03-01" || first.VenueID == nil || *first.VenueID != "venue-1" || first.BandID == nil || *first.BandID != "band-1" {
		t.Fatalf("unexpected first event %+v", first)
	}
	if st.events[3].Date != "2025-03-02" || st.events[3].Title != "" {
		t.Fatalf("unexpected last event %+v", st.events[3])
	}
	if st.venues[2].Lat != nil {
		t.Fatal("expected the third venue to be left for geocoding")
	}

	if err := bootstrapDemoTour(context.Background(), st, clk); err != nil {
		t.Fatalf("second bootstrap error: %v", err)
	}
	if len(st.venues) != venues || len(st.events) != events {
		t.Fatal("second bootstrap must not add records")
	}
}
