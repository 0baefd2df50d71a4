package events

import (
	"context"
	"errors"
	"testing"

	"tourlogistics/internal/models"
	"tourlogistics/internal/store"
)

type stubStore struct {
	created *models.Event
	events  []*models.Event
}

func (s *stubStore) CreateEvent(ctx context.Context, event *models.Event) (*models.Event, error) {
	s.created = event
	return event, nil
}

func (s *stubStore) ListEventsByDate(ctx context.Context, orgID, date string) ([]*models.Event, error) {
	return s.events, nil
}

func (s *stubStore) DeleteEvent(ctx context.Context, orgID, eventID string) error {
	return nil
}

type stubVenues struct {
	err error
}

func (v stubVenues) Get(ctx context.Context, orgID, id string) (*models.Venue, error) {
	if v.err != nil {
		return nil, v.err
	}
	return &models.Venue{ID: id, OrgID: orgID}, nil
}

func TestCreateRejectsUnknownVenue(t *testing.T) {
	st := &stubStore{}
	venueID := "ghost"

	_, err := New(st, stubVenues{err: store.ErrVenueNotFound}).Create(context.Background(), &models.Event{
		OrgID:   "org-1",
		Date:    "2025-03-01",
		VenueID: &venueID,
	})
	if !errors.Is(err, store.ErrVenueNotFound) {
		t.Fatalf("expected ErrVenueNotFound, got %v", err)
	}
	if st.created != nil {
		t.Fatal("event must not be stored")
	}
}

func TestCreateWithoutVenueSkipsLookup(t *testing.T) {
	st := &stubStore{}

	_, err := New(st, stubVenues{err: errors.New("should not be called")}).Create(context.Background(), &models.Event{
		OrgID: "org-1",
		Date:  "2025-03-01",
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if st.created == nil {
		t.Fatal("expected event to be stored")
	}
}

func TestListByDateSortsEvents(t *testing.T) {
	st := &stubStore{events: []*models.Event{
		{ID: "late", StartTime: "21:00"},
		{ID: "early", StartTime: "09:00"},
	}}

	got, err := New(st, nil).ListByDate(context.Background(), "org-1", "2025-03-01")
	if err != nil {
		t.Fatalf("ListByDate error: %v", err)
	}
	if got[0].ID != "early" || got[1].ID != "late" {
		t.Fatalf("unexpected order: %s, %s", got[0].ID, got[1].ID)
	}
}
