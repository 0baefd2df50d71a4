package events

import (
	"context"

	"tourlogistics/internal/models"
	"tourlogistics/internal/schedule"
)

// Store defines persistence operations for events
type Store interface {
	CreateEvent(ctx context.Context, event *models.Event) (*models.Event, error)
	ListEventsByDate(ctx context.Context, orgID, date string) ([]*models.Event, error)
	DeleteEvent(ctx context.Context, orgID, eventID string) error
}

// VenueService allows validating that venues exist before creating events
type VenueService interface {
	Get(ctx context.Context, orgID, id string) (*models.Venue, error)
}

// Service coordinates event-related operations
type Service interface {
	Create(ctx context.Context, event *models.Event) (*models.Event, error)
	ListByDate(ctx context.Context, orgID, date string) ([]*models.Event, error)
	Delete(ctx context.Context, orgID, eventID string) error
}

type service struct {
	store        Store
	venueService VenueService // Optional: validate venues exist
}

// New constructs an events Service
func New(store Store, venueService VenueService) Service {
	return &service{
		store:        store,
		venueService: venueService,
	}
}

func (s *service) Create(ctx context.Context, event *models.Event) (*models.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if s.venueService != nil && event.VenueID != nil && *event.VenueID != "" {
		if _, err := s.venueService.Get(ctx, event.OrgID, *event.VenueID); err != nil {
			return nil, err
		}
	}

	return s.store.CreateEvent(ctx, event)
}

// ListByDate returns the day's events in schedule order.
func (s *service) ListByDate(ctx context.Context, orgID, date string) ([]*models.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	events, err := s.store.ListEventsByDate(ctx, orgID, date)
	if err != nil {
		return nil, err
	}
	schedule.SortEvents(events)
	return events, nil
}

func (s *service) Delete(ctx context.Context, orgID, eventID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.DeleteEvent(ctx, orgID, eventID)
}
