package venues

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tourlogistics/internal/logging"
	"tourlogistics/internal/maps"
	"tourlogistics/internal/models"
)

// ErrMissingAddress is returned when geocoding a venue without an address.
var ErrMissingAddress = errors.New("venue has no address")

// Store defines persistence operations for venues
type Store interface {
	CreateVenue(ctx context.Context, venue *models.Venue) (*models.Venue, error)
	ListVenues(ctx context.Context, orgID string) ([]*models.Venue, error)
	GetVenue(ctx context.Context, orgID, id string) (*models.Venue, error)
	UpdateVenueLocation(ctx context.Context, orgID, id string, loc models.VenueLocation) error
}

// Geocoder resolves a free-text address.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (maps.GeocodeResult, error)
}

// Service coordinates venue-related operations
type Service interface {
	Create(ctx context.Context, venue *models.Venue) (*models.Venue, error)
	List(ctx context.Context, orgID string) ([]*models.Venue, error)
	Get(ctx context.Context, orgID, id string) (*models.Venue, error)
	Geocode(ctx context.Context, orgID, id string) (models.LatLng, error)
}

type service struct {
	store    Store
	geocoder Geocoder
}

// New constructs a venues Service
func New(store Store, geocoder Geocoder) Service {
	return &service{
		store:    store,
		geocoder: geocoder,
	}
}

func (s *service) Create(ctx context.Context, venue *models.Venue) (*models.Venue, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.CreateVenue(ctx, venue)
}

func (s *service) List(ctx context.Context, orgID string) ([]*models.Venue, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListVenues(ctx, orgID)
}

func (s *service) Get(ctx context.Context, orgID, id string) (*models.Venue, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.GetVenue(ctx, orgID, id)
}

// Geocode resolves the venue address, stores the coordinates and any
// structured address parts the provider returned, and returns the location.
func (s *service) Geocode(ctx context.Context, orgID, id string) (models.LatLng, error) {
	if err := ctx.Err(); err != nil {
		return models.LatLng{}, err
	}

	venue, err := s.store.GetVenue(ctx, orgID, id)
	if err != nil {
		return models.LatLng{}, err
	}

	address := strings.TrimSpace(venue.Address)
	if address == "" {
		return models.LatLng{}, ErrMissingAddress
	}

	result, err := s.geocoder.Geocode(ctx, address)
	if err != nil {
		return models.LatLng{}, err
	}

	loc := models.VenueLocation{
		LatLng:     result.Location,
		City:       result.Locality,
		State:      result.AdministrativeArea,
		PostalCode: result.PostalCode,
	}
	if err := s.store.UpdateVenueLocation(ctx, orgID, id, loc); err != nil {
		return models.LatLng{}, fmt.Errorf("store venue location: %w", err)
	}

	logging.FromContext(ctx).Info().
		Str("org_id", orgID).
		Str("venue_id", id).
		Float64("lat", result.Location.Lat).
		Float64("lng", result.Location.Lng).
		Msg("venue geocoded")

	return result.Location, nil
}
