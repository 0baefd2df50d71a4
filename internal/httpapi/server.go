package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"tourlogistics/internal/app/logistics"
	"tourlogistics/internal/app/venues"
	"tourlogistics/internal/auth"
	"tourlogistics/internal/clock"
	"tourlogistics/internal/logging"
	"tourlogistics/internal/maps"
	"tourlogistics/internal/models"
	"tourlogistics/internal/store"
)

// minIDLength is the shortest accepted org or venue id.
const minIDLength = 3

// Authenticator verifies the Authorization header of a request.
type Authenticator interface {
	Authenticate(ctx context.Context, header string) (auth.Claims, error)
}

// LogisticsService exposes the itinerary workflows.
type LogisticsService interface {
	Recompute(ctx context.Context, orgID, date string) (logistics.RecomputeSummary, error)
	Day(ctx context.Context, orgID, date string) (logistics.DayView, error)
}

// VenueService coordinates venue operations.
type VenueService interface {
	Create(ctx context.Context, venue *models.Venue) (*models.Venue, error)
	List(ctx context.Context, orgID string) ([]*models.Venue, error)
	Get(ctx context.Context, orgID, id string) (*models.Venue, error)
	Geocode(ctx context.Context, orgID, id string) (models.LatLng, error)
}

// BandService coordinates band operations.
type BandService interface {
	Create(ctx context.Context, band *models.Band) (*models.Band, error)
	List(ctx context.Context, orgID string) ([]*models.Band, error)
}

// EventService coordinates event operations.
type EventService interface {
	Create(ctx context.Context, event *models.Event) (*models.Event, error)
	ListByDate(ctx context.Context, orgID, date string) ([]*models.Event, error)
	Delete(ctx context.Context, orgID, eventID string) error
}

// Server wires HTTP handlers to the underlying services.
type Server struct {
	auth      Authenticator
	logistics LogisticsService
	venues    VenueService
	bands     BandService
	events    EventService
	clock     clock.Clock
}

// New configures a Server with the given services.
func New(
	authn Authenticator,
	logistics LogisticsService,
	venues VenueService,
	bands BandService,
	events EventService,
) *Server {
	return &Server{
		auth:      authn,
		logistics: logistics,
		venues:    venues,
		bands:     bands,
		events:    events,
		clock:     clock.NewSystem(),
	}
}

// Routes exposes the HTTP handlers.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, okResponse{OK: true})
	})

	// Logistics
	mux.HandleFunc("POST /api/events/recalc-logistics", s.handleRecalcLogistics)
	mux.HandleFunc("GET /api/day-logistics", s.handleDayLogistics)
	mux.HandleFunc("GET /api/day-itinerary.ics", s.handleDayItinerary)
	mux.HandleFunc("POST /api/venues/geocode", s.handleGeocodeVenue)

	// Venue routes
	mux.HandleFunc("POST /api/orgs/{orgId}/venues", s.handleCreateVenue)
	mux.HandleFunc("GET /api/orgs/{orgId}/venues", s.handleListVenues)
	mux.HandleFunc("GET /api/orgs/{orgId}/venues/{id}", s.handleGetVenue)

	// Band routes
	mux.HandleFunc("POST /api/orgs/{orgId}/bands", s.handleCreateBand)
	mux.HandleFunc("GET /api/orgs/{orgId}/bands", s.handleListBands)

	// Event routes
	mux.HandleFunc("POST /api/orgs/{orgId}/events", s.handleCreateEvent)
	mux.HandleFunc("GET /api/orgs/{orgId}/events", s.handleListEvents)
	mux.HandleFunc("DELETE /api/orgs/{orgId}/events/{id}", s.handleDeleteEvent)

	return mux
}

type okResponse struct {
	OK bool `json:"ok"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// badRequestError marks request validation failures.
type badRequestError struct {
	msg string
}

func (e badRequestError) Error() string { return e.msg }

func badRequest(msg string) error {
	return badRequestError{msg: msg}
}

// authenticate verifies the caller and returns a context carrying its uid.
// On failure the error response has already been written.
func (s *Server) authenticate(w http.ResponseWriter, r *http.Request) (context.Context, bool) {
	claims, err := s.auth.Authenticate(r.Context(), r.Header.Get("Authorization"))
	if err != nil {
		s.writeError(r.Context(), w, err)
		return nil, false
	}
	return logging.WithUID(r.Context(), claims.UID), true
}

// writeError maps service errors to HTTP responses. Unknown errors are
// logged and answered with a generic body.
func (s *Server) writeError(ctx context.Context, w http.ResponseWriter, err error) {
	var (
		badReq     badRequestError
		routingErr *maps.RoutingError
		geoErr     *maps.GeocodingError
	)

	switch {
	case errors.Is(err, auth.ErrUnauthorized):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
	case errors.Is(err, store.ErrVenueNotFound), errors.Is(err, store.ErrEventNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.As(err, &badReq),
		errors.Is(err, venues.ErrMissingAddress),
		errors.Is(err, store.ErrInvalidEvent),
		errors.Is(err, store.ErrInvalidVenue),
		errors.Is(err, store.ErrInvalidBand):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, store.ErrDuplicate):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.As(err, &routingErr), errors.As(err, &geoErr):
		logging.FromContext(ctx).Error().Err(err).Msg("maps provider failure")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
	default:
		logging.FromContext(ctx).Error().Err(err).Msg("request failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return badRequest("invalid request body")
	}
	return nil
}

func validateID(field, value string) error {
	if len(strings.TrimSpace(value)) < minIDLength {
		return badRequest(field + " must be at least 3 characters")
	}
	return nil
}

func validateDate(value string) error {
	if !store.ValidDate(value) {
		return badRequest("date must be YYYY-MM-DD")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}
