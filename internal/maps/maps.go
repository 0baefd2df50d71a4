// Package maps talks to the Google Maps Platform: the Routes API for
// drive time/distance between two venues and the Geocoding API for venue
// addresses.
package maps

import (
	"fmt"
	"net/http"
	"time"
)

const (
	routesURL       = "https://routes.googleapis.com/directions/v2:computeRoutes"
	geocodeURL      = "https://maps.googleapis.com/maps/api/geocode/json"
	routesFieldMask = "routes.distanceMeters,routes.duration"

	defaultRoutesTimeout  = 25 * time.Second
	defaultGeocodeTimeout = 20 * time.Second
)

// Config holds provider credentials and per-call deadlines.
type Config struct {
	APIKey         string
	RoutesTimeout  time.Duration
	GeocodeTimeout time.Duration
}

// Client implements both the routing and the geocoding contracts.
type Client struct {
	apiKey     string
	httpClient *http.Client

	routesURL      string
	geocodeURL     string
	routesTimeout  time.Duration
	geocodeTimeout time.Duration

	maxAttempts  int
	retryBackoff time.Duration
}

// NewClient builds a Client. A missing API key is not an error here; every
// call fails with KindMissingCredentials instead.
func NewClient(cfg Config) *Client {
	c := &Client{
		apiKey:         cfg.APIKey,
		httpClient:     &http.Client{},
		routesURL:      routesURL,
		geocodeURL:     geocodeURL,
		routesTimeout:  cfg.RoutesTimeout,
		geocodeTimeout: cfg.GeocodeTimeout,
		maxAttempts:    4,
		retryBackoff:   200 * time.Millisecond,
	}
	if c.routesTimeout <= 0 {
		c.routesTimeout = defaultRoutesTimeout
	}
	if c.geocodeTimeout <= 0 {
		c.geocodeTimeout = defaultGeocodeTimeout
	}
	return c
}

// Kind classifies provider failures.
type Kind int

const (
	// KindMissingCredentials means no API key is configured.
	KindMissingCredentials Kind = iota + 1
	// KindUnavailable means the provider could not be reached.
	KindUnavailable
	// KindProviderStatus means the provider answered with a non-2xx status.
	KindProviderStatus
	// KindBadResponse means the provider body could not be decoded.
	KindBadResponse
	// KindNoRoutes means a 2xx routes response carried zero routes.
	KindNoRoutes
	// KindNoResults means geocoding returned a non-OK status or no results.
	KindNoResults
)

func (k Kind) String() string {
	switch k {
	case KindMissingCredentials:
		return "missing_credentials"
	case KindUnavailable:
		return "unavailable"
	case KindProviderStatus:
		return "provider_status"
	case KindBadResponse:
		return "bad_response"
	case KindNoRoutes:
		return "no_routes"
	case KindNoResults:
		return "no_results"
	default:
		return "unknown"
	}
}

// RoutingError is returned by Route for every failure.
type RoutingError struct {
	Kind       Kind
	StatusCode int
	Message    string
	Err        error
}

func (e *RoutingError) Error() string {
	return formatProviderError("routes api", e.Kind, e.StatusCode, e.Message, e.Err)
}

func (e *RoutingError) Unwrap() error { return e.Err }

// GeocodingError is returned by Geocode for every failure.
type GeocodingError struct {
	Kind       Kind
	StatusCode int
	Message    string
	Err        error
}

func (e *GeocodingError) Error() string {
	return formatProviderError("geocoding api", e.Kind, e.StatusCode, e.Message, e.Err)
}

func (e *GeocodingError) Unwrap() error { return e.Err }

func formatProviderError(provider string, kind Kind, status int, msg string, err error) string {
	out := fmt.Sprintf("%s %s", provider, kind)
	if status != 0 {
		out += fmt.Sprintf(" (%d)", status)
	}
	if msg != "" {
		out += ": " + msg
	}
	if err != nil {
		out += ": " + err.Error()
	}
	return out
}
