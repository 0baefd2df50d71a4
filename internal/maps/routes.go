package maps

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"tourlogistics/internal/logging"
	"tourlogistics/internal/models"
)

// Leg is the drive between two stops.
type Leg struct {
	Minutes int     // rounded to the nearest minute, never below 1
	Km      float64 // rounded to two decimals
}

type routesLatLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type routesWaypoint struct {
	Location struct {
		LatLng routesLatLng `json:"latLng"`
	} `json:"location"`
}

type routesRequest struct {
	Origin            routesWaypoint `json:"origin"`
	Destination       routesWaypoint `json:"destination"`
	TravelMode        string         `json:"travelMode"`
	RoutingPreference string         `json:"routingPreference"`
}

type routesResponse struct {
	Routes []struct {
		DistanceMeters float64 `json:"distanceMeters"`
		Duration       string  `json:"duration"`
	} `json:"routes"`
}

func waypoint(p models.LatLng) routesWaypoint {
	var w routesWaypoint
	w.Location.LatLng = routesLatLng{Latitude: p.Lat, Longitude: p.Lng}
	return w
}

// Route computes the driving leg from origin to dest.
// Every failure is a *RoutingError.
func (c *Client) Route(ctx context.Context, origin, dest models.LatLng) (_ Leg, err error) {
	defer logging.Time(ctx, "maps.route")(&err)

	if strings.TrimSpace(c.apiKey) == "" {
		return Leg{}, &RoutingError{Kind: KindMissingCredentials, Message: "GOOGLE_MAPS_API_KEY is not configured"}
	}

	payload, err := json.Marshal(routesRequest{
		Origin:            waypoint(origin),
		Destination:       waypoint(dest),
		TravelMode:        "DRIVE",
		RoutingPreference: "TRAFFIC_AWARE",
	})
	if err != nil {
		return Leg{}, &RoutingError{Kind: KindBadResponse, Message: "encode request", Err: err}
	}

	ctx, cancel := context.WithTimeout(ctx, c.routesTimeout)
	defer cancel()

	resp, err := c.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.routesURL, bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Goog-Api-Key", c.apiKey)
		req.Header.Set("X-Goog-FieldMask", routesFieldMask)
		return req, nil
	})
	if err != nil {
		var he *httpStatusError
		if errors.As(err, &he) {
			return Leg{}, &RoutingError{Kind: KindProviderStatus, StatusCode: he.Code, Message: he.Body}
		}
		return Leg{}, &RoutingError{Kind: KindUnavailable, Err: err}
	}
	defer resp.Body.Close()

	var decoded routesResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return Leg{}, &RoutingError{Kind: KindBadResponse, StatusCode: resp.StatusCode, Message: "decode response", Err: err}
	}
	if len(decoded.Routes) == 0 {
		return Leg{}, &RoutingError{Kind: KindNoRoutes, StatusCode: resp.StatusCode, Message: "provider returned no routes"}
	}

	route := decoded.Routes[0]
	seconds, err := parseProtoDuration(route.Duration)
	if err != nil {
		return Leg{}, &RoutingError{Kind: KindBadResponse, StatusCode: resp.StatusCode, Message: fmt.Sprintf("duration %q", route.Duration), Err: err}
	}

	return legFrom(route.DistanceMeters, seconds), nil
}

// legFrom applies the rounding rules: km to two decimals, minutes
// half-to-even with a floor of one.
func legFrom(meters, seconds float64) Leg {
	minutes := int(math.RoundToEven(seconds / 60))
	if minutes < 1 {
		minutes = 1
	}
	return Leg{
		Minutes: minutes,
		Km:      math.Round(meters/1000*100) / 100,
	}
}

// parseProtoDuration reads the JSON form of google.protobuf.Duration ("123s", "1.5s").
func parseProtoDuration(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if !strings.HasSuffix(s, "s") {
		return 0, fmt.Errorf("missing seconds suffix")
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	return d.Seconds(), nil
}
