package maps

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"tourlogistics/internal/logging"
	"tourlogistics/internal/models"
)

// GeocodeResult is the resolved position of an address plus the
// best-effort structured parts of it.
type GeocodeResult struct {
	Location           models.LatLng
	Locality           string
	AdministrativeArea string
	PostalCode         string
}

type geocodeResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Results      []struct {
		AddressComponents []addressComponent `json:"address_components"`
		Geometry          struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

type addressComponent struct {
	LongName  string   `json:"long_name"`
	ShortName string   `json:"short_name"`
	Types     []string `json:"types"`
}

// Geocode resolves a free-text address. Every failure is a *GeocodingError.
func (c *Client) Geocode(ctx context.Context, address string) (_ GeocodeResult, err error) {
	defer logging.Time(ctx, "maps.geocode")(&err)

	if strings.TrimSpace(c.apiKey) == "" {
		return GeocodeResult{}, &GeocodingError{Kind: KindMissingCredentials, Message: "GOOGLE_MAPS_API_KEY is not configured"}
	}

	ctx, cancel := context.WithTimeout(ctx, c.geocodeTimeout)
	defer cancel()

	resp, err := c.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.geocodeURL, nil)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("address", address)
		q.Set("key", c.apiKey)
		req.URL.RawQuery = q.Encode()
		req.Header.Set("Accept", "application/json")
		return req, nil
	})
	if err != nil {
		var he *httpStatusError
		if errors.As(err, &he) {
			return GeocodeResult{}, &GeocodingError{Kind: KindProviderStatus, StatusCode: he.Code, Message: he.Body}
		}
		return GeocodeResult{}, &GeocodingError{Kind: KindUnavailable, Err: err}
	}
	defer resp.Body.Close()

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return GeocodeResult{}, &GeocodingError{Kind: KindBadResponse, StatusCode: resp.StatusCode, Message: "decode response", Err: err}
	}

	if decoded.Status != "OK" || len(decoded.Results) == 0 {
		msg := decoded.Status
		if decoded.ErrorMessage != "" {
			msg += " - " + decoded.ErrorMessage
		}
		return GeocodeResult{}, &GeocodingError{Kind: KindNoResults, StatusCode: resp.StatusCode, Message: msg}
	}

	first := decoded.Results[0]
	out := GeocodeResult{
		Location: models.LatLng{
			Lat: first.Geometry.Location.Lat,
			Lng: first.Geometry.Location.Lng,
		},
	}
	extractComponents(first.AddressComponents, &out)
	return out, nil
}

// extractComponents fills locality, state and postal code. The first
// component of each type wins.
func extractComponents(components []addressComponent, out *GeocodeResult) {
	for _, comp := range components {
		for _, typ := range comp.Types {
			switch typ {
			case "locality":
				if out.Locality == "" {
					out.Locality = comp.LongName
				}
			case "administrative_area_level_1":
				if out.AdministrativeArea == "" {
					out.AdministrativeArea = comp.ShortName
				}
			case "postal_code":
				if out.PostalCode == "" {
					out.PostalCode = comp.LongName
				}
			}
		}
	}
}
