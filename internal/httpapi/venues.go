package httpapi

import (
	"net/http"

	"tourlogistics/internal/models"
)

type venueRequest struct {
	Name       string   `json:"name"`
	Address    string   `json:"address"`
	City       string   `json:"city"`
	State      string   `json:"state"`
	PostalCode string   `json:"postalCode"`
	Lat        *float64 `json:"lat"`
	Lng        *float64 `json:"lng"`
}

func (s *Server) handleCreateVenue(w http.ResponseWriter, r *http.Request) {
	ctx, ok := s.authenticate(w, r)
	if !ok {
		return
	}

	orgID := r.PathValue("orgId")
	if err := validateID("orgId", orgID); err != nil {
		s.writeError(ctx, w, err)
		return
	}

	var req venueRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(ctx, w, err)
		return
	}
	if req.Name == "" {
		s.writeError(ctx, w, badRequest("name is required"))
		return
	}

	created, err := s.venues.Create(ctx, &models.Venue{
		OrgID:      orgID,
		Name:       req.Name,
		Address:    req.Address,
		City:       req.City,
		State:      req.State,
		PostalCode: req.PostalCode,
		Lat:        req.Lat,
		Lng:        req.Lng,
	})
	if err != nil {
		s.writeError(ctx, w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleListVenues(w http.ResponseWriter, r *http.Request) {
	ctx, ok := s.authenticate(w, r)
	if !ok {
		return
	}

	orgID := r.PathValue("orgId")
	if err := validateID("orgId", orgID); err != nil {
		s.writeError(ctx, w, err)
		return
	}

	list, err := s.venues.List(ctx, orgID)
	if err != nil {
		s.writeError(ctx, w, err)
		return
	}
	if list == nil {
		list = []*models.Venue{}
	}

	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleGetVenue(w http.ResponseWriter, r *http.Request) {
	ctx, ok := s.authenticate(w, r)
	if !ok {
		return
	}

	orgID, id := r.PathValue("orgId"), r.PathValue("id")
	if err := validateID("orgId", orgID); err != nil {
		s.writeError(ctx, w, err)
		return
	}

	venue, err := s.venues.Get(ctx, orgID, id)
	if err != nil {
		s.writeError(ctx, w, err)
		return
	}

	writeJSON(w, http.StatusOK, venue)
}
