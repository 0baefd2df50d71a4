package httpapi

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"tourlogistics/internal/app/logistics"
)

type recalcRequest struct {
	OrgID string `json:"orgId"`
	Date  string `json:"date"`
}

type recalcResponse struct {
	OK bool `json:"ok"`
	logistics.RecomputeSummary
}

type dayResponse struct {
	OK     bool                 `json:"ok"`
	Date   string               `json:"date"`
	Events []logistics.DayEntry `json:"events"`
}

type geocodeRequest struct {
	OrgID   string `json:"orgId"`
	VenueID string `json:"venueId"`
}

type geocodeResponse struct {
	OK  bool    `json:"ok"`
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (s *Server) handleRecalcLogistics(w http.ResponseWriter, r *http.Request) {
	ctx, ok := s.authenticate(w, r)
	if !ok {
		return
	}

	var req recalcRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(ctx, w, err)
		return
	}
	if err := errors.Join(validateID("orgId", req.OrgID), validateDate(req.Date)); err != nil {
		s.writeError(ctx, w, err)
		return
	}

	summary, err := s.logistics.Recompute(ctx, req.OrgID, req.Date)
	if err != nil {
		s.writeError(ctx, w, err)
		return
	}

	writeJSON(w, http.StatusOK, recalcResponse{OK: true, RecomputeSummary: summary})
}

func (s *Server) handleDayLogistics(w http.ResponseWriter, r *http.Request) {
	ctx, ok := s.authenticate(w, r)
	if !ok {
		return
	}

	orgID, date := r.URL.Query().Get("orgId"), r.URL.Query().Get("date")
	if err := errors.Join(validateID("orgId", orgID), validateDate(date)); err != nil {
		s.writeError(ctx, w, err)
		return
	}

	view, err := s.logistics.Day(ctx, orgID, date)
	if err != nil {
		s.writeError(ctx, w, err)
		return
	}

	writeJSON(w, http.StatusOK, dayResponse{OK: true, Date: view.Date, Events: view.Events})
}

func (s *Server) handleDayItinerary(w http.ResponseWriter, r *http.Request) {
	ctx, ok := s.authenticate(w, r)
	if !ok {
		return
	}

	orgID, date := r.URL.Query().Get("orgId"), r.URL.Query().Get("date")
	if err := errors.Join(validateID("orgId", orgID), validateDate(date)); err != nil {
		s.writeError(ctx, w, err)
		return
	}

	view, err := s.logistics.Day(ctx, orgID, date)
	if err != nil {
		s.writeError(ctx, w, err)
		return
	}

	var buf bytes.Buffer
	if err := logistics.WriteICS(&buf, view, s.clock.Now()); err != nil {
		s.writeError(ctx, w, err)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="itinerary-%s.ics"`, date))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleGeocodeVenue(w http.ResponseWriter, r *http.Request) {
	ctx, ok := s.authenticate(w, r)
	if !ok {
		return
	}

	var req geocodeRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(ctx, w, err)
		return
	}
	if err := errors.Join(validateID("orgId", req.OrgID), validateID("venueId", req.VenueID)); err != nil {
		s.writeError(ctx, w, err)
		return
	}

	loc, err := s.venues.Geocode(ctx, req.OrgID, req.VenueID)
	if err != nil {
		s.writeError(ctx, w, err)
		return
	}

	writeJSON(w, http.StatusOK, geocodeResponse{OK: true, Lat: loc.Lat, Lng: loc.Lng})
}
