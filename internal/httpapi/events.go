package httpapi

import (
	"net/http"

	"tourlogistics/internal/models"
)

type eventRequest struct {
	Title     string  `json:"title"`
	Date      string  `json:"date"`
	StartTime string  `json:"startTime"`
	EndTime   string  `json:"endTime"`
	Order     *int    `json:"order"`
	VenueID   *string `json:"venueId"`
	BandID    *string `json:"bandId"`
	Status    string  `json:"status"`
}

func (s *Server) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	ctx, ok := s.authenticate(w, r)
	if !ok {
		return
	}

	orgID := r.PathValue("orgId")
	if err := validateID("orgId", orgID); err != nil {
		s.writeError(ctx, w, err)
		return
	}

	var req eventRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(ctx, w, err)
		return
	}
	if err := validateDate(req.Date); err != nil {
		s.writeError(ctx, w, err)
		return
	}

	created, err := s.events.Create(ctx, &models.Event{
		OrgID:     orgID,
		Title:     req.Title,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Order:     req.Order,
		VenueID:   req.VenueID,
		BandID:    req.BandID,
		Status:    req.Status,
	})
	if err != nil {
		s.writeError(ctx, w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	ctx, ok := s.authenticate(w, r)
	if !ok {
		return
	}

	orgID, date := r.PathValue("orgId"), r.URL.Query().Get("date")
	if err := validateID("orgId", orgID); err != nil {
		s.writeError(ctx, w, err)
		return
	}
	if err := validateDate(date); err != nil {
		s.writeError(ctx, w, err)
		return
	}

	list, err := s.events.ListByDate(ctx, orgID, date)
	if err != nil {
		s.writeError(ctx, w, err)
		return
	}
	if list == nil {
		list = []*models.Event{}
	}

	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	ctx, ok := s.authenticate(w, r)
	if !ok {
		return
	}

	orgID := r.PathValue("orgId")
	if err := validateID("orgId", orgID); err != nil {
		s.writeError(ctx, w, err)
		return
	}

	if err := s.events.Delete(ctx, orgID, r.PathValue("id")); err != nil {
		s.writeError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
