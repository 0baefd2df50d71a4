package httpapi

import (
	"net/http"

	"tourlogistics/internal/models"
)

func (s *Server) handleCreateBand(w http.ResponseWriter, r *http.Request) {
	ctx, ok := s.authenticate(w, r)
	if !ok {
		return
	}

	orgID := r.PathValue("orgId")
	if err := validateID("orgId", orgID); err != nil {
		s.writeError(ctx, w, err)
		return
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(ctx, w, err)
		return
	}

	created, err := s.bands.Create(ctx, &models.Band{OrgID: orgID, Name: req.Name})
	if err != nil {
		s.writeError(ctx, w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleListBands(w http.ResponseWriter, r *http.Request) {
	ctx, ok := s.authenticate(w, r)
	if !ok {
		return
	}

	orgID := r.PathValue("orgId")
	if err := validateID("orgId", orgID); err != nil {
		s.writeError(ctx, w, err)
		return
	}

	list, err := s.bands.List(ctx, orgID)
	if err != nil {
		s.writeError(ctx, w, err)
		return
	}
	if list == nil {
		list = []*models.Band{}
	}

	writeJSON(w, http.StatusOK, list)
}
