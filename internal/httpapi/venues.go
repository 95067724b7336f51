package httpapi

import (
	"encoding/json"
	"net/http"

	"livemusicnotes/internal/models"
)

func (s *Server) handleListVenues(w http.ResponseWriter, r *http.Request) {
	venues, err := s.venues.List(r.Context(), r.URL.Query().Get("search_name"))
	if err != nil {
		writeError(w, err)
		return
	}
	if venues == nil {
		venues = []*models.Venue{}
	}

	writeJSON(w, http.StatusOK, struct {
		Venues []*models.Venue `json:"venues"`
	}{Venues: venues})
}

func (s *Server) handleCreateVenue(w http.ResponseWriter, r *http.Request) {
	if _, err := s.requireUser(r); err != nil {
		writeError(w, err)
		return
	}

	var req struct {
		Name  string `json:"name"`
		City  string `json:"city"`
		State string `json:"state"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return
	}
	if req.Name == "" || req.City == "" || len(req.State) != 2 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "name, city and a 2-letter state are required"})
		return
	}

	venue, err := s.venues.Create(r.Context(), &models.Venue{
		Name:  req.Name,
		City:  req.City,
		State: req.State,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, venue)
}

func (s *Server) handleGetVenue(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid venue id"})
		return
	}

	venue, err := s.venues.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, venue)
}

func (s *Server) handleVenueShows(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid venue id"})
		return
	}

	shows, err := s.venues.Shows(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if shows == nil {
		shows = []*models.ShowWithDetails{}
	}

	writeJSON(w, http.StatusOK, struct {
		Shows []*models.ShowWithDetails `json:"shows"`
	}{Shows: shows})
}
