package httpapi

import (
	"net/http"

	"livemusicnotes/internal/models"
)

func (s *Server) handleListShows(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := models.ShowFilter{
		Artist: query.Get("search_artist"),
		Venue:  query.Get("search_venue"),
	}

	shows, err := s.shows.List(r.Context(), filter)
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

func (s *Server) handleGetShow(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid show id"})
		return
	}

	show, err := s.shows.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, show)
}
