package httpapi

import (
	"net/http"

	"livemusicnotes/internal/models"
)

func (s *Server) handleListArtists(w http.ResponseWriter, r *http.Request) {
	artists, err := s.artists.List(r.Context(), r.URL.Query().Get("search_name"))
	if err != nil {
		writeError(w, err)
		return
	}
	if artists == nil {
		artists = []*models.Artist{}
	}

	writeJSON(w, http.StatusOK, struct {
		Artists []*models.Artist `json:"artists"`
	}{Artists: artists})
}

func (s *Server) handleGetArtist(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid artist id"})
		return
	}

	artist, err := s.artists.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, artist)
}

func (s *Server) handleArtistShows(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid artist id"})
		return
	}

	shows, err := s.artists.Shows(r.Context(), id)
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
