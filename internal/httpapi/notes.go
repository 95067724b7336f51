package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"livemusicnotes/internal/models"
)

// maxPhotoBytes caps an uploaded note photo at 10 MiB.
const maxPhotoBytes = 10 << 20

func (s *Server) handleLatestNotes(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid limit parameter"})
			return
		}
		limit = parsed
	}

	notes, err := s.notes.Latest(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	if notes == nil {
		notes = []*models.NoteWithDetails{}
	}

	writeJSON(w, http.StatusOK, struct {
		Notes []*models.NoteWithDetails `json:"notes"`
	}{Notes: notes})
}

func (s *Server) handleNotesForShow(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid show id"})
		return
	}

	notes, err := s.notes.ForShow(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if notes == nil {
		notes = []*models.NoteWithDetails{}
	}

	writeJSON(w, http.StatusOK, struct {
		Notes []*models.NoteWithDetails `json:"notes"`
	}{Notes: notes})
}

func (s *Server) handleGetNote(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid note id"})
		return
	}

	note, err := s.notes.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, note)
}

// handleCreateNote accepts either a JSON body or a multipart form (the
// latter is how a photo is attached).
func (s *Server) handleCreateNote(w http.ResponseWriter, r *http.Request) {
	userID, err := s.requireUser(r)
	if err != nil {
		writeError(w, err)
		return
	}

	showID, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid show id"})
		return
	}

	var input models.NoteInput
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		input, err = parseMultipartNote(r)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
	} else {
		var req struct {
			Title  string `json:"title"`
			Text   string `json:"text"`
			Rating *int   `json:"rating,omitempty"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
			return
		}
		input = models.NoteInput{Title: req.Title, Text: req.Text, Rating: req.Rating}
	}

	note, err := s.notes.Create(r.Context(), userID, showID, input)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, note)
}

func (s *Server) handleUpdateNote(w http.ResponseWriter, r *http.Request) {
	userID, err := s.requireUser(r)
	if err != nil {
		writeError(w, err)
		return
	}

	noteID, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid note id"})
		return
	}

	var req struct {
		Title string `json:"title"`
		Text  string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return
	}

	note, err := s.notes.Update(r.Context(), userID, noteID, req.Title, req.Text)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, note)
}

func (s *Server) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	userID, err := s.requireUser(r)
	if err != nil {
		writeError(w, err)
		return
	}

	noteID, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid note id"})
		return
	}

	if err := s.notes.Delete(r.Context(), userID, noteID); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parseMultipartNote(r *http.Request) (models.NoteInput, error) {
	if err := r.ParseMultipartForm(maxPhotoBytes); err != nil {
		return models.NoteInput{}, errInvalidForm
	}

	input := models.NoteInput{
		Title: r.FormValue("title"),
		Text:  r.FormValue("text"),
	}

	if raw := r.FormValue("rating"); raw != "" {
		rating, err := strconv.Atoi(raw)
		if err != nil {
			return models.NoteInput{}, errInvalidForm
		}
		input.Rating = &rating
	}

	file, header, err := r.FormFile("photo")
	if err == http.ErrMissingFile {
		return input, nil
	}
	if err != nil {
		return models.NoteInput{}, errInvalidForm
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxPhotoBytes+1))
	if err != nil {
		return models.NoteInput{}, errInvalidForm
	}
	if len(data) > maxPhotoBytes {
		return models.NoteInput{}, errPhotoTooLarge
	}

	input.Photo = data
	input.PhotoContentType = header.Header.Get("Content-Type")
	input.PhotoFilename = header.Filename
	return input, nil
}
