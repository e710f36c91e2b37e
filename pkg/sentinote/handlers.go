package sentinote

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/sentinote/sentinote/pkg/cursor"
	"github.com/sentinote/sentinote/pkg/models"
	"github.com/sentinote/sentinote/pkg/notes"
)

// createNoteRequest is the payload for POST /api/notes. The sentiment is
// never part of the request: it is assigned by the classifier.
type createNoteRequest struct {
	Text string `json:"text"`
}

// handleCreateNote accepts note text, classifies it and persists the result.
//
// Response:
//   - 201 Created with the stored note, sentiment included
//   - 400 Bad Request for an empty or undecodable payload
//   - 502 Bad Gateway when the classifier is unreachable
func (a *App) handleCreateNote(w http.ResponseWriter, r *http.Request) {
	var req createNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	note, err := a.workflow.Create(r.Context(), req.Text)
	if err != nil {
		a.respondForError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, note)
}

func (a *App) handleGetNote(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := models.ParseNoteID(vars["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid note ID")
		return
	}

	note, err := a.store.Get(r.Context(), id)
	if err != nil {
		a.respondForError(w, r, err)
		return
	}
	if note == nil {
		respondError(w, http.StatusNotFound, "Note not found")
		return
	}

	respondJSON(w, http.StatusOK, note)
}

// handleListNotes returns notes newest first. Query parameters: limit
// (positive integer, default 25) and cursor (token from a previous page).
func (a *App) handleListNotes(w http.ResponseWriter, r *http.Request) {
	opts, ok := a.pageOptions(w, r)
	if !ok {
		return
	}

	page, err := a.store.List(r.Context(), opts)
	if err != nil {
		a.respondForError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, page)
}

// handleSearchNotes returns notes whose text begins with the query
// parameter, ordered by text. Matching is exact on bytes: no case folding,
// no normalization.
func (a *App) handleSearchNotes(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		respondError(w, http.StatusBadRequest, "Missing query parameter")
		return
	}

	opts, ok := a.pageOptions(w, r)
	if !ok {
		return
	}

	page, err := a.store.Search(r.Context(), query, opts)
	if err != nil {
		a.respondForError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, page)
}

// pageOptions extracts limit and cursor from the request. A false return
// means the response has already been written.
func (a *App) pageOptions(w http.ResponseWriter, r *http.Request) (notes.PageOptions, bool) {
	opts := notes.PageOptions{
		Limit:  DefaultPageLimit,
		Cursor: r.URL.Query().Get("cursor"),
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			respondError(w, http.StatusBadRequest, "Invalid limit: must be a positive integer")
			return notes.PageOptions{}, false
		}
		opts.Limit = limit
	}
	return opts, true
}

// respondForError maps domain errors onto HTTP statuses: invalid arguments
// and malformed cursors are the caller's fault, classifier failures are an
// upstream problem, everything else is internal.
func (a *App) respondForError(w http.ResponseWriter, r *http.Request, err error) {
	var invalid *notes.InvalidArgumentError
	var malformed *cursor.MalformedCursorError
	var classification *notes.ClassificationError
	switch {
	case errors.As(err, &invalid):
		respondError(w, http.StatusBadRequest, invalid.Error())
	case errors.As(err, &malformed):
		respondError(w, http.StatusBadRequest, "Malformed cursor")
	case errors.As(err, &classification):
		a.log.Error().Err(err).Str("path", r.URL.Path).Msg("classifier failure")
		respondError(w, http.StatusBadGateway, "Sentiment classification unavailable")
	default:
		a.log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_, _ = w.Write(response)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// handleHealth reports basic service status for load balancers and
// monitoring. It performs no storage round trip.
func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":  "healthy",
		"backend": a.config.Backend,
		"time":    time.Now().Unix(),
	})
}
