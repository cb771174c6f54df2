package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/mkravets/falljournal/internal/server/journal"
	"github.com/mkravets/falljournal/internal/session"
)

type createEntryRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Mood    string   `json:"mood,omitempty"`
	Tags    []string `json:"tags,omitempty"`
	Date    string   `json:"date,omitempty"`
}

type entryResponse struct {
	Key       string    `json:"key"`
	Title     string    `json:"title"`
	Mood      string    `json:"mood,omitempty"`
	Tags      []string  `json:"tags,omitempty"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

func toEntryResponse(e *journal.Entry) entryResponse {
	return entryResponse{
		Key:       e.Key,
		Title:     e.Title,
		Mood:      e.Mood,
		Tags:      e.Tags,
		Content:   e.Content,
		Timestamp: e.Timestamp,
	}
}

// parseEntryDate accepts RFC 3339 or a bare calendar day. An empty value
// means "now" and is resolved downstream.
func parseEntryDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if ts, err := time.Parse(time.RFC3339, value); err == nil {
		return ts, nil
	}
	return time.Parse("2006-01-02", value)
}

// POST /api/v1/entries
func (s *Server) handleCreateEntry(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		JSONResponse(w, http.StatusUnauthorized, Payload{Success: false, Message: "Unauthorized"})
		return
	}

	var req createEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONResponse(w, http.StatusBadRequest, Payload{Success: false, Message: "Invalid request body"})
		return
	}

	if req.Title == "" {
		JSONResponse(w, http.StatusBadRequest, Payload{Success: false, Message: "Title is required"})
		return
	}

	ts, err := parseEntryDate(req.Date)
	if err != nil {
		JSONResponse(w, http.StatusBadRequest, Payload{Success: false, Message: "Invalid date"})
		return
	}

	entry, err := s.entries.Save(r.Context(), sess.Username, req.Title, req.Content, req.Mood, req.Tags, ts)
	if err != nil {
		s.logger.Error(r.Context(), "saving entry failed", "user", sess.Username, "error", err)
		JSONResponse(w, http.StatusInternalServerError, Payload{Success: false, Message: "Internal server error"})
		return
	}

	JSONResponse(w, http.StatusCreated, Payload{
		Success: true,
		Message: "Entry saved",
		Data:    toEntryResponse(entry),
	})
}

// GET /api/v1/entries
func (s *Server) handleListEntries(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		JSONResponse(w, http.StatusUnauthorized, Payload{Success: false, Message: "Unauthorized"})
		return
	}

	entries, err := s.entries.List(r.Context(), sess.Username)
	if err != nil {
		s.logger.Error(r.Context(), "listing entries failed", "user", sess.Username, "error", err)
		JSONResponse(w, http.StatusInternalServerError, Payload{Success: false, Message: "Internal server error"})
		return
	}

	out := make([]entryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toEntryResponse(e))
	}

	JSONResponse(w, http.StatusOK, Payload{
		Success: true,
		Message: "Entries retrieved",
		Data:    out,
	})
}
