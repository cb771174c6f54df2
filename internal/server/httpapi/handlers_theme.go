package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/mkravets/falljournal/internal/session"
)

// GET /api/v1/theme
func (s *Server) handleGetTheme(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		JSONResponse(w, http.StatusUnauthorized, Payload{Success: false, Message: "Unauthorized"})
		return
	}

	JSONResponse(w, http.StatusOK, Payload{
		Success: true,
		Message: "Theme retrieved",
		Data:    sess.Theme,
	})
}

// PUT /api/v1/theme
func (s *Server) handlePutTheme(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		JSONResponse(w, http.StatusUnauthorized, Payload{Success: false, Message: "Unauthorized"})
		return
	}

	theme := session.DefaultTheme()
	if err := json.NewDecoder(r.Body).Decode(&theme); err != nil {
		JSONResponse(w, http.StatusBadRequest, Payload{Success: false, Message: "Invalid request body"})
		return
	}

	if err := s.themes.Put(r.Context(), sess.Username, theme); err != nil {
		s.logger.Error(r.Context(), "saving theme failed", "user", sess.Username, "error", err)
		JSONResponse(w, http.StatusInternalServerError, Payload{Success: false, Message: "Internal server error"})
		return
	}

	JSONResponse(w, http.StatusOK, Payload{
		Success: true,
		Message: "Theme saved",
		Data:    theme,
	})
}
