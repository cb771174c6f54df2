package httpapi

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/mkravets/falljournal/internal/server/auth"
	"github.com/mkravets/falljournal/internal/session"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

// requestLogger tags every request with a request id and logs method, path,
// status and duration.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rec := &statusRecorder{
			ResponseWriter: w,
			status:         http.StatusOK,
		}

		next.ServeHTTP(rec, r)

		s.logger.Info(r.Context(), "request",
			"request_id", uuid.NewString(),
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start).String(),
		)
	})
}

// authMiddleware verifies the session cookie and builds the per-request
// session context: the authenticated username plus that user's theme.
// Downstream handlers read it with session.FromContext.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		cookie, err := r.Cookie(tokenCookieName)
		if err != nil {
			JSONResponse(w, http.StatusUnauthorized, Payload{
				Success: false,
				Message: "Unauthorized",
			})
			return
		}

		username, err := auth.GetUsernameFromToken(cookie.Value, s.jwtSecret)
		if err != nil || username == "" {
			JSONResponse(w, http.StatusUnauthorized, Payload{
				Success: false,
				Message: "Unauthorized",
			})
			return
		}

		theme, err := s.themes.Get(r.Context(), username)
		if err != nil {
			s.logger.Warn(r.Context(), "falling back to default theme", "user", username, "error", err)
			theme = session.DefaultTheme()
		}

		ctx := session.NewContext(r.Context(), session.Context{Username: username, Theme: theme})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
