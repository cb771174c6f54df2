// Package httpapi exposes the journaling service over HTTP: credential
// endpoints under /api/v1/auth, entry and theme endpoints behind a cookie
// session.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/cors"

	"github.com/mkravets/falljournal/internal/logging"
	"github.com/mkravets/falljournal/internal/server/config"
	"github.com/mkravets/falljournal/internal/server/journal"
	"github.com/mkravets/falljournal/internal/server/themes"
	"github.com/mkravets/falljournal/internal/server/users"
)

const tokenCookieName = "token"

type Server struct {
	users       *users.Service
	entries     *journal.Service
	themes      themes.Repository
	logger      logging.Logger
	addr        string
	environment string
	jwtSecret   []byte
	cookieTTL   time.Duration
	corsOrigins []string
}

func NewServer(cfg *config.Config, userService *users.Service, entryService *journal.Service, themeRepo themes.Repository, logger logging.Logger) *Server {
	return &Server{
		users:       userService,
		entries:     entryService,
		themes:      themeRepo,
		logger:      logger.With("module", "httpapi"),
		addr:        cfg.EndpointAddrHTTP,
		environment: cfg.Environment,
		jwtSecret:   []byte(cfg.SecretKey),
		cookieTTL:   cfg.TokenValidityDuration,
		corsOrigins: cfg.CORSAllowedOrigins,
	}
}

// Handler builds the full route tree with CORS, request logging and the
// session middleware on protected routes.
func (s *Server) Handler() http.Handler {
	mainMux := http.NewServeMux()

	mainMux.HandleFunc("GET /health", s.handleHealth)

	authMux := http.NewServeMux()
	authMux.HandleFunc("POST /sign-up", s.handleSignUp)
	authMux.HandleFunc("POST /login", s.handleLogin)
	authMux.HandleFunc("POST /logout", s.handleLogout)

	mainMux.Handle("/api/v1/auth/",
		http.StripPrefix("/api/v1/auth", authMux),
	)

	protectedMux := http.NewServeMux()
	protectedMux.HandleFunc("GET /entries", s.handleListEntries)
	protectedMux.HandleFunc("POST /entries", s.handleCreateEntry)
	protectedMux.HandleFunc("GET /theme", s.handleGetTheme)
	protectedMux.HandleFunc("PUT /theme", s.handlePutTheme)

	mainMux.Handle("/api/v1/",
		http.StripPrefix("/api/v1", s.authMiddleware(protectedMux)),
	)

	c := cors.New(cors.Options{
		AllowedOrigins:   s.corsOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	})

	return s.requestLogger(c.Handler(mainMux))
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.Handler(),
		// Timeouts prevent resource exhaustion from slow clients
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		s.logger.Info(ctx, "starting http server", "addr", s.addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s.logger.Info(ctx, "shutting down http server")
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
