package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mkravets/falljournal/internal/common"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// POST /api/v1/auth/sign-up
func (s *Server) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONResponse(w, http.StatusBadRequest, Payload{Success: false, Message: "Invalid request body"})
		return
	}

	if req.Username == "" || req.Password == "" {
		JSONResponse(w, http.StatusBadRequest, Payload{Success: false, Message: "Username and password are required"})
		return
	}

	user, err := s.users.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			JSONResponse(w, http.StatusConflict, Payload{Success: false, Message: "Username already taken"})
			return
		}
		s.logger.Error(r.Context(), "sign-up failed", "error", err)
		JSONResponse(w, http.StatusInternalServerError, Payload{Success: false, Message: "Internal server error"})
		return
	}

	JSONResponse(w, http.StatusCreated, Payload{
		Success: true,
		Message: "User registered",
		Data:    map[string]string{"username": user.Name},
	})
}

// POST /api/v1/auth/login
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONResponse(w, http.StatusBadRequest, Payload{Success: false, Message: "Invalid request body"})
		return
	}

	token, err := s.users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			JSONResponse(w, http.StatusUnauthorized, Payload{Success: false, Message: "Invalid username or password"})
			return
		}
		s.logger.Error(r.Context(), "login failed", "error", err)
		JSONResponse(w, http.StatusInternalServerError, Payload{Success: false, Message: "Internal server error"})
		return
	}

	isProd := s.environment == "production"
	sameSite := http.SameSiteLaxMode
	if isProd {
		sameSite = http.SameSiteNoneMode
	}

	http.SetCookie(w, &http.Cookie{
		Name:     tokenCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.cookieTTL.Seconds()),
		Secure:   isProd,
		HttpOnly: true,
		SameSite: sameSite,
	})

	JSONResponse(w, http.StatusOK, Payload{Success: true, Message: "Login successful"})
}

// POST /api/v1/auth/logout
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     tokenCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1, // maxAge < 0 deletes the cookie
		Secure:   s.environment == "production",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	JSONResponse(w, http.StatusOK, Payload{Success: true, Message: "Logged out successfully"})
}
