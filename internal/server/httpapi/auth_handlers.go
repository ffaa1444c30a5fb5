package httpapi

import (
	"encoding/json"
	"net/http"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var body registerRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := s.auth.Register(r.Context(), body.Email, body.Password, body.Name)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "Registered", "email", user.Email)
	writeSuccess(w, http.StatusCreated, "User registered successfully", user)
}

// handleLogin runs the password strategy and, on success, mints the
// token pair for the authenticated identity.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	user, err := s.password.Authenticate(r)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	pair, err := s.auth.Login(user)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "Logged in", "user", user.ID)
	writeSuccess(w, http.StatusOK, "Login successful", pair)
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var body refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.RefreshToken == "" {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	token, err := s.auth.Refresh(body.RefreshToken)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Token refreshed", token)
}
