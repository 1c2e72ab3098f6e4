package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"moviehub/backend/internal/auth"
)

const maxAuthBodyBytes = 1 << 20

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

func decodeCredentials(w http.ResponseWriter, r *http.Request) (credentialsRequest, bool) {
	var req credentialsRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxAuthBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, msgMissingCredentials)
		return req, false
	}
	return req, true
}

// writeAuthError maps auth service errors to responses. Anything it does not
// recognize is logged and reported as internalMsg.
func (s *Server) writeAuthError(w http.ResponseWriter, r *http.Request, err error, internalMsg string) {
	switch {
	case errors.Is(err, auth.ErrMissingCredentials):
		writeError(w, http.StatusBadRequest, msgMissingCredentials)
	case errors.Is(err, auth.ErrPasswordTooLong):
		writeError(w, http.StatusBadRequest, msgPasswordTooLong)
	case errors.Is(err, auth.ErrUsernameTaken):
		writeError(w, http.StatusConflict, msgUsernameTaken)
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeError(w, http.StatusBadRequest, msgInvalidCredentials)
	default:
		s.log.Error().Err(err).Str("path", r.URL.Path).Str("request_id", r.Header.Get(requestIDHeader)).Msg("auth request failed")
		writeError(w, http.StatusInternalServerError, internalMsg)
	}
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	req, ok := decodeCredentials(w, r)
	if !ok {
		return
	}

	user, err := s.auth.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		s.writeAuthError(w, r, err, msgRegisterFailed)
		return
	}

	s.log.Info().Str("user_id", user.ID).Msg("user registered")
	writeJSON(w, http.StatusCreated, messageResponse{Message: msgRegistered})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	req, ok := decodeCredentials(w, r)
	if !ok {
		return
	}

	token, err := s.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		s.writeAuthError(w, r, err, msgLoginFailed)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{Message: msgLoggedIn, Token: token})
}
