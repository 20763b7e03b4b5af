package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"transparency/internal/logging"
	"transparency/internal/model"
	"transparency/internal/service"
)

// maxBodyBytes caps request bodies
const maxBodyBytes = 1 << 20

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authSvc *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authSvc *service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Register handles POST /v1/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if !decode(w, r, &req) {
		return
	}

	resp, err := h.authSvc.Register(r.Context(), &req)
	switch {
	case errors.Is(err, service.ErrMissingCredentials), errors.Is(err, service.ErrPasswordTooLong):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrUserExists):
		writeError(w, http.StatusConflict, err.Error())
	case err != nil:
		internalError(w, "Registration failed", err)
	default:
		writeJSON(w, http.StatusCreated, resp)
	}
}

// Login handles POST /v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if !decode(w, r, &req) {
		return
	}

	resp, err := h.authSvc.Login(r.Context(), &req)
	switch {
	case errors.Is(err, service.ErrMissingCredentials):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, err.Error())
	case err != nil:
		internalError(w, "Login failed", err)
	default:
		writeJSON(w, http.StatusOK, resp)
	}
}

// Helper functions
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// writeValidation answers 400 with the offending fields, or reports false when err is no validation error
func writeValidation(w http.ResponseWriter, err error) bool {
	var verr *model.ValidationError
	if !errors.As(err, &verr) {
		return false
	}
	writeJSON(w, http.StatusBadRequest, map[string]interface{}{
		"error":  verr.Error(),
		"fields": verr.Fields,
	})
	return true
}

// internalError logs the cause and answers with a generic message
func internalError(w http.ResponseWriter, message string, err error) {
	logging.Log.WithError(err).Error(message)
	writeError(w, http.StatusInternalServerError, message)
}

func decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
