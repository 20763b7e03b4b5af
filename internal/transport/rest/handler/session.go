package handler

import (
	"errors"
	"net/http"
	"transparency/internal/cache"
	"transparency/internal/model"
	"transparency/internal/service"
	"transparency/internal/transport/rest/middleware"

	"github.com/gorilla/mux"
)

// SessionHandler drives the multi-step product form
type SessionHandler struct {
	sessionSvc *service.SessionService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessionSvc *service.SessionService) *SessionHandler {
	return &SessionHandler{sessionSvc: sessionSvc}
}

// Start handles POST /v1/sessions
func (h *SessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessionSvc.Start(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		internalError(w, "Failed to start session", err)
		return
	}
	writeJSON(w, http.StatusCreated, session)
}

// Get handles GET /v1/sessions/{id}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessionSvc.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

// SaveAnswers handles PUT /v1/sessions/{id}/answers
func (h *SessionHandler) SaveAnswers(w http.ResponseWriter, r *http.Request) {
	var req model.SaveAnswersRequest
	if !decode(w, r, &req) {
		return
	}

	session, err := h.sessionSvc.SaveAnswers(r.Context(), mux.Vars(r)["id"], req.Answers)
	if err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

// Next handles POST /v1/sessions/{id}/next
func (h *SessionHandler) Next(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessionSvc.Next(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

// Report handles GET /v1/sessions/{id}/report?format=pdf|md
func (h *SessionHandler) Report(w http.ResponseWriter, r *http.Request) {
	report, err := h.sessionSvc.Report(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeSessionError(w, err)
		return
	}
	writeDocument(w, report, model.ParseReportFormat(r.URL.Query().Get("format")))
}

func writeSessionError(w http.ResponseWriter, err error) {
	if writeValidation(w, err) {
		return
	}
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrSessionCompleted), errors.Is(err, service.ErrSessionIncomplete),
		errors.Is(err, service.ErrSessionBusy), errors.Is(err, cache.ErrConflict):
		writeError(w, http.StatusConflict, err.Error())
	default:
		internalError(w, "Session update failed", err)
	}
}
