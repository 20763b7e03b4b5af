package handler

import (
	"net/http"
	"transparency/internal/model"
	"transparency/internal/service"
)

// QuestionHandler serves follow-up questions
type QuestionHandler struct {
	selector service.QuestionSelector
}

// NewQuestionHandler creates a new question handler
func NewQuestionHandler(selector service.QuestionSelector) *QuestionHandler {
	return &QuestionHandler{selector: selector}
}

// Generate handles POST /v1/questions/generate. Name and category are
// required. Generation failures fall back to the built-in catalog.
func (h *QuestionHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req model.GenerateQuestionsRequest
	if !decode(w, r, &req) {
		return
	}
	if writeValidation(w, req.ProductData.ValidateFields(model.FieldName, model.FieldCategory)) {
		return
	}

	writeJSON(w, http.StatusOK, model.GenerateQuestionsResponse{
		Success:   true,
		Questions: h.selector.Select(r.Context(), req.ProductData),
	})
}

// Providers handles GET /v1/questions/providers
func (h *QuestionHandler) Providers(w http.ResponseWriter, r *http.Request) {
	provider := h.selector.Provider()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"provider": provider,
		"fallback": "catalog",
		"remote":   provider != "catalog",
	})
}
