package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"libris/internal/models"
)

type recommender interface {
	Answer(ctx context.Context, query string) (string, error)
}

type QueryHandler struct {
	recommend recommender
}

func NewQueryHandler(recommend recommender) *QueryHandler {
	return &QueryHandler{recommend: recommend}
}

// Respond handles POST /api/openai/response.
func (h *QueryHandler) Respond(w http.ResponseWriter, r *http.Request) {
	var req models.UserQuery
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if strings.TrimSpace(req.UserQuery) == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "user_query parameter is required and cannot be empty.", r))
		return
	}

	answer, err := h.recommend.Answer(r.Context(), req.UserQuery)
	if err != nil {
		log.Printf("recommendation failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResp("AI_ERROR", "Failed to get AI response", r))
		return
	}

	writeText(w, http.StatusOK, answer)
}
