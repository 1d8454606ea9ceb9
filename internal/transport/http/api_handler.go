package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"millionaire-quiz-service/internal/app"
	"millionaire-quiz-service/internal/domain"
)

// APIHandler serves the read models around the game: topic selection,
// player standings and achievements.
type APIHandler struct {
	service *app.GameService
}

func NewAPIHandler(service *app.GameService) *APIHandler {
	return &APIHandler{service: service}
}

// Topics lists playable topics, optionally filtered by ?name=.
func (h *APIHandler) Topics(w http.ResponseWriter, r *http.Request) {
	topics, err := h.service.ListTopics(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, topics)
}

// Standings returns all players ordered by points, level and games played.
func (h *APIHandler) Standings(w http.ResponseWriter, r *http.Request) {
	standings, err := h.service.Standings(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, standings)
}

// Achievements returns a player's badges and completed topics.
func (h *APIHandler) Achievements(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		http.Error(w, "missing userId", http.StatusBadRequest)
		return
	}
	achievements, err := h.service.PlayerAchievements(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, achievements)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write json: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrTopicNotFound),
		errors.Is(err, domain.ErrProfileNotFound),
		errors.Is(err, domain.ErrQuizNotFound):
		status = http.StatusNotFound
	}
	http.Error(w, err.Error(), status)
}
