package handler

import (
	"net/http"

	"codearena/internal/common"

	"github.com/go-chi/chi/v5"
)

type LeaderboardHandler struct {
	leaderboardService LeaderboardService
}

func NewLeaderboardHandler(ls LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboardService: ls}
}

func (h *LeaderboardHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.getLeaderboard)
}

func (h *LeaderboardHandler) getLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit := parsePositiveInt(r.URL.Query().Get("limit"), 0)
	entries, err := h.leaderboardService.Top(r.Context(), limit)
	if err != nil {
		common.RespondWithDomainError(w, "Failed to load leaderboard", err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, entries)
}
