package handler

import (
	"net/http"

	"codearena/internal/api/middleware"
	"codearena/internal/common"

	"github.com/go-chi/chi/v5"
)

type DashboardHandler struct {
	dashboardService DashboardService
}

func NewDashboardHandler(ds DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: ds}
}

func (h *DashboardHandler) RegisterRoutes(r chi.Router) {
	r.With(middleware.Authenticator).Get("/", h.getDashboard)
}

func (h *DashboardHandler) getDashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	dashboard, err := h.dashboardService.GetDashboard(r.Context(), userID)
	if err != nil {
		common.RespondWithDomainError(w, "Failed to load dashboard", err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, dashboard)
}
