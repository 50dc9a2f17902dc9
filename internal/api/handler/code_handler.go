package handler

import (
	"net/http"

	"codearena/internal/api/middleware"
	"codearena/internal/app/service"
	"codearena/internal/common"

	"github.com/go-chi/chi/v5"
)

type CodeHandler struct {
	codeService CodeService
}

func NewCodeHandler(cs CodeService) *CodeHandler {
	return &CodeHandler{codeService: cs}
}

// RegisterRoutes mounts the code runner.
func (h *CodeHandler) RegisterRoutes(r chi.Router) {
	r.With(middleware.Authenticator).Post("/execute", h.execute)
}

// RegisterCheckRoutes mounts the judge connectivity check.
func (h *CodeHandler) RegisterCheckRoutes(r chi.Router) {
	r.Get("/judge0", h.checkJudge)
}

func (h *CodeHandler) execute(w http.ResponseWriter, r *http.Request) {
	var req service.ExecuteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload", err)
		return
	}
	result, err := h.codeService.Execute(r.Context(), req)
	if err != nil {
		common.RespondWithDomainError(w, "Code execution failed", err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, result)
}

func (h *CodeHandler) checkJudge(w http.ResponseWriter, r *http.Request) {
	check, err := h.codeService.CheckJudge(r.Context())
	if err != nil {
		common.RespondWithJSON(w, http.StatusInternalServerError, struct {
			*service.JudgeCheck
			Error string `json:"error"`
		}{check, err.Error()})
		return
	}
	common.RespondWithJSON(w, http.StatusOK, check)
}
