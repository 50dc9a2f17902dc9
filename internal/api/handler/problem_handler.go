package handler

import (
	"net/http"
	"strconv"

	"codearena/internal/api/middleware"
	"codearena/internal/app/service"
	"codearena/internal/common"

	"github.com/go-chi/chi/v5"
)

type ProblemHandler struct {
	problemService ProblemService
}

func NewProblemHandler(ps ProblemService) *ProblemHandler {
	return &ProblemHandler{problemService: ps}
}

func (h *ProblemHandler) RegisterRoutes(r chi.Router) {
	r.With(middleware.OptionalUser).Get("/", h.listProblems)
	r.With(middleware.OptionalUser).Get("/{problemNumber}", h.getProblem)

	r.Group(func(adminRouter chi.Router) {
		adminRouter.Use(middleware.Authenticator)
		adminRouter.Use(middleware.AdminOnly)
		adminRouter.Post("/", h.createProblem)
	})
}

func (h *ProblemHandler) listProblems(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := service.ListProblemsQuery{
		Difficulty: q.Get("difficulty"),
		Category:   q.Get("category"),
		Tags:       parseCommaSeparated(q.Get("tags")),
		Search:     q.Get("search"),
		SortBy:     q.Get("sortBy"),
		Order:      q.Get("order"),
		Page:       parsePositiveInt(q.Get("page"), 1),
		Limit:      parsePositiveInt(q.Get("limit"), 0),
	}

	page, err := h.problemService.ListProblems(r.Context(), query)
	if err != nil {
		common.RespondWithDomainError(w, "Failed to list problems", err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, page)
}

func (h *ProblemHandler) getProblem(w http.ResponseWriter, r *http.Request) {
	number, err := strconv.Atoi(chi.URLParam(r, "problemNumber"))
	if err != nil || number <= 0 {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid problem number", common.ErrBadRequest)
		return
	}

	userID, _ := middleware.GetUserIDFromContext(r.Context()) // Empty for anonymous callers
	problem, err := h.problemService.GetProblemByNumber(r.Context(), number, userID)
	if err != nil {
		common.RespondWithDomainError(w, "Problem not found", err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, problem)
}

func (h *ProblemHandler) createProblem(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req service.CreateProblemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload", err)
		return
	}

	problem, err := h.problemService.CreateProblem(r.Context(), userID, req)
	if err != nil {
		common.RespondWithDomainError(w, "Failed to create problem", err)
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, problem)
}
