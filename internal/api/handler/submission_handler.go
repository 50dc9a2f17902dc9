package handler

import (
	"net/http"

	"codearena/internal/api/middleware"
	"codearena/internal/app/service"
	"codearena/internal/common"
	"codearena/internal/domain/model"

	"github.com/go-chi/chi/v5"
)

type SubmissionHandler struct {
	submissionService SubmissionService
}

func NewSubmissionHandler(ss SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{submissionService: ss}
}

type submitResponse struct {
	Message    string            `json:"message"`
	Submission *model.Submission `json:"submission"`
}

func (h *SubmissionHandler) RegisterRoutes(r chi.Router) {
	r.Use(middleware.Authenticator) // All submission routes require auth
	r.Post("/", h.createSubmission)
	r.Get("/user", h.listMySubmissions)
	r.Get("/{submissionID}", h.getSubmission)
}

func (h *SubmissionHandler) createSubmission(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req service.SubmitRequest
	if err := decodeJSON(w, r, &req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload", err)
		return
	}

	submission, err := h.submissionService.Submit(r.Context(), userID, req)
	if err != nil {
		common.RespondWithDomainError(w, "Submission failed", err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, submitResponse{Message: "Submission completed", Submission: submission})
}

func (h *SubmissionHandler) listMySubmissions(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	submissions, err := h.submissionService.ListUserSubmissions(r.Context(), userID)
	if err != nil {
		common.RespondWithDomainError(w, "Failed to fetch submissions", err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, submissions)
}

func (h *SubmissionHandler) getSubmission(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	submission, err := h.submissionService.GetSubmission(r.Context(), userID, chi.URLParam(r, "submissionID"))
	if err != nil {
		common.RespondWithDomainError(w, "Submission not found", err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, submission)
}
