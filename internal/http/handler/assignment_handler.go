package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ZainRafiqueDev/task-manage-back-sub000/internal/domain"
	"github.com/ZainRafiqueDev/task-manage-back-sub000/internal/service"
)

// AssignmentHandler exposes pick/release and the admin staffing overrides
type AssignmentHandler struct {
	assignments *service.AssignmentService
	logger      *zap.Logger
}

func NewAssignmentHandler(assignments *service.AssignmentService, logger *zap.Logger) *AssignmentHandler {
	return &AssignmentHandler{assignments: assignments, logger: logger}
}

// Pick handles PUT /projects/{id}/pick
func (h *AssignmentHandler) Pick(w http.ResponseWriter, r *http.Request) {
	projectID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, domain.ErrorKindInvalidArg, "invalid project id")
		return
	}

	view, err := h.assignments.Pick(r.Context(), projectID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, "project picked", view)
}

// Release handles PUT /projects/{id}/release. The body is optional.
func (h *AssignmentHandler) Release(w http.ResponseWriter, r *http.Request) {
	projectID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, domain.ErrorKindInvalidArg, "invalid project id")
		return
	}

	var req domain.ReleaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		respondWithError(w, http.StatusBadRequest, domain.ErrorKindInvalidArg, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	view, err := h.assignments.Release(r.Context(), projectID, req.Reason)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, "project released", view)
}

// AssignTeamLead handles PUT /projects/{id}/teamlead
func (h *AssignmentHandler) AssignTeamLead(w http.ResponseWriter, r *http.Request) {
	projectID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, domain.ErrorKindInvalidArg, "invalid project id")
		return
	}

	var req domain.AssignTeamLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, domain.ErrorKindInvalidArg, "invalid request body")
		return
	}

	view, err := h.assignments.AssignTeamLead(r.Context(), projectID, req.TeamLeadID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, "team lead assigned", view)
}

// AssignEmployees handles PUT /projects/{id}/employees
func (h *AssignmentHandler) AssignEmployees(w http.ResponseWriter, r *http.Request) {
	projectID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, domain.ErrorKindInvalidArg, "invalid project id")
		return
	}

	var req domain.AssignEmployeesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, domain.ErrorKindInvalidArg, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	view, err := h.assignments.AssignEmployees(r.Context(), projectID, req.EmployeeIDs)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, "employees assigned", view)
}
