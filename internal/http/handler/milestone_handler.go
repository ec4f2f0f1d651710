package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ZainRafiqueDev/task-manage-back-sub000/internal/domain"
	"github.com/ZainRafiqueDev/task-manage-back-sub000/internal/service"
)

// MilestoneHandler exposes the milestone ledger endpoints
type MilestoneHandler struct {
	milestones *service.MilestoneService
	logger     *zap.Logger
}

func NewMilestoneHandler(milestones *service.MilestoneService, logger *zap.Logger) *MilestoneHandler {
	return &MilestoneHandler{milestones: milestones, logger: logger}
}

// Add handles POST /projects/{id}/milestones
func (h *MilestoneHandler) Add(w http.ResponseWriter, r *http.Request) {
	projectID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, domain.ErrorKindInvalidArg, "invalid project id")
		return
	}

	var req domain.AddMilestoneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, domain.ErrorKindInvalidArg, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	view, err := h.milestones.Add(r.Context(), projectID, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, "milestone added", view)
}

// Update handles PUT /projects/{id}/milestones/{milestoneId}
func (h *MilestoneHandler) Update(w http.ResponseWriter, r *http.Request) {
	projectID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, domain.ErrorKindInvalidArg, "invalid project id")
		return
	}
	milestoneID, err := uuid.Parse(chi.URLParam(r, "milestoneId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, domain.ErrorKindInvalidArg, "invalid milestone id")
		return
	}

	var req domain.UpdateMilestoneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, domain.ErrorKindInvalidArg, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	view, err := h.milestones.Update(r.Context(), projectID, milestoneID, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, "milestone updated", view)
}

// Delete handles DELETE /projects/{id}/milestones/{milestoneId}
func (h *MilestoneHandler) Delete(w http.ResponseWriter, r *http.Request) {
	projectID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, domain.ErrorKindInvalidArg, "invalid project id")
		return
	}
	milestoneID, err := uuid.Parse(chi.URLParam(r, "milestoneId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, domain.ErrorKindInvalidArg, "invalid milestone id")
		return
	}

	view, err := h.milestones.Delete(r.Context(), projectID, milestoneID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, "milestone deleted", view)
}
