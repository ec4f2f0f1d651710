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

// TimeEntryHandler exposes the time ledger endpoints
type TimeEntryHandler struct {
	timeEntries *service.TimeEntryService
	logger      *zap.Logger
}

func NewTimeEntryHandler(timeEntries *service.TimeEntryService, logger *zap.Logger) *TimeEntryHandler {
	return &TimeEntryHandler{timeEntries: timeEntries, logger: logger}
}

// Add handles POST /projects/{id}/time-entries
func (h *TimeEntryHandler) Add(w http.ResponseWriter, r *http.Request) {
	projectID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, domain.ErrorKindInvalidArg, "invalid project id")
		return
	}

	var req domain.AddTimeEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, domain.ErrorKindInvalidArg, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	view, err := h.timeEntries.Add(r.Context(), projectID, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, "time entry added", view)
}

// Update handles PUT /projects/{id}/time-entries/{entryId}
func (h *TimeEntryHandler) Update(w http.ResponseWriter, r *http.Request) {
	projectID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, domain.ErrorKindInvalidArg, "invalid project id")
		return
	}
	entryID, err := uuid.Parse(chi.URLParam(r, "entryId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, domain.ErrorKindInvalidArg, "invalid time entry id")
		return
	}

	var req domain.UpdateTimeEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, domain.ErrorKindInvalidArg, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	view, err := h.timeEntries.Update(r.Context(), projectID, entryID, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, "time entry updated", view)
}

// Delete handles DELETE /projects/{id}/time-entries/{entryId}
func (h *TimeEntryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	projectID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, domain.ErrorKindInvalidArg, "invalid project id")
		return
	}
	entryID, err := uuid.Parse(chi.URLParam(r, "entryId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, domain.ErrorKindInvalidArg, "invalid time entry id")
		return
	}

	view, err := h.timeEntries.Delete(r.Context(), projectID, entryID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, "time entry deleted", view)
}
