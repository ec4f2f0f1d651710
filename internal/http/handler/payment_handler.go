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

// PaymentHandler exposes the payment ledger endpoints
type PaymentHandler struct {
	payments *service.PaymentService
	logger   *zap.Logger
}

func NewPaymentHandler(payments *service.PaymentService, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{payments: payments, logger: logger}
}

// Add handles POST /projects/{id}/payments
func (h *PaymentHandler) Add(w http.ResponseWriter, r *http.Request) {
	projectID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, domain.ErrorKindInvalidArg, "invalid project id")
		return
	}

	var req domain.AddPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, domain.ErrorKindInvalidArg, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	view, err := h.payments.Add(r.Context(), projectID, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, "payment added", view)
}

// Update handles PUT /projects/{id}/payments/{paymentId}
func (h *PaymentHandler) Update(w http.ResponseWriter, r *http.Request) {
	projectID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, domain.ErrorKindInvalidArg, "invalid project id")
		return
	}
	paymentID, err := uuid.Parse(chi.URLParam(r, "paymentId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, domain.ErrorKindInvalidArg, "invalid payment id")
		return
	}

	var req domain.UpdatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, domain.ErrorKindInvalidArg, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	view, err := h.payments.Update(r.Context(), projectID, paymentID, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, "payment updated", view)
}

// Delete handles DELETE /projects/{id}/payments/{paymentId}
func (h *PaymentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	projectID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, domain.ErrorKindInvalidArg, "invalid project id")
		return
	}
	paymentID, err := uuid.Parse(chi.URLParam(r, "paymentId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, domain.ErrorKindInvalidArg, "invalid payment id")
		return
	}

	view, err := h.payments.Delete(r.Context(), projectID, paymentID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, "payment deleted", view)
}
