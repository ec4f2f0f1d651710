package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ZainRafiqueDev/task-manage-back-sub000/internal/domain"
	"github.com/ZainRafiqueDev/task-manage-back-sub000/internal/service"
)

var validate = validator.New()

// respondJSON wraps data in the standard success envelope
func respondJSON(w http.ResponseWriter, status int, message string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(domain.Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// respondValidationError sends a standardized validation error response with specific field messages
func respondValidationError(w http.ResponseWriter, err error) {
	fields := make(map[string]string)
	if ve, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range ve {
			fields[toJSONFieldName(fe.Field())] = formatValidationError(fe)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(domain.APIError{
		Success: false,
		Kind:    domain.ErrorKindValidation,
		Message: "One or more fields failed validation",
		Errors:  fields,
	})
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", toJSONFieldName(fe.Field()))
	case "email":
		return "Must be a valid email address"
	case "max":
		return fmt.Sprintf("Must be at most %s characters", fe.Param())
	case "min":
		return fmt.Sprintf("Must be at least %s characters", fe.Param())
	case "gte":
		return fmt.Sprintf("Must be greater than or equal to %s", fe.Param())
	case "gt":
		return fmt.Sprintf("Must be greater than %s", fe.Param())
	case "lte":
		return fmt.Sprintf("Must be less than or equal to %s", fe.Param())
	case "lt":
		return fmt.Sprintf("Must be less than %s", fe.Param())
	case "uuid":
		return "Must be a valid UUID"
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", fe.Param())
	default:
		return domain.GetValidationMessage(fe.Tag())
	}
}

// toJSONFieldName converts a Go struct field name to its JSON equivalent (camelCase)
func toJSONFieldName(field string) string {
	if len(field) == 0 {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}

// respondWithError sends a standardized JSON error response
func respondWithError(w http.ResponseWriter, status int, kind, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(domain.APIError{
		Success: false,
		Kind:    kind,
		Message: message,
	})
}

// respondServiceError maps service sentinel errors to HTTP status codes and
// error kinds. Anything unmapped is reported as an internal error without
// leaking the underlying message.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrProjectNotFound),
		errors.Is(err, service.ErrPaymentNotFound),
		errors.Is(err, service.ErrMilestoneNotFound),
		errors.Is(err, service.ErrTimeEntryNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrNotificationNotFound):
		respondWithError(w, http.StatusNotFound, domain.ErrorKindNotFound, err.Error())

	case errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrInvalidHours),
		errors.Is(err, service.ErrInvalidCategory),
		errors.Is(err, service.ErrInvalidRole),
		errors.Is(err, service.ErrNotTeamLead):
		respondWithError(w, http.StatusBadRequest, domain.ErrorKindInvalidArg, err.Error())

	case errors.Is(err, service.ErrNotHourlyProject),
		errors.Is(err, service.ErrProjectNotPickable),
		errors.Is(err, service.ErrNoTeamLead):
		respondWithError(w, http.StatusUnprocessableEntity, domain.ErrorKindInvalidState, err.Error())

	case errors.Is(err, service.ErrQuotaExceeded):
		respondWithError(w, http.StatusConflict, domain.ErrorKindQuotaExceeded, err.Error())

	case errors.Is(err, service.ErrProjectAlreadyOwned),
		errors.Is(err, service.ErrProjectTerminal),
		errors.Is(err, service.ErrEmailTaken):
		respondWithError(w, http.StatusConflict, domain.ErrorKindConflict, err.Error())

	case errors.Is(err, service.ErrNotProjectOwner),
		errors.Is(err, service.ErrPermissionDenied):
		respondWithError(w, http.StatusForbidden, domain.ErrorKindForbidden, err.Error())

	case errors.Is(err, service.ErrUnauthorized),
		errors.Is(err, service.ErrInvalidCredentials):
		respondWithError(w, http.StatusUnauthorized, domain.ErrorKindUnauthorized, err.Error())

	default:
		respondWithError(w, http.StatusInternalServerError, domain.ErrorKindInternal, "internal server error")
	}
}
