package domain

// Error kinds carried in structured error responses
const (
	ErrorKindValidation    = "validation_error"
	ErrorKindNotFound      = "not_found"
	ErrorKindInvalidArg    = "invalid_argument"
	ErrorKindInvalidState  = "invalid_state"
	ErrorKindConflict      = "conflict"
	ErrorKindQuotaExceeded = "quota_exceeded"
	ErrorKindUnauthorized  = "unauthorized"
	ErrorKindForbidden     = "forbidden"
	ErrorKindInternal      = "internal_error"
)

// APIError represents a structured API error response
type APIError struct {
	Success bool              `json:"success"`
	Kind    string            `json:"kind"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// ValidationMessages provides human-readable validation error messages
// These map validator tags to user-friendly messages
var ValidationMessages = map[string]string{
	"required": "This field is required",
	"email":    "Must be a valid email address",
	"max":      "Exceeds maximum length",
	"min":      "Below minimum length",
	"gte":      "Must be greater than or equal to minimum value",
	"gt":       "Must be greater than minimum value",
	"lte":      "Must be less than or equal to maximum value",
	"lt":       "Must be less than maximum value",
	"uuid":     "Must be a valid UUID",
	"oneof":    "Must be one of the allowed values",
	"numeric":  "Must be a numeric value",
	"len":      "Must be exactly the specified length",
}

// GetValidationMessage returns a human-readable message for a validation tag
func GetValidationMessage(tag string) string {
	if msg, ok := ValidationMessages[tag]; ok {
		return msg
	}
	return "Validation failed: " + tag
}
