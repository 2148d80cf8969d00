package models

// APIError is the standardized error response body for the API.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Error code constants
const (
	ErrValidationFailed = "VALIDATION_FAILED"
	ErrConflict         = "CONFLICT"
	ErrUnauthorized     = "UNAUTHORIZED"
	ErrForbidden        = "FORBIDDEN"
	ErrNotFound         = "NOT_FOUND"
	ErrInternalServer   = "INTERNAL_SERVER_ERROR"
)

// Client-facing messages that must stay generic. Login failures share one
// message regardless of whether the email or the password was wrong, so the
// API cannot be used to enumerate accounts.
const (
	MsgInvalidCredentials = "Invalid email or password"
	MsgInternalError      = "Internal Server Error"
)

// NewAPIError creates a new API error with the given code and message
func NewAPIError(code, message string, details ...map[string]interface{}) APIError {
	err := APIError{
		Code:    code,
		Message: message,
	}
	if len(details) > 0 {
		err.Details = details[0]
	}
	return err
}
