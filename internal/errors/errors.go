package errors

// ErrorResponse represents a standardized error response. Error is a stable,
// user-facing message; Code is a machine-readable identifier. Responses never
// carry stack traces or internal detail.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// Stable error codes used across handlers.
const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeUserAlreadyExists  = "USER_ALREADY_EXISTS"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeUserNotFound       = "USER_NOT_FOUND"
	CodePasswordRequired   = "PASSWORD_REQUIRED"
	CodeInvalidPassword    = "INVALID_PASSWORD"
	CodeInternal           = "INTERNAL_ERROR"
)
