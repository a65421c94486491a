package apperrors

// ErrorCode identifies a failure mode in API responses.
type ErrorCode string

const (
	// System and unknown failures
	CodeSystemError          ErrorCode = "SYSTEM_ERROR"
	CodeDatabaseError        ErrorCode = "DATABASE_ERROR"
	CodeExternalServiceError ErrorCode = "EXTERNAL_SERVICE_ERROR"

	// Generic business-logic codes
	CodeNotFound            ErrorCode = "NOT_FOUND"
	CodeAlreadyExists       ErrorCode = "ALREADY_EXISTS"
	CodeValidationError     ErrorCode = "VALIDATION_ERROR"
	CodeConflict            ErrorCode = "CONFLICT"
	CodeInsufficientCredits ErrorCode = "INSUFFICIENT_CREDITS"

	// Account and credential codes
	CodeInvalidEmail          ErrorCode = "INVALID_EMAIL"
	CodeInvalidPassword       ErrorCode = "INVALID_PASSWORD"
	CodeMissingPassword       ErrorCode = "MISSING_PASSWORD"
	CodeInvalidCredentials    ErrorCode = "INVALID_CREDENTIALS"
	CodeEmailExists           ErrorCode = "EMAIL_EXISTS"
	CodeInvalidToken          ErrorCode = "INVALID_TOKEN"
	CodeInvalidOrExpiredToken ErrorCode = "INVALID_OR_EXPIRED_TOKEN"
	CodeNotAuthenticated      ErrorCode = "NOT_AUTHENTICATED"
	CodeForbidden             ErrorCode = "FORBIDDEN"
)
