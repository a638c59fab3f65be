package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	ErrCodeUnknown  = "ERR_UNKNOWN"
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation error codes
const (
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeInvalidAmount is used for non-positive or malformed money amounts
	ErrCodeInvalidAmount = "ERR_INVALID_AMOUNT"
	// ErrCodeExceedsRemaining is used when a debt payment is larger than what is owed
	ErrCodeExceedsRemaining = "ERR_EXCEEDS_REMAINING"
	ErrCodeInvalidSlug      = "ERR_INVALID_SLUG"
	ErrCodeInvalidRole      = "ERR_INVALID_ROLE"
	ErrCodeInvalidStatus    = "ERR_INVALID_STATUS"
	ErrCodeAlreadyInactive  = "ERR_ALREADY_INACTIVE"
)

// Authentication error codes
const (
	ErrCodeUnauthorized       = "ERR_UNAUTHORIZED"
	ErrCodeInvalidCredentials = "ERR_INVALID_CREDENTIALS"
	ErrCodeForbidden          = "ERR_FORBIDDEN"
	// ErrCodeLastAdmin is used when a change would leave a club without an active admin
	ErrCodeLastAdmin = "ERR_LAST_ADMIN"
)

// Resource error codes
const (
	ErrCodeNotFound            = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists       = "ERR_ALREADY_EXISTS"
	ErrCodeConflict            = "ERR_CONFLICT"
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"
)

// Input error codes
const (
	ErrCodeBadRequest   = "ERR_BAD_REQUEST"
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	ErrCodeInvalidJSON  = "ERR_INVALID_JSON"
	ErrCodeTooLarge     = "ERR_REQUEST_TOO_LARGE"
)

// Rate limiting error codes
const (
	ErrCodeRateLimited = "ERR_RATE_LIMITED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	// General errors
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	// Validation errors -> 400 Bad Request
	ErrCodeValidation:       http.StatusBadRequest,
	ErrCodeInvalidAmount:    http.StatusBadRequest,
	ErrCodeExceedsRemaining: http.StatusBadRequest,
	ErrCodeInvalidSlug:      http.StatusBadRequest,
	ErrCodeInvalidRole:      http.StatusBadRequest,
	ErrCodeInvalidStatus:    http.StatusBadRequest,
	ErrCodeAlreadyInactive:  http.StatusBadRequest,

	// Auth errors
	ErrCodeUnauthorized:       http.StatusUnauthorized,
	ErrCodeInvalidCredentials: http.StatusUnauthorized,
	ErrCodeForbidden:          http.StatusForbidden,
	ErrCodeLastAdmin:          http.StatusForbidden,

	// Resource errors
	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConflict:            http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,

	// Input errors -> 400 Bad Request
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,
	ErrCodeInvalidJSON:  http.StatusBadRequest,
	ErrCodeTooLarge:     http.StatusRequestEntityTooLarge,

	// Rate limiting -> 429 Too Many Requests
	ErrCodeRateLimited: http.StatusTooManyRequests,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes to API error codes.
// Field-level domain codes (INVALID_NAME, INVALID_EMAIL...) collapse into
// ERR_INVALID_INPUT.
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":            ErrCodeNotFound,
	"ALREADY_EXISTS":       ErrCodeAlreadyExists,
	"CONCURRENCY_CONFLICT": ErrCodeConcurrencyConflict,
	"UNAUTHORIZED":         ErrCodeUnauthorized,
	"INVALID_CREDENTIALS":  ErrCodeInvalidCredentials,
	"FORBIDDEN":            ErrCodeForbidden,
	"LAST_ADMIN":           ErrCodeLastAdmin,
	"INVALID_INPUT":        ErrCodeInvalidInput,
	"INVALID_STATE":        ErrCodeInvalidInput,
	"INVALID_AMOUNT":       ErrCodeInvalidAmount,
	"EXCEEDS_REMAINING":    ErrCodeExceedsRemaining,
	"INVALID_SLUG":         ErrCodeInvalidSlug,
	"INVALID_ROLE":         ErrCodeInvalidRole,
	"INVALID_STATUS":       ErrCodeInvalidStatus,
	"ALREADY_INACTIVE":     ErrCodeAlreadyInactive,
	"INVALID_NAME":         ErrCodeInvalidInput,
	"INVALID_EMAIL":        ErrCodeInvalidInput,
	"INVALID_PASSWORD":     ErrCodeInvalidInput,
	"INVALID_PLAN":         ErrCodeInvalidInput,
	"INVALID_CLUB":         ErrCodeInvalidInput,
	"INVALID_DESCRIPTION":  ErrCodeInvalidInput,
	"VALIDATION_ERROR":     ErrCodeValidation,
	"BAD_REQUEST":          ErrCodeBadRequest,
	"PASSWORD_HASH_ERROR":  ErrCodeInternal,
	"INTERNAL_ERROR":       ErrCodeInternal,
}

// NormalizeErrorCode converts a domain error code to the API format.
// Codes already in the API format or unknown are returned as-is.
func NormalizeErrorCode(code string) string {
	if newCode, ok := DomainErrorCodeMapping[code]; ok {
		return newCode
	}
	return code
}
