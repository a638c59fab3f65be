package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is matches any DomainError carrying the same code, so errors.Is works
// for errors built with a custom message.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Recurso no encontrado")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "El recurso ya existe")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Datos de entrada inválidos")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "El recurso fue modificado por otra operación, intente nuevamente")
	ErrUnauthorized        = NewDomainError("UNAUTHORIZED", "No autorizado para realizar esta acción")
	ErrForbidden           = NewDomainError("FORBIDDEN", "Acceso prohibido a este recurso")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operación no permitida en el estado actual")
)

// NotFoundError returns a NOT_FOUND error with a specific message
func NotFoundError(message string) *DomainError {
	return NewDomainError(ErrNotFound.Code, message)
}

// ForbiddenError returns a FORBIDDEN error with a specific message
func ForbiddenError(message string) *DomainError {
	return NewDomainError(ErrForbidden.Code, message)
}

// InvalidInputError returns an INVALID_INPUT error with a specific message
func InvalidInputError(message string) *DomainError {
	return NewDomainError(ErrInvalidInput.Code, message)
}
