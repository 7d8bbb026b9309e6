package credential

import (
	"errors"
	"fmt"
)

// Kind classifies every failure that can leave the credential service.
type Kind int

// The taxonomy is closed: callers switch on these values only.
const (
	KindInternal Kind = iota
	KindValidation
	KindInvalidEmail
	KindNotFound
	KindConflict
	KindHashingFailure
	KindDatabase
)

// Code returns the stable machine-readable code for the kind.
func (k Kind) Code() string {
	switch k {
	case KindValidation:
		return "VALIDATION_ERROR"
	case KindInvalidEmail:
		return "INVALID_EMAIL"
	case KindNotFound:
		return "RESOURCE_NOT_FOUND"
	case KindConflict:
		return "RESOURCE_CONFLICT"
	case KindHashingFailure:
		return "PASSWORD_HASHING_ERROR"
	case KindDatabase:
		return "DATABASE_ERROR"
	default:
		return "INTERNAL_SERVER_ERROR"
	}
}

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindInvalidEmail:
		return "invalid_email"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindHashingFailure:
		return "hashing_failure"
	case KindDatabase:
		return "database"
	default:
		return "internal"
	}
}

// Store-level failures. Store implementations wrap these so the service can
// classify constraint violations without knowing the driver.
var (
	ErrUniqueViolation = errors.New("unique constraint violation")
	ErrCheckViolation  = errors.New("check constraint violation")
)

// Error is the classified error returned by Service.
// Message and Details are safe to expose; the wrapped cause is not.
type Error struct {
	Kind     Kind
	Message  string
	Details  map[string]any
	Resource string
	cause    error
}

// Error implements the error interface.
// The cause is included for server-side logs only.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes the internal cause to errors.Is / errors.As.
func (e *Error) Unwrap() error {
	return e.cause
}

// Validation reports input the caller must fix.
func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// InvalidEmail reports an email that failed the syntactic check.
func InvalidEmail(email string) *Error {
	return &Error{
		Kind:    KindInvalidEmail,
		Message: "Invalid email format",
		Details: map[string]any{"email": email},
	}
}

// NotFound reports a missing resource.
func NotFound(resource string) *Error {
	return &Error{
		Kind:     KindNotFound,
		Message:  resource + " not found",
		Resource: resource,
	}
}

// Conflict reports a uniqueness clash.
func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// HashingFailure wraps a hasher fault.
func HashingFailure(cause error) *Error {
	return &Error{Kind: KindHashingFailure, Message: "Password processing failed", cause: cause}
}

// DatabaseError wraps an unclassified store fault.
func DatabaseError(cause error) *Error {
	return &Error{Kind: KindDatabase, Message: "A database error occurred", cause: cause}
}

// Internal wraps any fault outside the taxonomy.
func Internal(cause error) *Error {
	return &Error{Kind: KindInternal, Message: "An internal server error occurred", cause: cause}
}

// Classify maps any error to a classified error. It is total: nil maps to nil,
// a classified error passes through, and anything else becomes Internal.
func Classify(err error) *Error {
	if err == nil {
		return nil
	}
	var ce *Error
	if errors.As(err, &ce) {
		return ce
	}
	return Internal(err)
}

// classifyStoreError maps an insert/find failure from the Store.
func classifyStoreError(err error) *Error {
	switch {
	case errors.Is(err, ErrUniqueViolation):
		return Conflict("Email address already exists")
	case errors.Is(err, ErrCheckViolation):
		return Validation("Email format is invalid")
	default:
		return DatabaseError(err)
	}
}
