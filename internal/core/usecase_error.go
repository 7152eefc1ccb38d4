package core

import "errors"

// Kind names a use case error variant. Declaring a new Kind constant is all it
// takes to define a new variant.
type Kind string

// Predeclared kinds. Controllers map these to HTTP statuses.
const (
	KindUseCaseError Kind = "UseCaseError"
	KindValidation   Kind = "ValidationError"
	KindNotFound     Kind = "NotFoundError"
	KindUnauthorized Kind = "UnauthorizedError"
	KindForbidden    Kind = "ForbiddenError"
	KindConflict     Kind = "ConflictError"
	KindUnavailable  Kind = "ServiceUnavailableError"
)

// New returns a UseCaseError of kind k.
func (k Kind) New(message string) *UseCaseError {
	return &UseCaseError{kind: k, message: message}
}

// Wrap returns a UseCaseError of kind k that unwraps to cause.
func (k Kind) Wrap(message string, cause error) *UseCaseError {
	return &UseCaseError{kind: k, message: message, cause: cause}
}

// UseCaseError is an expected, recoverable business failure. It is carried
// inside a failed Result and inspected by controllers.
type UseCaseError struct {
	kind    Kind
	message string
	cause   error
}

// NewUseCaseError returns a UseCaseError of the base kind "UseCaseError".
func NewUseCaseError(message string) *UseCaseError {
	return KindUseCaseError.New(message)
}

// Error implements the error interface.
func (e *UseCaseError) Error() string {
	return e.message
}

// Message returns the human-readable message.
func (e *UseCaseError) Message() string {
	return e.message
}

// Kind returns the variant name.
func (e *UseCaseError) Kind() Kind {
	if e.kind == "" {
		return KindUseCaseError
	}
	return e.kind
}

// Name is the variant name as a plain string.
func (e *UseCaseError) Name() string {
	return string(e.Kind())
}

func (e *UseCaseError) Unwrap() error {
	return e.cause
}

// Is reports whether target is a UseCaseError of the same kind.
func (e *UseCaseError) Is(target error) bool {
	t, ok := target.(*UseCaseError)
	if !ok {
		return false
	}
	return e.Kind() == t.Kind()
}

// AsUseCaseError finds the first UseCaseError in err's chain.
func AsUseCaseError(err error) (*UseCaseError, bool) {
	var ucErr *UseCaseError
	if errors.As(err, &ucErr) {
		return ucErr, true
	}
	return nil, false
}

// KindOf returns the kind of the first UseCaseError in err's chain, or the
// empty Kind if there is none.
func KindOf(err error) Kind {
	if ucErr, ok := AsUseCaseError(err); ok {
		return ucErr.Kind()
	}
	return ""
}

// IsKind reports whether err's chain holds a UseCaseError of kind k.
func IsKind(err error, k Kind) bool {
	return KindOf(err) == k
}
