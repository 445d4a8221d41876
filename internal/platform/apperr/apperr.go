// Package apperr holds the error sentinels shared by the accessors, the
// GraphQL resolvers and the HTTP layer.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument marks a request rejected before any database access.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnauthenticated means no staff member could be resolved for the request.
	ErrUnauthenticated = errors.New("authentication required")

	// ErrForbidden means the staff member's permission level is too low.
	ErrForbidden = errors.New("insufficient permission level")
)

// Invalid wraps ErrInvalidArgument with a formatted message.
func Invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// Required returns the validation error for a missing mandatory argument.
func Required(name string) error {
	return Invalid("%s is required", name)
}
