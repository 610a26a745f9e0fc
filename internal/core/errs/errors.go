// Package errs holds the outcomes every core service may return. All of them are
// expected results the caller must surface; anything else is a storage failure.
package errs

import (
	"errors"
	"fmt"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrConflict           = errors.New("username or email already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPermission         = errors.New("permission denied")
	ErrNotFound           = errors.New("not found")
	ErrQuotaExceeded      = errors.New("comment limit reached")
	ErrHasComments        = errors.New("post has comments")
	ErrContention         = errors.New("too much contention, try again")
)

// ErrUnauthenticated is a permission denial for a request without a session.
// It matches ErrPermission so callers that only care about denial need one check.
var ErrUnauthenticated error = unauthenticated{}

type unauthenticated struct{}

func (unauthenticated) Error() string { return "not logged in" }

func (unauthenticated) Is(target error) bool { return target == ErrPermission }

// ValidationError reports a rejected input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// Invalid builds a ValidationError for field.
func Invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// QuotaExceededError carries the post's configured limit so the caller can
// state it exactly.
type QuotaExceededError struct {
	Limit int
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("You have reached the maximum number of comments (%d) allowed on this post.", e.Limit)
}

func (e *QuotaExceededError) Is(target error) bool { return target == ErrQuotaExceeded }
