package upstream

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when the API definitively reports that the
// requested resource does not exist. Callers surface this as "not
// found", never as "try again".
var ErrNotFound = errors.New("upstream: not found")

// PreconditionError is a request the API understood and rejected: an
// illegal status transition, an unavailable rider, a validation failure
// on its side. Message is safe to show to the user; the local view of
// the order must not be advanced.
type PreconditionError struct {
	Message string
}

func (e *PreconditionError) Error() string {
	return e.Message
}

// TransientError is a network failure or a 5xx from the API. The user
// sees a generic retryable message; the gateway never retries on its
// own.
type TransientError struct {
	Op  string
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("upstream %s: %v", e.Op, e.Err)
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

// IsPrecondition reports whether err is a server-side rejection.
func IsPrecondition(err error) bool {
	var pe *PreconditionError
	return errors.As(err, &pe)
}

// IsTransient reports whether err is worth the user retrying.
func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}
