package core

import (
	"errors"
	"fmt"
)

// Kind classifies a failed remote call. The set is deliberately small:
// it is the whole failure taxonomy the rest of the client reasons about.
type Kind string

const (
	// KindUnauthenticated marks a 401. It is the sole trigger for local
	// session teardown.
	KindUnauthenticated Kind = "unauthenticated"
	// KindValidation marks a request the server rejected as malformed.
	KindValidation Kind = "validation"
	// KindNotFound marks a missing resource.
	KindNotFound Kind = "not_found"
	// KindNetworkOrServer covers transport failures and every other
	// non-2xx status.
	KindNetworkOrServer Kind = "network_or_server"
)

// SessionExpiredMessage is shown for every authentication failure,
// regardless of what the server said. Backend auth error text is never
// surfaced verbatim.
const SessionExpiredMessage = "Your session has expired. Please sign in again."

// APIError is the classified result of a failed remote call. It is
// produced once per failure and never retried automatically.
type APIError struct {
	Kind    Kind
	Status  int // HTTP status, 0 for transport failures
	Message string
	Err     error // underlying transport error, if any
}

func (e *APIError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s (%d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *APIError) Unwrap() error { return e.Err }

// ErrSessionExpired is the single normalized condition raised when an
// unauthenticated failure forces session teardown. Callers match it with
// errors.Is and redirect to login.
var ErrSessionExpired = &APIError{
	Kind:    KindUnauthenticated,
	Status:  401,
	Message: SessionExpiredMessage,
}

// IsUnauthenticated reports whether err is a classified authentication
// failure.
func IsUnauthenticated(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == KindUnauthenticated
}
