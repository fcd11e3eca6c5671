package rebrick

import (
	"errors"
	"fmt"
)

// ErrMissingAPIKey means no Rebrickable API key was configured.
// Get one at https://rebrickable.com/api/ and set REBRICKABLE_API_KEY.
var ErrMissingAPIKey = errors.New("rebrick: missing API key")

// NetworkError wraps transport-level failures (connection refused, timeout,
// DNS). The repositories treat this class specially: it is the trigger for
// falling back to cached data.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("rebrick: %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// IsNetworkError reports whether err is a transport-level failure.
func IsNetworkError(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// APIError is a non-2xx response from the Rebrickable API.
type APIError struct {
	StatusCode int
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("rebrick: %s returned HTTP %d", e.URL, e.StatusCode)
}
