package intent

import "fmt"

// BackendUnavailableError is returned by a reasoning backend that could not
// produce a usable intent for this call. The chain recovers from it locally.
type BackendUnavailableError struct {
	Reason string
	Cause  error
}

func (e *BackendUnavailableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("reasoning backend unavailable: %s: %v", e.Reason, e.Cause)
	}
	return fmt.Sprintf("reasoning backend unavailable: %s", e.Reason)
}

func (e *BackendUnavailableError) Unwrap() error {
	return e.Cause
}
