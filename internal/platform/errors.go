package platform

import "fmt"

// UnsupportedPlatformError is returned when no executor variant exists for a platform.
type UnsupportedPlatformError struct {
	Platform string
}

func (e *UnsupportedPlatformError) Error() string {
	return fmt.Sprintf("unsupported platform: %q", e.Platform)
}

// InvalidParamError is returned when an action's parameters are missing,
// mistyped or fail validation. No command is built in that case.
type InvalidParamError struct {
	Action string
	Param  string
	Reason string
	Cause  error
}

func (e *InvalidParamError) Error() string {
	if e.Param == "" {
		return fmt.Sprintf("invalid parameters for %q: %s", e.Action, e.Reason)
	}
	return fmt.Sprintf("invalid parameter %q for %q: %s", e.Param, e.Action, e.Reason)
}

func (e *InvalidParamError) Unwrap() error {
	return e.Cause
}

// InvalidInput marks the error as caused by bad input rather than the host.
func (e *InvalidParamError) InvalidInput() bool {
	return true
}
