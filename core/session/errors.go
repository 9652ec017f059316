package session

import (
	"errors"
	"fmt"

	"github.com/anoideaopen/substitute/core/call"
	"github.com/anoideaopen/substitute/core/routing"
)

var (
	// ErrNoCallCaptured is returned when the trigger of a session makes no call on the
	// substitute.
	ErrNoCallCaptured = errors.New("no call captured: the configured call was not made on the substitute")

	// ErrAmbiguousCapture is returned when the trigger makes more than one call.
	ErrAmbiguousCapture = errors.New("ambiguous capture: more than one call was made on the substitute")

	// ErrSessionUsed is returned when a terminal is called on a session twice.
	ErrSessionUsed = errors.New("session already used")

	// ErrArityMismatch is returned when the explicit matchers do not match the member arity.
	ErrArityMismatch = routing.ErrArityMismatch

	// ErrResultMismatch is returned when configured values cannot be returned by the member.
	ErrResultMismatch = call.ErrResultMismatch
)

// ConfigurationError reports a mistake in the configuration of a substitute. It wraps one of
// the session errors, an action.Validate error or the error of the trigger.
type ConfigurationError struct {
	Member string // The captured member, empty if none was captured.
	Err    error
}

func (e *ConfigurationError) Error() string {
	if e.Member == "" {
		return fmt.Sprintf("configuring substitute: %v", e.Err)
	}

	return fmt.Sprintf("configuring %s: %v", e.Member, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}
