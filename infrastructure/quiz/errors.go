package quiz

import "errors"

var (
	// ErrLateOrUnexpectedResponse is reported when a peer answers while no task is pending.
	ErrLateOrUnexpectedResponse = errors.New("response rejected (late or unexpected)")
	ErrUnknownGradingMode       = errors.New("unknown grading mode")
)
