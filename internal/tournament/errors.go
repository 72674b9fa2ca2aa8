package tournament

import (
	"errors"
	"fmt"
)

var (
	// ErrScheduleExhausted signals that every scheduled match has been
	// played. It marks normal completion, not a failure.
	ErrScheduleExhausted = errors.New("schedule exhausted")

	// ErrInvalidRoster matches any *InvalidRosterError via errors.Is
	ErrInvalidRoster = errors.New("invalid roster")

	// ErrQuit is returned by a HumanInput to abandon the tournament
	ErrQuit = errors.New("tournament abandoned")
)

// InvalidRosterError reports why a roster configuration was rejected
type InvalidRosterError struct {
	Reason string
}

func (e *InvalidRosterError) Error() string {
	return fmt.Sprintf("invalid roster: %s", e.Reason)
}

// Is reports whether target is ErrInvalidRoster
func (e *InvalidRosterError) Is(target error) bool {
	return target == ErrInvalidRoster
}

func invalidRoster(format string, args ...any) error {
	return &InvalidRosterError{Reason: fmt.Sprintf(format, args...)}
}
