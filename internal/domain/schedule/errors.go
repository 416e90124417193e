package schedule

import (
	"errors"
)

var (
	// ErrScheduleNotFound is returned when a schedule is not found
	ErrScheduleNotFound = errors.New("schedule not found")

	// ErrInvalidScheduleState is returned when advancement or billing is
	// attempted on a schedule that is not active
	ErrInvalidScheduleState = errors.New("schedule is not active")

	// ErrScheduleCancelled is returned when a status transition is
	// attempted on a cancelled schedule; cancellation is terminal
	ErrScheduleCancelled = errors.New("schedule is cancelled")
)

// IsNotFoundError checks if an error is a not found error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrScheduleNotFound)
}
