package kernel

import "errors"

// Errors returned by Spawn/SpawnPeriodic. These are programmer errors
// in the source kernel (caught by a debug assertion there, undefined
// in release); Go has no release-mode assertion elision, so they are
// always checked and returned rather than silently produced.
var (
	// ErrPriorityOutOfRange is returned when a requested priority falls
	// outside [0, NumPriorities).
	ErrPriorityOutOfRange = errors.New("kernel: priority out of range")

	// ErrStackTooSmall is returned when a requested stack size cannot
	// hold one initial frame, or is not a word-size multiple.
	ErrStackTooSmall = errors.New("kernel: stack size too small or misaligned")

	// ErrDuplicateTaskID is returned when a task ID is already in use.
	// The source kernel does not check this (task IDs are whatever the
	// caller passes to the waiter queue encoding); this module checks
	// it because a collision silently breaks mutex ordering (S3).
	ErrDuplicateTaskID = errors.New("kernel: task id already in use")
)

// FaultError marks a condition the source spec treats as unrecoverable
// and "delegates to the platform's fault handler" — in this hosted
// simulation, a panic of this type, since there is no platform fault
// handler to delegate to.
type FaultError struct {
	Reason string
}

func (e *FaultError) Error() string { return "kernel: fault: " + e.Reason }

// fault reports an unrecoverable condition (heap exhaustion, a
// corrupted saved stack pointer discovered during restore) by logging
// at Error level and panicking with a *FaultError. There is no caller to return an error to
// before the scheduler starts, and a failed operation after start
// leaves the system in a defined but unusable state either way.
func (k *Kernel) fault(reason string) {
	k.logger.Error().Str("reason", reason).Msg("unrecoverable kernel fault")
	panic(&FaultError{Reason: reason})
}
