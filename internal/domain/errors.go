package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrGoalNotFound       = errors.New("goal not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrSessionMissing     = errors.New("no active session")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrWrongPassword      = errors.New("wrong password")
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrNameRequired       = errors.New("name is required")
	ErrNameTooLong        = errors.New("name exceeds maximum length")
	ErrAmountNotPositive  = errors.New("amount must be positive")
	ErrInvalidBetType     = errors.New("invalid bet type")
)

// Validation constants
const (
	MaxGoalNameLength = 255
)

// RetryExhaustedError reports that a retried read operation failed on every
// attempt. It wraps the last underlying error.
type RetryExhaustedError struct {
	Attempts int
	Last     error
}

func (e *RetryExhaustedError) Error() string {
	return fmt.Sprintf("operation failed after %d attempts: %v", e.Attempts, e.Last)
}

func (e *RetryExhaustedError) Unwrap() error {
	return e.Last
}

// RemoteWriteError reports a failed create, update or delete against the
// backing store. Writes are never retried; the error surfaces immediately.
type RemoteWriteError struct {
	Op  string
	Err error
}

func (e *RemoteWriteError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *RemoteWriteError) Unwrap() error {
	return e.Err
}

// Account deletion phases, used in AccountDeletionPartialError.
const (
	DeletePhaseGoals    = "goals"
	DeletePhaseImpulses = "impulses"
	DeletePhaseAuth     = "auth"
)

// PhaseFailure records a single failed phase of an account deletion.
type PhaseFailure struct {
	Phase string
	Err   error
}

// AccountDeletionPartialError reports that one or more phases of an account
// deletion failed. There is no rollback; the caller must retry manually.
// Data deletes are idempotent, the auth delete may already have executed.
type AccountDeletionPartialError struct {
	Failures []PhaseFailure
}

func (e *AccountDeletionPartialError) Error() string {
	phases := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		phases[i] = f.Phase
	}
	return fmt.Sprintf("account deletion partially failed (phases: %s): %v",
		strings.Join(phases, ", "), e.Failures[0].Err)
}

func (e *AccountDeletionPartialError) Unwrap() []error {
	errs := make([]error, len(e.Failures))
	for i, f := range e.Failures {
		errs[i] = f.Err
	}
	return errs
}

// FailedPhase reports whether the named phase is among the failures.
func (e *AccountDeletionPartialError) FailedPhase(phase string) bool {
	for _, f := range e.Failures {
		if f.Phase == phase {
			return true
		}
	}
	return false
}
