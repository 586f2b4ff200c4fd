package cubekit

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for the cubekit package. Engine operations return these
// (usually wrapped in *Error) rather than panicking, so callers can branch
// with errors.Is.
var (
	// Move errors
	ErrInvalidMove     = errors.New("cubekit: invalid move")
	ErrInvalidNotation = errors.New("cubekit: invalid move notation")

	// Animation errors
	ErrAnimationInProgress = errors.New("cubekit: animation in progress")

	// State errors
	ErrStateCorruption  = errors.New("cubekit: state corruption")
	ErrInvalidFaceState = errors.New("cubekit: invalid face state")
	ErrUnrecoverable    = errors.New("cubekit: state unrecoverable")
)

// ErrorCode identifies the class of an engine error.
type ErrorCode string

const (
	CodeInvalidMove         ErrorCode = "INVALID_MOVE"
	CodeAnimationInProgress ErrorCode = "ANIMATION_IN_PROGRESS"
	CodeStateCorruption     ErrorCode = "STATE_CORRUPTION"
	CodeInvalidFaceState    ErrorCode = "INVALID_FACE_STATE"
)

// Error is a structured engine error carrying a code, a machine-readable
// reason and an optional retry hint. It unwraps to the matching sentinel so
// errors.Is(err, ErrInvalidMove) and friends work as expected.
type Error struct {
	Code       ErrorCode
	Reason     string        // e.g. "invalid_face", "adjacent_animation_conflict"
	Message    string        // human-readable detail
	RetryAfter time.Duration // suggested retry delay for animation conflicts
}

func (e *Error) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("cubekit: %s (%s): %s", e.Code, e.Reason, e.Message)
	}
	return fmt.Sprintf("cubekit: %s: %s", e.Code, e.Message)
}

// Unwrap maps the error code to its sentinel.
func (e *Error) Unwrap() error {
	switch e.Code {
	case CodeInvalidMove:
		return ErrInvalidMove
	case CodeAnimationInProgress:
		return ErrAnimationInProgress
	case CodeStateCorruption:
		return ErrStateCorruption
	case CodeInvalidFaceState:
		return ErrInvalidFaceState
	default:
		return nil
	}
}

// newMoveError builds an INVALID_MOVE error.
func newMoveError(reason, format string, args ...interface{}) *Error {
	return &Error{
		Code:    CodeInvalidMove,
		Reason:  reason,
		Message: fmt.Sprintf(format, args...),
	}
}

// newAnimationError builds an ANIMATION_IN_PROGRESS error with a retry hint.
func newAnimationError(reason string, retryAfter time.Duration, format string, args ...interface{}) *Error {
	return &Error{
		Code:       CodeAnimationInProgress,
		Reason:     reason,
		Message:    fmt.Sprintf(format, args...),
		RetryAfter: retryAfter,
	}
}

// newFaceStateError builds an INVALID_FACE_STATE error.
func newFaceStateError(reason, format string, args ...interface{}) *Error {
	return &Error{
		Code:    CodeInvalidFaceState,
		Reason:  reason,
		Message: fmt.Sprintf(format, args...),
	}
}

// newCorruptionError builds a STATE_CORRUPTION error.
func newCorruptionError(reason, format string, args ...interface{}) *Error {
	return &Error{
		Code:    CodeStateCorruption,
		Reason:  reason,
		Message: fmt.Sprintf(format, args...),
	}
}
