package request

import (
	"errors"

	"github.com/dkim82/studyhall/internal/api"
)

// Phase enumerates the lifecycle of one asynchronous operation.
type Phase int

const (
	// Idle means the operation has not been invoked.
	Idle Phase = iota
	// Loading means the operation is in flight.
	Loading
	// Succeeded means the operation completed with a payload.
	Succeeded
	// Failed means the operation resolved to an error message.
	Failed
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// GenericFailure is shown for transport-level failures, where no
// server message exists to surface.
const GenericFailure = "A network error occurred. Please try again."

// State projects one asynchronous operation onto the four-phase shape
// every screen renders from. Each logical operation owns its own State;
// sub-operations on the same screen never share one. The zero value is
// Idle.
type State[T any] struct {
	phase  Phase
	value  T
	reason string
}

// Phase returns the current phase.
func (s State[T]) Phase() Phase { return s.phase }

// Value returns the success payload. Meaningful only when Succeeded.
func (s State[T]) Value() T { return s.value }

// Reason returns the failure message. Meaningful only when Failed.
func (s State[T]) Reason() string { return s.reason }

// IsIdle reports whether the operation has not started.
func (s State[T]) IsIdle() bool { return s.phase == Idle }

// IsLoading reports whether the operation is in flight.
func (s State[T]) IsLoading() bool { return s.phase == Loading }

// IsSuccess reports whether the operation succeeded.
func (s State[T]) IsSuccess() bool { return s.phase == Succeeded }

// IsError reports whether the operation failed.
func (s State[T]) IsError() bool { return s.phase == Failed }

// Begin moves the state to Loading and reports whether it did. It
// refuses to begin while already Loading, so Loading never follows
// Loading without an intervening terminal phase.
func (s *State[T]) Begin() bool {
	if s.phase == Loading {
		return false
	}
	s.phase = Loading
	return true
}

// Resolve completes a Loading operation. A nil error yields Succeeded
// with the value; otherwise Failed with Describe(err).
func (s *State[T]) Resolve(value T, err error) {
	if err != nil {
		s.Fail(Describe(err))
		return
	}
	s.Succeed(value)
}

// Succeed completes the operation with a payload.
func (s *State[T]) Succeed(value T) {
	s.phase = Succeeded
	s.value = value
	s.reason = ""
}

// Fail completes the operation with a message. Also used directly for
// client-side validation failures, which never reach the network.
func (s *State[T]) Fail(reason string) {
	var zero T
	s.phase = Failed
	s.value = zero
	s.reason = reason
}

// Reset returns the state to Idle, discarding any payload or reason.
func (s *State[T]) Reset() {
	var zero T
	s.phase = Idle
	s.value = zero
	s.reason = ""
}

// Describe maps an error to the message shown to the user: the
// server's own message for semantic failures, a generic one for
// transport failures.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return GenericFailure
}
