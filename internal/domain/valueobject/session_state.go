package valueobject

import "fmt"

// SessionState represents the lifecycle state of a payment session.
type SessionState struct {
	value string
}

var (
	// SessionStateReserved is the initial state while the countdown runs.
	SessionStateReserved = SessionState{"Reserved"}
	// SessionStateConfirmed means the treasurer settled the reserved weeks.
	SessionStateConfirmed = SessionState{"Confirmed"}
	// SessionStateCancelled means the student or treasurer aborted the hold.
	SessionStateCancelled = SessionState{"Cancelled"}
	// SessionStateExpired means the lease ran out before confirmation.
	SessionStateExpired = SessionState{"Expired"}
)

var validSessionStates = map[string]SessionState{
	"Reserved":  SessionStateReserved,
	"Confirmed": SessionStateConfirmed,
	"Cancelled": SessionStateCancelled,
	"Expired":   SessionStateExpired,
}

// NewSessionState validates and creates a SessionState from a string.
func NewSessionState(s string) (SessionState, error) {
	if state, ok := validSessionStates[s]; ok {
		return state, nil
	}
	return SessionState{}, fmt.Errorf("invalid session state: %q", s)
}

// String returns the string representation of the state.
func (s SessionState) String() string {
	return s.value
}

// IsTerminal returns true once the session can no longer change state.
func (s SessionState) IsTerminal() bool {
	return s == SessionStateConfirmed || s == SessionStateCancelled || s == SessionStateExpired
}

// IsActive returns true while the session still holds its reservation.
func (s SessionState) IsActive() bool {
	return s == SessionStateReserved
}

// IsZero returns true if the state is uninitialized.
func (s SessionState) IsZero() bool {
	return s.value == ""
}
