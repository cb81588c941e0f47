package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/internal/domain/valueobject"
	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/pkg/money"
)

// SessionTTL is how long a reservation holds its weeks before the reaper
// reverts them.
const SessionTTL = 60 * time.Second

var (
	// ErrStaleSession is returned when a transition is attempted on a
	// session that already reached a terminal state.
	ErrStaleSession = errors.New("payment session is no longer active")
	// ErrSessionActive is returned when a student already has a live
	// reservation.
	ErrSessionActive = errors.New("student already has an active payment session")
	// ErrSessionNotFound is returned by stores when no session matches.
	ErrSessionNotFound = errors.New("payment session not found")
	// ErrNoWeeksSelected is returned when a session is opened with an
	// empty selection.
	ErrNoWeeksSelected = errors.New("payment session requires at least one week")
)

// PaymentSession is a time-boxed hold over a set of weekly dues rows.
// Sessions are immutable: transitions return a new copy.
type PaymentSession struct {
	id         uuid.UUID
	studentID  uuid.UUID
	weeks      []valueobject.DueKey
	state      valueobject.SessionState
	total      money.Money
	reservedAt time.Time
	expiresAt  time.Time
	closedAt   *time.Time
	updatedAt  time.Time
}

// NewPaymentSession opens a reservation over the given weeks with the
// standard lease.
func NewPaymentSession(studentID uuid.UUID, weeks []valueobject.DueKey, now time.Time) (PaymentSession, error) {
	if studentID == uuid.Nil {
		return PaymentSession{}, errors.New("student ID is required")
	}
	if len(weeks) == 0 {
		return PaymentSession{}, ErrNoWeeksSelected
	}
	seen := make(map[valueobject.DueKey]struct{}, len(weeks))
	for _, w := range weeks {
		if w.IsZero() {
			return PaymentSession{}, errors.New("due key is required")
		}
		if _, dup := seen[w]; dup {
			return PaymentSession{}, fmt.Errorf("duplicate week in selection: %s", w)
		}
		seen[w] = struct{}{}
	}
	copied := make([]valueobject.DueKey, len(weeks))
	copy(copied, weeks)
	return PaymentSession{
		id:         uuid.New(),
		studentID:  studentID,
		weeks:      copied,
		state:      valueobject.SessionStateReserved,
		total:      WeeklyDue.MulInt(int64(len(weeks))),
		reservedAt: now,
		expiresAt:  now.Add(SessionTTL),
		updatedAt:  now,
	}, nil
}

// ReconstructPaymentSession rehydrates a session from persistence.
func ReconstructPaymentSession(
	id uuid.UUID,
	studentID uuid.UUID,
	weeks []valueobject.DueKey,
	state valueobject.SessionState,
	total money.Money,
	reservedAt time.Time,
	expiresAt time.Time,
	closedAt *time.Time,
	updatedAt time.Time,
) PaymentSession {
	return PaymentSession{
		id:         id,
		studentID:  studentID,
		weeks:      weeks,
		state:      state,
		total:      total,
		reservedAt: reservedAt,
		expiresAt:  expiresAt,
		closedAt:   closedAt,
		updatedAt:  updatedAt,
	}
}

// ID returns the session identifier.
func (s PaymentSession) ID() uuid.UUID { return s.id }

// StudentID returns the student holding the reservation.
func (s PaymentSession) StudentID() uuid.UUID { return s.studentID }

// Weeks returns the reserved slots.
func (s PaymentSession) Weeks() []valueobject.DueKey {
	weeks := make([]valueobject.DueKey, len(s.weeks))
	copy(weeks, s.weeks)
	return weeks
}

// State returns the lifecycle state.
func (s PaymentSession) State() valueobject.SessionState { return s.state }

// Total returns the amount owed if every reserved week is paid.
func (s PaymentSession) Total() money.Money { return s.total }

// ReservedAt returns when the hold was taken.
func (s PaymentSession) ReservedAt() time.Time { return s.reservedAt }

// ExpiresAt returns the lease deadline.
func (s PaymentSession) ExpiresAt() time.Time { return s.expiresAt }

// ClosedAt returns when the session reached a terminal state, if it has.
func (s PaymentSession) ClosedAt() *time.Time { return s.closedAt }

// UpdatedAt returns the last transition timestamp.
func (s PaymentSession) UpdatedAt() time.Time { return s.updatedAt }

// IsExpired reports whether the lease deadline has passed.
func (s PaymentSession) IsExpired(now time.Time) bool {
	return s.state.IsActive() && !now.Before(s.expiresAt)
}

// RemainingTTL returns how long the lease has left, floored at zero.
func (s PaymentSession) RemainingTTL(now time.Time) time.Duration {
	if !s.state.IsActive() {
		return 0
	}
	remaining := s.expiresAt.Sub(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Confirm settles the session. Confirmation wins over expiry: a session
// whose deadline passed but which the reaper has not yet reverted can
// still be confirmed.
func (s PaymentSession) Confirm(now time.Time) (PaymentSession, error) {
	if !s.state.IsActive() {
		return PaymentSession{}, fmt.Errorf("%w: state is %s", ErrStaleSession, s.state)
	}
	next := s
	next.state = valueobject.SessionStateConfirmed
	next.closedAt = &now
	next.updatedAt = now
	return next, nil
}

// Cancel aborts the reservation.
func (s PaymentSession) Cancel(now time.Time) (PaymentSession, error) {
	if !s.state.IsActive() {
		return PaymentSession{}, fmt.Errorf("%w: state is %s", ErrStaleSession, s.state)
	}
	next := s
	next.state = valueobject.SessionStateCancelled
	next.closedAt = &now
	next.updatedAt = now
	return next, nil
}

// Expire closes an overdue reservation. It refuses to fire before the
// deadline and it refuses to move a session out of a terminal state.
func (s PaymentSession) Expire(now time.Time) (PaymentSession, error) {
	if !s.state.IsActive() {
		return PaymentSession{}, fmt.Errorf("%w: state is %s", ErrStaleSession, s.state)
	}
	if now.Before(s.expiresAt) {
		return PaymentSession{}, fmt.Errorf("session %s expires at %s", s.id, s.expiresAt.Format(time.RFC3339))
	}
	next := s
	next.state = valueobject.SessionStateExpired
	next.closedAt = &now
	next.updatedAt = now
	return next, nil
}
