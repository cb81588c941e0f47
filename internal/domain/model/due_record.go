package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/internal/domain/valueobject"
	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/pkg/money"
)

// WeeklyDue is the price of one week of dues.
var WeeklyDue = money.FromRupiah(5000)

// WeeksPerMonth is how many settled weeks complete a month.
const WeeksPerMonth = 4

var (
	// ErrNotReservable is returned when a session tries to hold a week that
	// is already pending or settled.
	ErrNotReservable = errors.New("due record is not reservable")
	// ErrNotPending is returned when a transition expects a pending row.
	ErrNotPending = errors.New("due record is not pending")
)

// DueRecord is one weekly slot in a student's dues ledger. Records are
// immutable: transitions return a new copy.
type DueRecord struct {
	id        uuid.UUID
	studentID uuid.UUID
	key       valueobject.DueKey
	status    valueobject.DueStatus
	amount    money.Money
	sessionID *uuid.UUID
	createdAt time.Time
	updatedAt time.Time
}

// NewDueRecord creates an unpaid record for the given week.
func NewDueRecord(studentID uuid.UUID, key valueobject.DueKey, now time.Time) (DueRecord, error) {
	if studentID == uuid.Nil {
		return DueRecord{}, errors.New("student ID is required")
	}
	if key.IsZero() {
		return DueRecord{}, errors.New("due key is required")
	}
	return DueRecord{
		id:        uuid.New(),
		studentID: studentID,
		key:       key,
		status:    valueobject.DueStatusUnpaid,
		amount:    money.Zero(money.IDR),
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructDueRecord rehydrates a record from persistence without
// validation side effects.
func ReconstructDueRecord(
	id uuid.UUID,
	studentID uuid.UUID,
	key valueobject.DueKey,
	status valueobject.DueStatus,
	amount money.Money,
	sessionID *uuid.UUID,
	createdAt time.Time,
	updatedAt time.Time,
) DueRecord {
	return DueRecord{
		id:        id,
		studentID: studentID,
		key:       key,
		status:    status,
		amount:    amount,
		sessionID: sessionID,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// ID returns the record identifier.
func (r DueRecord) ID() uuid.UUID { return r.id }

// StudentID returns the owning student.
func (r DueRecord) StudentID() uuid.UUID { return r.studentID }

// Key returns the (year, month, week) slot.
func (r DueRecord) Key() valueobject.DueKey { return r.key }

// Status returns the payment status.
func (r DueRecord) Status() valueobject.DueStatus { return r.status }

// Amount returns the money settled against this week.
func (r DueRecord) Amount() money.Money { return r.amount }

// SessionID returns the session holding the row, if any.
func (r DueRecord) SessionID() *uuid.UUID { return r.sessionID }

// CreatedAt returns the creation timestamp.
func (r DueRecord) CreatedAt() time.Time { return r.createdAt }

// UpdatedAt returns the last transition timestamp.
func (r DueRecord) UpdatedAt() time.Time { return r.updatedAt }

// Reserve places a session hold on an unpaid week.
func (r DueRecord) Reserve(sessionID uuid.UUID, now time.Time) (DueRecord, error) {
	if !r.status.IsReservable() {
		return DueRecord{}, fmt.Errorf("%w: week %s is %s", ErrNotReservable, r.key, r.status)
	}
	if sessionID == uuid.Nil {
		return DueRecord{}, errors.New("session ID is required")
	}
	next := r
	next.status = valueobject.DueStatusPending
	next.sessionID = &sessionID
	next.updatedAt = now
	return next, nil
}

// MarkPaid settles a pending week with the weekly amount.
func (r DueRecord) MarkPaid(now time.Time) (DueRecord, error) {
	if r.status != valueobject.DueStatusPending {
		return DueRecord{}, fmt.Errorf("%w: week %s is %s", ErrNotPending, r.key, r.status)
	}
	next := r
	next.status = valueobject.DueStatusPaid
	next.amount = WeeklyDue
	next.sessionID = nil
	next.updatedAt = now
	return next, nil
}

// Release reverts a pending week back to unpaid when its session ends
// without payment. It only applies when the given session still owns the
// hold; a row already settled or re-reserved is left alone.
func (r DueRecord) Release(sessionID uuid.UUID, now time.Time) (DueRecord, bool) {
	if r.status != valueobject.DueStatusPending {
		return r, false
	}
	if r.sessionID == nil || *r.sessionID != sessionID {
		return r, false
	}
	next := r
	next.status = valueobject.DueStatusUnpaid
	next.amount = money.Zero(money.IDR)
	next.sessionID = nil
	next.updatedAt = now
	return next, true
}

// Waive marks a week as bebas. A waived week completes the month but
// contributes nothing to the paid sum.
func (r DueRecord) Waive(now time.Time) (DueRecord, error) {
	if r.status.IsSettled() {
		return DueRecord{}, fmt.Errorf("week %s already settled as %s", r.key, r.status)
	}
	next := r
	next.status = valueobject.DueStatusBebas
	next.amount = money.Zero(money.IDR)
	next.sessionID = nil
	next.updatedAt = now
	return next, nil
}
