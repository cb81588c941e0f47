package event

import (
	"time"

	"github.com/google/uuid"

	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/internal/domain/model"
	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/pkg/events"
)

// Event types emitted by the dues ledger.
const (
	TypeSessionReserved  = "dues.session.reserved"
	TypeSessionConfirmed = "dues.session.confirmed"
	TypeSessionCancelled = "dues.session.cancelled"
	TypeSessionExpired   = "dues.session.expired"
	TypeRecordReserved   = "dues.record.reserved"
	TypeRecordPaid       = "dues.record.paid"
	TypeRecordReleased   = "dues.record.released"
)

const aggregateSession = "PaymentSession"

type sessionPayload struct {
	SessionID   uuid.UUID `json:"session_id"`
	StudentID   uuid.UUID `json:"student_id"`
	Weeks       []string  `json:"weeks"`
	TotalRupiah int64     `json:"total_rupiah"`
	ExpiresAt   time.Time `json:"expires_at"`
}

func payloadFor(s model.PaymentSession) sessionPayload {
	weeks := s.Weeks()
	labels := make([]string, len(weeks))
	for i, w := range weeks {
		labels[i] = w.String()
	}
	return sessionPayload{
		SessionID:   s.ID(),
		StudentID:   s.StudentID(),
		Weeks:       labels,
		TotalRupiah: s.Total().Rupiah(),
		ExpiresAt:   s.ExpiresAt(),
	}
}

// SessionReserved signals a new time-boxed hold over a week selection.
type SessionReserved struct {
	events.BaseEvent
}

// NewSessionReserved creates a SessionReserved event.
func NewSessionReserved(s model.PaymentSession) SessionReserved {
	return SessionReserved{
		BaseEvent: events.NewBaseEvent(TypeSessionReserved, s.ID(), aggregateSession, payloadFor(s)),
	}
}

// SessionConfirmed signals the treasurer settled every reserved week.
type SessionConfirmed struct {
	events.BaseEvent
}

// NewSessionConfirmed creates a SessionConfirmed event.
func NewSessionConfirmed(s model.PaymentSession) SessionConfirmed {
	return SessionConfirmed{
		BaseEvent: events.NewBaseEvent(TypeSessionConfirmed, s.ID(), aggregateSession, payloadFor(s)),
	}
}

// SessionCancelled signals a manual abort of the reservation.
type SessionCancelled struct {
	events.BaseEvent
}

// NewSessionCancelled creates a SessionCancelled event.
func NewSessionCancelled(s model.PaymentSession) SessionCancelled {
	return SessionCancelled{
		BaseEvent: events.NewBaseEvent(TypeSessionCancelled, s.ID(), aggregateSession, payloadFor(s)),
	}
}

// SessionExpired signals the lease reaper closed an overdue reservation.
type SessionExpired struct {
	events.BaseEvent
	RevertedWeeks int
}

// NewSessionExpired creates a SessionExpired event. revertedWeeks counts
// the pending rows actually flipped back to unpaid, which can be fewer
// than the session's weeks if some were settled in the meantime.
func NewSessionExpired(s model.PaymentSession, revertedWeeks int) SessionExpired {
	return SessionExpired{
		BaseEvent: events.NewBaseEvent(TypeSessionExpired, s.ID(), aggregateSession, struct {
			sessionPayload
			RevertedWeeks int `json:"reverted_weeks"`
		}{payloadFor(s), revertedWeeks}),
		RevertedWeeks: revertedWeeks,
	}
}

type recordPayload struct {
	RecordID  uuid.UUID `json:"record_id"`
	StudentID uuid.UUID `json:"student_id"`
	Week      string    `json:"week"`
	Status    string    `json:"status"`
	Rupiah    int64     `json:"rupiah"`
}

func payloadForRecord(r model.DueRecord) recordPayload {
	return recordPayload{
		RecordID:  r.ID(),
		StudentID: r.StudentID(),
		Week:      r.Key().String(),
		Status:    r.Status().String(),
		Rupiah:    r.Amount().Rupiah(),
	}
}

// RecordReserved signals one weekly row moved to pending.
type RecordReserved struct {
	events.BaseEvent
}

// NewRecordReserved creates a RecordReserved event.
func NewRecordReserved(r model.DueRecord) RecordReserved {
	return RecordReserved{
		BaseEvent: events.NewBaseEvent(TypeRecordReserved, r.ID(), "DueRecord", payloadForRecord(r)),
	}
}

// RecordPaid signals one weekly row was settled with money.
type RecordPaid struct {
	events.BaseEvent
}

// NewRecordPaid creates a RecordPaid event.
func NewRecordPaid(r model.DueRecord) RecordPaid {
	return RecordPaid{
		BaseEvent: events.NewBaseEvent(TypeRecordPaid, r.ID(), "DueRecord", payloadForRecord(r)),
	}
}

// RecordReleased signals a pending row reverted to unpaid.
type RecordReleased struct {
	events.BaseEvent
}

// NewRecordReleased creates a RecordReleased event.
func NewRecordReleased(r model.DueRecord) RecordReleased {
	return RecordReleased{
		BaseEvent: events.NewBaseEvent(TypeRecordReleased, r.ID(), "DueRecord", payloadForRecord(r)),
	}
}
