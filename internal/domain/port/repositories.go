package port

import (
	"context"

	"github.com/google/uuid"

	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/internal/domain/model"
	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/internal/domain/valueobject"
	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/pkg/events"
)

// DueLedger persists weekly dues rows.
type DueLedger interface {
	// Upsert writes a record keyed on (student, year, month, week).
	Upsert(ctx context.Context, record model.DueRecord) error
	// FindByStudent returns every row the student has, any status.
	FindByStudent(ctx context.Context, studentID uuid.UUID) ([]model.DueRecord, error)
	// FindByStudentYear returns the student's rows for one year.
	FindByStudentYear(ctx context.Context, studentID uuid.UUID, year int) ([]model.DueRecord, error)
	// FindByKeys returns the rows matching the given slots, missing slots
	// are simply absent from the result.
	FindByKeys(ctx context.Context, studentID uuid.UUID, keys []valueobject.DueKey) ([]model.DueRecord, error)
	// FindByClass returns rows for every student in the class, grouped by
	// student in the returned map.
	FindByClass(ctx context.Context, classID uuid.UUID) (map[uuid.UUID][]model.DueRecord, error)
	// ReleaseBySession atomically reverts the session's pending rows to
	// unpaid and reports how many rows actually changed. Rows that were
	// settled or re-reserved by a newer session are left untouched.
	ReleaseBySession(ctx context.Context, sessionID uuid.UUID) (int, error)
}

// SessionStore persists payment sessions.
type SessionStore interface {
	// Save writes the session, insert or update.
	Save(ctx context.Context, session model.PaymentSession) error
	// FindByID returns the session or model.ErrSessionNotFound.
	FindByID(ctx context.Context, id uuid.UUID) (model.PaymentSession, error)
	// FindActiveByStudent returns the student's live reservation or
	// model.ErrSessionNotFound.
	FindActiveByStudent(ctx context.Context, studentID uuid.UUID) (model.PaymentSession, error)
	// FindOverdue returns active sessions whose deadline has passed,
	// oldest first, capped at limit.
	FindOverdue(ctx context.Context, limit int) ([]model.PaymentSession, error)
	// FindActive returns every live session, oldest first, capped at
	// limit. Used by the feed resync.
	FindActive(ctx context.Context, limit int) ([]model.PaymentSession, error)
}

// BillingConfigStore persists the billing range configuration.
type BillingConfigStore interface {
	// Load returns the configured range, or the default when nothing is
	// stored.
	Load(ctx context.Context) (valueobject.BillingRange, error)
	// Save stores the range, overwriting any previous configuration.
	Save(ctx context.Context, r valueobject.BillingRange) error
}

// ProfileStore exposes the per-student settlement flag on profiles.
type ProfileStore interface {
	// SetPaymentStatus flips the coarse kill-switch on the student's
	// profile; expiresAt is cleared when active is false.
	SetPaymentStatus(ctx context.Context, studentID uuid.UUID, active bool) error
	// ListClassStudents returns the student IDs enrolled in a class.
	ListClassStudents(ctx context.Context, classID uuid.UUID) ([]uuid.UUID, error)
}

// EventPublisher pushes domain events to downstream consumers. It is
// satisfied by both the direct Kafka publisher and the outbox writer.
type EventPublisher interface {
	Publish(ctx context.Context, evts ...events.DomainEvent) error
}
