package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/internal/domain/model"
	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/internal/domain/valueobject"
	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/pkg/events"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// mockLedger keeps rows in memory keyed on (student, slot).
type mockLedger struct {
	records map[uuid.UUID]map[valueobject.DueKey]model.DueRecord

	UpsertFn           func(ctx context.Context, record model.DueRecord) error
	ReleaseBySessionFn func(ctx context.Context, sessionID uuid.UUID) (int, error)
}

func newMockLedger() *mockLedger {
	return &mockLedger{records: make(map[uuid.UUID]map[valueobject.DueKey]model.DueRecord)}
}

func (m *mockLedger) put(record model.DueRecord) {
	byKey, ok := m.records[record.StudentID()]
	if !ok {
		byKey = make(map[valueobject.DueKey]model.DueRecord)
		m.records[record.StudentID()] = byKey
	}
	byKey[record.Key()] = record
}

func (m *mockLedger) Upsert(ctx context.Context, record model.DueRecord) error {
	if m.UpsertFn != nil {
		return m.UpsertFn(ctx, record)
	}
	m.put(record)
	return nil
}

func (m *mockLedger) FindByStudent(_ context.Context, studentID uuid.UUID) ([]model.DueRecord, error) {
	var out []model.DueRecord
	for _, rec := range m.records[studentID] {
		out = append(out, rec)
	}
	return out, nil
}

func (m *mockLedger) FindByStudentYear(_ context.Context, studentID uuid.UUID, year int) ([]model.DueRecord, error) {
	var out []model.DueRecord
	for _, rec := range m.records[studentID] {
		if rec.Key().Year() == year {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (m *mockLedger) FindByKeys(_ context.Context, studentID uuid.UUID, keys []valueobject.DueKey) ([]model.DueRecord, error) {
	var out []model.DueRecord
	for _, key := range keys {
		if rec, ok := m.records[studentID][key]; ok {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (m *mockLedger) FindByClass(_ context.Context, _ uuid.UUID) (map[uuid.UUID][]model.DueRecord, error) {
	out := make(map[uuid.UUID][]model.DueRecord)
	for studentID, byKey := range m.records {
		for _, rec := range byKey {
			out[studentID] = append(out[studentID], rec)
		}
	}
	return out, nil
}

func (m *mockLedger) ReleaseBySession(ctx context.Context, sessionID uuid.UUID) (int, error) {
	if m.ReleaseBySessionFn != nil {
		return m.ReleaseBySessionFn(ctx, sessionID)
	}
	released := 0
	for _, byKey := range m.records {
		for key, rec := range byKey {
			next, ok := rec.Release(sessionID, time.Now())
			if ok {
				byKey[key] = next
				released++
			}
		}
	}
	return released, nil
}

// mockSessionStore keeps sessions in memory.
type mockSessionStore struct {
	sessions map[uuid.UUID]model.PaymentSession

	SaveFn func(ctx context.Context, session model.PaymentSession) error
}

func newMockSessionStore() *mockSessionStore {
	return &mockSessionStore{sessions: make(map[uuid.UUID]model.PaymentSession)}
}

func (m *mockSessionStore) Save(ctx context.Context, session model.PaymentSession) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, session)
	}
	m.sessions[session.ID()] = session
	return nil
}

func (m *mockSessionStore) FindByID(_ context.Context, id uuid.UUID) (model.PaymentSession, error) {
	session, ok := m.sessions[id]
	if !ok {
		return model.PaymentSession{}, model.ErrSessionNotFound
	}
	return session, nil
}

func (m *mockSessionStore) FindActiveByStudent(_ context.Context, studentID uuid.UUID) (model.PaymentSession, error) {
	for _, session := range m.sessions {
		if session.StudentID() == studentID && session.State().IsActive() {
			return session, nil
		}
	}
	return model.PaymentSession{}, model.ErrSessionNotFound
}

func (m *mockSessionStore) FindOverdue(_ context.Context, limit int) ([]model.PaymentSession, error) {
	var out []model.PaymentSession
	for _, session := range m.sessions {
		if len(out) >= limit {
			break
		}
		if session.State().IsActive() {
			out = append(out, session)
		}
	}
	return out, nil
}

func (m *mockSessionStore) FindActive(_ context.Context, limit int) ([]model.PaymentSession, error) {
	var out []model.PaymentSession
	for _, session := range m.sessions {
		if len(out) >= limit {
			break
		}
		if session.State().IsActive() {
			out = append(out, session)
		}
	}
	return out, nil
}

// mockProfileStore records kill-switch flips.
type mockProfileStore struct {
	status map[uuid.UUID]bool
}

func newMockProfileStore() *mockProfileStore {
	return &mockProfileStore{status: make(map[uuid.UUID]bool)}
}

func (m *mockProfileStore) SetPaymentStatus(_ context.Context, studentID uuid.UUID, active bool) error {
	m.status[studentID] = active
	return nil
}

func (m *mockProfileStore) ListClassStudents(_ context.Context, _ uuid.UUID) ([]uuid.UUID, error) {
	var out []uuid.UUID
	for id := range m.status {
		out = append(out, id)
	}
	return out, nil
}

// mockPublisher captures published events.
type mockPublisher struct {
	published []events.DomainEvent

	PublishFn func(ctx context.Context, evts ...events.DomainEvent) error
}

func (m *mockPublisher) Publish(ctx context.Context, evts ...events.DomainEvent) error {
	if m.PublishFn != nil {
		return m.PublishFn(ctx, evts...)
	}
	m.published = append(m.published, evts...)
	return nil
}

func (m *mockPublisher) typesPublished() []string {
	out := make([]string, len(m.published))
	for i, e := range m.published {
		out[i] = e.EventType()
	}
	return out
}

// mockConfigStore serves a fixed billing range.
type mockConfigStore struct {
	stored valueobject.BillingRange

	LoadFn func(ctx context.Context) (valueobject.BillingRange, error)
}

func (m *mockConfigStore) Load(ctx context.Context) (valueobject.BillingRange, error) {
	if m.LoadFn != nil {
		return m.LoadFn(ctx)
	}
	if m.stored == (valueobject.BillingRange{}) {
		return valueobject.DefaultBillingRange(), nil
	}
	return m.stored, nil
}

func (m *mockConfigStore) Save(_ context.Context, r valueobject.BillingRange) error {
	m.stored = r
	return nil
}
