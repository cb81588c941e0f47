package scheduler

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/internal/application/usecase"
	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/internal/domain/model"
	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/internal/domain/valueobject"
	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/pkg/events"
)

type memSessions struct {
	sessions map[uuid.UUID]model.PaymentSession
	clock    *stubClock
}

func (m *memSessions) Save(_ context.Context, s model.PaymentSession) error {
	m.sessions[s.ID()] = s
	return nil
}

func (m *memSessions) FindByID(_ context.Context, id uuid.UUID) (model.PaymentSession, error) {
	s, ok := m.sessions[id]
	if !ok {
		return model.PaymentSession{}, model.ErrSessionNotFound
	}
	return s, nil
}

func (m *memSessions) FindActiveByStudent(_ context.Context, studentID uuid.UUID) (model.PaymentSession, error) {
	for _, s := range m.sessions {
		if s.StudentID() == studentID && s.State().IsActive() {
			return s, nil
		}
	}
	return model.PaymentSession{}, model.ErrSessionNotFound
}

func (m *memSessions) FindOverdue(_ context.Context, limit int) ([]model.PaymentSession, error) {
	var out []model.PaymentSession
	for _, s := range m.sessions {
		if len(out) >= limit {
			break
		}
		if s.IsExpired(m.clock.Now()) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memSessions) FindActive(_ context.Context, limit int) ([]model.PaymentSession, error) {
	var out []model.PaymentSession
	for _, s := range m.sessions {
		if len(out) >= limit {
			break
		}
		if s.State().IsActive() {
			out = append(out, s)
		}
	}
	return out, nil
}

type memLedger struct {
	records map[uuid.UUID]model.DueRecord
}

func (m *memLedger) Upsert(_ context.Context, r model.DueRecord) error {
	m.records[r.ID()] = r
	return nil
}

func (m *memLedger) FindByStudent(_ context.Context, _ uuid.UUID) ([]model.DueRecord, error) {
	return nil, nil
}

func (m *memLedger) FindByStudentYear(_ context.Context, _ uuid.UUID, _ int) ([]model.DueRecord, error) {
	return nil, nil
}

func (m *memLedger) FindByKeys(_ context.Context, _ uuid.UUID, _ []valueobject.DueKey) ([]model.DueRecord, error) {
	return nil, nil
}

func (m *memLedger) FindByClass(_ context.Context, _ uuid.UUID) (map[uuid.UUID][]model.DueRecord, error) {
	return nil, nil
}

func (m *memLedger) ReleaseBySession(_ context.Context, sessionID uuid.UUID) (int, error) {
	released := 0
	for id, rec := range m.records {
		next, ok := rec.Release(sessionID, time.Now())
		if ok {
			m.records[id] = next
			released++
		}
	}
	return released, nil
}

type memProfiles struct{ status map[uuid.UUID]bool }

func (m *memProfiles) SetPaymentStatus(_ context.Context, id uuid.UUID, active bool) error {
	m.status[id] = active
	return nil
}

func (m *memProfiles) ListClassStudents(_ context.Context, _ uuid.UUID) ([]uuid.UUID, error) {
	return nil, nil
}

type nopPublisher struct{}

func (nopPublisher) Publish(_ context.Context, _ ...events.DomainEvent) error { return nil }

type stubClock struct{ now time.Time }

func (c *stubClock) Now() time.Time { return c.now }

func TestReaper_SweepOnce(t *testing.T) {
	clock := &stubClock{now: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}
	sessions := &memSessions{sessions: make(map[uuid.UUID]model.PaymentSession), clock: clock}
	ledger := &memLedger{records: make(map[uuid.UUID]model.DueRecord)}
	profiles := &memProfiles{status: make(map[uuid.UUID]bool)}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	expire := usecase.NewExpireSessionUseCase(ledger, sessions, profiles, nopPublisher{}, clock, logger)
	reaper := NewReaper(sessions, expire, time.Second, 100, logger)

	// An overdue session holding one week.
	studentID := uuid.New()
	key, err := valueobject.NewDueKey(2025, 3, 1)
	require.NoError(t, err)
	session, err := model.NewPaymentSession(studentID, []valueobject.DueKey{key}, clock.Now())
	require.NoError(t, err)
	require.NoError(t, sessions.Save(context.Background(), session))

	rec, err := model.NewDueRecord(studentID, key, clock.Now())
	require.NoError(t, err)
	rec, err = rec.Reserve(session.ID(), clock.Now())
	require.NoError(t, err)
	require.NoError(t, ledger.Upsert(context.Background(), rec))

	// A fresh session that must survive the sweep.
	fresh, err := model.NewPaymentSession(uuid.New(), []valueobject.DueKey{key}, clock.Now().Add(30*time.Second))
	require.NoError(t, err)
	require.NoError(t, sessions.Save(context.Background(), fresh))

	clock.now = clock.now.Add(model.SessionTTL)
	require.NoError(t, reaper.SweepOnce(context.Background()))

	swept, err := sessions.FindByID(context.Background(), session.ID())
	require.NoError(t, err)
	assert.Equal(t, valueobject.SessionStateExpired, swept.State())
	assert.Equal(t, valueobject.DueStatusUnpaid, ledger.records[rec.ID()].Status())

	survivor, err := sessions.FindByID(context.Background(), fresh.ID())
	require.NoError(t, err)
	assert.Equal(t, valueobject.SessionStateReserved, survivor.State())

	// A second sweep finds nothing left to do.
	require.NoError(t, reaper.SweepOnce(context.Background()))
}
