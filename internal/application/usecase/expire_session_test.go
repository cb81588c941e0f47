package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/internal/application/dto"
	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/internal/domain/event"
	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/internal/domain/model"
	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/internal/domain/valueobject"
)

func (f *sessionFixture) expireUseCase() *ExpireSessionUseCase {
	return NewExpireSessionUseCase(f.ledger, f.sessions, f.profiles, f.pub, f.clock, testLogger())
}

func TestExpireSession(t *testing.T) {
	f := newSessionFixture()
	studentID := uuid.New()
	opened := f.openSession(t, studentID,
		dto.WeekSelection{Year: 2025, Month: 3, Week: 1},
		dto.WeekSelection{Year: 2025, Month: 3, Week: 2},
	)

	f.clock.Advance(model.SessionTTL)

	released, err := f.expireUseCase().Execute(context.Background(), opened.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 2, released)

	assert.Equal(t, valueobject.DueStatusUnpaid, f.recordStatus(studentID, 2025, 3, 1))
	assert.Equal(t, valueobject.DueStatusUnpaid, f.recordStatus(studentID, 2025, 3, 2))
	assert.False(t, f.profiles.status[studentID])

	session, err := f.sessions.FindByID(context.Background(), opened.SessionID)
	require.NoError(t, err)
	assert.Equal(t, valueobject.SessionStateExpired, session.State())
	assert.Equal(t, []string{event.TypeSessionExpired}, f.pub.typesPublished())
}

func TestExpireSession_Idempotent(t *testing.T) {
	f := newSessionFixture()
	opened := f.openSession(t, uuid.New(), dto.WeekSelection{Year: 2025, Month: 3, Week: 1})
	f.clock.Advance(model.SessionTTL)

	uc := f.expireUseCase()
	released, err := uc.Execute(context.Background(), opened.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 1, released)

	// The second run sees a terminal session and does nothing.
	released, err = uc.Execute(context.Background(), opened.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 0, released)
}

func TestExpireSession_SkipsBeforeDeadline(t *testing.T) {
	f := newSessionFixture()
	studentID := uuid.New()
	opened := f.openSession(t, studentID, dto.WeekSelection{Year: 2025, Month: 3, Week: 1})
	f.clock.Advance(30 * time.Second)

	_, err := f.expireUseCase().Execute(context.Background(), opened.SessionID)
	require.Error(t, err)
	assert.Equal(t, valueobject.DueStatusPending, f.recordStatus(studentID, 2025, 3, 1))
}

func TestExpireSession_LosesToConfirmation(t *testing.T) {
	f := newSessionFixture()
	studentID := uuid.New()
	opened := f.openSession(t, studentID, dto.WeekSelection{Year: 2025, Month: 3, Week: 1})
	f.clock.Advance(model.SessionTTL)

	confirm := NewConfirmSessionUseCase(f.ledger, f.sessions, f.profiles, f.pub, f.clock, testLogger())
	_, err := confirm.Execute(context.Background(), dto.ConfirmSessionRequest{SessionID: opened.SessionID})
	require.NoError(t, err)

	// The reaper arrives after the confirmation and must not undo it.
	released, err := f.expireUseCase().Execute(context.Background(), opened.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 0, released)
	assert.Equal(t, valueobject.DueStatusPaid, f.recordStatus(studentID, 2025, 3, 1))

	session, err := f.sessions.FindByID(context.Background(), opened.SessionID)
	require.NoError(t, err)
	assert.Equal(t, valueobject.SessionStateConfirmed, session.State())
}

func TestExpireSession_RetriesAfterFailedSessionWrite(t *testing.T) {
	f := newSessionFixture()
	studentID := uuid.New()
	opened := f.openSession(t, studentID, dto.WeekSelection{Year: 2025, Month: 3, Week: 1})
	f.clock.Advance(model.SessionTTL)

	uc := f.expireUseCase()
	saveErr := errors.New("write timeout")
	f.sessions.SaveFn = func(context.Context, model.PaymentSession) error { return saveErr }

	_, err := uc.Execute(context.Background(), opened.SessionID)
	require.ErrorIs(t, err, saveErr)

	// The rows went back even though the session write failed.
	assert.Equal(t, valueobject.DueStatusUnpaid, f.recordStatus(studentID, 2025, 3, 1))

	// The session is still Reserved, so the next sweep closes it.
	f.sessions.SaveFn = nil
	released, err := uc.Execute(context.Background(), opened.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 0, released)

	session, err := f.sessions.FindByID(context.Background(), opened.SessionID)
	require.NoError(t, err)
	assert.Equal(t, valueobject.SessionStateExpired, session.State())
}

func TestExpireSession_UnknownSessionIsNoop(t *testing.T) {
	f := newSessionFixture()
	released, err := f.expireUseCase().Execute(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, 0, released)
}
