package model

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/internal/domain/valueobject"
)

func mustKey(t *testing.T, year, month, week int) valueobject.DueKey {
	t.Helper()
	key, err := valueobject.NewDueKey(year, month, week)
	require.NoError(t, err)
	return key
}

func TestNewDueRecord(t *testing.T) {
	now := time.Now()
	studentID := uuid.New()
	key := mustKey(t, 2025, 3, 1)

	record, err := NewDueRecord(studentID, key, now)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, record.ID())
	assert.Equal(t, studentID, record.StudentID())
	assert.Equal(t, key, record.Key())
	assert.Equal(t, valueobject.DueStatusUnpaid, record.Status())
	assert.True(t, record.Amount().IsZero())
	assert.Nil(t, record.SessionID())
}

func TestNewDueRecord_Validation(t *testing.T) {
	now := time.Now()

	_, err := NewDueRecord(uuid.Nil, mustKey(t, 2025, 3, 1), now)
	require.Error(t, err)

	_, err = NewDueRecord(uuid.New(), valueobject.DueKey{}, now)
	require.Error(t, err)
}

func TestDueRecord_Reserve(t *testing.T) {
	now := time.Now()
	record, err := NewDueRecord(uuid.New(), mustKey(t, 2025, 3, 1), now)
	require.NoError(t, err)
	sessionID := uuid.New()

	reserved, err := record.Reserve(sessionID, now)
	require.NoError(t, err)
	assert.Equal(t, valueobject.DueStatusPending, reserved.Status())
	require.NotNil(t, reserved.SessionID())
	assert.Equal(t, sessionID, *reserved.SessionID())

	// Original copy untouched.
	assert.Equal(t, valueobject.DueStatusUnpaid, record.Status())

	_, err = reserved.Reserve(uuid.New(), now)
	assert.ErrorIs(t, err, ErrNotReservable)
}

func TestDueRecord_MarkPaid(t *testing.T) {
	now := time.Now()
	record, err := NewDueRecord(uuid.New(), mustKey(t, 2025, 3, 1), now)
	require.NoError(t, err)

	_, err = record.MarkPaid(now)
	assert.ErrorIs(t, err, ErrNotPending)

	reserved, err := record.Reserve(uuid.New(), now)
	require.NoError(t, err)

	paid, err := reserved.MarkPaid(now)
	require.NoError(t, err)
	assert.Equal(t, valueobject.DueStatusPaid, paid.Status())
	assert.Equal(t, int64(5000), paid.Amount().Rupiah())
	assert.Nil(t, paid.SessionID())
}

func TestDueRecord_Release(t *testing.T) {
	now := time.Now()
	sessionID := uuid.New()
	record, err := NewDueRecord(uuid.New(), mustKey(t, 2025, 3, 1), now)
	require.NoError(t, err)
	reserved, err := record.Reserve(sessionID, now)
	require.NoError(t, err)

	t.Run("owning session releases the hold", func(t *testing.T) {
		released, ok := reserved.Release(sessionID, now)
		assert.True(t, ok)
		assert.Equal(t, valueobject.DueStatusUnpaid, released.Status())
		assert.Nil(t, released.SessionID())
	})

	t.Run("foreign session leaves the row alone", func(t *testing.T) {
		same, ok := reserved.Release(uuid.New(), now)
		assert.False(t, ok)
		assert.Equal(t, valueobject.DueStatusPending, same.Status())
	})

	t.Run("paid row is never reverted", func(t *testing.T) {
		paid, err := reserved.MarkPaid(now)
		require.NoError(t, err)
		same, ok := paid.Release(sessionID, now)
		assert.False(t, ok)
		assert.Equal(t, valueobject.DueStatusPaid, same.Status())
	})
}

func TestDueRecord_Waive(t *testing.T) {
	now := time.Now()
	record, err := NewDueRecord(uuid.New(), mustKey(t, 2025, 3, 1), now)
	require.NoError(t, err)

	waived, err := record.Waive(now)
	require.NoError(t, err)
	assert.Equal(t, valueobject.DueStatusBebas, waived.Status())
	assert.True(t, waived.Amount().IsZero())

	_, err = waived.Waive(now)
	require.Error(t, err)
}
