package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/internal/domain/model"
	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/internal/domain/valueobject"
)

func newRecord(t *testing.T, studentID uuid.UUID, year, month, week int, status valueobject.DueStatus) model.DueRecord {
	t.Helper()
	now := time.Now()
	key, err := valueobject.NewDueKey(year, month, week)
	require.NoError(t, err)
	rec, err := model.NewDueRecord(studentID, key, now)
	require.NoError(t, err)

	switch status {
	case valueobject.DueStatusUnpaid:
		return rec
	case valueobject.DueStatusPending:
		rec, err = rec.Reserve(uuid.New(), now)
		require.NoError(t, err)
		return rec
	case valueobject.DueStatusPaid:
		rec, err = rec.Reserve(uuid.New(), now)
		require.NoError(t, err)
		rec, err = rec.MarkPaid(now)
		require.NoError(t, err)
		return rec
	case valueobject.DueStatusBebas:
		rec, err = rec.Waive(now)
		require.NoError(t, err)
		return rec
	}
	t.Fatalf("unhandled status %s", status)
	return model.DueRecord{}
}

func TestDuesAggregator_ComputeBill(t *testing.T) {
	agg := NewDuesAggregator()
	studentID := uuid.New()

	t.Run("partially paid semester", func(t *testing.T) {
		r, err := valueobject.NewBillingRange(1, 3, 0)
		require.NoError(t, err)

		// January fully paid, February two weeks paid, March untouched.
		records := []model.DueRecord{
			newRecord(t, studentID, 2025, 1, 1, valueobject.DueStatusPaid),
			newRecord(t, studentID, 2025, 1, 2, valueobject.DueStatusPaid),
			newRecord(t, studentID, 2025, 1, 3, valueobject.DueStatusPaid),
			newRecord(t, studentID, 2025, 1, 4, valueobject.DueStatusPaid),
			newRecord(t, studentID, 2025, 2, 1, valueobject.DueStatusPaid),
			newRecord(t, studentID, 2025, 2, 2, valueobject.DueStatusPaid),
		}

		bill := agg.ComputeBill(studentID, 2025, records, r)
		require.Len(t, bill.Months, 3)

		jan := bill.Months[0]
		assert.True(t, jan.Complete)
		assert.True(t, jan.Deficiency.IsZero())
		assert.Equal(t, "Januari", jan.Label)

		feb := bill.Months[1]
		assert.False(t, feb.Complete)
		assert.Equal(t, int64(10000), feb.Deficiency.Rupiah())
		assert.Equal(t, "Februari (-2 mg)", feb.Label)

		mar := bill.Months[2]
		assert.False(t, mar.Complete)
		assert.Equal(t, int64(20000), mar.Deficiency.Rupiah())
		assert.Equal(t, "Maret (-4 mg)", mar.Label)

		assert.Equal(t, 1, bill.PaidMonthCount)
		assert.Equal(t, int64(30000), bill.TotalPaid.Rupiah())
		assert.Equal(t, int64(30000), bill.TotalDeficiency.Rupiah())
		assert.Equal(t, []string{"Februari (-2 mg)", "Maret (-4 mg)"}, bill.Outstanding)
		assert.False(t, bill.IsSettled())
	})

	t.Run("only paid amounts accumulate", func(t *testing.T) {
		r, err := valueobject.NewBillingRange(5, 5, 0)
		require.NoError(t, err)

		now := time.Now()
		key1, err := valueobject.NewDueKey(2025, 5, 1)
		require.NoError(t, err)
		key2, err := valueobject.NewDueKey(2025, 5, 2)
		require.NoError(t, err)

		sessionID := uuid.New()
		records := []model.DueRecord{
			// Rows reconstructed from storage can carry an amount in any
			// status. Neither a hold nor a waiver is received money.
			model.ReconstructDueRecord(uuid.New(), studentID, key1,
				valueobject.DueStatusPending, model.WeeklyDue, &sessionID, now, now),
			model.ReconstructDueRecord(uuid.New(), studentID, key2,
				valueobject.DueStatusBebas, model.WeeklyDue, nil, now, now),
		}

		bill := agg.ComputeBill(studentID, 2025, records, r)
		require.Len(t, bill.Months, 1)
		mei := bill.Months[0]
		assert.True(t, bill.TotalPaid.IsZero())
		assert.True(t, mei.Paid.IsZero())
		assert.False(t, mei.Complete)
		assert.Equal(t, 0, bill.PaidMonthCount)
		assert.Equal(t, int64(10000), mei.Deficiency.Rupiah())
	})

	t.Run("pending weeks block completeness without owing", func(t *testing.T) {
		r, err := valueobject.NewBillingRange(3, 3, 0)
		require.NoError(t, err)

		records := []model.DueRecord{
			newRecord(t, studentID, 2025, 3, 1, valueobject.DueStatusPaid),
			newRecord(t, studentID, 2025, 3, 2, valueobject.DueStatusPending),
		}

		bill := agg.ComputeBill(studentID, 2025, records, r)
		require.Len(t, bill.Months, 1)
		mar := bill.Months[0]
		assert.False(t, mar.Complete)
		assert.Equal(t, 1, mar.SettledWeeks)
		assert.Equal(t, 1, mar.PendingWeeks)
		assert.Equal(t, int64(10000), mar.Deficiency.Rupiah())
		assert.Equal(t, "Maret (-2 mg)", mar.Label)
	})

	t.Run("waived weeks complete the month without money", func(t *testing.T) {
		r, err := valueobject.NewBillingRange(4, 4, 0)
		require.NoError(t, err)

		records := []model.DueRecord{
			newRecord(t, studentID, 2025, 4, 1, valueobject.DueStatusBebas),
			newRecord(t, studentID, 2025, 4, 2, valueobject.DueStatusBebas),
			newRecord(t, studentID, 2025, 4, 3, valueobject.DueStatusBebas),
			newRecord(t, studentID, 2025, 4, 4, valueobject.DueStatusBebas),
		}

		bill := agg.ComputeBill(studentID, 2025, records, r)
		apr := bill.Months[0]
		assert.True(t, apr.Complete)
		assert.True(t, apr.Paid.IsZero())
		assert.True(t, apr.Deficiency.IsZero())
	})

	t.Run("rows outside the range are ignored", func(t *testing.T) {
		r, err := valueobject.NewBillingRange(1, 2, 0)
		require.NoError(t, err)

		records := []model.DueRecord{
			newRecord(t, studentID, 2025, 9, 1, valueobject.DueStatusPaid),
			newRecord(t, studentID, 2024, 1, 1, valueobject.DueStatusPaid),
		}

		bill := agg.ComputeBill(studentID, 2025, records, r)
		assert.True(t, bill.TotalPaid.IsZero())
		assert.Equal(t, int64(40000), bill.TotalDeficiency.Rupiah())
	})
}

func TestDuesAggregator_ComputeLifetime(t *testing.T) {
	agg := NewDuesAggregator()
	studentID := uuid.New()

	t.Run("lifetime range spans every year", func(t *testing.T) {
		r, err := valueobject.NewBillingRange(1, 2, 0)
		require.NoError(t, err)

		records := []model.DueRecord{
			newRecord(t, studentID, 2024, 1, 1, valueobject.DueStatusPaid),
			newRecord(t, studentID, 2025, 1, 1, valueobject.DueStatusPaid),
		}

		lifetime := agg.ComputeLifetime(studentID, records, r, []int{2025, 2024})
		require.Len(t, lifetime.Years, 2)
		assert.Equal(t, 2024, lifetime.Years[0].Year)
		assert.Equal(t, 2025, lifetime.Years[1].Year)
		assert.Equal(t, 0, lifetime.PaidMonthCount)
		assert.Equal(t, int64(10000), lifetime.TotalPaid.Rupiah())
		// Two months billed per year, one week paid in each year.
		assert.Equal(t, int64(70000), lifetime.TotalDeficiency.Rupiah())
	})

	t.Run("cohort range skips other years", func(t *testing.T) {
		r, err := valueobject.NewBillingRange(1, 2, 2025)
		require.NoError(t, err)

		lifetime := agg.ComputeLifetime(studentID, nil, r, []int{2024, 2025})
		require.Len(t, lifetime.Years, 1)
		assert.Equal(t, 2025, lifetime.Years[0].Year)
		assert.Equal(t, int64(40000), lifetime.TotalDeficiency.Rupiah())
	})
}

func TestDuesAggregator_ComputeClassSummary(t *testing.T) {
	agg := NewDuesAggregator()
	classID := uuid.New()
	student1 := uuid.New()
	student2 := uuid.New()

	r, err := valueobject.NewBillingRange(1, 1, 0)
	require.NoError(t, err)

	recordsByStudent := map[uuid.UUID][]model.DueRecord{
		student1: {
			newRecord(t, student1, 2025, 1, 1, valueobject.DueStatusPaid),
			newRecord(t, student1, 2025, 1, 2, valueobject.DueStatusPaid),
			newRecord(t, student1, 2025, 1, 3, valueobject.DueStatusPaid),
			newRecord(t, student1, 2025, 1, 4, valueobject.DueStatusPaid),
		},
		student2: {
			newRecord(t, student2, 2025, 1, 1, valueobject.DueStatusPaid),
		},
	}

	summary := agg.ComputeClassSummary(classID, 2025, recordsByStudent, r)
	require.Len(t, summary.Students, 2)
	assert.Equal(t, int64(25000), summary.TotalCollected.Rupiah())
	assert.Equal(t, int64(15000), summary.TotalDeficiency.Rupiah())

	// Stable ordering by student ID.
	again := agg.ComputeClassSummary(classID, 2025, recordsByStudent, r)
	assert.Equal(t, summary.Students, again.Students)
}

func TestMonthName(t *testing.T) {
	assert.Equal(t, "Januari", MonthName(1))
	assert.Equal(t, "Desember", MonthName(12))
	assert.Equal(t, "", MonthName(0))
	assert.Equal(t, "", MonthName(13))
}
