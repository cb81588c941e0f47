package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/internal/application/dto"
	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/internal/domain/model"
	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/internal/domain/service"
	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/internal/domain/valueobject"
)

func paidRecord(t *testing.T, studentID uuid.UUID, year, month, week int) model.DueRecord {
	t.Helper()
	now := time.Now()
	key, err := valueobject.NewDueKey(year, month, week)
	require.NoError(t, err)
	rec, err := model.NewDueRecord(studentID, key, now)
	require.NoError(t, err)
	rec, err = rec.Reserve(uuid.New(), now)
	require.NoError(t, err)
	rec, err = rec.MarkPaid(now)
	require.NoError(t, err)
	return rec
}

func TestCheckBill(t *testing.T) {
	ledger := newMockLedger()
	config := &mockConfigStore{}
	studentID := uuid.New()

	require.NoError(t, config.Save(context.Background(), mustRange(t, 1, 2, 0)))
	for week := 1; week <= 4; week++ {
		ledger.put(paidRecord(t, studentID, 2025, 1, week))
	}

	uc := NewCheckBillUseCase(ledger, config, service.NewDuesAggregator(), testLogger())
	resp, err := uc.Execute(context.Background(), dto.CheckBillRequest{StudentID: studentID, Year: 2025})
	require.NoError(t, err)

	require.Len(t, resp.Months, 2)
	assert.Equal(t, 1, resp.PaidMonthCount)
	assert.Equal(t, int64(20000), resp.PaidRupiah)
	assert.Equal(t, int64(20000), resp.DeficiencyRupiah)
	assert.Equal(t, []string{"Februari (-4 mg)"}, resp.Outstanding)
	assert.False(t, resp.Settled)
	assert.Len(t, resp.Months[0].Weeks, 4)
}

func TestCheckBill_InvalidStoredRangeFallsBack(t *testing.T) {
	ledger := newMockLedger()
	config := &mockConfigStore{LoadFn: func(context.Context) (valueobject.BillingRange, error) {
		return valueobject.BillingRange{}, fmt.Errorf("parse billing range: %w", valueobject.ErrInvalidRange)
	}}
	studentID := uuid.New()
	ledger.put(paidRecord(t, studentID, 2025, 1, 1))

	uc := NewCheckBillUseCase(ledger, config, service.NewDuesAggregator(), testLogger())
	resp, err := uc.Execute(context.Background(), dto.CheckBillRequest{StudentID: studentID, Year: 2025})
	require.NoError(t, err)

	// The default window is billed instead of failing the read.
	require.Len(t, resp.Months, 6)
	assert.Equal(t, int64(5000), resp.PaidRupiah)
}

func mustRange(t *testing.T, start, end, period int) valueobject.BillingRange {
	t.Helper()
	r, err := valueobject.NewBillingRange(start, end, period)
	require.NoError(t, err)
	return r
}

func TestLifetimeSummary_DiscoversYears(t *testing.T) {
	ledger := newMockLedger()
	config := &mockConfigStore{}
	studentID := uuid.New()

	require.NoError(t, config.Save(context.Background(), mustRange(t, 1, 1, 0)))
	ledger.put(paidRecord(t, studentID, 2024, 1, 1))
	ledger.put(paidRecord(t, studentID, 2025, 1, 1))

	uc := NewLifetimeSummaryUseCase(ledger, config, service.NewDuesAggregator(), testLogger())
	resp, err := uc.Execute(context.Background(), dto.LifetimeSummaryRequest{StudentID: studentID})
	require.NoError(t, err)

	require.Len(t, resp.Years, 2)
	assert.Equal(t, 2024, resp.Years[0].Year)
	assert.Equal(t, 2025, resp.Years[1].Year)
	assert.Equal(t, int64(10000), resp.PaidRupiah)
	assert.Equal(t, int64(30000), resp.DeficiencyRupiah)
}

func TestClassSummary(t *testing.T) {
	ledger := newMockLedger()
	config := &mockConfigStore{}
	classID := uuid.New()
	student1 := uuid.New()
	student2 := uuid.New()

	require.NoError(t, config.Save(context.Background(), mustRange(t, 1, 1, 0)))
	for week := 1; week <= 4; week++ {
		ledger.put(paidRecord(t, student1, 2025, 1, week))
	}
	ledger.put(paidRecord(t, student2, 2025, 1, 1))

	uc := NewClassSummaryUseCase(ledger, config, service.NewDuesAggregator(), testLogger())
	resp, err := uc.Execute(context.Background(), dto.ClassSummaryRequest{ClassID: classID, Year: 2025})
	require.NoError(t, err)

	require.Len(t, resp.Students, 2)
	assert.Equal(t, int64(25000), resp.CollectedRupiah)
	assert.Equal(t, int64(15000), resp.DeficiencyRupiah)
}

func TestBillingRangeUseCases(t *testing.T) {
	config := &mockConfigStore{}

	get := NewGetBillingRangeUseCase(config)
	resp, err := get.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, dto.BillingRangeResponse{StartMonth: 1, EndMonth: 6}, resp)

	save := NewSaveBillingRangeUseCase(config, testLogger())
	saved, err := save.Execute(context.Background(), dto.SaveBillingRangeRequest{StartMonth: 2, EndMonth: 7, ActivePeriod: 2025})
	require.NoError(t, err)
	assert.Equal(t, dto.BillingRangeResponse{StartMonth: 2, EndMonth: 7, ActivePeriod: 2025}, saved)

	resp, err = get.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, saved, resp)

	_, err = save.Execute(context.Background(), dto.SaveBillingRangeRequest{StartMonth: 9, EndMonth: 2})
	assert.ErrorIs(t, err, valueobject.ErrInvalidRange)
}
