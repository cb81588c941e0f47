package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/internal/application/dto"
	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/internal/domain/port"
	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/internal/domain/service"
	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/internal/domain/valueobject"
)

// loadBillingRange reads the configured billing window. A stored range
// that no longer parses degrades to the default window instead of
// failing every bill read.
func loadBillingRange(ctx context.Context, store port.BillingConfigStore, logger *slog.Logger) (valueobject.BillingRange, error) {
	r, err := store.Load(ctx)
	if err == nil {
		return r, nil
	}
	if errors.Is(err, valueobject.ErrInvalidRange) {
		logger.Warn("stored billing range is invalid, using default",
			slog.String("error", err.Error()))
		return valueobject.DefaultBillingRange(), nil
	}
	return valueobject.BillingRange{}, fmt.Errorf("load billing range: %w", err)
}

// CheckBillUseCase computes a student's position for one year.
type CheckBillUseCase struct {
	ledger     port.DueLedger
	config     port.BillingConfigStore
	aggregator *service.DuesAggregator
	logger     *slog.Logger
}

// NewCheckBillUseCase wires the use case.
func NewCheckBillUseCase(ledger port.DueLedger, config port.BillingConfigStore, aggregator *service.DuesAggregator, logger *slog.Logger) *CheckBillUseCase {
	return &CheckBillUseCase{ledger: ledger, config: config, aggregator: aggregator, logger: logger}
}

// Execute folds the student's ledger rows for the year into a bill.
func (uc *CheckBillUseCase) Execute(ctx context.Context, req dto.CheckBillRequest) (dto.BillResponse, error) {
	billingRange, err := loadBillingRange(ctx, uc.config, uc.logger)
	if err != nil {
		return dto.BillResponse{}, err
	}

	records, err := uc.ledger.FindByStudentYear(ctx, req.StudentID, req.Year)
	if err != nil {
		return dto.BillResponse{}, fmt.Errorf("load ledger rows: %w", err)
	}

	bill := uc.aggregator.ComputeBill(req.StudentID, req.Year, records, billingRange)
	return toBillResponse(bill), nil
}

// LifetimeSummaryUseCase sums a student's position across years.
type LifetimeSummaryUseCase struct {
	ledger     port.DueLedger
	config     port.BillingConfigStore
	aggregator *service.DuesAggregator
	logger     *slog.Logger
}

// NewLifetimeSummaryUseCase wires the use case.
func NewLifetimeSummaryUseCase(ledger port.DueLedger, config port.BillingConfigStore, aggregator *service.DuesAggregator, logger *slog.Logger) *LifetimeSummaryUseCase {
	return &LifetimeSummaryUseCase{ledger: ledger, config: config, aggregator: aggregator, logger: logger}
}

// Execute computes the lifetime summary. When the request names no
// years, the years present in the student's ledger are billed.
func (uc *LifetimeSummaryUseCase) Execute(ctx context.Context, req dto.LifetimeSummaryRequest) (dto.LifetimeSummaryResponse, error) {
	billingRange, err := loadBillingRange(ctx, uc.config, uc.logger)
	if err != nil {
		return dto.LifetimeSummaryResponse{}, err
	}

	records, err := uc.ledger.FindByStudent(ctx, req.StudentID)
	if err != nil {
		return dto.LifetimeSummaryResponse{}, fmt.Errorf("load ledger rows: %w", err)
	}

	years := req.Years
	if len(years) == 0 {
		seen := make(map[int]struct{})
		for _, rec := range records {
			seen[rec.Key().Year()] = struct{}{}
		}
		for year := range seen {
			years = append(years, year)
		}
		sort.Ints(years)
	}

	lifetime := uc.aggregator.ComputeLifetime(req.StudentID, records, billingRange, years)

	resp := dto.LifetimeSummaryResponse{
		StudentID:        req.StudentID,
		PaidMonthCount:   lifetime.PaidMonthCount,
		PaidRupiah:       lifetime.TotalPaid.Rupiah(),
		DeficiencyRupiah: lifetime.TotalDeficiency.Rupiah(),
	}
	for _, bill := range lifetime.Years {
		resp.Years = append(resp.Years, toBillResponse(bill))
	}
	return resp, nil
}

// ClassSummaryUseCase builds the treasurer's recap of a class.
type ClassSummaryUseCase struct {
	ledger     port.DueLedger
	config     port.BillingConfigStore
	aggregator *service.DuesAggregator
	logger     *slog.Logger
}

// NewClassSummaryUseCase wires the use case.
func NewClassSummaryUseCase(ledger port.DueLedger, config port.BillingConfigStore, aggregator *service.DuesAggregator, logger *slog.Logger) *ClassSummaryUseCase {
	return &ClassSummaryUseCase{ledger: ledger, config: config, aggregator: aggregator, logger: logger}
}

// Execute aggregates every student in the class for the given year.
func (uc *ClassSummaryUseCase) Execute(ctx context.Context, req dto.ClassSummaryRequest) (dto.ClassSummaryResponse, error) {
	billingRange, err := loadBillingRange(ctx, uc.config, uc.logger)
	if err != nil {
		return dto.ClassSummaryResponse{}, err
	}

	recordsByStudent, err := uc.ledger.FindByClass(ctx, req.ClassID)
	if err != nil {
		return dto.ClassSummaryResponse{}, fmt.Errorf("load class ledger: %w", err)
	}

	summary := uc.aggregator.ComputeClassSummary(req.ClassID, req.Year, recordsByStudent, billingRange)

	resp := dto.ClassSummaryResponse{
		ClassID:          req.ClassID,
		CollectedRupiah:  summary.TotalCollected.Rupiah(),
		DeficiencyRupiah: summary.TotalDeficiency.Rupiah(),
	}
	for _, s := range summary.Students {
		resp.Students = append(resp.Students, dto.StudentRecap{
			StudentID:        s.StudentID,
			PaidRupiah:       s.TotalPaid.Rupiah(),
			DeficiencyRupiah: s.TotalDeficiency.Rupiah(),
			Outstanding:      s.Outstanding,
		})
	}
	return resp, nil
}
