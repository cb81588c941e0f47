package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/internal/application/dto"
	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/internal/domain/port"
	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/internal/domain/valueobject"
)

// GetBillingRangeUseCase reads the configured billing window.
type GetBillingRangeUseCase struct {
	config port.BillingConfigStore
}

// NewGetBillingRangeUseCase wires the use case.
func NewGetBillingRangeUseCase(config port.BillingConfigStore) *GetBillingRangeUseCase {
	return &GetBillingRangeUseCase{config: config}
}

// Execute returns the stored range, falling back to the default window.
func (uc *GetBillingRangeUseCase) Execute(ctx context.Context) (dto.BillingRangeResponse, error) {
	r, err := uc.config.Load(ctx)
	if err != nil {
		return dto.BillingRangeResponse{}, fmt.Errorf("load billing range: %w", err)
	}
	return dto.BillingRangeResponse{
		StartMonth:   r.StartMonth(),
		EndMonth:     r.EndMonth(),
		ActivePeriod: r.ActivePeriod(),
	}, nil
}

// SaveBillingRangeUseCase replaces the billing window.
type SaveBillingRangeUseCase struct {
	config port.BillingConfigStore
	logger *slog.Logger
}

// NewSaveBillingRangeUseCase wires the use case.
func NewSaveBillingRangeUseCase(config port.BillingConfigStore, logger *slog.Logger) *SaveBillingRangeUseCase {
	return &SaveBillingRangeUseCase{config: config, logger: logger}
}

// Execute validates and stores the new range.
func (uc *SaveBillingRangeUseCase) Execute(ctx context.Context, req dto.SaveBillingRangeRequest) (dto.BillingRangeResponse, error) {
	r, err := valueobject.NewBillingRange(req.StartMonth, req.EndMonth, req.ActivePeriod)
	if err != nil {
		return dto.BillingRangeResponse{}, err
	}
	if err := uc.config.Save(ctx, r); err != nil {
		return dto.BillingRangeResponse{}, fmt.Errorf("save billing range: %w", err)
	}

	uc.logger.Info("billing range updated",
		slog.Int("start_month", r.StartMonth()),
		slog.Int("end_month", r.EndMonth()),
		slog.Int("active_period", r.ActivePeriod()))

	return dto.BillingRangeResponse{
		StartMonth:   r.StartMonth(),
		EndMonth:     r.EndMonth(),
		ActivePeriod: r.ActivePeriod(),
	}, nil
}
