package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/internal/application/dto"
	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/internal/domain/event"
	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/internal/domain/port"
	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/pkg/events"
)

// ConfirmSessionUseCase settles a reservation: the session closes as
// Confirmed and every held week becomes paid. Confirmation takes
// precedence over the lease deadline, an overdue session the reaper has
// not yet reverted still confirms.
type ConfirmSessionUseCase struct {
	ledger    port.DueLedger
	sessions  port.SessionStore
	profiles  port.ProfileStore
	publisher port.EventPublisher
	clock     Clock
	logger    *slog.Logger
}

// NewConfirmSessionUseCase wires the use case.
func NewConfirmSessionUseCase(
	ledger port.DueLedger,
	sessions port.SessionStore,
	profiles port.ProfileStore,
	publisher port.EventPublisher,
	clock Clock,
	logger *slog.Logger,
) *ConfirmSessionUseCase {
	return &ConfirmSessionUseCase{
		ledger:    ledger,
		sessions:  sessions,
		profiles:  profiles,
		publisher: publisher,
		clock:     clock,
		logger:    logger,
	}
}

// Execute confirms the session and marks its weeks paid.
func (uc *ConfirmSessionUseCase) Execute(ctx context.Context, req dto.ConfirmSessionRequest) (dto.SessionResponse, error) {
	now := uc.clock.Now()

	session, err := uc.sessions.FindByID(ctx, req.SessionID)
	if err != nil {
		return dto.SessionResponse{}, err
	}

	confirmed, err := session.Confirm(now)
	if err != nil {
		return dto.SessionResponse{}, err
	}

	records, err := uc.ledger.FindByKeys(ctx, session.StudentID(), session.Weeks())
	if err != nil {
		return dto.SessionResponse{}, fmt.Errorf("load reserved weeks: %w", err)
	}

	var collector events.Collector
	for _, rec := range records {
		if rec.SessionID() == nil || *rec.SessionID() != session.ID() {
			continue
		}
		paid, err := rec.MarkPaid(now)
		if err != nil {
			return dto.SessionResponse{}, fmt.Errorf("settle week %s: %w", rec.Key(), err)
		}
		if err := uc.ledger.Upsert(ctx, paid); err != nil {
			return dto.SessionResponse{}, fmt.Errorf("persist week %s: %w", paid.Key(), err)
		}
		collector.Record(event.NewRecordPaid(paid))
	}

	if err := uc.sessions.Save(ctx, confirmed); err != nil {
		return dto.SessionResponse{}, fmt.Errorf("save session: %w", err)
	}
	if err := uc.profiles.SetPaymentStatus(ctx, session.StudentID(), false); err != nil {
		return dto.SessionResponse{}, fmt.Errorf("reset profile: %w", err)
	}

	collector.Record(event.NewSessionConfirmed(confirmed))
	if err := uc.publisher.Publish(ctx, collector.Drain()...); err != nil {
		uc.logger.Warn("publish confirmation events",
			slog.String("session_id", confirmed.ID().String()),
			slog.String("error", err.Error()))
	}

	uc.logger.Info("payment session confirmed",
		slog.String("session_id", confirmed.ID().String()),
		slog.String("student_id", confirmed.StudentID().String()),
		slog.Int64("total_rupiah", confirmed.Total().Rupiah()))

	return toSessionResponse(confirmed, now), nil
}
