package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/internal/application/dto"
	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/internal/domain/event"
	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/internal/domain/port"
)

// CancelSessionUseCase aborts a live reservation and reverts its held
// weeks in the same pass. The revert is the same compensation expiry
// runs, so a cancelled session never leaves rows pending.
type CancelSessionUseCase struct {
	ledger    port.DueLedger
	sessions  port.SessionStore
	profiles  port.ProfileStore
	publisher port.EventPublisher
	clock     Clock
	logger    *slog.Logger
}

// NewCancelSessionUseCase wires the use case.
func NewCancelSessionUseCase(
	ledger port.DueLedger,
	sessions port.SessionStore,
	profiles port.ProfileStore,
	publisher port.EventPublisher,
	clock Clock,
	logger *slog.Logger,
) *CancelSessionUseCase {
	return &CancelSessionUseCase{
		ledger:    ledger,
		sessions:  sessions,
		profiles:  profiles,
		publisher: publisher,
		clock:     clock,
		logger:    logger,
	}
}

// Execute cancels the session.
func (uc *CancelSessionUseCase) Execute(ctx context.Context, req dto.CancelSessionRequest) (dto.SessionResponse, error) {
	now := uc.clock.Now()

	session, err := uc.sessions.FindByID(ctx, req.SessionID)
	if err != nil {
		return dto.SessionResponse{}, err
	}

	cancelled, err := session.Cancel(now)
	if err != nil {
		return dto.SessionResponse{}, err
	}

	if err := uc.sessions.Save(ctx, cancelled); err != nil {
		return dto.SessionResponse{}, fmt.Errorf("save session: %w", err)
	}

	// Compare-and-set on (session_id, status=pending): rows settled by a
	// late confirmation or re-reserved by a newer session stay put.
	released, err := uc.ledger.ReleaseBySession(ctx, cancelled.ID())
	if err != nil {
		return dto.SessionResponse{}, fmt.Errorf("release weeks: %w", err)
	}

	if err := uc.profiles.SetPaymentStatus(ctx, cancelled.StudentID(), false); err != nil {
		return dto.SessionResponse{}, fmt.Errorf("reset profile: %w", err)
	}

	if err := uc.publisher.Publish(ctx, event.NewSessionCancelled(cancelled)); err != nil {
		uc.logger.Warn("publish cancellation event",
			slog.String("session_id", cancelled.ID().String()),
			slog.String("error", err.Error()))
	}

	uc.logger.Info("payment session cancelled",
		slog.String("session_id", cancelled.ID().String()),
		slog.String("student_id", cancelled.StudentID().String()),
		slog.Int("released_weeks", released))

	return toSessionResponse(cancelled, now), nil
}
