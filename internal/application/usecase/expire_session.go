package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/internal/domain/event"
	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/internal/domain/model"
	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/internal/domain/port"
)

// ExpireSessionUseCase is the compensation path for an overdue
// reservation. It re-reads the session before every mutation: a session
// confirmed or cancelled after it was picked up is left untouched, and
// only rows still pending under this session revert to unpaid. Running
// it twice for the same session is harmless.
type ExpireSessionUseCase struct {
	ledger    port.DueLedger
	sessions  port.SessionStore
	profiles  port.ProfileStore
	publisher port.EventPublisher
	clock     Clock
	logger    *slog.Logger
}

// NewExpireSessionUseCase wires the use case.
func NewExpireSessionUseCase(
	ledger port.DueLedger,
	sessions port.SessionStore,
	profiles port.ProfileStore,
	publisher port.EventPublisher,
	clock Clock,
	logger *slog.Logger,
) *ExpireSessionUseCase {
	return &ExpireSessionUseCase{
		ledger:    ledger,
		sessions:  sessions,
		profiles:  profiles,
		publisher: publisher,
		clock:     clock,
		logger:    logger,
	}
}

// Execute expires the session and reverts its pending weeks. It returns
// the number of rows reverted. A session that reached a terminal state
// in the meantime yields (0, nil).
func (uc *ExpireSessionUseCase) Execute(ctx context.Context, sessionID uuid.UUID) (int, error) {
	now := uc.clock.Now()

	// Fresh read, the state may have moved since the caller saw it.
	session, err := uc.sessions.FindByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, model.ErrSessionNotFound) {
			return 0, nil
		}
		return 0, err
	}
	if !session.State().IsActive() {
		return 0, nil
	}

	expired, err := session.Expire(now)
	if err != nil {
		if errors.Is(err, model.ErrStaleSession) {
			return 0, nil
		}
		return 0, err
	}

	// Compare-and-set on (session_id, status=pending): rows settled by a
	// late confirmation or re-reserved by a newer session stay put. Rows
	// revert before the session write; a failure in between leaves the
	// session Reserved for the next sweep to retry.
	released, err := uc.ledger.ReleaseBySession(ctx, expired.ID())
	if err != nil {
		return 0, fmt.Errorf("release weeks: %w", err)
	}

	if err := uc.sessions.Save(ctx, expired); err != nil {
		return released, fmt.Errorf("save session: %w", err)
	}

	if err := uc.profiles.SetPaymentStatus(ctx, expired.StudentID(), false); err != nil {
		return released, fmt.Errorf("reset profile: %w", err)
	}

	if err := uc.publisher.Publish(ctx, event.NewSessionExpired(expired, released)); err != nil {
		uc.logger.Warn("publish expiry event",
			slog.String("session_id", expired.ID().String()),
			slog.String("error", err.Error()))
	}

	uc.logger.Info("payment session expired",
		slog.String("session_id", expired.ID().String()),
		slog.String("student_id", expired.StudentID().String()),
		slog.Int("reverted_weeks", released))

	return released, nil
}
