package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/internal/application/dto"
	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/internal/domain/event"
	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/internal/domain/model"
	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/internal/domain/port"
	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/internal/domain/valueobject"
	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/pkg/events"
)

// CreateSessionUseCase opens a time-boxed hold over a selection of weeks.
type CreateSessionUseCase struct {
	ledger    port.DueLedger
	sessions  port.SessionStore
	profiles  port.ProfileStore
	publisher port.EventPublisher
	clock     Clock
	logger    *slog.Logger
}

// NewCreateSessionUseCase wires the use case.
func NewCreateSessionUseCase(
	ledger port.DueLedger,
	sessions port.SessionStore,
	profiles port.ProfileStore,
	publisher port.EventPublisher,
	clock Clock,
	logger *slog.Logger,
) *CreateSessionUseCase {
	return &CreateSessionUseCase{
		ledger:    ledger,
		sessions:  sessions,
		profiles:  profiles,
		publisher: publisher,
		clock:     clock,
		logger:    logger,
	}
}

// Execute reserves the selected weeks. It refuses if the student already
// holds a live session or if any selected week is not unpaid.
func (uc *CreateSessionUseCase) Execute(ctx context.Context, req dto.CreateSessionRequest) (dto.SessionResponse, error) {
	now := uc.clock.Now()

	keys, err := parseWeeks(req.Weeks)
	if err != nil {
		return dto.SessionResponse{}, err
	}

	if _, err := uc.sessions.FindActiveByStudent(ctx, req.StudentID); err == nil {
		return dto.SessionResponse{}, model.ErrSessionActive
	} else if !errors.Is(err, model.ErrSessionNotFound) {
		return dto.SessionResponse{}, fmt.Errorf("look up active session: %w", err)
	}

	session, err := model.NewPaymentSession(req.StudentID, keys, now)
	if err != nil {
		return dto.SessionResponse{}, err
	}

	existing, err := uc.ledger.FindByKeys(ctx, req.StudentID, keys)
	if err != nil {
		return dto.SessionResponse{}, fmt.Errorf("load selected weeks: %w", err)
	}
	byKey := make(map[valueobject.DueKey]model.DueRecord, len(existing))
	for _, rec := range existing {
		byKey[rec.Key()] = rec
	}

	var collector events.Collector
	reserved := make([]model.DueRecord, 0, len(keys))
	for _, key := range keys {
		rec, ok := byKey[key]
		if !ok {
			rec, err = model.NewDueRecord(req.StudentID, key, now)
			if err != nil {
				return dto.SessionResponse{}, err
			}
		}
		rec, err = rec.Reserve(session.ID(), now)
		if err != nil {
			return dto.SessionResponse{}, err
		}
		reserved = append(reserved, rec)
		collector.Record(event.NewRecordReserved(rec))
	}

	if err := uc.sessions.Save(ctx, session); err != nil {
		return dto.SessionResponse{}, fmt.Errorf("save session: %w", err)
	}
	for _, rec := range reserved {
		if err := uc.ledger.Upsert(ctx, rec); err != nil {
			return dto.SessionResponse{}, fmt.Errorf("reserve week %s: %w", rec.Key(), err)
		}
	}
	if err := uc.profiles.SetPaymentStatus(ctx, req.StudentID, true); err != nil {
		return dto.SessionResponse{}, fmt.Errorf("flag profile: %w", err)
	}

	collector.Record(event.NewSessionReserved(session))
	if err := uc.publisher.Publish(ctx, collector.Drain()...); err != nil {
		uc.logger.Warn("publish session events",
			slog.String("session_id", session.ID().String()),
			slog.String("error", err.Error()))
	}

	uc.logger.Info("payment session opened",
		slog.String("session_id", session.ID().String()),
		slog.String("student_id", req.StudentID.String()),
		slog.Int("weeks", len(keys)),
		slog.Time("expires_at", session.ExpiresAt()))

	return toSessionResponse(session, now), nil
}
