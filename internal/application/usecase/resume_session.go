package usecase

import (
	"context"
	"errors"

	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/internal/application/dto"
	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/internal/domain/model"
	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/internal/domain/port"
)

// ResumeSessionUseCase recovers a student's live reservation after a
// page reload or reconnect. A session whose deadline already passed but
// which the reaper has not yet closed is expired on the spot, with the
// same compensation the reaper would run, and returned in its terminal
// state.
type ResumeSessionUseCase struct {
	sessions port.SessionStore
	expire   *ExpireSessionUseCase
	clock    Clock
}

// NewResumeSessionUseCase wires the use case.
func NewResumeSessionUseCase(sessions port.SessionStore, expire *ExpireSessionUseCase, clock Clock) *ResumeSessionUseCase {
	return &ResumeSessionUseCase{sessions: sessions, expire: expire, clock: clock}
}

// Execute returns the student's active session, or
// model.ErrSessionNotFound when there is nothing to resume.
func (uc *ResumeSessionUseCase) Execute(ctx context.Context, req dto.ResumeSessionRequest) (dto.SessionResponse, error) {
	now := uc.clock.Now()

	session, err := uc.sessions.FindActiveByStudent(ctx, req.StudentID)
	if err != nil {
		if errors.Is(err, model.ErrSessionNotFound) {
			return dto.SessionResponse{}, model.ErrSessionNotFound
		}
		return dto.SessionResponse{}, err
	}

	if session.IsExpired(now) {
		if _, err := uc.expire.Execute(ctx, session.ID()); err != nil {
			return dto.SessionResponse{}, err
		}
		session, err = uc.sessions.FindByID(ctx, session.ID())
		if err != nil {
			return dto.SessionResponse{}, err
		}
	}

	return toSessionResponse(session, now), nil
}

// GetSessionUseCase looks a session up by ID.
type GetSessionUseCase struct {
	sessions port.SessionStore
	clock    Clock
}

// NewGetSessionUseCase wires the use case.
func NewGetSessionUseCase(sessions port.SessionStore, clock Clock) *GetSessionUseCase {
	return &GetSessionUseCase{sessions: sessions, clock: clock}
}

// Execute returns the session or model.ErrSessionNotFound.
func (uc *GetSessionUseCase) Execute(ctx context.Context, req dto.GetSessionRequest) (dto.SessionResponse, error) {
	session, err := uc.sessions.FindByID(ctx, req.SessionID)
	if err != nil {
		return dto.SessionResponse{}, err
	}
	return toSessionResponse(session, uc.clock.Now()), nil
}
