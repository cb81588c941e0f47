// Package reconcile keeps payment sessions consistent with the ledger
// by consuming the database change feed. Rows can be settled or removed
// outside the session flow (a treasurer editing the sheet directly);
// the reconciler translates those changes into session outcomes.
package reconcile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/internal/application/dto"
	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/internal/application/usecase"
	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/internal/domain/model"
	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/internal/domain/port"
	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/internal/domain/valueobject"
)

// Table and operation names as they appear on the feed.
const (
	TableWeeklyDues = "weekly_dues"
	TableProfiles   = "profiles"

	OpInsert = "INSERT"
	OpUpdate = "UPDATE"
	OpDelete = "DELETE"
)

// ErrUnknownEvent is returned for feed events the reconciler has no
// handler for. Callers commit past them.
var ErrUnknownEvent = errors.New("no handler for feed event")

// ChangeEvent is one row-level change from the database feed. Seq is
// the feed's monotonically increasing sequence number; a jump signals
// lost delivery.
type ChangeEvent struct {
	Seq   uint64          `json:"seq"`
	Table string          `json:"table"`
	Op    string          `json:"op"`
	Old   json.RawMessage `json:"old,omitempty"`
	New   json.RawMessage `json:"new,omitempty"`
}

type dueRow struct {
	StudentID  uuid.UUID  `json:"student_id"`
	Year       int        `json:"year"`
	Month      int        `json:"month"`
	WeekNumber int        `json:"week_number"`
	Status     string     `json:"status"`
	SessionID  *uuid.UUID `json:"session_id"`
}

type profileRow struct {
	ID            uuid.UUID `json:"id"`
	PaymentStatus bool      `json:"payment_status"`
}

type dispatchKey struct {
	table string
	op    string
}

type handlerFunc func(ctx context.Context, ev ChangeEvent) error

// Reconciler folds feed events into session outcomes. Handlers are
// dispatched on (table, op).
type Reconciler struct {
	sessions port.SessionStore
	ledger   port.DueLedger
	confirm  *usecase.ConfirmSessionUseCase
	cancel   *usecase.CancelSessionUseCase
	handlers map[dispatchKey]handlerFunc
	logger   *slog.Logger
}

// NewReconciler wires the reconciler.
func NewReconciler(
	sessions port.SessionStore,
	ledger port.DueLedger,
	confirm *usecase.ConfirmSessionUseCase,
	cancel *usecase.CancelSessionUseCase,
	logger *slog.Logger,
) *Reconciler {
	r := &Reconciler{
		sessions: sessions,
		ledger:   ledger,
		confirm:  confirm,
		cancel:   cancel,
		logger:   logger,
	}
	r.handlers = map[dispatchKey]handlerFunc{
		{TableWeeklyDues, OpUpdate}: r.onDueUpdated,
		{TableWeeklyDues, OpDelete}: r.onDueDeleted,
		{TableWeeklyDues, OpInsert}: r.onDueInserted,
		{TableProfiles, OpUpdate}:   r.onProfileUpdated,
	}
	return r
}

// Apply processes one feed event. Events for tables or operations the
// reconciler does not track return ErrUnknownEvent.
func (r *Reconciler) Apply(ctx context.Context, ev ChangeEvent) error {
	handler, ok := r.handlers[dispatchKey{ev.Table, ev.Op}]
	if !ok {
		return fmt.Errorf("%w: %s %s", ErrUnknownEvent, ev.Op, ev.Table)
	}
	return handler(ctx, ev)
}

// onDueUpdated reacts to a held row changing under a session. A pending
// row settled out-of-band may complete the session.
func (r *Reconciler) onDueUpdated(ctx context.Context, ev ChangeEvent) error {
	var oldRow, newRow dueRow
	if err := json.Unmarshal(ev.Old, &oldRow); err != nil {
		return fmt.Errorf("decode old row: %w", err)
	}
	if err := json.Unmarshal(ev.New, &newRow); err != nil {
		return fmt.Errorf("decode new row: %w", err)
	}

	if oldRow.SessionID == nil || oldRow.Status != valueobject.DueStatusPending.String() {
		return nil
	}

	status, err := valueobject.NewDueStatus(newRow.Status)
	if err != nil {
		return fmt.Errorf("feed row status: %w", err)
	}
	switch {
	case status.IsSettled():
		return r.evaluate(ctx, *oldRow.SessionID)
	case status == valueobject.DueStatusUnpaid:
		// A revert under a live session is a rejection of that week.
		return r.reject(ctx, *oldRow.SessionID)
	}
	return nil
}

// onDueDeleted treats removal of a held row as a rejection.
func (r *Reconciler) onDueDeleted(ctx context.Context, ev ChangeEvent) error {
	var oldRow dueRow
	if err := json.Unmarshal(ev.Old, &oldRow); err != nil {
		return fmt.Errorf("decode old row: %w", err)
	}
	if oldRow.SessionID == nil || oldRow.Status != valueobject.DueStatusPending.String() {
		return nil
	}
	return r.reject(ctx, *oldRow.SessionID)
}

// onDueInserted only logs; inserts come from this service's own writes.
func (r *Reconciler) onDueInserted(_ context.Context, ev ChangeEvent) error {
	var newRow dueRow
	if err := json.Unmarshal(ev.New, &newRow); err != nil {
		return fmt.Errorf("decode new row: %w", err)
	}
	r.logger.Debug("ledger row inserted",
		slog.String("student_id", newRow.StudentID.String()),
		slog.String("status", newRow.Status))
	return nil
}

// onProfileUpdated honors the coarse kill-switch: flipping a profile's
// payment flag off aborts the student's live session.
func (r *Reconciler) onProfileUpdated(ctx context.Context, ev ChangeEvent) error {
	var oldRow, newRow profileRow
	if err := json.Unmarshal(ev.Old, &oldRow); err != nil {
		return fmt.Errorf("decode old row: %w", err)
	}
	if err := json.Unmarshal(ev.New, &newRow); err != nil {
		return fmt.Errorf("decode new row: %w", err)
	}
	if !oldRow.PaymentStatus || newRow.PaymentStatus {
		return nil
	}

	session, err := r.sessions.FindActiveByStudent(ctx, newRow.ID)
	if err != nil {
		if errors.Is(err, model.ErrSessionNotFound) {
			return nil
		}
		return err
	}
	return r.reject(ctx, session.ID())
}

// evaluate re-reads the session's rows and confirms once every held
// week is settled. Confirmation and rejection always beat expiry, the
// session is checked fresh on every call.
func (r *Reconciler) evaluate(ctx context.Context, sessionID uuid.UUID) error {
	session, err := r.sessions.FindByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, model.ErrSessionNotFound) {
			return nil
		}
		return err
	}
	if !session.State().IsActive() {
		return nil
	}

	records, err := r.ledger.FindByKeys(ctx, session.StudentID(), session.Weeks())
	if err != nil {
		return fmt.Errorf("load session weeks: %w", err)
	}
	if len(records) < len(session.Weeks()) {
		return r.reject(ctx, sessionID)
	}
	for _, rec := range records {
		switch {
		case rec.Status().IsSettled():
			continue
		case rec.Status() == valueobject.DueStatusPending:
			// Still waiting on the rest of the selection.
			return nil
		default:
			return r.reject(ctx, sessionID)
		}
	}

	_, err = r.confirm.Execute(ctx, dto.ConfirmSessionRequest{SessionID: sessionID})
	if errors.Is(err, model.ErrStaleSession) {
		return nil
	}
	return err
}

func (r *Reconciler) reject(ctx context.Context, sessionID uuid.UUID) error {
	_, err := r.cancel.Execute(ctx, dto.CancelSessionRequest{SessionID: sessionID})
	if errors.Is(err, model.ErrStaleSession) || errors.Is(err, model.ErrSessionNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	r.logger.Info("session rejected by feed", slog.String("session_id", sessionID.String()))
	return nil
}

// resyncBatch caps how many live sessions one resync pass walks.
const resyncBatch = 500

// Resync walks every live session and reconciles it against the ledger
// directly. It is the recovery path for a gap in feed delivery: events
// may have been missed, so the projected state cannot be trusted.
func (r *Reconciler) Resync(ctx context.Context) error {
	sessions, err := r.sessions.FindActive(ctx, resyncBatch)
	if err != nil {
		return fmt.Errorf("list live sessions: %w", err)
	}
	for _, session := range sessions {
		if err := r.evaluate(ctx, session.ID()); err != nil {
			return fmt.Errorf("resync session %s: %w", session.ID(), err)
		}
	}
	r.logger.Info("feed resync complete", slog.Int("sessions", len(sessions)))
	return nil
}
