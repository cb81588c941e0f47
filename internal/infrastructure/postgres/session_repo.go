package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/internal/domain/model"
	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/internal/domain/port"
	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/internal/domain/valueobject"
	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/pkg/money"
	pgpkg "github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/pkg/postgres"
)

// Compile-time interface check.
var _ port.SessionStore = (*SessionRepo)(nil)

// SessionRepo implements SessionStore using PostgreSQL. The session's
// week selection lives in payment_session_weeks; a partial unique index
// on (student_id) WHERE state = 'Reserved' enforces one live session
// per student at the database level.
type SessionRepo struct {
	pool *pgxpool.Pool
}

func NewSessionRepo(pool *pgxpool.Pool) *SessionRepo {
	return &SessionRepo{pool: pool}
}

func (r *SessionRepo) Save(ctx context.Context, session model.PaymentSession) error {
	return pgpkg.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO payment_sessions (
				id, student_id, state, total,
				reserved_at, expires_at, closed_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (id) DO UPDATE SET
				state = EXCLUDED.state,
				closed_at = EXCLUDED.closed_at,
				updated_at = EXCLUDED.updated_at
		`,
			session.ID(), session.StudentID(), session.State().String(),
			session.Total().Amount(), session.ReservedAt(), session.ExpiresAt(),
			session.ClosedAt(), session.UpdatedAt(),
		)
		if err != nil {
			return fmt.Errorf("upsert payment session: %w", err)
		}

		for _, week := range session.Weeks() {
			_, err = tx.Exec(ctx, `
				INSERT INTO payment_session_weeks (session_id, year, month, week_number)
				VALUES ($1, $2, $3, $4)
				ON CONFLICT (session_id, year, month, week_number) DO NOTHING
			`, session.ID(), week.Year(), week.Month(), week.Week())
			if err != nil {
				return fmt.Errorf("insert session week: %w", err)
			}
		}
		return nil
	})
}

func (r *SessionRepo) FindByID(ctx context.Context, id uuid.UUID) (model.PaymentSession, error) {
	return r.findOne(ctx, `WHERE id = $1`, id)
}

func (r *SessionRepo) FindActiveByStudent(ctx context.Context, studentID uuid.UUID) (model.PaymentSession, error) {
	return r.findOne(ctx, `WHERE student_id = $1 AND state = 'Reserved'`, studentID)
}

func (r *SessionRepo) FindOverdue(ctx context.Context, limit int) ([]model.PaymentSession, error) {
	return r.findMany(ctx, `
		WHERE state = 'Reserved' AND expires_at <= now()
		ORDER BY expires_at
		LIMIT $1`, limit)
}

func (r *SessionRepo) FindActive(ctx context.Context, limit int) ([]model.PaymentSession, error) {
	return r.findMany(ctx, `
		WHERE state = 'Reserved'
		ORDER BY reserved_at
		LIMIT $1`, limit)
}

const sessionColumns = `
	id, student_id, state, total,
	reserved_at, expires_at, closed_at, updated_at`

func (r *SessionRepo) findOne(ctx context.Context, where string, arg any) (model.PaymentSession, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+sessionColumns+` FROM payment_sessions `+where, arg)
	session, err := r.scanSession(ctx, row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.PaymentSession{}, model.ErrSessionNotFound
		}
		return model.PaymentSession{}, err
	}
	return session, nil
}

func (r *SessionRepo) findMany(ctx context.Context, where string, arg any) ([]model.PaymentSession, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+sessionColumns+` FROM payment_sessions `+where, arg)
	if err != nil {
		return nil, fmt.Errorf("query payment sessions: %w", err)
	}
	defer rows.Close()

	var sessions []model.PaymentSession
	for rows.Next() {
		session, err := r.scanSession(ctx, rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate payment sessions: %w", err)
	}
	return sessions, nil
}

func (r *SessionRepo) scanSession(ctx context.Context, row pgx.Row) (model.PaymentSession, error) {
	var (
		id         uuid.UUID
		studentID  uuid.UUID
		stateStr   string
		total      decimal.Decimal
		reservedAt time.Time
		expiresAt  time.Time
		closedAt   *time.Time
		updatedAt  time.Time
	)
	if err := row.Scan(&id, &studentID, &stateStr, &total,
		&reservedAt, &expiresAt, &closedAt, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.PaymentSession{}, err
		}
		return model.PaymentSession{}, fmt.Errorf("scan payment session: %w", err)
	}

	state, err := valueobject.NewSessionState(stateStr)
	if err != nil {
		return model.PaymentSession{}, fmt.Errorf("stored session state: %w", err)
	}

	weeks, err := r.loadWeeks(ctx, id)
	if err != nil {
		return model.PaymentSession{}, err
	}

	return model.ReconstructPaymentSession(
		id, studentID, weeks, state,
		money.New(total, money.IDR),
		reservedAt, expiresAt, closedAt, updatedAt,
	), nil
}

func (r *SessionRepo) loadWeeks(ctx context.Context, sessionID uuid.UUID) ([]valueobject.DueKey, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT year, month, week_number
		FROM payment_session_weeks
		WHERE session_id = $1
		ORDER BY year, month, week_number
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query session weeks: %w", err)
	}
	defer rows.Close()

	var weeks []valueobject.DueKey
	for rows.Next() {
		var year, month, week int
		if err := rows.Scan(&year, &month, &week); err != nil {
			return nil, fmt.Errorf("scan session week: %w", err)
		}
		key, err := valueobject.NewDueKey(year, month, week)
		if err != nil {
			return nil, fmt.Errorf("stored session week: %w", err)
		}
		weeks = append(weeks, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate session weeks: %w", err)
	}
	return weeks, nil
}
