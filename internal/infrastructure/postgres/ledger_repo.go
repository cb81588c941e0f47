package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/internal/domain/model"
	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/internal/domain/port"
	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/internal/domain/valueobject"
	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/pkg/money"
	pgpkg "github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/pkg/postgres"
)

// Compile-time interface check.
var _ port.DueLedger = (*LedgerRepo)(nil)

// LedgerRepo implements DueLedger using PostgreSQL. It works against a
// Querier so the same methods run inside a caller-owned transaction.
type LedgerRepo struct {
	pool pgpkg.Querier
}

func NewLedgerRepo(pool pgpkg.Querier) *LedgerRepo {
	return &LedgerRepo{pool: pool}
}

const ledgerColumns = `
	id, student_id, year, month, week_number,
	status, amount, session_id, created_at, updated_at`

func (r *LedgerRepo) Upsert(ctx context.Context, record model.DueRecord) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO weekly_dues (
			id, student_id, year, month, week_number,
			status, amount, session_id, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (student_id, year, month, week_number) DO UPDATE SET
			status = EXCLUDED.status,
			amount = EXCLUDED.amount,
			session_id = EXCLUDED.session_id,
			updated_at = EXCLUDED.updated_at
	`,
		record.ID(), record.StudentID(),
		record.Key().Year(), record.Key().Month(), record.Key().Week(),
		record.Status().String(), record.Amount().Amount(), record.SessionID(),
		record.CreatedAt(), record.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("upsert weekly due: %w", err)
	}
	return nil
}

func (r *LedgerRepo) FindByStudent(ctx context.Context, studentID uuid.UUID) ([]model.DueRecord, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+ledgerColumns+`
		FROM weekly_dues
		WHERE student_id = $1
		ORDER BY year, month, week_number
	`, studentID)
	if err != nil {
		return nil, fmt.Errorf("query weekly dues: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

func (r *LedgerRepo) FindByStudentYear(ctx context.Context, studentID uuid.UUID, year int) ([]model.DueRecord, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+ledgerColumns+`
		FROM weekly_dues
		WHERE student_id = $1 AND year = $2
		ORDER BY month, week_number
	`, studentID, year)
	if err != nil {
		return nil, fmt.Errorf("query weekly dues: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

func (r *LedgerRepo) FindByKeys(ctx context.Context, studentID uuid.UUID, keys []valueobject.DueKey) ([]model.DueRecord, error) {
	if len(keys) == 0 {
		return nil, nil
	}

	years := make([]int, len(keys))
	months := make([]int, len(keys))
	weeks := make([]int, len(keys))
	for i, key := range keys {
		years[i] = key.Year()
		months[i] = key.Month()
		weeks[i] = key.Week()
	}

	rows, err := r.pool.Query(ctx, `
		SELECT `+ledgerColumns+`
		FROM weekly_dues
		WHERE student_id = $1
		  AND (year, month, week_number) IN (
			SELECT * FROM unnest($2::int[], $3::int[], $4::int[])
		  )
		ORDER BY year, month, week_number
	`, studentID, years, months, weeks)
	if err != nil {
		return nil, fmt.Errorf("query weekly dues by keys: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

func (r *LedgerRepo) FindByClass(ctx context.Context, classID uuid.UUID) (map[uuid.UUID][]model.DueRecord, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+ledgerColumns+`
		FROM weekly_dues
		WHERE student_id IN (SELECT id FROM profiles WHERE class_id = $1)
		ORDER BY student_id, year, month, week_number
	`, classID)
	if err != nil {
		return nil, fmt.Errorf("query class dues: %w", err)
	}
	defer rows.Close()

	records, err := scanRecords(rows)
	if err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID][]model.DueRecord)
	for _, rec := range records {
		out[rec.StudentID()] = append(out[rec.StudentID()], rec)
	}
	return out, nil
}

// ReleaseBySession is the compensation write: one statement flips the
// session's still-pending rows back to unpaid. Rows settled or taken
// over by a newer session no longer match the WHERE clause.
func (r *LedgerRepo) ReleaseBySession(ctx context.Context, sessionID uuid.UUID) (int, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE weekly_dues
		SET status = 'unpaid', amount = 0, session_id = NULL, updated_at = now()
		WHERE session_id = $1 AND status = 'pending'
	`, sessionID)
	if err != nil {
		return 0, fmt.Errorf("release session rows: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

type recordRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanRecords(rows recordRows) ([]model.DueRecord, error) {
	var records []model.DueRecord
	for rows.Next() {
		var (
			id        uuid.UUID
			studentID uuid.UUID
			year      int
			month     int
			week      int
			statusStr string
			amount    decimal.Decimal
			sessionID *uuid.UUID
			createdAt time.Time
			updatedAt time.Time
		)
		if err := rows.Scan(&id, &studentID, &year, &month, &week,
			&statusStr, &amount, &sessionID, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan weekly due: %w", err)
		}

		key, err := valueobject.NewDueKey(year, month, week)
		if err != nil {
			return nil, fmt.Errorf("stored due key: %w", err)
		}
		status, err := valueobject.NewDueStatus(statusStr)
		if err != nil {
			return nil, fmt.Errorf("stored due status: %w", err)
		}

		records = append(records, model.ReconstructDueRecord(
			id, studentID, key, status,
			money.New(amount, money.IDR), sessionID,
			createdAt, updatedAt,
		))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate weekly dues: %w", err)
	}
	return records, nil
}
