package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/internal/domain/model"
	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/internal/domain/port"
	pgpkg "github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/pkg/postgres"
)

// Compile-time interface check.
var _ port.ProfileStore = (*ProfileRepo)(nil)

// ProfileRepo implements ProfileStore using PostgreSQL. The payment
// flag on profiles is the coarse kill-switch other parts of the portal
// read to know a payment is in flight.
type ProfileRepo struct {
	pool pgpkg.Querier
}

func NewProfileRepo(pool pgpkg.Querier) *ProfileRepo {
	return &ProfileRepo{pool: pool}
}

func (r *ProfileRepo) SetPaymentStatus(ctx context.Context, studentID uuid.UUID, active bool) error {
	var expiresAt *time.Time
	if active {
		t := time.Now().Add(model.SessionTTL)
		expiresAt = &t
	}
	tag, err := r.pool.Exec(ctx, `
		UPDATE profiles
		SET payment_status = $2, payment_expires_at = $3, updated_at = now()
		WHERE id = $1
	`, studentID, active, expiresAt)
	if err != nil {
		return fmt.Errorf("update profile payment status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("profile %s not found", studentID)
	}
	return nil
}

func (r *ProfileRepo) ListClassStudents(ctx context.Context, classID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id FROM profiles WHERE class_id = $1 ORDER BY id
	`, classID)
	if err != nil {
		return nil, fmt.Errorf("query class students: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan student id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate class students: %w", err)
	}
	return ids, nil
}
