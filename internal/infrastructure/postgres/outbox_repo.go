package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/pkg/events"
	pgpkg "github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/pkg/postgres"
)

// Compile-time interface check.
var _ events.OutboxRepository = (*OutboxRepo)(nil)

// OutboxRepo persists staged domain events for asynchronous relay.
type OutboxRepo struct {
	pool *pgxpool.Pool
}

func NewOutboxRepo(pool *pgxpool.Pool) *OutboxRepo {
	return &OutboxRepo{pool: pool}
}

func (r *OutboxRepo) Store(ctx context.Context, entries []events.OutboxEntry) error {
	return pgpkg.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		for _, entry := range entries {
			_, err := tx.Exec(ctx, `
				INSERT INTO outbox (id, aggregate_id, aggregate_type, event_type, payload, created_at)
				VALUES ($1, $2, $3, $4, $5, $6)
				ON CONFLICT (id) DO NOTHING
			`, entry.ID, entry.AggregateID, entry.AggregateType, entry.EventType, entry.Payload, entry.CreatedAt)
			if err != nil {
				return fmt.Errorf("insert outbox entry: %w", err)
			}
		}
		return nil
	})
}

func (r *OutboxRepo) FetchUnpublished(ctx context.Context, batchSize int) ([]events.OutboxEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, aggregate_id, aggregate_type, event_type, payload, created_at
		FROM outbox
		WHERE published_at IS NULL
		ORDER BY created_at
		LIMIT $1
	`, batchSize)
	if err != nil {
		return nil, fmt.Errorf("query outbox: %w", err)
	}
	defer rows.Close()

	var entries []events.OutboxEntry
	for rows.Next() {
		var entry events.OutboxEntry
		if err := rows.Scan(&entry.ID, &entry.AggregateID, &entry.AggregateType,
			&entry.EventType, &entry.Payload, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan outbox entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate outbox: %w", err)
	}
	return entries, nil
}

func (r *OutboxRepo) MarkPublished(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	now := time.Now()
	_, err := r.pool.Exec(ctx, `
		UPDATE outbox SET published_at = $2 WHERE id = ANY($1)
	`, ids, now)
	if err != nil {
		return fmt.Errorf("mark outbox published: %w", err)
	}
	return nil
}
