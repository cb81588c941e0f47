package postgres

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/internal/domain/port"
	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/internal/domain/valueobject"
	pgpkg "github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/pkg/postgres"
)

// Compile-time interface check.
var _ port.BillingConfigStore = (*ConfigRepo)(nil)

// Billing range keys in global_configs.
const (
	keyStartMonth   = "billing_start_month"
	keyEndMonth     = "billing_end_month"
	keyActivePeriod = "billing_active_period"
)

// ConfigRepo stores the billing range as key/value rows in
// global_configs.
type ConfigRepo struct {
	pool *pgxpool.Pool
}

func NewConfigRepo(pool *pgxpool.Pool) *ConfigRepo {
	return &ConfigRepo{pool: pool}
}

func (r *ConfigRepo) Load(ctx context.Context) (valueobject.BillingRange, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT key, value FROM global_configs
		WHERE key IN ($1, $2, $3)
	`, keyStartMonth, keyEndMonth, keyActivePeriod)
	if err != nil {
		return valueobject.BillingRange{}, fmt.Errorf("query billing config: %w", err)
	}
	defer rows.Close()

	values := map[string]int{
		keyStartMonth:   valueobject.DefaultStartMonth,
		keyEndMonth:     valueobject.DefaultEndMonth,
		keyActivePeriod: valueobject.DefaultActivePeriod,
	}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return valueobject.BillingRange{}, fmt.Errorf("scan billing config: %w", err)
		}
		n, err := strconv.Atoi(value)
		if err != nil {
			return valueobject.BillingRange{}, fmt.Errorf("billing config %s=%q: %w", key, value, err)
		}
		values[key] = n
	}
	if err := rows.Err(); err != nil {
		return valueobject.BillingRange{}, fmt.Errorf("iterate billing config: %w", err)
	}

	return valueobject.NewBillingRange(values[keyStartMonth], values[keyEndMonth], values[keyActivePeriod])
}

func (r *ConfigRepo) Save(ctx context.Context, billingRange valueobject.BillingRange) error {
	return pgpkg.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		for key, value := range map[string]int{
			keyStartMonth:   billingRange.StartMonth(),
			keyEndMonth:     billingRange.EndMonth(),
			keyActivePeriod: billingRange.ActivePeriod(),
		} {
			_, err := tx.Exec(ctx, `
				INSERT INTO global_configs (key, value, updated_at)
				VALUES ($1, $2, now())
				ON CONFLICT (key) DO UPDATE SET
					value = EXCLUDED.value,
					updated_at = EXCLUDED.updated_at
			`, key, strconv.Itoa(value))
			if err != nil {
				return fmt.Errorf("upsert billing config %s: %w", key, err)
			}
		}
		return nil
	})
}
