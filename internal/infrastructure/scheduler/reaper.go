// Package scheduler runs the background lease reaper. Expiry is
// enforced server-side: a reservation that outlives its lease is closed
// and its weeks reverted regardless of whether any client is watching.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/internal/application/usecase"
	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/internal/domain/port"
)

var (
	sessionsExpired = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dues_reaper_sessions_expired_total",
		Help: "Sessions closed by the lease reaper.",
	})
	weeksReverted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dues_reaper_weeks_reverted_total",
		Help: "Pending weeks reverted to unpaid by the lease reaper.",
	})
	sweepDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "dues_reaper_sweep_duration_seconds",
		Help:    "Duration of one reaper sweep.",
		Buckets: prometheus.DefBuckets,
	})
)

// Reaper sweeps overdue sessions on a fixed interval.
type Reaper struct {
	sessions  port.SessionStore
	expire    *usecase.ExpireSessionUseCase
	interval  time.Duration
	batchSize int
	logger    *slog.Logger
}

// NewReaper wires the reaper.
func NewReaper(sessions port.SessionStore, expire *usecase.ExpireSessionUseCase, interval time.Duration, batchSize int, logger *slog.Logger) *Reaper {
	return &Reaper{
		sessions:  sessions,
		expire:    expire,
		interval:  interval,
		batchSize: batchSize,
		logger:    logger,
	}
}

// Run sweeps until the context is cancelled.
func (r *Reaper) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Info("lease reaper started",
		slog.Duration("interval", r.interval),
		slog.Int("batch_size", r.batchSize))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := r.SweepOnce(ctx); err != nil && ctx.Err() == nil {
				r.logger.Error("reaper sweep failed", slog.String("error", err.Error()))
			}
		}
	}
}

// SweepOnce expires every overdue session it can see. Failures on one
// session do not stop the sweep; the session stays overdue and the next
// tick retries it.
func (r *Reaper) SweepOnce(ctx context.Context) error {
	start := time.Now()
	defer func() { sweepDuration.Observe(time.Since(start).Seconds()) }()

	overdue, err := r.sessions.FindOverdue(ctx, r.batchSize)
	if err != nil {
		return err
	}

	for _, session := range overdue {
		released, err := r.expire.Execute(ctx, session.ID())
		if err != nil {
			r.logger.Error("expire session",
				slog.String("session_id", session.ID().String()),
				slog.String("error", err.Error()))
			continue
		}
		sessionsExpired.Inc()
		weeksReverted.Add(float64(released))
	}
	return nil
}
