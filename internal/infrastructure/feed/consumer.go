// Package feed consumes the database change feed and hands row changes
// to the reconciler.
package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/internal/application/reconcile"
	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/pkg/kafka"
)

// Consumer decodes feed messages and applies them. A jump in the feed's
// sequence numbers means deliveries were lost, in which case the
// projected state cannot be trusted and a full resync runs before
// processing continues.
type Consumer struct {
	reconciler *reconcile.Reconciler
	logger     *slog.Logger

	mu      sync.Mutex
	lastSeq uint64
}

// NewConsumer creates a feed Consumer.
func NewConsumer(reconciler *reconcile.Reconciler, logger *slog.Logger) *Consumer {
	return &Consumer{reconciler: reconciler, logger: logger}
}

// Handle is the kafka.Handler for the feed topic.
func (c *Consumer) Handle(ctx context.Context, msg kafka.Message) error {
	var ev reconcile.ChangeEvent
	if err := json.Unmarshal(msg.Value, &ev); err != nil {
		// A malformed message will never decode; log and commit past it.
		c.logger.Error("malformed feed message", slog.String("error", err.Error()))
		return nil
	}

	if c.gapDetected(ev.Seq) {
		c.logger.Warn("feed delivery gap detected, resyncing",
			slog.Uint64("seq", ev.Seq))
		if err := c.reconciler.Resync(ctx); err != nil {
			return fmt.Errorf("resync after feed gap: %w", err)
		}
	}

	if err := c.reconciler.Apply(ctx, ev); err != nil {
		if errors.Is(err, reconcile.ErrUnknownEvent) {
			return nil
		}
		return err
	}
	return nil
}

// gapDetected advances the sequence cursor and reports whether events
// were skipped. The first event after startup never counts as a gap.
func (c *Consumer) gapDetected(seq uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	gap := c.lastSeq != 0 && seq > c.lastSeq+1
	if seq > c.lastSeq {
		c.lastSeq = seq
	}
	return gap
}
