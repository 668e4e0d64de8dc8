package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/rentfolio/backend/domain"
	"github.com/rentfolio/backend/internal/infrastructure/journal"
	"github.com/rentfolio/backend/repository"
)

// ConnectionHealth abstracts the connection monitor functionality.
type ConnectionHealth interface {
	IsOnline() bool
}

// ProcessorConfig controls how frequently the journal is drained.
type ProcessorConfig struct {
	Interval   time.Duration
	BatchSize  int
	MaxRetries int
}

// JournalProcessor replays journaled payment inserts once Postgres is back.
type JournalProcessor struct {
	store    *journal.Store
	monitor  ConnectionHealth
	payments repository.PaymentRepository
	cron     *cron.Cron
	cfg      ProcessorConfig
	logger   *zap.Logger
}

func NewJournalProcessor(
	store *journal.Store,
	monitor ConnectionHealth,
	payments repository.PaymentRepository,
	logger *zap.Logger,
	cfg ProcessorConfig,
) *JournalProcessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Interval <= 0 {
		cfg.Interval = 30 * time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}

	jp := &JournalProcessor{
		store:    store,
		monitor:  monitor,
		payments: payments,
		cron:     cron.New(),
		cfg:      cfg,
		logger:   logger,
	}

	schedule := fmt.Sprintf("@every %ds", int(cfg.Interval.Seconds()))
	_, _ = jp.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Interval)
		defer cancel()
		if err := jp.Drain(ctx); err != nil {
			jp.logger.Error("journal drain failed", zap.Error(err))
		}
	})

	return jp
}

// Start launches the cron scheduler.
func (jp *JournalProcessor) Start() {
	if jp == nil || jp.cron == nil {
		return
	}
	jp.cron.Start()
	jp.logger.Info("journal processor started")
}

// Stop gracefully stops the scheduler.
func (jp *JournalProcessor) Stop(ctx context.Context) {
	if jp == nil || jp.cron == nil {
		return
	}
	stopCtx := jp.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	jp.logger.Info("journal processor stopped")
}

// Drain replays journaled entries synchronously.
func (jp *JournalProcessor) Drain(ctx context.Context) error {
	if jp == nil || jp.store == nil {
		return nil
	}
	if jp.monitor != nil && !jp.monitor.IsOnline() {
		jp.logger.Debug("skipping journal drain (offline)")
		return nil
	}

	entries, err := jp.store.GetBatch(jp.cfg.BatchSize)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if err := jp.processEntry(ctx, entry); err != nil {
			jp.logger.Error("failed to replay journaled payment",
				zap.String("entry_id", entry.ID),
				zap.Error(err))

			entry.Retries++
			if entry.Retries >= jp.cfg.MaxRetries {
				jp.logger.Error("dropping journal entry after max retries",
					zap.String("entry_id", entry.ID),
					zap.String("user_id", entry.UserID),
					zap.ByteString("payload", entry.Payload))
				_ = jp.store.Remove(entry)
				continue
			}

			if err := jp.store.Remove(entry); err != nil {
				jp.logger.Warn("failed to remove journal entry", zap.Error(err))
			}
			if err := jp.store.Requeue(entry); err != nil {
				jp.logger.Error("failed to requeue journal entry", zap.Error(err))
			}
			continue
		}

		if err := jp.store.Remove(entry); err != nil {
			jp.logger.Warn("failed to purge replayed journal entry", zap.Error(err))
		}
	}
	return nil
}

// Enqueue attempts the insert immediately while Postgres is reachable and
// persists the entry for replay only when the monitor reports it down. An
// insert that fails against a healthy store is a permanent error and is
// returned to the caller instead of being buffered.
func (jp *JournalProcessor) Enqueue(ctx context.Context, entry journal.Entry) error {
	if jp == nil || jp.store == nil {
		return fmt.Errorf("journal processor not configured")
	}

	if jp.monitor == nil || jp.monitor.IsOnline() {
		return jp.processEntry(ctx, entry)
	}
	return jp.store.Enqueue(entry)
}

// Size returns the number of journaled entries.
func (jp *JournalProcessor) Size() int {
	if jp == nil || jp.store == nil {
		return 0
	}
	size, err := jp.store.Size()
	if err != nil {
		return 0
	}
	return size
}

func (jp *JournalProcessor) processEntry(ctx context.Context, entry journal.Entry) error {
	if ctx == nil {
		ctx = context.Background()
	}

	var payment domain.Payment
	if err := json.Unmarshal(entry.Payload, &payment); err != nil {
		return err
	}
	_, err := jp.payments.Create(ctx, &payment)
	return err
}
