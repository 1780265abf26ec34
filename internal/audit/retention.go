package audit

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

const (
	// DefaultRetentionSchedule prunes once a day at 03:00.
	DefaultRetentionSchedule = "0 3 * * *"

	// DefaultMaxAgeDays is how long entries are kept when the config
	// does not say otherwise.
	DefaultMaxAgeDays = 30
)

// Retention periodically prunes old audit entries on a cron schedule.
type Retention struct {
	store    *Store
	schedule string
	maxAge   time.Duration
	logger   *slog.Logger

	mu   sync.Mutex
	cron *cron.Cron
}

// NewRetention builds a retention job. Zero values fall back to the
// daily schedule and the 30 day maximum age.
func NewRetention(store *Store, schedule string, maxAgeDays int, logger *slog.Logger) (*Retention, error) {
	if schedule == "" {
		schedule = DefaultRetentionSchedule
	}
	if maxAgeDays <= 0 {
		maxAgeDays = DefaultMaxAgeDays
	}
	if logger == nil {
		logger = slog.Default()
	}

	if _, err := cron.ParseStandard(schedule); err != nil {
		return nil, fmt.Errorf("audit: invalid retention schedule %q: %w", schedule, err)
	}

	return &Retention{
		store:    store,
		schedule: schedule,
		maxAge:   time.Duration(maxAgeDays) * 24 * time.Hour,
		logger:   logger,
	}, nil
}

// Start begins the cron loop. Ticks overlapping a still-running prune
// are skipped.
func (r *Retention) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cron != nil {
		return nil
	}

	var running sync.Mutex
	c := cron.New()
	if _, err := c.AddFunc(r.schedule, func() {
		if !running.TryLock() {
			r.logger.Warn("audit retention still running, skipping tick")
			return
		}
		defer running.Unlock()
		r.prune(context.Background())
	}); err != nil {
		return fmt.Errorf("audit: schedule retention: %w", err)
	}

	c.Start()
	r.cron = c
	r.logger.Info("audit retention started",
		"schedule", r.schedule,
		"max_age", r.maxAge,
	)
	return nil
}

// Stop halts the cron loop, waiting for an in-flight prune to finish.
func (r *Retention) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cron == nil {
		return
	}
	<-r.cron.Stop().Done()
	r.cron = nil
}

func (r *Retention) prune(ctx context.Context) {
	cutoff := time.Now().Add(-r.maxAge)
	n, err := r.store.Prune(ctx, cutoff)
	if err != nil {
		r.logger.Error("audit retention prune failed", "error", err)
		return
	}
	if n > 0 {
		r.logger.Info("audit retention pruned entries", "removed", n)
	}
}
