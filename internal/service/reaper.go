package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"reportdesigner/internal/logging"
)

// IdleReaper periodically closes reports nobody has touched for a while.
type IdleReaper struct {
	svc  *DesignerService
	cron *cron.Cron
	ctx  context.Context

	mu  sync.Mutex
	ttl time.Duration
}

// NewIdleReaper schedules svc.EvictIdle on a cron spec such as
// "@every 10m". The reaper does nothing until Start.
func NewIdleReaper(ctx context.Context, svc *DesignerService, schedule string, ttl time.Duration) (*IdleReaper, error) {
	r := &IdleReaper{
		svc:  svc,
		ctx:  ctx,
		ttl:  ttl,
		cron: cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
	}
	if _, err := r.cron.AddFunc(schedule, r.sweep); err != nil {
		return nil, fmt.Errorf("idle reaper schedule %q: %w", schedule, err)
	}
	return r, nil
}

// Start begins the schedule in its own goroutine.
func (r *IdleReaper) Start() {
	r.cron.Start()
	logging.FromContext(r.ctx).Debug("idle reaper started", "ttl", r.TTL())
}

// Stop halts the schedule and waits for a running sweep to finish.
func (r *IdleReaper) Stop() {
	<-r.cron.Stop().Done()
}

// SetTTL changes the idle limit for the next sweep.
func (r *IdleReaper) SetTTL(ttl time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ttl = ttl
}

// TTL returns the current idle limit.
func (r *IdleReaper) TTL() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ttl
}

func (r *IdleReaper) sweep() {
	if n := len(r.svc.EvictIdle(r.ctx, r.TTL())); n > 0 {
		logging.FromContext(r.ctx).Info("idle reaper swept", "evicted", n)
	}
}
