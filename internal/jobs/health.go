// Package jobs runs the background work scheduled with robfig/cron.
package jobs

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const probeTimeout = 5 * time.Second

// Pinger is anything able to report its own reachability
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthProbe pings the store and remembers the outcome
type HealthProbe struct {
	target  Pinger
	log     *logrus.Logger
	healthy atomic.Bool
}

// NewHealthProbe returns a probe that starts out healthy
func NewHealthProbe(target Pinger, log *logrus.Logger) *HealthProbe {
	p := &HealthProbe{target: target, log: log}
	p.healthy.Store(true)
	return p
}

// Run performs one probe; it satisfies cron.Job
func (p *HealthProbe) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	err := p.target.Ping(ctx)
	was := p.healthy.Swap(err == nil)
	switch {
	case err != nil && was:
		p.log.WithError(err).Error("Store became unreachable")
	case err == nil && !was:
		p.log.Info("Store reachable again")
	case err != nil:
		p.log.WithError(err).Debug("Store still unreachable")
	}
}

// Healthy reports the outcome of the latest probe
func (p *HealthProbe) Healthy() bool {
	return p.healthy.Load()
}

// Scheduler owns the cron runner
type Scheduler struct {
	cron *cron.Cron
	log  *logrus.Logger
}

// NewScheduler schedules probe on spec (standard cron syntax or descriptors like "@every 30s")
func NewScheduler(spec string, probe *HealthProbe, log *logrus.Logger) (*Scheduler, error) {
	logger := cron.PrintfLogger(log)
	c := cron.New(cron.WithLogger(logger), cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)))
	if _, err := c.AddJob(spec, probe); err != nil {
		return nil, fmt.Errorf("failed to schedule health probe %q: %w", spec, err)
	}
	return &Scheduler{cron: c, log: log}, nil
}

// Start runs the scheduler in its own goroutine
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("Scheduler started")
}

// Stop halts scheduling and waits for running jobs or ctx expiry
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.log.Warn("Scheduler stop timed out")
	}
}
