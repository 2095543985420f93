// Package scheduler runs the liveness check on a fixed interval in
// self-hosted mode and acts as the trigger the monitor disables.
package scheduler

import (
	"context"
	"fmt"
	"time"

	domainLiveness "github.com/photoframe/photoframe/domains/liveness"
	"github.com/sirupsen/logrus"
)

type Job func(ctx context.Context)

// Ticker fires Job every interval while its schedule is enabled. The enabled
// flag lives in a TriggerState, so a CLI run and the rest server that share a
// store also share the flag.
type Ticker struct {
	interval time.Duration
	name     string
	state    domainLiveness.TriggerState
}

func NewTicker(interval time.Duration, name string, state domainLiveness.TriggerState) *Ticker {
	return &Ticker{interval: interval, name: name, state: state}
}

func (t *Ticker) Disable(ctx context.Context) error {
	if err := t.state.SetTriggerEnabled(ctx, t.name, false); err != nil {
		return fmt.Errorf("failed to disable schedule %s: %w", t.name, err)
	}
	logrus.Warnf("[SCHEDULER] Schedule %s disabled", t.name)
	return nil
}

func (t *Ticker) Enable(ctx context.Context) error {
	if err := t.state.SetTriggerEnabled(ctx, t.name, true); err != nil {
		return fmt.Errorf("failed to enable schedule %s: %w", t.name, err)
	}
	logrus.Infof("[SCHEDULER] Schedule %s enabled", t.name)
	return nil
}

func (t *Ticker) Enabled(ctx context.Context) (bool, error) {
	enabled, err := t.state.TriggerEnabled(ctx, t.name)
	if err != nil {
		return false, fmt.Errorf("failed to read schedule %s: %w", t.name, err)
	}
	return enabled, nil
}

// Start runs job in a goroutine until ctx is cancelled.
func (t *Ticker) Start(ctx context.Context, job Job) {
	logrus.Infof("[SCHEDULER] Monitor scheduled every %s", t.interval)
	go t.loop(ctx, job)
}

func (t *Ticker) loop(ctx context.Context, job Job) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logrus.Info("[SCHEDULER] Stopped")
			return
		case <-ticker.C:
			enabled, err := t.Enabled(ctx)
			if err != nil {
				logrus.WithError(err).Error("[SCHEDULER] Tick skipped")
				continue
			}
			if !enabled {
				logrus.Debug("[SCHEDULER] Tick skipped, schedule disabled")
				continue
			}
			job(ctx)
		}
	}
}
