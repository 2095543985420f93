package lambda

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	domainLiveness "github.com/photoframe/photoframe/domains/liveness"
	"github.com/sirupsen/logrus"
)

type Monitor struct {
	Service domainLiveness.ILivenessUsecase
}

func NewMonitor(service domainLiveness.ILivenessUsecase) *Monitor {
	return &Monitor{Service: service}
}

// Handle runs one check per scheduled event. Failures are logged and never
// returned, so the schedule does not retry or mark the run as failed.
func (h *Monitor) Handle(ctx context.Context, event events.CloudWatchEvent) (err error) {
	defer func() { err = nil }()
	defer shield("monitor", &err)

	result := h.Service.Check(ctx)
	entry := logrus.WithFields(logrus.Fields{
		"status":   result.Status,
		"event_id": event.ID,
	})
	if result.Elapsed > 0 {
		entry = entry.WithField("elapsed", result.Elapsed.String())
	}
	if result.Err != nil {
		entry = entry.WithError(result.Err)
	}

	if result.Ok() {
		entry.Info("[MONITOR] Check completed")
	} else {
		entry.Error("[MONITOR] Check failed")
	}
	return nil
}
