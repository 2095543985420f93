package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	domainLiveness "github.com/photoframe/photoframe/domains/liveness"
	pkgError "github.com/photoframe/photoframe/pkg/error"
	"github.com/sirupsen/logrus"
)

// LivenessOptions carries the monitor's runtime-tunable values.
type LivenessOptions struct {
	DeviceName string
	RuleName   string
	Threshold  time.Duration
	// Now defaults to time.Now.
	Now func() time.Time
}

type livenessService struct {
	store    domainLiveness.ConnectivityStore
	notifier domainLiveness.DeviceNotifier
	alerts   domainLiveness.AlertPublisher
	trigger  domainLiveness.TriggerController
	opts     LivenessOptions
}

func NewLivenessService(
	store domainLiveness.ConnectivityStore,
	notifier domainLiveness.DeviceNotifier,
	alerts domainLiveness.AlertPublisher,
	trigger domainLiveness.TriggerController,
	opts LivenessOptions,
) domainLiveness.ILivenessUsecase {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &livenessService{
		store:    store,
		notifier: notifier,
		alerts:   alerts,
		trigger:  trigger,
		opts:     opts,
	}
}

// Check reads the device's connectivity record once and acts on it. It never
// returns an error; failures are reported through the result status.
func (s *livenessService) Check(ctx context.Context) domainLiveness.Result {
	res := s.check(ctx)

	entry := logrus.WithFields(logrus.Fields{
		"device": s.opts.DeviceName,
		"status": res.Status,
	})
	switch {
	case res.Err != nil:
		entry.WithError(res.Err).Error("[MONITOR] Liveness check failed")
	case res.Status == domainLiveness.StatusRecordMissing:
		entry.Warn("[MONITOR] No connectivity record yet, device has never connected")
	default:
		entry.Info("[MONITOR] Liveness check completed")
	}
	return res
}

func (s *livenessService) check(ctx context.Context) domainLiveness.Result {
	// A disabled schedule means an alert already went out for this outage.
	enabled, err := s.trigger.Enabled(ctx)
	if err != nil {
		return domainLiveness.Result{Status: domainLiveness.StatusTriggerError, Err: err}
	}
	if !enabled {
		return domainLiveness.Result{
			Status:  domainLiveness.StatusTriggerDisabled,
			Message: fmt.Sprintf("rule %s is disabled, enable it to resume monitoring", s.opts.RuleName),
		}
	}

	record, err := s.store.Get(ctx, s.opts.DeviceName)
	if err != nil {
		return domainLiveness.Result{Status: domainLiveness.StatusStoreError, Err: err}
	}
	if record == nil {
		return domainLiveness.Result{
			Status:  domainLiveness.StatusRecordMissing,
			Message: fmt.Sprintf("no connectivity record for device %s", s.opts.DeviceName),
		}
	}

	switch record.EventType {
	case domainLiveness.EventConnected:
		logrus.Info("[MONITOR] Device connected, sending message")
		if err := s.notifier.NotifyDevice(ctx); err != nil {
			return domainLiveness.Result{Status: domainLiveness.StatusNotifyError, Record: record, Err: err}
		}
		return domainLiveness.Result{Status: domainLiveness.StatusNotified, Record: record}

	case domainLiveness.EventDisconnected:
		if record.Timestamp <= 0 {
			return domainLiveness.Result{
				Status: domainLiveness.StatusMalformedRecord,
				Record: record,
				Err:    fmt.Errorf("invalid timestamp %d", record.Timestamp),
			}
		}
		return s.handleDisconnected(ctx, record)

	default:
		return domainLiveness.Result{
			Status: domainLiveness.StatusMalformedRecord,
			Record: record,
			Err:    fmt.Errorf("unknown event type %q", record.EventType),
		}
	}
}

func (s *livenessService) handleDisconnected(ctx context.Context, record *domainLiveness.ConnectivityRecord) domainLiveness.Result {
	now := s.opts.Now().UTC()
	lastSeen := record.LastSeen()
	elapsed := now.Sub(lastSeen)

	logrus.Infof("[MONITOR] Last connected time was %s", lastSeen.Format(time.RFC3339))
	logrus.Infof("[MONITOR] Disconnected for %.0f seconds", elapsed.Seconds())

	if elapsed <= s.opts.Threshold {
		return domainLiveness.Result{Status: domainLiveness.StatusWithinTolerance, Record: record, Elapsed: elapsed}
	}

	message := fmt.Sprintf("Device offline as of %s (%s). Rule %s disabled and must be manually re-enabled.",
		lastSeen.Format(time.RFC3339),
		humanize.RelTime(lastSeen, now, "ago", "from now"),
		s.opts.RuleName,
	)

	// The trigger stays enabled when the alert could not be delivered so the
	// next tick tries again.
	if err := s.alerts.PublishAlert(ctx, message); err != nil {
		return domainLiveness.Result{Status: domainLiveness.StatusNotifyError, Record: record, Elapsed: elapsed, Err: err}
	}
	if err := s.trigger.Disable(ctx); err != nil {
		return domainLiveness.Result{Status: domainLiveness.StatusTriggerError, Record: record, Elapsed: elapsed, Message: message, Err: err}
	}

	return domainLiveness.Result{Status: domainLiveness.StatusAlerted, Record: record, Elapsed: elapsed, Message: message}
}

func (s *livenessService) RecordPresence(ctx context.Context, event domainLiveness.PresenceEvent) error {
	if !event.EventType.Valid() {
		return pkgError.ValidationError(fmt.Sprintf("unsupported presence event type %q", event.EventType))
	}
	if event.Timestamp <= 0 {
		return pkgError.ValidationError("presence event timestamp is required")
	}

	record := domainLiveness.ConnectivityRecord{
		DeviceName: s.opts.DeviceName,
		EventType:  event.EventType,
		Timestamp:  event.Timestamp,
		ClientID:   event.ClientID,
		Version:    event.VersionNumber,
	}
	if err := s.store.Save(ctx, record); err != nil {
		return fmt.Errorf("failed to save connectivity record: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"device":    s.opts.DeviceName,
		"client_id": event.ClientID,
		"event":     event.EventType,
	}).Info("[PRESENCE] Connectivity record updated")
	return nil
}

func (s *livenessService) EnableTrigger(ctx context.Context) error {
	if err := s.trigger.Enable(ctx); err != nil {
		return fmt.Errorf("failed to enable rule %s: %w", s.opts.RuleName, err)
	}
	logrus.Infof("[MONITOR] Rule %s enabled", s.opts.RuleName)
	return nil
}

func (s *livenessService) DisableTrigger(ctx context.Context) error {
	if err := s.trigger.Disable(ctx); err != nil {
		return fmt.Errorf("failed to disable rule %s: %w", s.opts.RuleName, err)
	}
	logrus.Infof("[MONITOR] Rule %s disabled", s.opts.RuleName)
	return nil
}
