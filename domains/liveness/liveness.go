package liveness

import (
	"context"
	"time"
)

type EventType string

const (
	EventConnected    EventType = "connected"
	EventDisconnected EventType = "disconnected"
)

func (e EventType) Valid() bool {
	return e == EventConnected || e == EventDisconnected
}

// ConnectivityRecord is the single stored row describing the last known
// connection event of a device. Timestamp is in milliseconds since epoch.
type ConnectivityRecord struct {
	DeviceName string    `json:"device_name"`
	EventType  EventType `json:"event_type"`
	Timestamp  int64     `json:"timestamp"`
	ClientID   string    `json:"client_id,omitempty"`
	Version    int64     `json:"version,omitempty"`
}

func (r ConnectivityRecord) LastSeen() time.Time {
	return time.UnixMilli(r.Timestamp).UTC()
}

// PresenceEvent is an AWS IoT lifecycle event as published on
// $aws/events/presence/<eventType>/<clientId>.
type PresenceEvent struct {
	ClientID            string    `json:"clientId"`
	Timestamp           int64     `json:"timestamp"`
	EventType           EventType `json:"eventType"`
	SessionIdentifier   string    `json:"sessionIdentifier,omitempty"`
	PrincipalIdentifier string    `json:"principalIdentifier,omitempty"`
	DisconnectReason    string    `json:"disconnectReason,omitempty"`
	VersionNumber       int64     `json:"versionNumber"`
}

// ConnectivityStore holds one record per device. Get returns (nil, nil) when
// no record exists yet.
type ConnectivityStore interface {
	Get(ctx context.Context, deviceName string) (*ConnectivityRecord, error)
	Save(ctx context.Context, record ConnectivityRecord) error
}

// DeviceNotifier tells the device that new content is available.
type DeviceNotifier interface {
	NotifyDevice(ctx context.Context) error
}

// AlertPublisher delivers a human-readable alert to operators.
type AlertPublisher interface {
	PublishAlert(ctx context.Context, message string) error
}

// TriggerController toggles the schedule that invokes the monitor.
type TriggerController interface {
	Disable(ctx context.Context) error
	Enable(ctx context.Context) error
	Enabled(ctx context.Context) (bool, error)
}

// TriggerState persists whether a named schedule is enabled so every process
// sharing a store sees the same state. Unknown names are enabled.
type TriggerState interface {
	TriggerEnabled(ctx context.Context, name string) (bool, error)
	SetTriggerEnabled(ctx context.Context, name string, enabled bool) error
}

type Status string

const (
	StatusNotified        Status = "notified"
	StatusWithinTolerance Status = "within_tolerance"
	StatusAlerted         Status = "alerted"
	StatusRecordMissing   Status = "record_missing"
	StatusMalformedRecord Status = "malformed_record"
	StatusStoreError      Status = "store_error"
	StatusNotifyError     Status = "notify_error"
	StatusTriggerError    Status = "trigger_error"
	StatusTriggerDisabled Status = "trigger_disabled"
)

// Result is the outcome of one monitor run.
type Result struct {
	Status  Status              `json:"status"`
	Record  *ConnectivityRecord `json:"record,omitempty"`
	Elapsed time.Duration       `json:"elapsed,omitempty"`
	Message string              `json:"message,omitempty"`
	Err     error               `json:"-"`
}

func (r Result) Ok() bool {
	switch r.Status {
	case StatusNotified, StatusWithinTolerance, StatusAlerted, StatusTriggerDisabled:
		return true
	}
	return false
}

type ILivenessUsecase interface {
	Check(ctx context.Context) Result
	RecordPresence(ctx context.Context, event PresenceEvent) error
	EnableTrigger(ctx context.Context) error
	DisableTrigger(ctx context.Context) error
}
