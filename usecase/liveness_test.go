package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	domainLiveness "github.com/photoframe/photoframe/domains/liveness"
	pkgError "github.com/photoframe/photoframe/pkg/error"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testDevice = "esp32c3_photo_frame"

type stubStore struct {
	record *domainLiveness.ConnectivityRecord
	err    error
	saved  []domainLiveness.ConnectivityRecord
}

func (s *stubStore) Get(ctx context.Context, deviceName string) (*domainLiveness.ConnectivityRecord, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.record == nil || s.record.DeviceName != deviceName {
		return nil, nil
	}
	rec := *s.record
	return &rec, nil
}

func (s *stubStore) Save(ctx context.Context, record domainLiveness.ConnectivityRecord) error {
	if s.err != nil {
		return s.err
	}
	s.saved = append(s.saved, record)
	s.record = &record
	return nil
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) NotifyDevice(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type MockAlerts struct{ mock.Mock }

func (m *MockAlerts) PublishAlert(ctx context.Context, message string) error {
	return m.Called(ctx, message).Error(0)
}

type MockTrigger struct {
	mock.Mock
	disabled bool
	stateErr error
}

func (m *MockTrigger) Enabled(ctx context.Context) (bool, error) {
	return !m.disabled, m.stateErr
}

func (m *MockTrigger) Disable(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockTrigger) Enable(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type livenessFixture struct {
	store    *stubStore
	notifier *MockNotifier
	alerts   *MockAlerts
	trigger  *MockTrigger
	now      time.Time
	svc      domainLiveness.ILivenessUsecase
}

func newLivenessFixture(t *testing.T, record *domainLiveness.ConnectivityRecord) *livenessFixture {
	t.Helper()
	f := &livenessFixture{
		store:    &stubStore{record: record},
		notifier: &MockNotifier{},
		alerts:   &MockAlerts{},
		trigger:  &MockTrigger{},
		now:      time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC),
	}
	f.svc = NewLivenessService(f.store, f.notifier, f.alerts, f.trigger, LivenessOptions{
		DeviceName: testDevice,
		RuleName:   "Publish_New_Image_Topic",
		Threshold:  24 * time.Hour,
		Now:        func() time.Time { return f.now },
	})
	return f
}

func disconnectedAt(ts time.Time) *domainLiveness.ConnectivityRecord {
	return &domainLiveness.ConnectivityRecord{
		DeviceName: testDevice,
		EventType:  domainLiveness.EventDisconnected,
		Timestamp:  ts.UnixMilli(),
	}
}

func TestLiveness_ConnectedNotifiesOnce(t *testing.T) {
	f := newLivenessFixture(t, &domainLiveness.ConnectivityRecord{
		DeviceName: testDevice,
		EventType:  domainLiveness.EventConnected,
		Timestamp:  time.Now().UnixMilli(),
	})
	f.notifier.On("NotifyDevice", mock.Anything).Return(nil).Once()

	res := f.svc.Check(context.Background())

	assert.Equal(t, domainLiveness.StatusNotified, res.Status)
	assert.True(t, res.Ok())
	f.notifier.AssertNumberOfCalls(t, "NotifyDevice", 1)
	f.alerts.AssertNotCalled(t, "PublishAlert", mock.Anything, mock.Anything)
	f.trigger.AssertNotCalled(t, "Disable", mock.Anything)
}

func TestLiveness_ConnectedTwiceNotifiesTwice(t *testing.T) {
	f := newLivenessFixture(t, &domainLiveness.ConnectivityRecord{
		DeviceName: testDevice,
		EventType:  domainLiveness.EventConnected,
		Timestamp:  time.Now().UnixMilli(),
	})
	f.notifier.On("NotifyDevice", mock.Anything).Return(nil)

	f.svc.Check(context.Background())
	f.svc.Check(context.Background())

	f.notifier.AssertNumberOfCalls(t, "NotifyDevice", 2)
}

func TestLiveness_DisconnectedAtThresholdBoundary(t *testing.T) {
	f := newLivenessFixture(t, nil)
	f.store.record = disconnectedAt(f.now.Add(-86400 * time.Second))

	res := f.svc.Check(context.Background())

	assert.Equal(t, domainLiveness.StatusWithinTolerance, res.Status)
	assert.Equal(t, 24*time.Hour, res.Elapsed)
	f.alerts.AssertNotCalled(t, "PublishAlert", mock.Anything, mock.Anything)
	f.trigger.AssertNotCalled(t, "Disable", mock.Anything)
	f.notifier.AssertNotCalled(t, "NotifyDevice", mock.Anything)
}

func TestLiveness_DisconnectedOneSecondPastThreshold(t *testing.T) {
	f := newLivenessFixture(t, nil)
	f.store.record = disconnectedAt(f.now.Add(-86401 * time.Second))
	f.alerts.On("PublishAlert", mock.Anything, mock.Anything).Return(nil).Once()
	f.trigger.On("Disable", mock.Anything).Return(nil).Once()

	res := f.svc.Check(context.Background())

	assert.Equal(t, domainLiveness.StatusAlerted, res.Status)
	f.alerts.AssertNumberOfCalls(t, "PublishAlert", 1)
	f.trigger.AssertNumberOfCalls(t, "Disable", 1)
}

func TestLiveness_OfflineForTwentyFiveHours(t *testing.T) {
	f := newLivenessFixture(t, nil)
	lastSeen := f.now.Add(-25 * time.Hour)
	f.store.record = disconnectedAt(lastSeen)

	var published string
	f.alerts.On("PublishAlert", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { published = args.String(1) }).
		Return(nil).Once()
	f.trigger.On("Disable", mock.Anything).Return(nil).Once()

	res := f.svc.Check(context.Background())

	require.Equal(t, domainLiveness.StatusAlerted, res.Status)
	assert.Contains(t, published, lastSeen.Format(time.RFC3339))
	assert.Contains(t, published, "Publish_New_Image_Topic")
	assert.Contains(t, published, "must be manually re-enabled")
	assert.Equal(t, published, res.Message)
	assert.Equal(t, 25*time.Hour, res.Elapsed)
	f.trigger.AssertNumberOfCalls(t, "Disable", 1)
	f.notifier.AssertNotCalled(t, "NotifyDevice", mock.Anything)
}

func TestLiveness_AlertFailureKeepsTriggerEnabled(t *testing.T) {
	f := newLivenessFixture(t, nil)
	f.store.record = disconnectedAt(f.now.Add(-48 * time.Hour))
	f.alerts.On("PublishAlert", mock.Anything, mock.Anything).Return(errors.New("sns down"))

	res := f.svc.Check(context.Background())

	assert.Equal(t, domainLiveness.StatusNotifyError, res.Status)
	assert.False(t, res.Ok())
	assert.EqualError(t, res.Err, "sns down")
	f.trigger.AssertNotCalled(t, "Disable", mock.Anything)
}

func TestLiveness_TriggerFailure(t *testing.T) {
	f := newLivenessFixture(t, nil)
	f.store.record = disconnectedAt(f.now.Add(-48 * time.Hour))
	f.alerts.On("PublishAlert", mock.Anything, mock.Anything).Return(nil)
	f.trigger.On("Disable", mock.Anything).Return(errors.New("access denied"))

	res := f.svc.Check(context.Background())

	assert.Equal(t, domainLiveness.StatusTriggerError, res.Status)
	assert.NotEmpty(t, res.Message)
}

func TestLiveness_DisabledTriggerSkipsCheck(t *testing.T) {
	f := newLivenessFixture(t, nil)
	f.store.record = disconnectedAt(f.now.Add(-48 * time.Hour))
	f.trigger.disabled = true

	res := f.svc.Check(context.Background())

	assert.Equal(t, domainLiveness.StatusTriggerDisabled, res.Status)
	assert.True(t, res.Ok())
	assert.Contains(t, res.Message, "Publish_New_Image_Topic")
	f.alerts.AssertNotCalled(t, "PublishAlert", mock.Anything, mock.Anything)
	f.trigger.AssertNotCalled(t, "Disable", mock.Anything)
	f.notifier.AssertNotCalled(t, "NotifyDevice", mock.Anything)
}

func TestLiveness_TriggerStateError(t *testing.T) {
	f := newLivenessFixture(t, nil)
	f.store.record = disconnectedAt(f.now.Add(-48 * time.Hour))
	f.trigger.stateErr = errors.New("describe rule denied")

	res := f.svc.Check(context.Background())

	assert.Equal(t, domainLiveness.StatusTriggerError, res.Status)
	assert.False(t, res.Ok())
	f.alerts.AssertNotCalled(t, "PublishAlert", mock.Anything, mock.Anything)
}

func TestLiveness_RecordMissing(t *testing.T) {
	f := newLivenessFixture(t, nil)

	res := f.svc.Check(context.Background())

	assert.Equal(t, domainLiveness.StatusRecordMissing, res.Status)
	assert.NoError(t, res.Err)
	assert.False(t, res.Ok())
	f.notifier.AssertNotCalled(t, "NotifyDevice", mock.Anything)
	f.alerts.AssertNotCalled(t, "PublishAlert", mock.Anything, mock.Anything)
}

func TestLiveness_StoreError(t *testing.T) {
	f := newLivenessFixture(t, nil)
	f.store.err = errors.New("dynamodb unavailable")

	res := f.svc.Check(context.Background())

	assert.Equal(t, domainLiveness.StatusStoreError, res.Status)
	assert.Error(t, res.Err)
}

func TestLiveness_NotifyError(t *testing.T) {
	f := newLivenessFixture(t, &domainLiveness.ConnectivityRecord{
		DeviceName: testDevice,
		EventType:  domainLiveness.EventConnected,
		Timestamp:  1,
	})
	f.notifier.On("NotifyDevice", mock.Anything).Return(errors.New("iot endpoint unreachable"))

	res := f.svc.Check(context.Background())

	assert.Equal(t, domainLiveness.StatusNotifyError, res.Status)
}

func TestLiveness_MalformedRecords(t *testing.T) {
	for _, rec := range []*domainLiveness.ConnectivityRecord{
		{DeviceName: testDevice, EventType: "rebooting", Timestamp: 1},
		{DeviceName: testDevice, EventType: domainLiveness.EventDisconnected, Timestamp: 0},
	} {
		f := newLivenessFixture(t, rec)

		res := f.svc.Check(context.Background())

		assert.Equal(t, domainLiveness.StatusMalformedRecord, res.Status)
		assert.Error(t, res.Err)
		f.alerts.AssertNotCalled(t, "PublishAlert", mock.Anything, mock.Anything)
	}
}

func TestLiveness_RecordPresence(t *testing.T) {
	f := newLivenessFixture(t, nil)

	err := f.svc.RecordPresence(context.Background(), domainLiveness.PresenceEvent{
		ClientID:      "frame-client",
		Timestamp:     1700000000000,
		EventType:     domainLiveness.EventDisconnected,
		VersionNumber: 3,
	})
	require.NoError(t, err)

	require.Len(t, f.store.saved, 1)
	assert.Equal(t, domainLiveness.ConnectivityRecord{
		DeviceName: testDevice,
		EventType:  domainLiveness.EventDisconnected,
		Timestamp:  1700000000000,
		ClientID:   "frame-client",
		Version:    3,
	}, f.store.saved[0])
}

func TestLiveness_RecordPresenceRejectsUnknownType(t *testing.T) {
	f := newLivenessFixture(t, nil)

	err := f.svc.RecordPresence(context.Background(), domainLiveness.PresenceEvent{
		ClientID:  "frame-client",
		Timestamp: 1700000000000,
		EventType: "subscribed",
	})

	var validation pkgError.ValidationError
	assert.True(t, errors.As(err, &validation))
	assert.Empty(t, f.store.saved)
}

func TestLiveness_EnableAndDisableTrigger(t *testing.T) {
	f := newLivenessFixture(t, nil)
	f.trigger.On("Enable", mock.Anything).Return(nil).Once()
	f.trigger.On("Disable", mock.Anything).Return(errors.New("nope")).Once()

	assert.NoError(t, f.svc.EnableTrigger(context.Background()))
	assert.ErrorContains(t, f.svc.DisableTrigger(context.Background()), "Publish_New_Image_Topic")
	f.trigger.AssertExpectations(t)
}
