// Package lognotify writes device notifications and alerts to the log. It is
// the notify driver for local runs without a broker.
package lognotify

import (
	"context"

	"github.com/sirupsen/logrus"
)

type Notifier struct {
	DeviceTopic string
}

func (n Notifier) NotifyDevice(ctx context.Context) error {
	logrus.WithField("topic", n.DeviceTopic).Info("[NOTIFY] New image available")
	return nil
}

func (n Notifier) PublishAlert(ctx context.Context, message string) error {
	logrus.WithField("alert", message).Warn("[NOTIFY] Operator alert")
	return nil
}
