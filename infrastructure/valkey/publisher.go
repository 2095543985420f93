package valkey

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Publisher delivers device notifications and operator alerts over Valkey
// pub/sub in self-hosted mode.
type Publisher struct {
	client       *Client
	deviceTopic  string
	alertChannel string
}

func NewPublisher(client *Client, deviceTopic, alertChannel string) *Publisher {
	return &Publisher{client: client, deviceTopic: deviceTopic, alertChannel: alertChannel}
}

func (p *Publisher) NotifyDevice(ctx context.Context) error {
	n, err := p.client.Publish(ctx, p.deviceTopic, "")
	if err != nil {
		return fmt.Errorf("failed to publish to %s: %w", p.deviceTopic, err)
	}
	logrus.Debugf("[VALKEY] %s delivered to %d subscribers", p.deviceTopic, n)
	return nil
}

func (p *Publisher) PublishAlert(ctx context.Context, message string) error {
	if _, err := p.client.Publish(ctx, p.alertChannel, message); err != nil {
		return fmt.Errorf("failed to publish alert to %s: %w", p.alertChannel, err)
	}
	return nil
}
