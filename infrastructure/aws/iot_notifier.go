package aws

import (
	"context"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/iotdataplane"
)

// IoTNotifier publishes an empty message on the device's MQTT topic.
type IoTNotifier struct {
	client IoTDataAPI
	topic  string
}

func NewIoTNotifier(client IoTDataAPI, topic string) *IoTNotifier {
	return &IoTNotifier{client: client, topic: topic}
}

func (n *IoTNotifier) NotifyDevice(ctx context.Context) error {
	_, err := n.client.Publish(ctx, &iotdataplane.PublishInput{
		Topic: awssdk.String(n.topic),
	})
	if err != nil {
		return fmt.Errorf("failed to publish to %s: %w", n.topic, err)
	}
	return nil
}
