package aws

import (
	"context"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// SNSAlerter sends operator alerts to an SNS topic.
type SNSAlerter struct {
	client   SNSAPI
	topicARN string
}

func NewSNSAlerter(client SNSAPI, topicARN string) *SNSAlerter {
	return &SNSAlerter{client: client, topicARN: topicARN}
}

func (a *SNSAlerter) PublishAlert(ctx context.Context, message string) error {
	_, err := a.client.Publish(ctx, &sns.PublishInput{
		TopicArn: awssdk.String(a.topicARN),
		Message:  awssdk.String(message),
	})
	if err != nil {
		return fmt.Errorf("failed to publish alert to %s: %w", a.topicARN, err)
	}
	return nil
}
