// Package aws adapts the AWS SDK clients to the ports the use cases depend on.
package aws

import (
	"context"
	"fmt"
	"sync"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/iotdataplane"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/sirupsen/logrus"
)

// SecretsManagerAPI is the subset of the Secrets Manager client we use.
type SecretsManagerAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

type S3API interface {
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

type IoTDataAPI interface {
	Publish(ctx context.Context, params *iotdataplane.PublishInput, optFns ...func(*iotdataplane.Options)) (*iotdataplane.PublishOutput, error)
}

type SNSAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

type EventBridgeAPI interface {
	DisableRule(ctx context.Context, params *eventbridge.DisableRuleInput, optFns ...func(*eventbridge.Options)) (*eventbridge.DisableRuleOutput, error)
	EnableRule(ctx context.Context, params *eventbridge.EnableRuleInput, optFns ...func(*eventbridge.Options)) (*eventbridge.EnableRuleOutput, error)
	DescribeRule(ctx context.Context, params *eventbridge.DescribeRuleInput, optFns ...func(*eventbridge.Options)) (*eventbridge.DescribeRuleOutput, error)
}

var (
	_ SecretsManagerAPI = (*secretsmanager.Client)(nil)
	_ S3API             = (*s3.Client)(nil)
	_ DynamoDBAPI       = (*dynamodb.Client)(nil)
	_ IoTDataAPI        = (*iotdataplane.Client)(nil)
	_ SNSAPI            = (*sns.Client)(nil)
	_ EventBridgeAPI    = (*eventbridge.Client)(nil)
)

// Clients holds the SDK clients shared by every invocation of a warm
// function. Each client is built on first use.
type Clients struct {
	cfg         awssdk.Config
	iotEndpoint string

	secretsOnce sync.Once
	secrets     *secretsmanager.Client
	s3Once      sync.Once
	s3          *s3.Client
	dynamoOnce  sync.Once
	dynamo      *dynamodb.Client
	iotOnce     sync.Once
	iot         *iotdataplane.Client
	snsOnce     sync.Once
	sns         *sns.Client
	eventsOnce  sync.Once
	events      *eventbridge.Client
}

// NewClients loads the default credential chain. iotEndpoint overrides the
// IoT data plane endpoint when set.
func NewClients(ctx context.Context, iotEndpoint string) (*Clients, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}
	logrus.Debugf("[AWS] SDK config loaded for region %s", cfg.Region)
	return &Clients{cfg: cfg, iotEndpoint: iotEndpoint}, nil
}

func (c *Clients) SecretsManager() *secretsmanager.Client {
	c.secretsOnce.Do(func() { c.secrets = secretsmanager.NewFromConfig(c.cfg) })
	return c.secrets
}

func (c *Clients) S3() *s3.Client {
	c.s3Once.Do(func() { c.s3 = s3.NewFromConfig(c.cfg) })
	return c.s3
}

func (c *Clients) DynamoDB() *dynamodb.Client {
	c.dynamoOnce.Do(func() { c.dynamo = dynamodb.NewFromConfig(c.cfg) })
	return c.dynamo
}

func (c *Clients) IoTData() *iotdataplane.Client {
	c.iotOnce.Do(func() {
		c.iot = iotdataplane.NewFromConfig(c.cfg, func(o *iotdataplane.Options) {
			if c.iotEndpoint != "" {
				o.BaseEndpoint = awssdk.String(c.iotEndpoint)
			}
		})
	})
	return c.iot
}

func (c *Clients) SNS() *sns.Client {
	c.snsOnce.Do(func() { c.sns = sns.NewFromConfig(c.cfg) })
	return c.sns
}

func (c *Clients) EventBridge() *eventbridge.Client {
	c.eventsOnce.Do(func() { c.events = eventbridge.NewFromConfig(c.cfg) })
	return c.events
}
