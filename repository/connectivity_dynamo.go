package repository

import (
	"context"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	domainLiveness "github.com/photoframe/photoframe/domains/liveness"
	infraAWS "github.com/photoframe/photoframe/infrastructure/aws"
)

// connectivityItem mirrors what the IoT topic rule writes:
// {device_name: S, payload: M{eventType, timestamp, clientId, version}}.
type connectivityItem struct {
	DeviceName string              `dynamodbav:"device_name"`
	Payload    connectivityPayload `dynamodbav:"payload"`
}

type connectivityPayload struct {
	EventType string `dynamodbav:"eventType"`
	Timestamp int64  `dynamodbav:"timestamp"`
	ClientID  string `dynamodbav:"clientId,omitempty"`
	Version   int64  `dynamodbav:"version,omitempty"`
}

// DynamoConnectivityStore reads and writes the single-row-per-device table.
type DynamoConnectivityStore struct {
	client infraAWS.DynamoDBAPI
	table  string
}

func NewDynamoConnectivityStore(client infraAWS.DynamoDBAPI, table string) *DynamoConnectivityStore {
	return &DynamoConnectivityStore{client: client, table: table}
}

// Get performs a strongly consistent read.
func (s *DynamoConnectivityStore) Get(ctx context.Context, deviceName string) (*domainLiveness.ConnectivityRecord, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      awssdk.String(s.table),
		Key:            map[string]types.AttributeValue{"device_name": &types.AttributeValueMemberS{Value: deviceName}},
		ConsistentRead: awssdk.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get connectivity record from %s: %w", s.table, err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}

	var item connectivityItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal connectivity record: %w", err)
	}
	return &domainLiveness.ConnectivityRecord{
		DeviceName: item.DeviceName,
		EventType:  domainLiveness.EventType(item.Payload.EventType),
		Timestamp:  item.Payload.Timestamp,
		ClientID:   item.Payload.ClientID,
		Version:    item.Payload.Version,
	}, nil
}

func (s *DynamoConnectivityStore) Save(ctx context.Context, record domainLiveness.ConnectivityRecord) error {
	av, err := attributevalue.MarshalMap(connectivityItem{
		DeviceName: record.DeviceName,
		Payload: connectivityPayload{
			EventType: string(record.EventType),
			Timestamp: record.Timestamp,
			ClientID:  record.ClientID,
			Version:   record.Version,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to marshal connectivity record: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: awssdk.String(s.table),
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("failed to put connectivity record into %s: %w", s.table, err)
	}
	return nil
}
