package repository

import (
	"context"
	"encoding/json"
	"fmt"

	domainLiveness "github.com/photoframe/photoframe/domains/liveness"
	"github.com/photoframe/photoframe/infrastructure/valkey"
)

// ValkeyConnectivityStore keeps one JSON document per device.
type ValkeyConnectivityStore struct {
	client *valkey.Client
	prefix string
}

func NewValkeyConnectivityStore(client *valkey.Client) *ValkeyConnectivityStore {
	return &ValkeyConnectivityStore{
		client: client,
		prefix: client.Key("connectivity") + ":",
	}
}

func (s *ValkeyConnectivityStore) fullKey(deviceName string) string {
	return s.prefix + deviceName
}

func (s *ValkeyConnectivityStore) Save(ctx context.Context, record domainLiveness.ConnectivityRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal connectivity record: %w", err)
	}

	cmd := s.client.Inner().B().Set().
		Key(s.fullKey(record.DeviceName)).
		Value(string(data)).
		Build()

	if err := s.client.Inner().Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("failed to save connectivity record to valkey: %w", err)
	}
	return nil
}

func (s *ValkeyConnectivityStore) Get(ctx context.Context, deviceName string) (*domainLiveness.ConnectivityRecord, error) {
	cmd := s.client.Inner().B().Get().Key(s.fullKey(deviceName)).Build()
	data, err := s.client.Inner().Do(ctx, cmd).AsBytes()
	if err != nil {
		if valkey.IsNil(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get connectivity record from valkey: %w", err)
	}

	var record domainLiveness.ConnectivityRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal connectivity record: %w", err)
	}
	return &record, nil
}

func (s *ValkeyConnectivityStore) TriggerEnabled(ctx context.Context, name string) (bool, error) {
	cmd := s.client.Inner().B().Get().Key(s.client.Key("trigger", name)).Build()
	value, err := s.client.Inner().Do(ctx, cmd).ToString()
	if err != nil {
		if valkey.IsNil(err) {
			return true, nil
		}
		return false, fmt.Errorf("failed to get trigger state from valkey: %w", err)
	}
	return value != "0", nil
}

func (s *ValkeyConnectivityStore) SetTriggerEnabled(ctx context.Context, name string, enabled bool) error {
	value := "0"
	if enabled {
		value = "1"
	}
	cmd := s.client.Inner().B().Set().Key(s.client.Key("trigger", name)).Value(value).Build()
	if err := s.client.Inner().Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("failed to save trigger state to valkey: %w", err)
	}
	return nil
}
