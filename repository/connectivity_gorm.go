package repository

import (
	"context"
	"errors"
	"time"

	domainLiveness "github.com/photoframe/photoframe/domains/liveness"
	"gorm.io/gorm"
)

type connectivityModel struct {
	DeviceName string    `gorm:"primaryKey;column:device_name"`
	EventType  string    `gorm:"column:event_type;not null"`
	Timestamp  int64     `gorm:"column:timestamp;not null"`
	ClientID   string    `gorm:"column:client_id"`
	Version    int64     `gorm:"column:version;not null;default:0"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

func (connectivityModel) TableName() string {
	return "device_connectivity"
}

type triggerStateModel struct {
	Name      string    `gorm:"primaryKey;column:name"`
	Enabled   bool      `gorm:"column:enabled;not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (triggerStateModel) TableName() string {
	return "trigger_state"
}

// GormConnectivityStore persists connectivity records in SQLite or Postgres.
type GormConnectivityStore struct {
	db *gorm.DB
}

func NewGormConnectivityStore(db *gorm.DB) *GormConnectivityStore {
	return &GormConnectivityStore{db: db}
}

// Init creates the tables when missing.
func (r *GormConnectivityStore) Init(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&connectivityModel{}, &triggerStateModel{})
}

func (r *GormConnectivityStore) Get(ctx context.Context, deviceName string) (*domainLiveness.ConnectivityRecord, error) {
	var model connectivityModel
	err := r.db.WithContext(ctx).First(&model, "device_name = ?", deviceName).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &domainLiveness.ConnectivityRecord{
		DeviceName: model.DeviceName,
		EventType:  domainLiveness.EventType(model.EventType),
		Timestamp:  model.Timestamp,
		ClientID:   model.ClientID,
		Version:    model.Version,
	}, nil
}

// Save overwrites the row of the device.
func (r *GormConnectivityStore) Save(ctx context.Context, record domainLiveness.ConnectivityRecord) error {
	model := connectivityModel{
		DeviceName: record.DeviceName,
		EventType:  string(record.EventType),
		Timestamp:  record.Timestamp,
		ClientID:   record.ClientID,
		Version:    record.Version,
	}
	return r.db.WithContext(ctx).Save(&model).Error
}

func (r *GormConnectivityStore) TriggerEnabled(ctx context.Context, name string) (bool, error) {
	var model triggerStateModel
	err := r.db.WithContext(ctx).First(&model, "name = ?", name).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return true, nil
		}
		return false, err
	}
	return model.Enabled, nil
}

func (r *GormConnectivityStore) SetTriggerEnabled(ctx context.Context, name string, enabled bool) error {
	return r.db.WithContext(ctx).Save(&triggerStateModel{Name: name, Enabled: enabled}).Error
}
