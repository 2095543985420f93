package cmd

import (
	"context"
	"fmt"

	"github.com/photoframe/photoframe/core/config"
	"github.com/photoframe/photoframe/core/database"
	domainAccess "github.com/photoframe/photoframe/domains/access"
	domainImage "github.com/photoframe/photoframe/domains/image"
	domainLiveness "github.com/photoframe/photoframe/domains/liveness"
	infraAWS "github.com/photoframe/photoframe/infrastructure/aws"
	"github.com/photoframe/photoframe/infrastructure/localfs"
	"github.com/photoframe/photoframe/infrastructure/lognotify"
	"github.com/photoframe/photoframe/infrastructure/scheduler"
	"github.com/photoframe/photoframe/infrastructure/valkey"
	"github.com/photoframe/photoframe/pkg/frameimage"
	"github.com/photoframe/photoframe/repository"
	"github.com/photoframe/photoframe/usecase"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// components builds collaborators on demand so each command only opens the
// connections its drivers need.
type components struct {
	cfg    *config.Config
	aws    *infraAWS.Clients
	valkey *valkey.Client
	db     *gorm.DB
	store  domainLiveness.ConnectivityStore
}

func newComponents(cfg *config.Config) *components {
	return &components{cfg: cfg}
}

func (c *components) awsClients(ctx context.Context) (*infraAWS.Clients, error) {
	if c.aws == nil {
		clients, err := infraAWS.NewClients(ctx, c.cfg.Liveness.IoTEndpoint)
		if err != nil {
			return nil, err
		}
		c.aws = clients
	}
	return c.aws, nil
}

func (c *components) valkeyClient() (*valkey.Client, error) {
	if c.valkey == nil {
		vk, err := valkey.NewClient(valkey.Config{
			Address:   c.cfg.Database.ValkeyAddress,
			Password:  c.cfg.Database.ValkeyPassword,
			DB:        c.cfg.Database.ValkeyDB,
			KeyPrefix: c.cfg.Database.ValkeyKeyPrefix,
		})
		if err != nil {
			return nil, err
		}
		logrus.Infof("[VALKEY] Connected to %s", c.cfg.Database.ValkeyAddress)
		c.valkey = vk
	}
	return c.valkey, nil
}

func (c *components) database() (*gorm.DB, error) {
	if c.db == nil {
		db, err := database.NewDatabase(c.cfg)
		if err != nil {
			return nil, err
		}
		c.db = db
	}
	return c.db, nil
}

func (c *components) Close() {
	if c.valkey != nil {
		c.valkey.Close()
	}
	if c.db != nil {
		if sqlDB, err := c.db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}

func (c *components) secretSource(ctx context.Context) (domainAccess.SecretSource, error) {
	if c.cfg.Access.SecretName != "" {
		clients, err := c.awsClients(ctx)
		if err != nil {
			return nil, err
		}
		return infraAWS.NewSecretsManagerSource(clients.SecretsManager(), c.cfg.Access.SecretName), nil
	}
	if c.cfg.Access.StaticToken != "" {
		return infraAWS.StaticSource(c.cfg.Access.StaticToken), nil
	}
	return nil, fmt.Errorf("no access token source configured: set API_TOKEN_NAME or API_TOKEN")
}

func (c *components) accessService(ctx context.Context) (domainAccess.IAccessUsecase, error) {
	secrets, err := c.secretSource(ctx)
	if err != nil {
		return nil, err
	}
	return usecase.NewAccessService(secrets, c.cfg.Access.Resource), nil
}

func (c *components) imageService(ctx context.Context) (domainImage.IImageUsecase, error) {
	var source domainImage.Source
	switch c.cfg.Image.Source {
	case config.SourceLocal:
		source = localfs.NewSource(c.cfg.Image.LocalDir)
	default:
		clients, err := c.awsClients(ctx)
		if err != nil {
			return nil, err
		}
		source = infraAWS.NewS3Source(clients.S3(), c.cfg.Image.Bucket)
	}

	var transformer domainImage.Transformer
	if fitter := frameimage.NewFitter(c.cfg.Image.MaxWidth, c.cfg.Image.MaxHeight, c.cfg.Image.Quality); fitter != nil {
		transformer = fitter
	}
	return usecase.NewImageService(source, transformer, c.cfg.Image.Prefix), nil
}

func (c *components) connectivityStore(ctx context.Context) (domainLiveness.ConnectivityStore, error) {
	if c.store == nil {
		store, err := c.openConnectivityStore(ctx)
		if err != nil {
			return nil, err
		}
		c.store = store
	}
	return c.store, nil
}

func (c *components) openConnectivityStore(ctx context.Context) (domainLiveness.ConnectivityStore, error) {
	switch c.cfg.Liveness.Store {
	case config.StoreValkey:
		vk, err := c.valkeyClient()
		if err != nil {
			return nil, err
		}
		return repository.NewValkeyConnectivityStore(vk), nil
	case config.StoreSQL:
		db, err := c.database()
		if err != nil {
			return nil, err
		}
		store := repository.NewGormConnectivityStore(db)
		if err := store.Init(ctx); err != nil {
			return nil, fmt.Errorf("failed to migrate connectivity table: %w", err)
		}
		return store, nil
	case config.StoreMemory:
		return repository.NewMemoryConnectivityStore(), nil
	default:
		clients, err := c.awsClients(ctx)
		if err != nil {
			return nil, err
		}
		return repository.NewDynamoConnectivityStore(clients.DynamoDB(), c.cfg.Liveness.TableName), nil
	}
}

func (c *components) notifiers(ctx context.Context) (domainLiveness.DeviceNotifier, domainLiveness.AlertPublisher, error) {
	switch c.cfg.Liveness.Notify {
	case config.NotifyValkey:
		vk, err := c.valkeyClient()
		if err != nil {
			return nil, nil, err
		}
		alertChannel := c.cfg.Liveness.AlertTopic
		if alertChannel == "" {
			alertChannel = "device_offline"
		}
		pub := valkey.NewPublisher(vk, c.cfg.Liveness.DeviceTopic, alertChannel)
		return pub, pub, nil
	case config.NotifyLog:
		n := lognotify.Notifier{DeviceTopic: c.cfg.Liveness.DeviceTopic}
		return n, n, nil
	default:
		clients, err := c.awsClients(ctx)
		if err != nil {
			return nil, nil, err
		}
		return infraAWS.NewIoTNotifier(clients.IoTData(), c.cfg.Liveness.DeviceTopic),
			infraAWS.NewSNSAlerter(clients.SNS(), c.cfg.Liveness.AlertTopic), nil
	}
}

func (c *components) ruleTrigger(ctx context.Context) (domainLiveness.TriggerController, error) {
	clients, err := c.awsClients(ctx)
	if err != nil {
		return nil, err
	}
	return infraAWS.NewRuleTrigger(clients.EventBridge(), c.cfg.Liveness.RuleName), nil
}

// scheduleTrigger returns the in-process schedule. Its enabled flag is kept in
// the connectivity store, so every process sharing the store sees a disable.
func (c *components) scheduleTrigger(ctx context.Context) (*scheduler.Ticker, error) {
	store, err := c.connectivityStore(ctx)
	if err != nil {
		return nil, err
	}
	state, ok := store.(domainLiveness.TriggerState)
	if !ok {
		return nil, fmt.Errorf("connectivity store %q cannot hold schedule state, use valkey, sql or memory", c.cfg.Liveness.Store)
	}
	if c.cfg.Liveness.Store == config.StoreMemory {
		logrus.Warn("[SCHEDULER] Memory store keeps schedule state for this process only")
	}
	return scheduler.NewTicker(c.cfg.Liveness.Interval, c.cfg.Liveness.RuleName, state), nil
}

func (c *components) livenessService(ctx context.Context, trigger domainLiveness.TriggerController) (domainLiveness.ILivenessUsecase, error) {
	store, err := c.connectivityStore(ctx)
	if err != nil {
		return nil, err
	}
	notifier, alerts, err := c.notifiers(ctx)
	if err != nil {
		return nil, err
	}
	return usecase.NewLivenessService(store, notifier, alerts, trigger, usecase.LivenessOptions{
		DeviceName: c.cfg.Liveness.DeviceName,
		RuleName:   c.cfg.Liveness.RuleName,
		Threshold:  c.cfg.Liveness.Threshold,
	}), nil
}
