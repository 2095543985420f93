package config

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ValidateAuthorizer checks the settings the token gate needs inside Lambda.
func (c *Config) ValidateAuthorizer() error {
	return validation.ValidateStruct(&c.Access,
		validation.Field(&c.Access.SecretName, validation.Required.Error("API_TOKEN_NAME is required")),
		validation.Field(&c.Access.Header, validation.Required),
		validation.Field(&c.Access.Resource, validation.Required),
	)
}

func (c *Config) ValidateImage() error {
	return validation.ValidateStruct(&c.Image,
		validation.Field(&c.Image.Source, validation.In(SourceS3, SourceLocal)),
		validation.Field(&c.Image.Bucket, validation.When(c.Image.Source == SourceS3,
			validation.Required.Error("S3_BUCKET_NAME is required"))),
		validation.Field(&c.Image.LocalDir, validation.When(c.Image.Source == SourceLocal, validation.Required)),
		validation.Field(&c.Image.MaxWidth, validation.Min(0)),
		validation.Field(&c.Image.MaxHeight, validation.Min(0)),
		validation.Field(&c.Image.Quality, validation.Min(1), validation.Max(100)),
	)
}

func (c *Config) ValidateMonitor() error {
	l := &c.Liveness
	return validation.ValidateStruct(l,
		validation.Field(&l.DeviceName, validation.Required),
		validation.Field(&l.DeviceTopic, validation.Required),
		validation.Field(&l.RuleName, validation.When(l.Notify == NotifyAWS,
			validation.Required.Error("RULE_NAME is required"))),
		validation.Field(&l.AlertTopic, validation.When(l.Notify == NotifyAWS,
			validation.Required.Error("DEVICE_OFFLINE_TOPIC is required"))),
		validation.Field(&l.TableName, validation.When(l.Store == StoreDynamoDB,
			validation.Required.Error("IOT_TABLE_NAME is required"))),
		validation.Field(&l.Store, validation.In(StoreDynamoDB, StoreValkey, StoreSQL, StoreMemory)),
		validation.Field(&l.Notify, validation.In(NotifyAWS, NotifyValkey, NotifyLog)),
		validation.Field(&l.Threshold, validation.Required),
		validation.Field(&l.Interval, validation.Required),
	)
}

// ValidateREST checks the self-hosted server settings. The gate needs either a
// secret store id or a static token, and the admin endpoints need basic auth.
func (c *Config) ValidateREST() error {
	if err := validation.ValidateStruct(&c.App,
		validation.Field(&c.App.Port, validation.Required),
		validation.Field(&c.App.BasicAuth, validation.Required.Error("APP_BASIC_AUTH is required"),
			validation.Each(validation.By(basicAuthPair))),
	); err != nil {
		return err
	}
	if err := validation.Validate(c.Access.StaticToken,
		validation.When(c.Access.SecretName == "",
			validation.Required.Error("either API_TOKEN or API_TOKEN_NAME is required")),
	); err != nil {
		return err
	}
	if err := c.ValidateImage(); err != nil {
		return err
	}
	return c.ValidateMonitor()
}

func basicAuthPair(value interface{}) error {
	s, _ := value.(string)
	parts := strings.Split(s, ":")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return validation.NewError("validation_basic_auth", "must use the format <user>:<secret>")
	}
	return nil
}
