package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "x-api-token", cfg.Access.Header)
	assert.Equal(t, "image", cfg.Access.Resource)
	assert.Equal(t, "public", cfg.Image.Prefix)
	assert.Equal(t, "esp32c3_photo_frame", cfg.Liveness.DeviceName)
	assert.Equal(t, "new_image_available", cfg.Liveness.DeviceTopic)
	assert.Equal(t, 24*time.Hour, cfg.Liveness.Threshold)
	assert.Equal(t, 15*time.Minute, cfg.Liveness.Interval)
	assert.Same(t, cfg, Global)
}

func TestLoadConfig_DeploymentVariables(t *testing.T) {
	t.Setenv("API_TOKEN_NAME", "api-access-token")
	t.Setenv("S3_BUCKET_NAME", "frame-bucket")
	t.Setenv("IOT_TABLE_NAME", "IOTConnectionTable")
	t.Setenv("DEVICE_OFFLINE_TOPIC", "arn:aws:sns:us-east-1:123456789012:device-offline")
	t.Setenv("RULE_NAME", "Publish_New_Image_Topic")
	t.Setenv("OFFLINE_THRESHOLD", "3600")
	t.Setenv("API_TOKEN_HEADER", "X-Api-Token")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "api-access-token", cfg.Access.SecretName)
	assert.Equal(t, "x-api-token", cfg.Access.Header)
	assert.Equal(t, "frame-bucket", cfg.Image.Bucket)
	assert.Equal(t, "IOTConnectionTable", cfg.Liveness.TableName)
	assert.Equal(t, time.Hour, cfg.Liveness.Threshold)

	assert.NoError(t, cfg.ValidateAuthorizer())
	assert.NoError(t, cfg.ValidateImage())
	assert.NoError(t, cfg.ValidateMonitor())
}

func TestLoadConfig_RejectsNonPositiveThreshold(t *testing.T) {
	t.Setenv("OFFLINE_THRESHOLD", "-5s")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestValidate_MissingDeploymentVariables(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Error(t, cfg.ValidateAuthorizer())
	assert.Error(t, cfg.ValidateImage())
	assert.Error(t, cfg.ValidateMonitor())
}

func TestValidateREST(t *testing.T) {
	t.Setenv("APP_BASIC_AUTH", "admin:secret")
	t.Setenv("API_TOKEN", "device-token")
	t.Setenv("IMAGE_SOURCE", SourceLocal)
	t.Setenv("CONNECTIVITY_STORE", StoreMemory)
	t.Setenv("NOTIFY_DRIVER", NotifyLog)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.NoError(t, cfg.ValidateREST())

	cfg.App.BasicAuth = []string{"admin"}
	assert.Error(t, cfg.ValidateREST())

	cfg.App.BasicAuth = []string{"admin:secret"}
	cfg.Access.StaticToken = ""
	assert.Error(t, cfg.ValidateREST())
}

func TestGetAllSettings_OmitsSecrets(t *testing.T) {
	t.Setenv("API_TOKEN", "device-token")
	_, err := LoadConfig()
	require.NoError(t, err)

	settings := GetAllSettings()
	for _, v := range settings {
		assert.NotEqual(t, "device-token", v)
	}
	assert.Equal(t, "24h0m0s", settings["offline_threshold"])
}
