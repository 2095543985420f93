package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds all application configuration in a structured way.
type Config struct {
	App      AppConfig
	Access   AccessConfig
	Image    ImageConfig
	Liveness LivenessConfig
	Database DatabaseConfig
}

type AppConfig struct {
	Version   string
	Port      string
	Debug     bool
	LogLevel  string
	BasicAuth []string
	BasePath  string
}

// AccessConfig drives the token gate in front of the image endpoint.
type AccessConfig struct {
	// SecretName is the Secrets Manager id holding the expected token.
	SecretName string
	// StaticToken replaces the secret store in self-hosted mode.
	StaticToken string
	Header      string
	Resource    string
}

type ImageConfig struct {
	Source    string // s3 | local
	Bucket    string
	Prefix    string
	LocalDir  string
	MaxWidth  int
	MaxHeight int
	Quality   int
}

type LivenessConfig struct {
	DeviceName  string
	DeviceTopic string
	AlertTopic  string
	RuleName    string
	Threshold   time.Duration
	Interval    time.Duration
	Store       string // dynamodb | valkey | sql | memory
	Notify      string // aws | valkey | log
	TableName   string
	// IoTEndpoint overrides the IoT data plane endpoint for the account.
	IoTEndpoint string
}

type DatabaseConfig struct {
	Driver          string
	Host            string
	Port            int
	User            string
	Password        string
	Name            string // File path for SQLite, DB Name for Postgres
	ValkeyAddress   string
	ValkeyPassword  string
	ValkeyDB        int
	ValkeyKeyPrefix string
}

const (
	StoreDynamoDB = "dynamodb"
	StoreValkey   = "valkey"
	StoreSQL      = "sql"
	StoreMemory   = "memory"

	NotifyAWS    = "aws"
	NotifyValkey = "valkey"
	NotifyLog    = "log"

	SourceS3    = "s3"
	SourceLocal = "local"
)

// Global provides access to the loaded configuration for the cobra commands.
var Global *Config

// LoadConfig loads configuration from Environment Variables or defaults.
// Variable names for the AWS deployment match the ones the stack injects into
// each function.
func LoadConfig() (*Config, error) {
	var basicAuth []string
	if v := strings.TrimSpace(os.Getenv("APP_BASIC_AUTH")); v != "" {
		basicAuth = strings.Split(v, ",")
	}

	appCfg := AppConfig{
		Version:   "v1.0.0",
		Port:      getEnv("APP_PORT", "3000"),
		Debug:     getEnvBool("APP_DEBUG", false),
		LogLevel:  getEnv("LOG_LEVEL", "INFO"),
		BasicAuth: basicAuth,
		BasePath:  getEnv("APP_BASE_PATH", ""),
	}

	accessCfg := AccessConfig{
		SecretName:  getEnv("API_TOKEN_NAME", ""),
		StaticToken: getEnv("API_TOKEN", ""),
		Header:      strings.ToLower(getEnv("API_TOKEN_HEADER", "x-api-token")),
		Resource:    getEnv("API_RESOURCE", "image"),
	}

	imageCfg := ImageConfig{
		Source:    getEnv("IMAGE_SOURCE", SourceS3),
		Bucket:    getEnv("S3_BUCKET_NAME", ""),
		Prefix:    getEnv("IMAGE_PREFIX", "public"),
		LocalDir:  getEnv("IMAGE_LOCAL_DIR", "storages/images"),
		MaxWidth:  getEnvInt("IMAGE_MAX_WIDTH", 0),
		MaxHeight: getEnvInt("IMAGE_MAX_HEIGHT", 0),
		Quality:   getEnvInt("IMAGE_JPEG_QUALITY", 85),
	}

	livenessCfg := LivenessConfig{
		DeviceName:  getEnv("DEVICE_NAME", "esp32c3_photo_frame"),
		DeviceTopic: getEnv("DEVICE_TOPIC", "new_image_available"),
		AlertTopic:  getEnv("DEVICE_OFFLINE_TOPIC", ""),
		RuleName:    getEnv("RULE_NAME", "Publish_New_Image_Topic"),
		Threshold:   getEnvDuration("OFFLINE_THRESHOLD", 24*time.Hour),
		Interval:    getEnvDuration("MONITOR_INTERVAL", 15*time.Minute),
		Store:       getEnv("CONNECTIVITY_STORE", StoreDynamoDB),
		Notify:      getEnv("NOTIFY_DRIVER", NotifyAWS),
		TableName:   getEnv("IOT_TABLE_NAME", ""),
		IoTEndpoint: getEnv("IOT_DATA_ENDPOINT", ""),
	}

	dbCfg := DatabaseConfig{
		Driver:          getEnv("DB_DRIVER", "sqlite"),
		Host:            getEnv("DB_HOST", "localhost"),
		Port:            getEnvInt("DB_PORT", 5432),
		User:            getEnv("DB_USER", "postgres"),
		Password:        getEnv("DB_PASSWORD", ""),
		Name:            getEnv("DB_NAME", "storages/photoframe.db"),
		ValkeyAddress:   getEnv("VALKEY_ADDRESS", "localhost:6379"),
		ValkeyPassword:  getEnv("VALKEY_PASSWORD", ""),
		ValkeyDB:        getEnvInt("VALKEY_DB", 0),
		ValkeyKeyPrefix: getEnv("VALKEY_KEY_PREFIX", "photoframe:"),
	}

	cfg := &Config{
		App:      appCfg,
		Access:   accessCfg,
		Image:    imageCfg,
		Liveness: livenessCfg,
		Database: dbCfg,
	}

	if cfg.Liveness.Threshold <= 0 {
		return nil, fmt.Errorf("OFFLINE_THRESHOLD must be positive, got %s", cfg.Liveness.Threshold)
	}

	Global = cfg
	return cfg, nil
}
