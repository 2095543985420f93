package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// GetAllSettings returns the non-secret settings currently loaded in memory.
func GetAllSettings() map[string]any {
	if Global == nil {
		return map[string]any{}
	}
	return map[string]any{
		"app_version":        Global.App.Version,
		"app_debug":          Global.App.Debug,
		"image_source":       Global.Image.Source,
		"image_prefix":       Global.Image.Prefix,
		"image_max_width":    Global.Image.MaxWidth,
		"image_max_height":   Global.Image.MaxHeight,
		"device_name":        Global.Liveness.DeviceName,
		"device_topic":       Global.Liveness.DeviceTopic,
		"rule_name":          Global.Liveness.RuleName,
		"offline_threshold":  Global.Liveness.Threshold.String(),
		"monitor_interval":   Global.Liveness.Interval.String(),
		"connectivity_store": Global.Liveness.Store,
		"notify_driver":      Global.Liveness.Notify,
	}
}

// Helpers
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		vLower := strings.ToLower(v)
		return vLower == "1" || vLower == "true" || vLower == "yes" || vLower == "on"
	}
	return fallback
}

// getEnvDuration accepts Go duration strings ("24h") or a bare number of seconds.
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if n, err := strconv.ParseInt(v, 10, 64); err == nil {
		return time.Duration(n) * time.Second
	}
	return fallback
}
