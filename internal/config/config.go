// Package config centralises configuration parsing for the roster service.
package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config captures runtime configuration values for the roster service.
type Config struct {
	HTTPAddress        string
	CatalogFile        string   // Empty selects the built-in catalog.
	KafkaBrokers       []string // Empty disables roster event publishing.
	RosterTopic        string
	OutboxPollInterval time.Duration
	OutboxBatchSize    int
	OutboxCapacity     int
	LogLevel           string
	LogFormat          string
	CORSAllowedOrigin  string
	ShutdownTimeout    time.Duration
}

var defaults = map[string]any{
	"HTTP_ADDRESS":         ":8080",
	"CATALOG_FILE":         "",
	"KAFKA_BROKERS":        "",
	"ROSTER_TOPIC":         "roster_events",
	"OUTBOX_POLL_INTERVAL": "1s",
	"OUTBOX_BATCH_SIZE":    25,
	"OUTBOX_CAPACITY":      1024,
	"LOG_LEVEL":            "info",
	"LOG_FORMAT":           "json",
	"CORS_ALLOWED_ORIGIN":  "*",
	"SHUTDOWN_TIMEOUT":     "15s",
}

// Load reads an optional .env file and the environment into Config, applying defaults for local dev.
func Load() Config {
	_ = godotenv.Load()
	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()
	return v
}

// FromViper builds Config from an already populated viper instance.
func FromViper(v *viper.Viper) Config {
	return Config{
		HTTPAddress:        v.GetString("HTTP_ADDRESS"),
		CatalogFile:        strings.TrimSpace(v.GetString("CATALOG_FILE")),
		KafkaBrokers:       splitAndTrim(v.GetString("KAFKA_BROKERS")),
		RosterTopic:        v.GetString("ROSTER_TOPIC"),
		OutboxPollInterval: positiveDuration(v, "OUTBOX_POLL_INTERVAL"),
		OutboxBatchSize:    positiveInt(v, "OUTBOX_BATCH_SIZE"),
		OutboxCapacity:     positiveInt(v, "OUTBOX_CAPACITY"),
		LogLevel:           strings.ToLower(v.GetString("LOG_LEVEL")),
		LogFormat:          strings.ToLower(v.GetString("LOG_FORMAT")),
		CORSAllowedOrigin:  v.GetString("CORS_ALLOWED_ORIGIN"),
		ShutdownTimeout:    positiveDuration(v, "SHUTDOWN_TIMEOUT"),
	}
}

func splitAndTrim(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// positiveDuration falls back to the default when the value is unparsable or not positive.
func positiveDuration(v *viper.Viper, key string) time.Duration {
	if d := v.GetDuration(key); d > 0 {
		return d
	}
	d, _ := time.ParseDuration(defaults[key].(string))
	return d
}

func positiveInt(v *viper.Viper, key string) int {
	if n := v.GetInt(key); n > 0 {
		return n
	}
	return defaults[key].(int)
}
