package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/spf13/viper"
)

const (
	// DatabaseName and CollectionName identify the listings collection.
	DatabaseName   = "sample_airbnb"
	CollectionName = "listingsAndReviews"
)

// Config holds all configuration for the service.
type Config struct {
	ServiceName     string        `mapstructure:"SERVICE_NAME"`
	HTTPPort        string        `mapstructure:"HTTP_PORT"`
	StaticDir       string        `mapstructure:"STATIC_DIR"`
	ShutdownTimeout time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`

	Mongo MongoConfig `mapstructure:",squash"`

	NATSURL                string `mapstructure:"NATS_URL"`
	PrometheusMetricsPort  string `mapstructure:"PROMETHEUS_METRICS_PORT"`
	OTExporterOTLPEndpoint string `mapstructure:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

// MongoConfig describes how to reach the document store.
type MongoConfig struct {
	URI            string        `mapstructure:"MONGO_URI"`
	User           string        `mapstructure:"DB_USER"`
	Password       string        `mapstructure:"DB_PASS"`
	Host           string        `mapstructure:"MONGO_HOST"`
	ConnectTimeout time.Duration `mapstructure:"MONGO_CONNECT_TIMEOUT"`
	MaxPoolSize    uint64        `mapstructure:"MONGO_MAX_POOL_SIZE"`
}

var defaults = map[string]any{
	"SERVICE_NAME":                "listing-rest",
	"HTTP_PORT":                   "3000",
	"STATIC_DIR":                  "public",
	"SHUTDOWN_TIMEOUT":            "10s",
	"MONGO_URI":                   "",
	"DB_USER":                     "",
	"DB_PASS":                     "",
	"MONGO_HOST":                  "cluster-mock-market.mpksa.mongodb.net",
	"MONGO_CONNECT_TIMEOUT":       "10s",
	"MONGO_MAX_POOL_SIZE":         100,
	"NATS_URL":                    "",
	"PROMETHEUS_METRICS_PORT":     "9100",
	"OTEL_EXPORTER_OTLP_ENDPOINT": "",
}

// LoadConfig reads configuration from the environment. A .env file, if any,
// is expected to have been loaded into the environment by the caller.
func LoadConfig() (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings the service cannot start without.
func (c *Config) Validate() error {
	if c.HTTPPort == "" {
		return errors.New("HTTP_PORT is not set")
	}
	if c.Mongo.URI == "" && (c.Mongo.User == "" || c.Mongo.Password == "") {
		return errors.New("either MONGO_URI or both DB_USER and DB_PASS must be set")
	}
	if c.Mongo.URI == "" && c.Mongo.Host == "" {
		return errors.New("MONGO_HOST is not set")
	}
	return nil
}

// ConnectionURI returns MONGO_URI when given, otherwise an SRV connection
// string built from the credentials and host.
func (m MongoConfig) ConnectionURI() string {
	if m.URI != "" {
		return m.URI
	}
	return fmt.Sprintf("mongodb+srv://%s@%s/%s?retryWrites=true&w=majority",
		url.UserPassword(m.User, m.Password).String(), m.Host, DatabaseName)
}
