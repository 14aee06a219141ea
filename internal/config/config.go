package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/i474232898/http-temperature-accessory/internal/accessory"
)

var validate = validator.New()

type AppConfig struct {
	// SensorURL is the remote endpoint polled for readings.
	SensorURL string `validate:"required,url"`

	// Accessory identity reported to hosts.
	Name         string `validate:"required"`
	Manufacturer string
	Model        string
	SerialNumber string

	// DisableHumidity suppresses the humidity service and humidity pushes.
	// The fetcher still parses whatever humidity value the endpoint returns.
	DisableHumidity bool

	// RefreshInterval controls how often the endpoint is polled.
	RefreshInterval time.Duration `validate:"min=1s"`

	// HTTPTimeout bounds outbound requests; 0 disables the timeout.
	HTTPTimeout time.Duration

	// In-memory store retention.
	StoreMaxHistory int           // max number of readings (0 = unlimited)
	StoreMaxAge     time.Duration // max age of readings (0 = unlimited)

	Port        string
	MetricsPort string

	// MQTT host; left disabled when the broker URL is empty.
	MQTTBrokerURL   string
	MQTTTopicPrefix string
}

// AccessoryInfo builds the accessory metadata from the configured identity.
func (c *AppConfig) AccessoryInfo() accessory.Info {
	return accessory.Info{
		Name:         c.Name,
		Manufacturer: c.Manufacturer,
		Model:        c.Model,
		SerialNumber: c.SerialNumber,
	}
}

// Load reads configuration from environment with sensible defaults.
// Configuration is read once at startup and immutable afterwards.
func Load(log *zap.SugaredLogger) (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Infof("config: no .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{}

	cfg.SensorURL = os.Getenv("SENSOR_URL")
	cfg.Name = getenvDefault("ACCESSORY_NAME", "HTTP Temperature Sensor")
	cfg.Manufacturer = getenvDefault("ACCESSORY_MANUFACTURER", "generic")
	cfg.Model = getenvDefault("ACCESSORY_MODEL", "http-sensor")
	cfg.SerialNumber = getenvDefault("ACCESSORY_SERIAL", "000000")
	cfg.DisableHumidity = getenvBool("DISABLE_HUMIDITY", false)

	// Refresh interval: default 30 seconds.
	refreshSeconds := getenvInt("REFRESH_INTERVAL_SECONDS", 30)
	cfg.RefreshInterval = time.Duration(refreshSeconds) * time.Second

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "0")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	// Store retention.
	cfg.StoreMaxHistory = getenvInt("STORE_MAX_HISTORY", 2880) // roughly 24h at 30-second intervals

	maxAgeStr := getenvDefault("STORE_MAX_AGE", "24h")
	maxAge, err := time.ParseDuration(maxAgeStr)
	if err != nil {
		return nil, fmt.Errorf("invalid STORE_MAX_AGE: %w", err)
	}
	cfg.StoreMaxAge = maxAge

	cfg.Port = getenvDefault("PORT", "8080")
	cfg.MetricsPort = getenvDefault("METRICS_PORT", "9090")

	cfg.MQTTBrokerURL = os.Getenv("MQTT_BROKER_URL")
	cfg.MQTTTopicPrefix = getenvDefault("MQTT_TOPIC_PREFIX", "homeautomation/sensor")

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}
