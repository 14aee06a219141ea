package config

import (
	"testing"
	"time"

	"go.uber.org/zap"
)

func testLogger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SENSOR_URL", "http://192.168.1.10/values")

	cfg, err := Load(testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.RefreshInterval != 30*time.Second {
		t.Fatalf("expected default refresh interval 30s, got %s", cfg.RefreshInterval)
	}
	if cfg.DisableHumidity {
		t.Fatalf("expected humidity enabled by default")
	}
	if cfg.Name != "HTTP Temperature Sensor" {
		t.Fatalf("unexpected default name: %q", cfg.Name)
	}
	if cfg.Port != "8080" {
		t.Fatalf("unexpected default port: %q", cfg.Port)
	}
	if cfg.HTTPTimeout != 0 {
		t.Fatalf("expected no default HTTP timeout, got %s", cfg.HTTPTimeout)
	}
}

func TestLoadRefreshIntervalOverride(t *testing.T) {
	t.Setenv("SENSOR_URL", "http://192.168.1.10/values")
	t.Setenv("REFRESH_INTERVAL_SECONDS", "5")

	cfg, err := Load(testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.RefreshInterval != 5000*time.Millisecond {
		t.Fatalf("expected refresh interval 5000ms, got %s", cfg.RefreshInterval)
	}
}

func TestLoadMissingSensorURL(t *testing.T) {
	t.Setenv("SENSOR_URL", "")

	if _, err := Load(testLogger()); err == nil {
		t.Fatalf("expected error when SENSOR_URL is missing")
	}
}

func TestLoadInvalidSensorURL(t *testing.T) {
	t.Setenv("SENSOR_URL", "not a url")

	if _, err := Load(testLogger()); err == nil {
		t.Fatalf("expected error for invalid SENSOR_URL")
	}
}

func TestLoadDisableHumidity(t *testing.T) {
	t.Setenv("SENSOR_URL", "http://192.168.1.10/values")
	t.Setenv("DISABLE_HUMIDITY", "true")

	cfg, err := Load(testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !cfg.DisableHumidity {
		t.Fatalf("expected humidity to be disabled")
	}
}

func TestAccessoryInfo(t *testing.T) {
	t.Setenv("SENSOR_URL", "http://192.168.1.10/values")
	t.Setenv("ACCESSORY_NAME", "Office Sensor")
	t.Setenv("ACCESSORY_MANUFACTURER", "acme")
	t.Setenv("ACCESSORY_MODEL", "ts-100")
	t.Setenv("ACCESSORY_SERIAL", "A1B2C3")

	cfg, err := Load(testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	info := cfg.AccessoryInfo()
	if info.Name != "Office Sensor" || info.Manufacturer != "acme" || info.Model != "ts-100" || info.SerialNumber != "A1B2C3" {
		t.Fatalf("unexpected accessory info: %+v", info)
	}
}
