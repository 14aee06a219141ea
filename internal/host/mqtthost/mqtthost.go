package mqtthost

import (
	"context"
	"fmt"
	"strconv"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"
)

const connectTimeout = 10 * time.Second

// Config defines runtime configuration for the MQTT host.
type Config struct {
	BrokerURL   string
	ClientID    string
	TopicPrefix string

	// AccessoryName is the display name used in the topic path.
	AccessoryName string
}

// Host publishes readings to an MQTT broker as retained messages, one
// topic per value: <prefix>/<name>/temperature and <prefix>/<name>/humidity.
type Host struct {
	client           mqtt.Client
	temperatureTopic string
	humidityTopic    string
}

func New(cfg Config, log *zap.SugaredLogger) (*Host, error) {
	if cfg.BrokerURL == "" {
		return nil, fmt.Errorf("mqtt broker url is required")
	}
	if cfg.ClientID == "" {
		cfg.ClientID = "http-temperature-accessory"
	}
	if cfg.TopicPrefix == "" {
		cfg.TopicPrefix = "homeautomation/sensor"
	}

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.BrokerURL).
		SetClientID(cfg.ClientID).
		SetConnectTimeout(connectTimeout).
		SetAutoReconnect(true)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("mqtt connect %s: %w", cfg.BrokerURL, token.Error())
	}
	log.Infof("mqtt: connected to %s", cfg.BrokerURL)

	base := cfg.TopicPrefix + "/" + cfg.AccessoryName
	return &Host{
		client:           client,
		temperatureTopic: base + "/temperature",
		humidityTopic:    base + "/humidity",
	}, nil
}

func (h *Host) Name() string {
	return "mqtt"
}

func (h *Host) PushTemperature(_ context.Context, value float64) error {
	return h.publish(h.temperatureTopic, value)
}

func (h *Host) PushHumidity(_ context.Context, value float64) error {
	return h.publish(h.humidityTopic, value)
}

func (h *Host) publish(topic string, value float64) error {
	payload := strconv.FormatFloat(value, 'f', -1, 64)
	token := h.client.Publish(topic, 0, true, payload)
	if token.Wait() && token.Error() != nil {
		return fmt.Errorf("publish %s: %w", topic, token.Error())
	}
	return nil
}

// Close disconnects from the broker, allowing in-flight publishes to
// finish.
func (h *Host) Close() {
	h.client.Disconnect(250)
}
