package accessory

import "go.uber.org/zap"

// Accessory describes this sensor to the host: identity metadata, the
// capability list, and the identify hook triggered during pairing flows.
type Accessory struct {
	info            Info
	humidityEnabled bool
	log             *zap.SugaredLogger
}

func NewAccessory(info Info, humidityEnabled bool, log *zap.SugaredLogger) *Accessory {
	return &Accessory{
		info:            info,
		humidityEnabled: humidityEnabled,
		log:             log,
	}
}

func (a *Accessory) Info() Info {
	return a.info
}

func (a *Accessory) HumidityEnabled() bool {
	return a.humidityEnabled
}

// Services lists the capabilities this accessory exposes. The humidity
// service is never registered when humidity reporting is disabled,
// regardless of what the endpoint returns.
func (a *Accessory) Services() []ServiceType {
	services := []ServiceType{
		ServiceAccessoryInformation,
		ServiceTemperatureSensor,
	}
	if a.humidityEnabled {
		services = append(services, ServiceHumiditySensor)
	}
	return services
}

// Identify is invoked by the host during pairing. It has no effect beyond
// a log entry.
func (a *Accessory) Identify() {
	a.log.Infof("accessory: identify requested for %q", a.info.Name)
}
