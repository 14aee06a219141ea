package accessory

import "time"

// Reading is the value pair retrieved from the remote sensor endpoint.
// The zero value is what hosts see before the first successful fetch.
type Reading struct {
	Temperature float64   `json:"temperature"`
	Humidity    float64   `json:"humidity"`
	ObservedAt  time.Time `json:"observedAt,omitempty"`
}

// Info holds the accessory metadata reported to hosts.
type Info struct {
	Name         string `json:"name"`
	Manufacturer string `json:"manufacturer"`
	Model        string `json:"model"`
	SerialNumber string `json:"serialNumber"`
}

// ServiceType identifies a capability this accessory exposes to a host.
type ServiceType string

const (
	ServiceAccessoryInformation ServiceType = "accessory-information"
	ServiceTemperatureSensor    ServiceType = "temperature-sensor"
	ServiceHumiditySensor       ServiceType = "humidity-sensor"
)

// Store is the contract the in-memory reading store must satisfy.
type Store interface {
	SaveReading(r Reading)
	Latest() (Reading, error)
	Range(from, to time.Time) ([]Reading, error)
}
