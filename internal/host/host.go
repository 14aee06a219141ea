package host

import (
	"context"

	"go.uber.org/zap"
)

// Host receives push-style updates after each successful refresh.
type Host interface {
	Name() string
	PushTemperature(ctx context.Context, value float64) error
	PushHumidity(ctx context.Context, value float64) error
}

// MultiHost fans out pushes to every configured host. Push errors are
// logged and swallowed so a misbehaving host cannot stall the poller.
type MultiHost struct {
	hosts []Host
	log   *zap.SugaredLogger
}

func NewMultiHost(log *zap.SugaredLogger, hosts ...Host) *MultiHost {
	return &MultiHost{
		hosts: hosts,
		log:   log,
	}
}

func (m *MultiHost) Name() string {
	return "multi"
}

func (m *MultiHost) PushTemperature(ctx context.Context, value float64) error {
	for _, h := range m.hosts {
		if err := h.PushTemperature(ctx, value); err != nil {
			m.log.Errorf("host: %s temperature push failed: %v", h.Name(), err)
		}
	}
	return nil
}

func (m *MultiHost) PushHumidity(ctx context.Context, value float64) error {
	for _, h := range m.hosts {
		if err := h.PushHumidity(ctx, value); err != nil {
			m.log.Errorf("host: %s humidity push failed: %v", h.Name(), err)
		}
	}
	return nil
}
