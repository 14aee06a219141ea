package accessory

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"

	"github.com/i474232898/http-temperature-accessory/internal/host"
)

// DefaultRefreshInterval is used when no refresh interval is configured.
const DefaultRefreshInterval = 30 * time.Second

// Metrics records refresh outcomes. Implementations must be safe for
// concurrent use.
type Metrics interface {
	RefreshSucceeded()
	RefreshFailed()
}

// Poller owns the repeating refresh timer and the cached last reading.
// The store always holds the last successfully parsed reading; a failed
// fetch never clears or corrupts it.
type Poller struct {
	scheduler    *gocron.Scheduler
	fetcher      Fetcher
	store        Store
	notify       host.Host
	metrics      Metrics
	log          *zap.SugaredLogger
	interval     time.Duration
	pushHumidity bool
}

// NewPoller creates a Poller. notify and metrics may be nil when no host
// or instrumentation is wired. A non-positive interval falls back to
// DefaultRefreshInterval.
func NewPoller(fetcher Fetcher, store Store, notify host.Host, metrics Metrics, interval time.Duration, pushHumidity bool, log *zap.SugaredLogger) *Poller {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	return &Poller{
		scheduler:    gocron.NewScheduler(time.UTC),
		fetcher:      fetcher,
		store:        store,
		notify:       notify,
		metrics:      metrics,
		log:          log,
		interval:     interval,
		pushHumidity: pushHumidity,
	}
}

// Interval returns the effective polling period.
func (p *Poller) Interval() time.Duration {
	return p.interval
}

// Start performs an immediate warm-up refresh so the cache is populated
// before the first tick elapses, then arms the repeating timer. Ticks are
// serialized: a tick is skipped while the previous fetch is still in
// flight.
func (p *Poller) Start() error {
	p.Refresh(context.Background())

	_, err := p.scheduler.Every(p.interval).SingletonMode().Do(func() {
		p.Refresh(context.Background())
	})
	if err != nil {
		return err
	}

	p.scheduler.StartAsync()
	return nil
}

// Stop cancels the repeating timer. The cached reading stays readable.
func (p *Poller) Stop() {
	if p.scheduler != nil {
		p.scheduler.Stop()
	}
}

// Refresh runs a single fetch-and-store cycle. Fetch errors are logged
// and swallowed; they never propagate to the host and never crash the
// process.
func (p *Poller) Refresh(ctx context.Context) {
	reading, err := p.fetcher.Fetch(ctx)
	if err != nil {
		p.log.Errorf("poller: refresh failed, keeping last reading: %v", err)
		if p.metrics != nil {
			p.metrics.RefreshFailed()
		}
		return
	}

	p.store.SaveReading(reading)
	if p.metrics != nil {
		p.metrics.RefreshSucceeded()
	}

	if p.notify == nil {
		return
	}
	if err := p.notify.PushTemperature(ctx, reading.Temperature); err != nil {
		p.log.Errorf("poller: temperature push failed: %v", err)
	}
	if p.pushHumidity {
		if err := p.notify.PushHumidity(ctx, reading.Humidity); err != nil {
			p.log.Errorf("poller: humidity push failed: %v", err)
		}
	}
}

// CurrentTemperature returns the temperature of the cached reading, or 0
// if no fetch has ever succeeded.
func (p *Poller) CurrentTemperature() float64 {
	reading, err := p.store.Latest()
	if err != nil {
		return 0
	}
	return reading.Temperature
}

// CurrentHumidity returns the humidity of the cached reading, or 0 if no
// fetch has ever succeeded.
func (p *Poller) CurrentHumidity() float64 {
	reading, err := p.store.Latest()
	if err != nil {
		return 0
	}
	return reading.Humidity
}

// CurrentReading returns the whole cached reading; the zero value before
// the first successful fetch.
func (p *Poller) CurrentReading() Reading {
	reading, err := p.store.Latest()
	if err != nil {
		return Reading{}
	}
	return reading
}
