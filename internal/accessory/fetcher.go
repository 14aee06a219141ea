package accessory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

// Fetcher abstracts the remote sensor endpoint.
type Fetcher interface {
	Fetch(ctx context.Context) (Reading, error)
}

// HTTPFetcher fetches readings with a single GET against a configured URL.
// All failures (network error, non-2xx status, malformed JSON) surface as
// one undifferentiated error; callers are expected to keep the last good
// reading and try again on the next tick.
type HTTPFetcher struct {
	url     string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

// NewHTTPFetcher creates an HTTPFetcher. The URL is assumed well-formed;
// it is not validated here.
func NewHTTPFetcher(url string, client *http.Client) *HTTPFetcher {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "sensor-endpoint",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &HTTPFetcher{
		url:     url,
		client:  client,
		circuit: cb,
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context) (Reading, error) {
	result, err := f.circuit.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
		if err != nil {
			return nil, err
		}

		resp, err := f.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		}

		var payload struct {
			Temperature float64 `json:"temperature"`
			Humidity    float64 `json:"humidity"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return nil, err
		}

		// Values are passed through as-is; range validation is the host's
		// problem, not ours.
		return Reading{
			Temperature: payload.Temperature,
			Humidity:    payload.Humidity,
			ObservedAt:  time.Now().UTC(),
		}, nil
	})
	if err != nil {
		return Reading{}, fmt.Errorf("fetch %s: %w", f.url, err)
	}

	reading, ok := result.(Reading)
	if !ok {
		return Reading{}, fmt.Errorf("unexpected result type from circuit breaker")
	}
	return reading, nil
}
