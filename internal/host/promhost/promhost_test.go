package promhost

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestPushSetsGauges(t *testing.T) {
	h := New(prometheus.NewRegistry())

	if err := h.PushTemperature(context.Background(), 25.8); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := h.PushHumidity(context.Background(), 38); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := testutil.ToFloat64(h.temperature); got != 25.8 {
		t.Fatalf("expected temperature gauge 25.8, got %v", got)
	}
	if got := testutil.ToFloat64(h.humidity); got != 38 {
		t.Fatalf("expected humidity gauge 38, got %v", got)
	}
}

func TestRefreshCounters(t *testing.T) {
	h := New(prometheus.NewRegistry())

	h.RefreshSucceeded()
	h.RefreshSucceeded()
	h.RefreshFailed()

	if got := testutil.ToFloat64(h.refreshes); got != 2 {
		t.Fatalf("expected 2 successful refreshes, got %v", got)
	}
	if got := testutil.ToFloat64(h.failures); got != 1 {
		t.Fatalf("expected 1 failed refresh, got %v", got)
	}
	if got := testutil.ToFloat64(h.lastSuccess); got == 0 {
		t.Fatalf("expected last success timestamp to be set")
	}
}
