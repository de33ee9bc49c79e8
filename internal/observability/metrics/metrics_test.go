package metrics

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric/noop"
)

func TestFilterAttributesDropsIdentifiers(t *testing.T) {
	attrs := FilterAttributes(
		attribute.String("account_id", "123"),
		attribute.String("subscription_id", "456"),
		attribute.String("outcome", LookupCacheHit),
		attribute.String("tier", "GOLD"),
	)
	if len(attrs) != 2 {
		t.Fatalf("expected 2 attributes, got %d", len(attrs))
	}
	for _, attr := range attrs {
		if attr.Key == "account_id" || attr.Key == "subscription_id" {
			t.Fatalf("identifier label %s leaked", attr.Key)
		}
	}
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.RecordLookup(context.Background(), LookupMiss)
	m.RecordEnrichment(context.Background(), EnrichmentAttached, "GOLD")
}

func TestNewWithNoopProvider(t *testing.T) {
	m, err := New(Config{}, noop.NewMeterProvider())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m.RecordLookup(context.Background(), LookupStoreHit)
}

func TestHTTPMetricsObserve(t *testing.T) {
	registry := prometheus.NewRegistry()
	m, err := newHTTPMetrics(registry, Config{ServiceName: "test", Environment: "test"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m.Observe(http.MethodGet, "/api/accounts/:id", http.StatusOK, 5*time.Millisecond)
	m.Observe(http.MethodGet, "/api/accounts/:id", http.StatusOK, 5*time.Millisecond)
	m.Observe(http.MethodGet, "", http.StatusNotFound, time.Millisecond)

	if got := testutil.ToFloat64(m.requests.WithLabelValues(http.MethodGet, "/api/accounts/:id", "200")); got != 2 {
		t.Fatalf("expected 2 requests, got %v", got)
	}
	if got := testutil.ToFloat64(m.requests.WithLabelValues(http.MethodGet, "unknown", "404")); got != 1 {
		t.Fatalf("expected 1 unknown-route request, got %v", got)
	}

	if _, err := newHTTPMetrics(registry, Config{ServiceName: "test", Environment: "test"}); err == nil {
		t.Fatalf("expected duplicate registration to fail")
	}
}
