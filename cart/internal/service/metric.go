package service

import (
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/Alturino/tgcart/internal/otel"
)

type cartMetrics struct {
	toggles   metric.Int64Counter
	submits   metric.Int64Counter
	fallbacks metric.Int64Counter
}

func newCartMetrics() cartMetrics {
	return cartMetrics{
		toggles:   counter("tgcart.cart.toggles", "product toggles, by action"),
		submits:   counter("tgcart.cart.submits", "orders handed to the host, by outcome"),
		fallbacks: counter("tgcart.cart.load_fallbacks", "loads that found unusable persisted state"),
	}
}

func counter(name string, description string) metric.Int64Counter {
	c, err := otel.Meter.Int64Counter(name, metric.WithDescription(description))
	if err != nil {
		return noop.Int64Counter{}
	}
	return c
}
