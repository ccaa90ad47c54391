package telemetry

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"network_switcher/internal/app/port"
	"network_switcher/internal/domain/entity"
	"network_switcher/internal/pkg/apperrors"
)

// PrometheusEmitter records analytics events as labelled counters.
type PrometheusEmitter struct {
	events *prometheus.CounterVec
	logger port.Logger
}

var _ port.EventEmitter = (*PrometheusEmitter)(nil)

// NewPrometheusEmitter creates an emitter over a counter labelled category, action, label.
func NewPrometheusEmitter(events *prometheus.CounterVec, l port.Logger) *PrometheusEmitter {
	return &PrometheusEmitter{events: events, logger: l}
}

// Emit increments the counter for event.
func (e *PrometheusEmitter) Emit(_ context.Context, event entity.TelemetryEvent) error {
	if event.Category == "" || event.Action == "" {
		return fmt.Errorf("%w: event needs a category and an action", apperrors.ErrTelemetryEmit)
	}
	c, err := e.events.GetMetricWithLabelValues(event.Category, event.Action, event.Label)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrTelemetryEmit, err)
	}
	c.Inc()
	e.logger.Debug("Telemetry event", "category", event.Category, "action", event.Action, "label", event.Label)
	return nil
}

// NopEmitter drops every event.
type NopEmitter struct{}

var _ port.EventEmitter = NopEmitter{}

func (NopEmitter) Emit(context.Context, entity.TelemetryEvent) error { return nil }
