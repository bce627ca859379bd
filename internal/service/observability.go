package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// UseCaseEvent captures lightweight execution telemetry for a service use case.
type UseCaseEvent struct {
	Name      string
	Duration  time.Duration
	Success   bool
	Err       error
	Fields    map[string]any
	StartedAt time.Time
}

// UseCaseObserver receives use-case execution events.
type UseCaseObserver interface {
	ObserveUseCase(ctx context.Context, event UseCaseEvent)
}

// NoopUseCaseObserver ignores all events.
type NoopUseCaseObserver struct{}

func (NoopUseCaseObserver) ObserveUseCase(context.Context, UseCaseEvent) {}

type logUseCaseObserver struct {
	logger *slog.Logger
}

// NewLogUseCaseObserver writes use-case events to logger. Failures are
// logged at error level, everything else at debug.
func NewLogUseCaseObserver(logger *slog.Logger) UseCaseObserver {
	if logger == nil {
		return NoopUseCaseObserver{}
	}
	return &logUseCaseObserver{logger: logger}
}

func (o *logUseCaseObserver) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	attrs := make([]any, 0, 6+len(event.Fields)*2)
	attrs = append(attrs,
		"use_case", event.Name,
		"duration_ms", event.Duration.Milliseconds(),
		"success", event.Success,
	)
	for k, v := range event.Fields {
		attrs = append(attrs, k, v)
	}
	if event.Err != nil {
		attrs = append(attrs, "error", event.Err.Error())
		o.logger.ErrorContext(ctx, "service_use_case", attrs...)
		return
	}
	o.logger.DebugContext(ctx, "service_use_case", attrs...)
}

// MetricsObserver records use-case latency and failures.
type MetricsObserver struct {
	duration *prometheus.HistogramVec
	failures *prometheus.CounterVec
}

// NewMetricsObserver creates an observer recording use-case latency and
// failures. Register it before use.
func NewMetricsObserver() *MetricsObserver {
	return &MetricsObserver{
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "lumen",
			Name:      "use_case_duration_seconds",
			Help:      "Duration of service use cases.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
		}, []string{"use_case"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lumen",
			Name:      "use_case_failures_total",
			Help:      "Service use cases that returned an error.",
		}, []string{"use_case"}),
	}
}

func (o *MetricsObserver) Register(reg prometheus.Registerer) error {
	if err := reg.Register(o.duration); err != nil {
		return err
	}
	return reg.Register(o.failures)
}

func (o *MetricsObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	o.duration.WithLabelValues(event.Name).Observe(event.Duration.Seconds())
	if !event.Success {
		o.failures.WithLabelValues(event.Name).Inc()
	}
}

// MultiObserver fans every event out to each non-nil observer in order.
type MultiObserver []UseCaseObserver

func (m MultiObserver) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	for _, obs := range m {
		if obs != nil {
			obs.ObserveUseCase(ctx, event)
		}
	}
}

func useCaseObserverOrNoop(observers []UseCaseObserver) UseCaseObserver {
	var live MultiObserver
	for _, obs := range observers {
		if obs != nil {
			live = append(live, obs)
		}
	}
	switch len(live) {
	case 0:
		return NoopUseCaseObserver{}
	case 1:
		return live[0]
	}
	return live
}

// observe is deferred by use cases with a pointer to their named error.
func observe(ctx context.Context, obs UseCaseObserver, name string, startedAt time.Time, fields map[string]any, errp *error) {
	var err error
	if errp != nil {
		err = *errp
	}
	obs.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
	})
}
