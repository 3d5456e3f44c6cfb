package engine

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/lixenwraith/vi-ballistics/engine"

// meter returns the global OTel meter, a no-op until a provider is installed
func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

type sessionMetrics struct {
	ticks    metric.Int64Counter
	launches metric.Int64Counter
	rejected metric.Int64Counter

	altitude     metric.Float64ObservableGauge
	speed        metric.Float64ObservableGauge
	registration metric.Registration
}

func newSessionMetrics(m metric.Meter, s *Session) (*sessionMetrics, error) {
	sm := &sessionMetrics{}

	var err error
	sm.ticks, err = m.Int64Counter(
		"ballistics.session.ticks",
		metric.WithDescription("Integrator steps applied"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating ticks counter: %w", err)
	}

	sm.launches, err = m.Int64Counter(
		"ballistics.session.launches",
		metric.WithDescription("Shots launched"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating launches counter: %w", err)
	}

	sm.rejected, err = m.Int64Counter(
		"ballistics.session.rejected",
		metric.WithDescription("Calls rejected at the parameter boundary"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating rejected counter: %w", err)
	}

	sm.altitude, err = m.Float64ObservableGauge(
		"ballistics.projectile.altitude",
		metric.WithDescription("Projectile height above the launch point"),
		metric.WithUnit("m"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating altitude gauge: %w", err)
	}

	sm.speed, err = m.Float64ObservableGauge(
		"ballistics.projectile.speed",
		metric.WithDescription("Projectile speed"),
		metric.WithUnit("m/s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating speed gauge: %w", err)
	}

	sm.registration, err = m.RegisterCallback(
		func(ctx context.Context, o metric.Observer) error {
			snap := s.Snapshot()
			o.ObserveFloat64(sm.altitude, snap.Position.Y)
			o.ObserveFloat64(sm.speed, snap.Speed())
			return nil
		},
		sm.altitude, sm.speed,
	)
	if err != nil {
		return nil, fmt.Errorf("registering projectile callback: %w", err)
	}

	return sm, nil
}

func (sm *sessionMetrics) reject(field string) {
	sm.rejected.Add(context.Background(), 1, metric.WithAttributes(attribute.String("field", field)))
}

func (sm *sessionMetrics) close() error {
	if sm.registration == nil {
		return nil
	}
	return sm.registration.Unregister()
}
