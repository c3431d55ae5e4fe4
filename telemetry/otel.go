package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MeterName is the instrumentation scope used when no meter is supplied.
const MeterName = "github.com/hemal-shah/poolkit"

// ObservePools registers observable instruments reporting every pool in src, labelled with a
// "pool" attribute. A nil meter falls back to the global meter provider. Unregister the returned
// registration to stop reporting.
func ObservePools(meter metric.Meter, src Source) (metric.Registration, error) {
	if meter == nil {
		meter = otel.Meter(MeterName)
	}

	idle, err := meter.Int64ObservableGauge("poolkit_pool_idle",
		metric.WithDescription("Idle objects ready for acquire"),
		metric.WithUnit("{object}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create idle gauge: %w", err)
	}
	capacity, err := meter.Int64ObservableGauge("poolkit_pool_capacity",
		metric.WithDescription("Maximum idle objects the pool retains"),
		metric.WithUnit("{object}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create capacity gauge: %w", err)
	}

	totals := make([]metric.Int64ObservableCounter, len(counters))
	instruments := []metric.Observable{idle, capacity}
	for i, c := range counters {
		totals[i], err = meter.Int64ObservableCounter("poolkit_pool_"+c.name,
			metric.WithDescription(c.help),
			metric.WithUnit("{object}"),
		)
		if err != nil {
			return nil, fmt.Errorf("create %s counter: %w", c.name, err)
		}
		instruments = append(instruments, totals[i])
	}

	return meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		for _, s := range src.Snapshot() {
			attrs := metric.WithAttributes(attribute.String("pool", s.Name))
			o.ObserveInt64(idle, int64(s.Idle), attrs)
			o.ObserveInt64(capacity, int64(s.Capacity), attrs)
			for i, c := range counters {
				o.ObserveInt64(totals[i], int64(c.value(s)), attrs)
			}
		}
		return nil
	}, instruments...)
}
