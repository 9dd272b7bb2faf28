package mem

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes LimitAllocator accounting to Prometheus.
type Metrics struct {
	inUse   prometheus.Gauge
	allocs  prometheus.Counter
	frees   prometheus.Counter
	refused prometheus.Counter
}

// NewMetrics registers allocator metrics with reg. A nil reg creates
// unregistered collectors. Collectors already registered with reg by an
// earlier call are reused, so allocators built against the same registry
// report into the same series.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		inUse: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "rawvec",
			Subsystem: "mem",
			Name:      "bytes_in_use",
			Help:      "Bytes of raw buffer storage currently admitted.",
		}),
		allocs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "rawvec",
			Subsystem: "mem",
			Name:      "allocations_total",
			Help:      "Total number of admitted raw buffer acquisitions.",
		}),
		frees: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "rawvec",
			Subsystem: "mem",
			Name:      "releases_total",
			Help:      "Total number of raw buffer releases.",
		}),
		refused: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "rawvec",
			Subsystem: "mem",
			Name:      "refused_allocations_total",
			Help:      "Total number of raw buffer acquisitions refused by the limit.",
		}),
	}
	if reg == nil {
		return m, nil
	}

	var err error
	if m.inUse, err = register(reg, m.inUse); err != nil {
		return nil, err
	}
	for _, c := range []*prometheus.Counter{&m.allocs, &m.frees, &m.refused} {
		if *c, err = register(reg, *c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// register adds c to reg, or returns the collector reg already holds under
// the same descriptor.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	err := reg.Register(c)
	if err == nil {
		return c, nil
	}
	if existing, ok := err.(prometheus.AlreadyRegisteredError); ok {
		if prev, ok := existing.ExistingCollector.(C); ok {
			return prev, nil
		}
	}
	return c, err
}
