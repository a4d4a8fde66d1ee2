package metrics

import (
	"io"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"
)

// Set owns the collector's metric instruments and the registry they
// live in.
type Set struct {
	reg *prometheus.Registry

	collections   *prometheus.CounterVec
	reclaimed     prometheus.Counter
	promoted      prometheus.Counter
	tracked       *prometheus.GaugeVec
	uncollectable prometheus.Gauge
}

func NewSet() *Set {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Set{
		reg: reg,
		collections: f.NewCounterVec(prometheus.CounterOpts{
			Name: "gc_collections_total",
			Help: "Collection cycles completed, by generation.",
		}, []string{"generation"}),
		reclaimed: f.NewCounter(prometheus.CounterOpts{
			Name: "gc_objects_reclaimed_total",
			Help: "Entries reclaimed by collection cycles.",
		}),
		promoted: f.NewCounter(prometheus.CounterOpts{
			Name: "gc_objects_promoted_total",
			Help: "Entries promoted to an older generation.",
		}),
		tracked: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "gc_objects_tracked",
			Help: "Entries currently tracked, by generation.",
		}, []string{"generation"}),
		uncollectable: f.NewGauge(prometheus.GaugeOpts{
			Name: "gc_objects_uncollectable",
			Help: "Entries currently classified uncollectable.",
		}),
	}
}

// CycleObserved records the outcome of one collection cycle.
func (s *Set) CycleObserved(gen, reclaimed, promoted int) {
	s.collections.WithLabelValues(strconv.Itoa(gen)).Inc()
	s.reclaimed.Add(float64(reclaimed))
	s.promoted.Add(float64(promoted))
}

// TrackedSet publishes the current membership count of gen.
func (s *Set) TrackedSet(gen, n int) {
	s.tracked.WithLabelValues(strconv.Itoa(gen)).Set(float64(n))
}

// UncollectableSet publishes the current uncollectable count.
func (s *Set) UncollectableSet(n int) {
	s.uncollectable.Set(float64(n))
}

// WriteText renders the registry in the Prometheus text exposition
// format.
func (s *Set) WriteText(w io.Writer) error {
	mfs, err := s.reg.Gather()
	if err != nil {
		return err
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range mfs {
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}
	return nil
}
