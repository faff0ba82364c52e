// Package telemetry exports board events as Prometheus metrics. It backs the
// headless sim command; the interactive game runs without it.
package telemetry

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"

	"github.com/vovakirdan/fracture/internal/board"
)

// Metrics is a board.Observer that counts events on a private registry.
type Metrics struct {
	reg *prometheus.Registry

	spawns        *prometheus.CounterVec
	spawnFailures *prometheus.CounterVec
	lines         prometheus.Counter
	clears        prometheus.Histogram
	splits        prometheus.Counter
	chains        prometheus.Histogram
	points        prometheus.Counter
	faults        *prometheus.CounterVec
}

var _ board.Observer = (*Metrics)(nil)

// New registers the fracture metrics on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Metrics{
		reg: reg,
		spawns: f.NewCounterVec(prometheus.CounterOpts{
			Name: "fracture_spawns_total",
			Help: "Shapes spawned by template",
		}, []string{"template"}),
		spawnFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "fracture_spawn_failures_total",
			Help: "Spawn attempts that found no free position, by template",
		}, []string{"template"}),
		lines: f.NewCounter(prometheus.CounterOpts{
			Name: "fracture_lines_cleared_total",
			Help: "Rows cleared",
		}),
		clears: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "fracture_rows_per_clear",
			Help:    "Rows cleared in a single tick",
			Buckets: []float64{1, 2, 3, 4, 6, 8},
		}),
		splits: f.NewCounter(prometheus.CounterOpts{
			Name: "fracture_splits_total",
			Help: "Remnant shapes torn off by the connectivity splitter",
		}),
		chains: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "fracture_chain_length",
			Help:    "Length of each banked chain",
			Buckets: []float64{1, 2, 3, 4, 6, 8, 12},
		}),
		points: f.NewCounter(prometheus.CounterOpts{
			Name: "fracture_points_total",
			Help: "Points banked",
		}),
		faults: f.NewCounterVec(prometheus.CounterOpts{
			Name: "fracture_integrity_faults_total",
			Help: "Integrity faults by kind",
		}, []string{"kind"}),
	}
}

// OnSpawn counts a spawned piece by template.
func (m *Metrics) OnSpawn(template string) {
	m.spawns.WithLabelValues(template).Inc()
}

// OnSpawnFailed counts a spawn that found no position.
func (m *Metrics) OnSpawnFailed(template string) {
	m.spawnFailures.WithLabelValues(template).Inc()
}

// OnLinesCleared adds the rows cleared in one tick.
func (m *Metrics) OnLinesCleared(rows int) {
	m.lines.Add(float64(rows))
	m.clears.Observe(float64(rows))
}

// OnSplit counts a remnant produced by the splitter.
func (m *Metrics) OnSplit() {
	m.splits.Inc()
}

// OnChainBanked records a banked chain and its points.
func (m *Metrics) OnChainBanked(chain, delta int) {
	m.chains.Observe(float64(chain))
	m.points.Add(float64(delta))
}

// OnFault counts an integrity fault by kind.
func (m *Metrics) OnFault(kind board.FaultKind) {
	m.faults.WithLabelValues(kind.String()).Inc()
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.reg
}

// WriteText writes every metric family in the Prometheus text format.
func (m *Metrics) WriteText(w io.Writer) error {
	fams, err := m.reg.Gather()
	if err != nil {
		return fmt.Errorf("telemetry: gather: %w", err)
	}
	for _, mf := range fams {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("telemetry: write %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
