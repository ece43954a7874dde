// SPDX-License-Identifier: MIT

// Package metrics exports genome store activity as Prometheus metrics.
//
// A Collector is a genome.Observer: register it with genome.WithObserver
// and every structural operation updates its counters and gauges. Each
// Collector owns its registry, so several stores (or tests) never collide.
package metrics

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/katalvlaran/genograph/genome"
)

// Result label values.
const (
	ResultOK       = "ok"
	ResultRejected = "rejected"
	ResultError    = "error"
)

// Collector holds the store metrics.
type Collector struct {
	registry *prometheus.Registry

	Operations     *prometheus.CounterVec
	Merges         prometheus.Counter
	GenomesCreated prometheus.Counter
	GenomesRetired prometheus.Counter
	DroppedEdges   prometheus.Counter
	Genomes        prometheus.Gauge
	Nodes          prometheus.Gauge
}

// NewCollector creates a Collector whose metric names start with namespace.
func NewCollector(namespace string) *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		Operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "operations_total",
				Help:      "Structural operations by kind and result.",
			},
			[]string{"op", "result"},
		),
		Merges: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "genome_merges_total",
			Help:      "Edges that joined two genomes.",
		}),
		GenomesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "genomes_created_total",
			Help:      "Genome ids issued by creates, splits and rebuilds.",
		}),
		GenomesRetired: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "genomes_retired_total",
			Help:      "Genome ids discarded by merges, splits and removals.",
		}),
		DroppedEdges: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "edit_dropped_edges_total",
			Help:      "Edges an in-place edit could not restore.",
		}),
		Genomes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "genomes",
			Help:      "Genomes currently tracked.",
		}),
		Nodes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "nodes",
			Help:      "Nodes currently in the store.",
		}),
	}
	c.registry.MustRegister(
		c.Operations,
		c.Merges,
		c.GenomesCreated,
		c.GenomesRetired,
		c.DroppedEdges,
		c.Genomes,
		c.Nodes,
	)
	return c
}

// Registry exposes the collector's registry, e.g. for promhttp.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Observe implements genome.Observer.
func (c *Collector) Observe(ev genome.Event) {
	c.Operations.WithLabelValues(string(ev.Op), result(ev.Err)).Inc()
	if ev.Merged {
		c.Merges.Inc()
	}
	c.GenomesCreated.Add(float64(ev.Created))
	c.GenomesRetired.Add(float64(ev.Retired))
	c.DroppedEdges.Add(float64(ev.Dropped))
	c.Genomes.Set(float64(ev.Genomes))
	c.Nodes.Set(float64(ev.Nodes))
}

func result(err error) string {
	switch {
	case err == nil:
		return ResultOK
	case errors.Is(err, genome.ErrIncompatibleEdge):
		return ResultRejected
	default:
		return ResultError
	}
}

// Snapshot gathers every counter and gauge into "name{label=value,...}" keys,
// sorted by key in Lines.
func (c *Collector) Snapshot() (map[string]float64, error) {
	families, err := c.registry.Gather()
	if err != nil {
		return nil, fmt.Errorf("metrics: gather: %w", err)
	}
	out := make(map[string]float64)
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			name := mf.GetName()
			if labels := m.GetLabel(); len(labels) > 0 {
				pairs := make([]string, 0, len(labels))
				for _, l := range labels {
					pairs = append(pairs, l.GetName()+"="+l.GetValue())
				}
				name += "{" + strings.Join(pairs, ",") + "}"
			}
			switch {
			case m.GetCounter() != nil:
				out[name] = m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				out[name] = m.GetGauge().GetValue()
			}
		}
	}
	return out, nil
}

// Lines renders a snapshot as sorted "key value" lines.
func Lines(snap map[string]float64) []string {
	lines := make([]string, 0, len(snap))
	for k, v := range snap {
		lines = append(lines, fmt.Sprintf("%s %g", k, v))
	}
	sort.Strings(lines)
	return lines
}
