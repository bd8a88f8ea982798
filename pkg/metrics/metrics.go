// Package metrics records export activity as Prometheus metrics.
//
// [Hooks] implements [observability.ExportHooks]. Metrics live on a private
// registry so that repeated CLI runs and tests never collide on the default
// one. The CLI is short-lived, so instead of serving /metrics the registry is
// flushed to a textfile (node_exporter textfile collector format):
//
//	h := metrics.New()
//	observability.SetExportHooks(h)
//	defer h.WriteFile("/var/lib/node_exporter/shadergraph.prom")
package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/matzehuels/shadergraph/pkg/errors"
	"github.com/matzehuels/shadergraph/pkg/observability"
)

// Hooks collects export metrics on its own registry.
type Hooks struct {
	registry *prometheus.Registry

	MaterialsTotal   *prometheus.CounterVec
	MaterialDuration prometheus.Histogram
	NodesTotal       prometheus.Counter
	IssuesTotal      prometheus.Counter
	CatalogTypes     *prometheus.CounterVec
	CatalogEntries   prometheus.Gauge
	CatalogDuration  *prometheus.HistogramVec
}

// New creates hooks backed by a fresh registry.
func New() *Hooks {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Hooks{
		registry: reg,

		// Material exports, labeled by outcome ("ok" or an error code).
		MaterialsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shadergraph_material_exports_total",
				Help: "Material export attempts by outcome",
			},
			[]string{"result"},
		),
		MaterialDuration: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "shadergraph_material_export_duration_seconds",
				Help:    "Time spent serializing one material graph",
				Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
		),
		NodesTotal: f.NewCounter(
			prometheus.CounterOpts{
				Name: "shadergraph_nodes_exported_total",
				Help: "Nodes serialized across all material exports",
			},
		),
		IssuesTotal: f.NewCounter(
			prometheus.CounterOpts{
				Name: "shadergraph_export_issues_total",
				Help: "Properties or extension blocks skipped or degraded",
			},
		),
		CatalogTypes: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shadergraph_catalog_types_total",
				Help: "Candidate node types processed during catalog generation",
			},
			[]string{"result"},
		),
		CatalogEntries: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "shadergraph_catalog_entries",
				Help: "Entries in the most recently generated catalog",
			},
		),
		CatalogDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "shadergraph_catalog_duration_seconds",
				Help:    "Time spent generating the master catalog",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
			},
			[]string{"cached"},
		),
	}
}

// Registry returns the registry the metrics are registered on.
func (h *Hooks) Registry() *prometheus.Registry { return h.registry }

// WriteFile writes all metrics to path in the Prometheus text format.
func (h *Hooks) WriteFile(path string) error {
	if err := prometheus.WriteToTextfile(path, h.registry); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write metrics to %s", path)
	}
	return nil
}

// OnMaterialExport implements observability.ExportHooks.
func (h *Hooks) OnMaterialExport(_ context.Context, _ string, nodes, _, issues int, d time.Duration, err error) {
	h.MaterialsTotal.WithLabelValues(result(err)).Inc()
	if err != nil {
		return
	}
	h.MaterialDuration.Observe(d.Seconds())
	h.NodesTotal.Add(float64(nodes))
	h.IssuesTotal.Add(float64(issues))
}

// OnCatalogType implements observability.ExportHooks.
func (h *Hooks) OnCatalogType(_ context.Context, _ string, err error) {
	h.CatalogTypes.WithLabelValues(result(err)).Inc()
}

// OnCatalogComplete implements observability.ExportHooks.
func (h *Hooks) OnCatalogComplete(_ context.Context, _, entries int, cached bool, d time.Duration) {
	h.CatalogEntries.Set(float64(entries))
	label := "false"
	if cached {
		label = "true"
	}
	h.CatalogDuration.WithLabelValues(label).Observe(d.Seconds())
}

func result(err error) string {
	if err == nil {
		return "ok"
	}
	if code := errors.GetCode(err); code != "" {
		return string(code)
	}
	return "error"
}

var _ observability.ExportHooks = (*Hooks)(nil)
