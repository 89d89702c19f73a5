package catalog

import (
	"github.com/prometheus/client_golang/prometheus"

	"vramfit/pkg/types"
)

var (
	loadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vramfit",
			Subsystem: "catalog",
			Name:      "loads_total",
			Help:      "Catalog load attempts by result.",
		},
		[]string{"result"},
	)
	loadDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "vramfit",
			Subsystem: "catalog",
			Name:      "load_duration_seconds",
			Help:      "Time spent reading, decoding and indexing the catalog.",
			Buckets:   prometheus.DefBuckets,
		},
	)
	entities = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "vramfit",
			Subsystem: "catalog",
			Name:      "entities",
			Help:      "Entity counts of the current catalog snapshot.",
		},
		[]string{"kind"},
	)
)

func init() {
	prometheus.MustRegister(loadsTotal, loadDuration, entities)
}

func observeCounts(c types.CatalogCounts) {
	entities.WithLabelValues("families").Set(float64(c.Families))
	entities.WithLabelValues("variants").Set(float64(c.Variants))
	entities.WithLabelValues("components").Set(float64(c.Components))
	entities.WithLabelValues("derived_components").Set(float64(c.Derived))
	entities.WithLabelValues("run_aggregates").Set(float64(c.RunAggs))
	entities.WithLabelValues("best_templates").Set(float64(c.Templates))
	entities.WithLabelValues("constraint_profiles").Set(float64(c.Profiles))
	entities.WithLabelValues("use_case_tags").Set(float64(c.UseCaseTags))
	entities.WithLabelValues("duplicate_keys").Set(float64(c.DuplicateKey))
}
