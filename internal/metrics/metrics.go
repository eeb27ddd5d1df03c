// Package metrics provides Prometheus metrics for the ingestion pipeline
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ImportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_imports_total",
			Help: "Total number of vendor catalog import runs",
		},
		[]string{"retailer", "status"},
	)

	ImportDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_import_duration_seconds",
			Help:    "Wall-clock duration of import runs",
			Buckets: []float64{0.5, 1, 5, 10, 30, 60, 300},
		},
		[]string{"retailer"},
	)

	RowsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_import_rows_total",
			Help: "Total data rows processed, by outcome",
		},
		[]string{"retailer", "outcome"},
	)

	ImagesRehosted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_images_rehosted_total",
			Help: "Total embedded images re-hosted to object storage",
		},
		[]string{"retailer", "status"},
	)
)
