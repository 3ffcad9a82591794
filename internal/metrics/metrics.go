package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mamadbah2/stockroom/internal/domain/models"
)

// Metrics holds the stockroom collectors on a private registry.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry   *prometheus.Registry
	mutations  *prometheus.CounterVec
	rejections *prometheus.CounterVec
	sales      prometheus.Counter
	products   prometheus.Gauge
	units      prometheus.Gauge
	lowStock   prometheus.Gauge
	agedStock  prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stockroom",
			Name:      "mutations_total",
			Help:      "Successful mutations per collection and operation.",
		}, []string{"collection", "operation"}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stockroom",
			Name:      "adjustment_rejections_total",
			Help:      "Quantity adjustments rejected, by reason.",
		}, []string{"reason"}),
		sales: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "stockroom",
			Name:      "sales_value_total",
			Help:      "Sum of recorded receipt totals.",
		}),
		products: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "stockroom",
			Name:      "products",
			Help:      "Products in the catalog.",
		}),
		units: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "stockroom",
			Name:      "stock_units",
			Help:      "Units in stock across all products.",
		}),
		lowStock: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "stockroom",
			Name:      "low_stock_products",
			Help:      "Products at or below the low stock threshold.",
		}),
		agedStock: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "stockroom",
			Name:      "aged_stock_products",
			Help:      "Products in stock for more than the aged threshold.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.mutations, m.rejections, m.sales,
		m.products, m.units, m.lowStock, m.agedStock,
	)
	return m
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Mutation(collection, operation string) {
	if m == nil {
		return
	}
	m.mutations.WithLabelValues(collection, operation).Inc()
}

func (m *Metrics) Rejections(rejections []models.Rejection) {
	if m == nil {
		return
	}
	for _, r := range rejections {
		m.rejections.WithLabelValues(string(r.Reason)).Inc()
	}
}

func (m *Metrics) Sale(total float64) {
	if m == nil || total <= 0 {
		return
	}
	m.sales.Add(total)
}

// Inventory refreshes the catalog gauges.
func (m *Metrics) Inventory(summary models.InventorySummary) {
	if m == nil {
		return
	}
	m.products.Set(float64(summary.TotalProducts))
	m.units.Set(float64(summary.TotalQuantity))
	m.lowStock.Set(float64(summary.LowStockCount))
	m.agedStock.Set(float64(summary.AgedStockCount))
}
