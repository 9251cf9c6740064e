// Package metrics holds Prometheus instruments used across the module.
// All collectors are registered with the global registry, so importing this
// package in main.go is enough to expose them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ActiveTenants = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "active_tenants",
			Help: "Number of per-host URL builders currently cached.",
		})

	TenantLoadTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tenant_load_total",
			Help: "Cumulative number of per-host URL builders loaded.",
		})

	TenantLoadErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tenant_load_errors_total",
			Help: "Cumulative number of per-host load errors, unknown hosts included.",
		})

	TenantEvictTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tenant_evict_total",
			Help: "Cumulative number of per-host URL builders evicted.",
		})

	// URLBuildTotal counts template-side URL construction by operation
	// (create, relative, asset) and input classification.
	URLBuildTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "url_build_total",
			Help: "URLs built, by operation and the rule that operation applied to the input.",
		}, []string{"op", "kind"})

	// SlugCacheTotal counts slug memo lookups by result (hit, miss).
	SlugCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "slug_cache_total",
			Help: "Slug memo lookups, by result.",
		}, []string{"result"})
)

func init() {
	prometheus.MustRegister(
		ActiveTenants,
		TenantLoadTotal,
		TenantLoadErrorsTotal,
		TenantEvictTotal,
		URLBuildTotal,
		SlugCacheTotal,
	)
}
