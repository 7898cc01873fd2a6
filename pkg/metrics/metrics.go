// Package metrics counts calls to the generative service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Kind labels which provider made a request.
const (
	KindAlmanac  = "almanac"
	KindAnalysis = "analysis"
)

var (
	// Registry holds the zenday collectors, kept apart from the global one.
	Registry = prometheus.NewRegistry()

	// GenerationRequests counts requests issued to the generative service.
	GenerationRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "zenday",
		Name:      "generation_requests_total",
		Help:      "Requests issued to the generative service.",
	}, []string{"kind"})

	// GenerationFallbacks counts requests answered with the fixed fallback.
	GenerationFallbacks = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "zenday",
		Name:      "generation_fallbacks_total",
		Help:      "Generation failures replaced by the neutral fallback.",
	}, []string{"kind"})

	// AlmanacCacheHits counts almanac lookups served from the store.
	AlmanacCacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "zenday",
		Name:      "almanac_cache_hits_total",
		Help:      "Almanac lookups served from the local store.",
	})
)

func init() {
	Registry.MustRegister(GenerationRequests, GenerationFallbacks, AlmanacCacheHits)
}

// Handler exposes the registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
