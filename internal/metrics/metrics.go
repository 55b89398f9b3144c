package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ChirpsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chirp_posts_created_total",
		Help: "Number of chirps successfully created",
	})

	RateLimitRejections = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chirp_create_rate_limited_total",
		Help: "Number of creates rejected by the per-user rate limit",
	})

	IdentityLookups = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chirp_identity_lookups_total",
		Help: "Number of batched lookups against the identity provider",
	})

	ViewCacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chirp_view_cache_hits_total",
		Help: "View-model cache hits by route",
	}, []string{"route"})

	ViewCacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chirp_view_cache_misses_total",
		Help: "View-model cache misses by route",
	}, []string{"route"})
)
