package prom

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TagVotes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "straytracker_tag_votes_total",
		Help: "Personality tag votes by outcome",
	}, []string{"outcome"})
	Likes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "straytracker_likes_total",
		Help: "Like requests by outcome",
	}, []string{"outcome"})
	SightingUploads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "straytracker_sighting_uploads_total",
		Help: "Sighting uploads by outcome",
	}, []string{"outcome"})
	SightingLikes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "straytracker_sighting_likes_total",
		Help: "Sighting like requests by outcome",
	}, []string{"outcome"})
	SightingUploadedBytes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "straytracker_sighting_uploaded_bytes_total",
		Help: "The total number of image bytes accepted",
	})
	TrendingCacheLookups = promauto.NewCounter(prometheus.CounterOpts{
		Name: "straytracker_trending_cache_lookups_total",
		Help: "The total number of trending cache lookups",
	})
	TrendingCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "straytracker_trending_cache_hits_total",
		Help: "The total number of trending responses served from cache",
	})
)
