package prom

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	FilterLookups = promauto.NewCounter(prometheus.CounterOpts{
		Name: "straytracker_filter_lookups_total",
		Help: "The total number of duplicate filter membership checks",
	})
	FilterHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "straytracker_filter_hits_total",
		Help: "The total number of membership checks that reported a key as already seen",
	})
	FilterInserts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "straytracker_filter_inserts_total",
		Help: "The total number of keys inserted into the duplicate filter",
	})
	FilterRotations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "straytracker_filter_rotations_total",
		Help: "The total number of times the duplicate filter was replaced with an empty one",
	})
	RecentLookups = promauto.NewCounter(prometheus.CounterOpts{
		Name: "straytracker_recent_lookups_total",
		Help: "The total number of recent action lookups",
	})
	RecentHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "straytracker_recent_hits_total",
		Help: "The total number of recent action lookups that matched",
	})
	RecentCollisions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "straytracker_recent_collisions_total",
		Help: "The total number of recent action slots overwritten by a different key",
	})
)
