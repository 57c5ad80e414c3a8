package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "endpoint"},
	)

	// Domain Metrics
	RecipesWritten = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipes_written_total",
			Help: "Recipes created, updated or deleted",
		},
		[]string{"operation"},
	)

	RelationToggles = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipe_relation_toggles_total",
			Help: "Favorite and shopping cart additions and removals",
		},
		[]string{"relation", "action"},
	)

	FollowToggles = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "follow_toggles_total",
			Help: "Subscriptions created and removed",
		},
		[]string{"action"},
	)

	ShoppingListExports = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shopping_list_exports_total",
			Help: "Shopping lists rendered, by delivery channel",
		},
		[]string{"channel"},
	)
)
