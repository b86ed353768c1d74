package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	Logins = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "audiotech",
		Name:      "logins_total",
		Help:      "Login attempts by result (success, admin, fail).",
	}, []string{"result"})

	Registrations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "audiotech",
		Name:      "registrations_total",
		Help:      "Registration attempts by result (success, conflict).",
	}, []string{"result"})

	CatalogChanges = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "audiotech",
		Name:      "catalog_changes_total",
		Help:      "Admin catalog mutations by operation (add, delete, seed).",
	}, []string{"op"})

	Orders = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "audiotech",
		Name:      "orders_total",
		Help:      "Orders placed through checkout.",
	})

	ServiceLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "audiotech",
		Name:      "service_op_seconds",
		Help:      "Wall time of mock service operations, artificial delay included.",
		Buckets:   []float64{0.001, 0.01, 0.1, 0.5, 1, 2, 5},
	}, []string{"op"})
)
