package obs

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SalesRegistered counts successfully committed sales.
	SalesRegistered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sales_registered_total",
		Help: "Number of sales registered successfully.",
	})

	// SaleFailures counts rejected or failed sale registrations by reason.
	SaleFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sale_failures_total",
		Help: "Number of failed sale registrations, partitioned by reason.",
	}, []string{"reason"})
)
