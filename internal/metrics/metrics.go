package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	OutcomeCompleted = "completed"
	OutcomeRejected  = "rejected"
	OutcomeFailed    = "failed"
)

var checkoutOutcomes = prometheus.NewCounterVec(prometheus.CounterOpts{
	Namespace: "pos",
	Subsystem: "checkout",
	Name:      "outcomes_total",
	Help:      "Checkout outcomes by result.",
}, []string{"outcome"})

func init() {
	prometheus.MustRegister(checkoutOutcomes)
}

func ObserveCheckout(outcome string) {
	checkoutOutcomes.WithLabelValues(outcome).Inc()
}

func Handler() http.Handler {
	return promhttp.Handler()
}
