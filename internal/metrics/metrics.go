package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

type StorefrontMetrics struct {
	CartMutations *prometheus.CounterVec
	Checkouts     *prometheus.CounterVec
}

func NewStorefrontMetrics(reg prometheus.Registerer) *StorefrontMetrics {
	cartMutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "nexora",
		Subsystem: "storefront",
		Name:      "cart_mutations_total",
		Help:      "Total number of cart mutations.",
	}, []string{"operation", "result"})
	checkouts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "nexora",
		Subsystem: "storefront",
		Name:      "checkouts_total",
		Help:      "Total number of checkout attempts.",
	}, []string{"result"})

	reg.MustRegister(cartMutations, checkouts)
	return &StorefrontMetrics{CartMutations: cartMutations, Checkouts: checkouts}
}
