package torznab

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	itemsMapped = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "torznab",
		Name:      "items_mapped",
		Help:      "Feed items mapped into torrents",
	},
		[]string{"indexer", "status"}) // ok | rejected

	requestDuration = prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Namespace: "torznab",
			Name:      "request_duration_seconds",
			Help:      "How long indexer requests take",
		},
		[]string{"indexer", "function"},
	)

	requestErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "torznab",
		Name:      "request_errors",
		Help:      "Searches that failed as a whole",
	},
		[]string{"indexer"})
)

func init() {
	prometheus.MustRegister(itemsMapped)
	prometheus.MustRegister(requestDuration)
	prometheus.MustRegister(requestErrors)
}

func observeResults(indexer string, results Results) {
	failed := len(results.Failed())
	itemsMapped.WithLabelValues(indexer, "ok").Add(float64(len(results) - failed))
	itemsMapped.WithLabelValues(indexer, "rejected").Add(float64(failed))
}
