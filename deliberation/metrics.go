package deliberation

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/spacemeshos/go-deliberation/metrics"
)

const namespace = "protocol"

var (
	runCounter = metrics.NewCounter(
		"runs",
		namespace,
		"number of completed runs",
		[]string{"protocol"},
	)
	roundsHistogram = metrics.NewHistogramWithBuckets(
		"rounds",
		namespace,
		"number of rounds until the fixed point",
		[]string{"protocol"},
		prometheus.ExponentialBuckets(1, 2, 10),
	)
	disclosedCounter = metrics.NewCounter(
		"disclosed_items",
		namespace,
		"number of evidence items disclosed",
		[]string{"protocol"},
	)
)
