package experiment

import (
	"github.com/spacemeshos/go-deliberation/metrics"
)

const namespace = "experiment"

var trialCounter = metrics.NewCounter(
	"trials",
	namespace,
	"number of finished trials by outcome",
	[]string{"protocol", "outcome"},
)

const (
	successTrials    = "success"
	failedTrials     = "failure"
	infeasibleTrials = "infeasible"
)
