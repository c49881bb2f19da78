package presets

import (
	"github.com/spacemeshos/go-deliberation/common/types"
	"github.com/spacemeshos/go-deliberation/config"
	"github.com/spacemeshos/go-deliberation/deliberation"
	"github.com/spacemeshos/go-deliberation/experiment"
)

func init() {
	register("agent-types", agentTypes())
	register("evidence-spread", evidenceSpread())
	register("rounds", rounds())
}

// agentTypes compares lazy and keen agents under both protocols.
func agentTypes() config.Config {
	conf := config.DefaultConfig()
	conf.Sweep = experiment.DefaultConfig()
	return conf
}

// spreads are the gap sets shared by the lazy studies: an even split of rival
// evidence and a skewed one where a few agents hold most of it.
func spreads() []experiment.Spread {
	return []experiment.Spread{
		{
			Name:   "even",
			Target: experiment.Gap{Below: 1, Above: 1, Start: 1},
			Rival:  experiment.Gap{Below: 1, Above: 1, Start: 1},
		},
		{
			Name:   "skewed",
			Target: experiment.Gap{Below: 1, Above: 1, Start: 1},
			Rival:  experiment.Gap{Below: 3, Above: 7, Start: 1},
		},
	}
}

// lazySweep sweeps lazy agents from a tie in total evidence upwards.
func lazySweep() experiment.Config {
	sweep := experiment.DefaultConfig()
	sweep.Dispositions = []types.Disposition{types.Lazy}
	sweep.TargetFrom = sweep.RivalEvidence
	sweep.Spreads = spreads()
	return sweep
}

// evidenceSpread reports how often the target wins under each spread.
func evidenceSpread() config.Config {
	conf := config.DefaultConfig()
	conf.Sweep = lazySweep()
	return conf
}

// rounds measures how long deliberations take under the same sweep.
func rounds() config.Config {
	conf := config.DefaultConfig()
	conf.Sweep = lazySweep()
	conf.Sweep.Disclosure = deliberation.DiscloseOne
	return conf
}
