// Package presets holds named configurations of the studies the deliberate
// command reproduces.
package presets

import (
	"fmt"
	"maps"
	"slices"

	"github.com/spacemeshos/go-deliberation/config"
)

var presets = map[string]config.Config{}

func register(name string, conf config.Config) {
	if _, exist := presets[name]; exist {
		panic(fmt.Sprintf("preset %s already registered", name))
	}
	conf.Preset = name
	presets[name] = conf
}

// Options lists registered preset names in sorted order.
func Options() []string {
	return slices.Sorted(maps.Keys(presets))
}

// Get returns a copy of the named preset.
func Get(name string) (config.Config, error) {
	conf, exist := presets[name]
	if !exist {
		return config.Config{}, fmt.Errorf("preset %s is not registered. select one from %v", name, Options())
	}
	return clone(conf), nil
}

// clone copies slices and maps so that callers can modify the result.
func clone(conf config.Config) config.Config {
	conf.Universe = slices.Clone(conf.Universe)
	conf.Agents = slices.Clone(conf.Agents)
	for i := range conf.Agents {
		conf.Agents[i].Evidence = maps.Clone(conf.Agents[i].Evidence)
	}
	conf.Sweep.Agents = slices.Clone(conf.Sweep.Agents)
	conf.Sweep.Protocols = slices.Clone(conf.Sweep.Protocols)
	conf.Sweep.Dispositions = slices.Clone(conf.Sweep.Dispositions)
	conf.Sweep.Spreads = slices.Clone(conf.Sweep.Spreads)
	return conf
}
