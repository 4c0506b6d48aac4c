// Package gym creates reinforcement-learning environments by their
// registered names, in the style of the Gymnasium registry.
//
// Only natively implemented environments are available; see Names.
package gym

import (
	"errors"
	"fmt"
	"sort"

	env "github.com/boristopalov/agentlab/pkg/environment"
	"github.com/boristopalov/agentlab/pkg/environment/cartpole"
)

// ErrUnknownEnvironment is returned by Make for unregistered names.
var ErrUnknownEnvironment = errors.New("unknown environment")

type factory func(name string, seed int64) env.RL

var registry = map[string]factory{
	"CartPole-v0": func(name string, seed int64) env.RL {
		return cartpole.New(name, cartpole.MaxStepsV0, seed)
	},
	"CartPole-v1": func(name string, seed int64) env.RL {
		return cartpole.New(name, cartpole.MaxStepsV1, seed)
	},
}

// Make returns a reset environment registered under name, seeded with seed.
func Make(name string, seed int64) (env.RL, error) {
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("make %q: %w (known: %v)", name, ErrUnknownEnvironment, Names())
	}
	return f(name, seed), nil
}

// Names lists the registered environments in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
