package agent

import (
	"github.com/boristopalov/agentlab/pkg/memory"
	"github.com/boristopalov/agentlab/pkg/messaging"
	"github.com/boristopalov/agentlab/pkg/policy"
)

// ReflexAgent reacts to its latest percept only. Earlier percepts are kept
// for inspection but never influence a decision.
type ReflexAgent struct {
	base
	policy   *policy.ReflexPolicy
	percepts *memory.Memory[policy.Percept]
}

// NewReflexAgent creates a simple reflex agent
func NewReflexAgent(name string, opts ...AgentOption) *ReflexAgent {
	params := newAgentParams(opts)

	return &ReflexAgent{
		base:     newBase(name, params),
		policy:   policy.NewReflexPolicy(),
		percepts: memory.NewMemory[policy.Percept](params.MemoryCapacity),
	}
}

// Perceive receives a percept from the environment.
func (a *ReflexAgent) Perceive(p policy.Percept) {
	a.percepts.Store(p)
	a.policy.Perceive(p)
	a.publish(messaging.KindPerceive, p)
}

func (a *ReflexAgent) Act() string {
	action := a.policy.Act()
	a.publish(messaging.KindDecide, action)
	return action
}

// Percepts returns the remembered percepts, oldest first.
func (a *ReflexAgent) Percepts() []policy.Percept {
	return a.percepts.GetAll()
}
