package agent

import (
	"github.com/boristopalov/agentlab/pkg/messaging"
	"github.com/boristopalov/agentlab/pkg/policy"
)

// ModelBasedAgent keeps an internal record of the world and decides from it.
type ModelBasedAgent struct {
	base
	policy *policy.StateTrackingPolicy
}

// NewModelBasedAgent creates an agent starting from the default record
func NewModelBasedAgent(name string, opts ...AgentOption) *ModelBasedAgent {
	params := newAgentParams(opts)

	return &ModelBasedAgent{
		base:   newBase(name, params),
		policy: policy.NewStateTrackingPolicy(),
	}
}

// UpdateState merges a partial observation into the internal record.
func (a *ModelBasedAgent) UpdateState(obs policy.Observation) policy.EnvironmentRecord {
	record := a.policy.UpdateState(obs)
	a.publish(messaging.KindUpdate, record)
	return record
}

func (a *ModelBasedAgent) State() policy.EnvironmentRecord {
	return a.policy.State()
}

// Actions lists every recommended action without publishing a decision.
func (a *ModelBasedAgent) Actions() []string {
	return a.policy.Actions()
}

func (a *ModelBasedAgent) Act() string {
	action := a.policy.Act()
	a.publish(messaging.KindDecide, action)
	return action
}
