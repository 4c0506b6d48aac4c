// Package environment holds the worlds the course agents live in: a scripted
// household for the reflex and model-based agents, and the interfaces shared
// by the reinforcement-learning environments.
package environment

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/boristopalov/agentlab/pkg/agent"
	"github.com/boristopalov/agentlab/pkg/policy"
)

// ErrScriptDone is returned by Step once every scripted stimulus was played.
var ErrScriptDone = errors.New("environment script is exhausted")

type State struct {
	Status    string
	Step      uint32
	Timestamp time.Time
}

// Perceiver is an agent fed single percepts.
type Perceiver interface {
	agent.Agent
	Perceive(p policy.Percept)
}

// Updater is an agent fed partial observations of the world.
type Updater interface {
	agent.Agent
	UpdateState(obs policy.Observation) policy.EnvironmentRecord
}

// Stimulus is one scripted moment. Percept goes to Perceivers, Observation
// to Updaters; empty parts are not delivered.
type Stimulus struct {
	Percept     policy.Percept
	Observation policy.Observation
}

// Decision is what one agent chose during a step.
type Decision struct {
	AgentID string
	Name    string
	Action  string
}

// Home is a scripted household environment.
type Home struct {
	agents []agent.Agent
	script []Stimulus
	next   int
	state  State
	mu     sync.Mutex
}

func NewHome(script ...Stimulus) *Home {
	return &Home{
		agents: make([]agent.Agent, 0),
		script: script,
		state: State{
			Status:    "idle",
			Step:      0,
			Timestamp: time.Now(),
		},
	}
}

func (h *Home) GetState() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// Remaining returns how many scripted stimuli are left.
func (h *Home) Remaining() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.script) - h.next
}

// Step plays the next stimulus to every agent, in registration order, and
// collects their actions.
func (h *Home) Step(ctx context.Context) ([]Decision, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.next >= len(h.script) {
		h.state.Status = "done"
		return nil, ErrScriptDone
	}
	stimulus := h.script[h.next]
	h.next++

	h.state.Status = "running"
	h.state.Step++
	h.state.Timestamp = time.Now()

	decisions := make([]Decision, 0, len(h.agents))
	for _, a := range h.agents {
		delivered := false
		switch target := a.(type) {
		case Perceiver:
			if stimulus.Percept != "" {
				target.Perceive(stimulus.Percept)
				delivered = true
			}
		case Updater:
			if !stimulus.Observation.Empty() {
				target.UpdateState(stimulus.Observation)
				delivered = true
			}
		}
		if !delivered {
			continue
		}
		decisions = append(decisions, Decision{
			AgentID: a.GetID(),
			Name:    a.GetName(),
			Action:  a.Act(),
		})
	}

	if h.next == len(h.script) {
		h.state.Status = "done"
	}
	return decisions, nil
}

func (h *Home) AddAgent(a agent.Agent) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, existing := range h.agents {
		if existing.GetID() == a.GetID() {
			return fmt.Errorf("agent %s already added", a.GetID())
		}
	}
	h.agents = append(h.agents, a)
	return nil
}

func (h *Home) RemoveAgent(a agent.Agent) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	for i, existing := range h.agents {
		if existing.GetID() == a.GetID() {
			h.agents = append(h.agents[:i], h.agents[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("agent %s not found", a.GetID())
}

func (h *Home) GetAgents() []agent.Agent {
	h.mu.Lock()
	defer h.mu.Unlock()

	agents := make([]agent.Agent, len(h.agents))
	copy(agents, h.agents)
	return agents
}

// Reset rewinds the script. Agents stay registered and keep what they
// learned.
func (h *Home) Reset() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.next = 0
	h.state = State{
		Status:    "idle",
		Step:      0,
		Timestamp: time.Now(),
	}
	return nil
}

// ThermostatScript is the reflex lesson: a hot room, then a cold one.
func ThermostatScript() []Stimulus {
	return []Stimulus{
		{Percept: policy.TooHot},
		{Percept: policy.TooCold},
	}
}

// HouseholdScript is the model-based lesson: a hot bright afternoon, then a
// cold dark night.
func HouseholdScript() []Stimulus {
	return []Stimulus{
		{Observation: policy.Observation{}.WithTemperature(28).WithLightLevel(policy.LightBright)},
		{Observation: policy.Observation{}.WithTemperature(16).WithLightLevel(policy.LightDark).WithTimeOfDay(policy.Night)},
	}
}
