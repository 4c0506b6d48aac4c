package agent

import (
	"time"

	"github.com/boristopalov/agentlab/pkg/messaging"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Agent is anything that can be asked for its next action
type Agent interface {
	GetID() string
	GetName() string
	// Act returns the action the agent recommends right now
	Act() string
}

type AgentParams struct {
	AgentID        string
	Broker         messaging.Broker
	MemoryCapacity int
	Logger         zerolog.Logger
}

type AgentOption func(*AgentParams)

func WithAgentId(id string) AgentOption {
	return func(p *AgentParams) {
		p.AgentID = id
	}
}

// WithBroker makes the agent publish its perceptions and decisions.
func WithBroker(b messaging.Broker) AgentOption {
	return func(p *AgentParams) {
		p.Broker = b
	}
}

func WithMemoryCapacity(capacity int) AgentOption {
	return func(p *AgentParams) {
		p.MemoryCapacity = capacity
	}
}

func WithLogger(logger zerolog.Logger) AgentOption {
	return func(p *AgentParams) {
		p.Logger = logger
	}
}

func defaultAgentParams() *AgentParams {
	return &AgentParams{
		AgentID:        "agent-" + uuid.New().String(),
		MemoryCapacity: 100,
		Logger:         zerolog.Nop(),
	}
}

func newAgentParams(opts []AgentOption) *AgentParams {
	params := defaultAgentParams()
	for _, opt := range opts {
		opt(params)
	}
	return params
}

// base carries identity and event publishing shared by every agent.
type base struct {
	id     string
	name   string
	broker messaging.Broker
	logger zerolog.Logger
}

func newBase(name string, params *AgentParams) base {
	return base{
		id:     params.AgentID,
		name:   name,
		broker: params.Broker,
		logger: params.Logger.With().Str("agent", name).Logger(),
	}
}

func (b *base) GetID() string {
	return b.id
}

func (b *base) GetName() string {
	return b.name
}

// publish never fails the caller; a dropped event is only logged.
func (b *base) publish(kind messaging.Kind, content any) {
	if b.broker == nil {
		return
	}
	err := b.broker.Publish(messaging.Message{
		From:      b.id,
		Name:      b.name,
		Kind:      kind,
		Content:   content,
		Timestamp: time.Now(),
	})
	if err != nil {
		b.logger.Warn().Err(err).Str("kind", string(kind)).Msg("agent event not delivered")
	}
}
