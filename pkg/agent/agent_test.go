package agent

import (
	"strings"
	"testing"
	"time"

	"github.com/boristopalov/agentlab/pkg/messaging"
	"github.com/boristopalov/agentlab/pkg/policy"
)

func TestReflexAgent(t *testing.T) {
	agent := NewReflexAgent("ThermoBot", WithAgentId("thermobot"))

	if got := agent.GetID(); got != "thermobot" {
		t.Errorf("agent.GetID() = %v, want %v", got, "thermobot")
	}
	if got := agent.GetName(); got != "ThermoBot" {
		t.Errorf("agent.GetName() = %v, want %v", got, "ThermoBot")
	}
	if got := agent.Act(); got != "Do nothing" {
		t.Errorf("agent.Act() before any percept = %v, want %v", got, "Do nothing")
	}

	agent.Perceive("too hot")
	if got := agent.Act(); got != "Turn on the fan" {
		t.Errorf("agent.Act() = %v, want %v", got, "Turn on the fan")
	}

	agent.Perceive("too cold")
	if got := agent.Act(); got != "Turn on the heater" {
		t.Errorf("agent.Act() = %v, want %v", got, "Turn on the heater")
	}

	percepts := agent.Percepts()
	if len(percepts) != 2 || percepts[0] != policy.TooHot || percepts[1] != policy.TooCold {
		t.Errorf("agent.Percepts() = %v, want [too hot too cold]", percepts)
	}
}

func TestReflexAgentMemoryCapacity(t *testing.T) {
	agent := NewReflexAgent("ThermoBot", WithMemoryCapacity(2))
	agent.Perceive("too hot")
	agent.Perceive("dark")
	agent.Perceive("too cold")

	percepts := agent.Percepts()
	if len(percepts) != 2 || percepts[0] != policy.Dark {
		t.Errorf("agent.Percepts() = %v, want [dark too cold]", percepts)
	}
	if got := agent.Act(); got != "Turn on the heater" {
		t.Errorf("agent.Act() = %v, want %v", got, "Turn on the heater")
	}
}

func TestDefaultAgentID(t *testing.T) {
	a := NewReflexAgent("ThermoBot")
	b := NewModelBasedAgent("HomeBot")

	if !strings.HasPrefix(a.GetID(), "agent-") {
		t.Errorf("default id %q should start with agent-", a.GetID())
	}
	if a.GetID() == b.GetID() {
		t.Errorf("default ids should differ, both are %q", a.GetID())
	}
}

func TestModelBasedAgent(t *testing.T) {
	agent := NewModelBasedAgent("HomeBot")

	if got := agent.State(); got != policy.DefaultRecord() {
		t.Errorf("agent.State() = %v, want %v", got, policy.DefaultRecord())
	}

	agent.UpdateState(policy.Observation{}.WithTemperature(28).WithLightLevel("bright"))
	if got := agent.Act(); got != "Turn on the AC" {
		t.Errorf("agent.Act() = %v, want %v", got, "Turn on the AC")
	}

	record := agent.UpdateState(policy.Observation{}.WithTemperature(16).WithLightLevel("dark").WithTimeOfDay("night"))
	if record.Temperature != 16 || record.LightLevel != "dark" || record.TimeOfDay != "night" {
		t.Errorf("UpdateState() = %v", record)
	}
	want := "Turn on the heater, Turn on dim lights"
	if got := agent.Act(); got != want {
		t.Errorf("agent.Act() = %v, want %v", got, want)
	}
	if got := agent.Actions(); len(got) != 2 {
		t.Errorf("agent.Actions() = %v, want two actions", got)
	}
}

func TestAgentEvents(t *testing.T) {
	broker := messaging.NewBroker()
	t.Cleanup(broker.Reset)
	events := make(chan messaging.Message, 10)
	if err := broker.Subscribe("observer", events); err != nil {
		t.Fatalf("Failed to subscribe observer: %v", err)
	}

	receive := func(t *testing.T) messaging.Message {
		t.Helper()
		select {
		case msg := <-events:
			return msg
		case <-time.After(time.Second):
			t.Fatal("Timeout waiting for agent event")
		}
		return messaging.Message{}
	}

	t.Run("reflex agent publishes percept and decision", func(t *testing.T) {
		agent := NewReflexAgent("ThermoBot", WithAgentId("thermobot"), WithBroker(broker))
		agent.Perceive("too hot")
		agent.Act()

		perceived := receive(t)
		if perceived.Kind != messaging.KindPerceive || perceived.Content != policy.TooHot {
			t.Errorf("Unexpected perceive event: %+v", perceived)
		}
		if perceived.From != "thermobot" || perceived.Name != "ThermoBot" {
			t.Errorf("Unexpected sender: %+v", perceived)
		}

		decided := receive(t)
		if decided.Kind != messaging.KindDecide || decided.Content != "Turn on the fan" {
			t.Errorf("Unexpected decide event: %+v", decided)
		}
	})

	t.Run("model-based agent publishes record snapshots", func(t *testing.T) {
		agent := NewModelBasedAgent("HomeBot", WithBroker(broker))
		agent.UpdateState(policy.Observation{}.WithTemperature(30))

		updated := receive(t)
		record, ok := updated.Content.(policy.EnvironmentRecord)
		if updated.Kind != messaging.KindUpdate || !ok {
			t.Fatalf("Unexpected update event: %+v", updated)
		}
		if record.Temperature != 30 {
			t.Errorf("record.Temperature = %v, want %v", record.Temperature, 30)
		}
	})

	t.Run("full observer does not change decisions", func(t *testing.T) {
		full := messaging.NewBroker()
		ch := make(chan messaging.Message)
		if err := full.Subscribe("stalled", ch); err != nil {
			t.Fatalf("Failed to subscribe: %v", err)
		}

		agent := NewReflexAgent("ThermoBot", WithBroker(full))
		agent.Perceive("dark")
		if got := agent.Act(); got != "Turn on the light" {
			t.Errorf("agent.Act() = %v, want %v", got, "Turn on the light")
		}
	})
}
