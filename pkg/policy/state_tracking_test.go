package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateTrackingPolicy_Defaults(t *testing.T) {
	p := NewStateTrackingPolicy()

	assert.Equal(t, EnvironmentRecord{Temperature: 22, LightLevel: "bright", TimeOfDay: "day"}, p.State())
	assert.Equal(t, DoNothing, p.Act())
	assert.Empty(t, p.Actions())
}

func TestStateTrackingPolicy_CourseScenario(t *testing.T) {
	p := NewStateTrackingPolicy()

	p.UpdateState(Observation{}.WithTemperature(28).WithLightLevel("bright"))
	assert.Equal(t, "Turn on the AC", p.Act())

	p.UpdateState(Observation{}.WithTemperature(16).WithLightLevel("dark").WithTimeOfDay("night"))
	assert.Equal(t, "Turn on the heater, Turn on dim lights", p.Act())
}

func TestStateTrackingPolicy_PartialUpdatePreservesFields(t *testing.T) {
	p := NewStateTrackingPolicy()
	p.UpdateState(Observation{}.WithTemperature(30))

	got := p.UpdateState(Observation{}.WithLightLevel("dark"))
	assert.Equal(t, 30.0, got.Temperature)
	assert.Equal(t, "dark", got.LightLevel)
	assert.Equal(t, "day", got.TimeOfDay)

	got = p.UpdateState(Observation{})
	assert.Equal(t, EnvironmentRecord{Temperature: 30, LightLevel: "dark", TimeOfDay: "day"}, got)
}

func TestRecordActions_Rules(t *testing.T) {
	tests := []struct {
		name   string
		record EnvironmentRecord
		want   string
	}{
		{"comfortable", EnvironmentRecord{22, "bright", "day"}, "Do nothing"},
		{"exactly 25 is not hot", EnvironmentRecord{25, "bright", "day"}, "Do nothing"},
		{"just above 25", EnvironmentRecord{25.01, "bright", "day"}, "Turn on the AC"},
		{"exactly 18 is not cold", EnvironmentRecord{18, "bright", "night"}, "Do nothing"},
		{"just below 18", EnvironmentRecord{17.99, "bright", "day"}, "Turn on the heater"},
		{"dark during the day", EnvironmentRecord{22, "dark", "day"}, "Turn on the lights"},
		{"dark at night", EnvironmentRecord{22, "dark", "night"}, "Turn on dim lights"},
		{"hot and dark by day", EnvironmentRecord{30, "dark", "day"}, "Turn on the AC, Turn on the lights"},
		{"cold and dark at night", EnvironmentRecord{16, "dark", "night"}, "Turn on the heater, Turn on dim lights"},
		{"freezing dark night", EnvironmentRecord{0, "dark", "night"}, "Turn on the heater"},
		{"below freezing dark night", EnvironmentRecord{-5, "dark", "night"}, "Turn on the heater"},
		{"dark at dusk", EnvironmentRecord{22, "dark", "dusk"}, "Do nothing"},
		{"dim is not dark", EnvironmentRecord{22, "dim", "day"}, "Do nothing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, JoinActions(RecordActions(tt.record)))
		})
	}
}

func TestRecordActions_ComfortableRangeDoesNothing(t *testing.T) {
	for temp := 18.5; temp <= 25; temp += 0.5 {
		for _, light := range []string{"bright", "dim", ""} {
			for _, tod := range []string{"day", "night"} {
				r := EnvironmentRecord{Temperature: temp, LightLevel: light, TimeOfDay: tod}
				require.Equal(t, DoNothing, JoinActions(RecordActions(r)), "record %v", r)
			}
		}
	}
}

func TestStateTrackingPolicy_ActionsIsFresh(t *testing.T) {
	p := NewStateTrackingPolicy()
	p.UpdateState(Observation{}.WithTemperature(30))

	actions := p.Actions()
	require.Len(t, actions, 1)
	actions[0] = "tampered"

	assert.Equal(t, "Turn on the AC", p.Act())
}

func TestEnvironmentRecord_String(t *testing.T) {
	r := EnvironmentRecord{Temperature: 16, LightLevel: "dark", TimeOfDay: "night"}
	assert.Equal(t, "{temperature: 16, lightLevel: dark, timeOfDay: night}", r.String())

	r.Temperature = 21.5
	assert.Equal(t, "{temperature: 21.5, lightLevel: dark, timeOfDay: night}", r.String())
}

func TestObservation_Empty(t *testing.T) {
	assert.True(t, Observation{}.Empty())
	assert.False(t, Observation{}.WithTimeOfDay("night").Empty())
}
