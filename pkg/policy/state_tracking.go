package policy

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	DefaultTemperature = 22.0
	DefaultLightLevel  = LightBright
	DefaultTimeOfDay   = Day

	LightBright = "bright"
	LightDark   = "dark"
	Day         = "day"
	Night       = "night"
)

// Temperature thresholds in degrees Celsius.
const (
	hotAbove  = 25.0
	coldBelow = 18.0
	freezing  = 0.0
)

// EnvironmentRecord is the world model kept by a StateTrackingPolicy.
// All fields are always set.
type EnvironmentRecord struct {
	Temperature float64 `json:"temperature"`
	LightLevel  string  `json:"lightLevel"`
	TimeOfDay   string  `json:"timeOfDay"`
}

// DefaultRecord returns the record a fresh policy starts from.
func DefaultRecord() EnvironmentRecord {
	return EnvironmentRecord{
		Temperature: DefaultTemperature,
		LightLevel:  DefaultLightLevel,
		TimeOfDay:   DefaultTimeOfDay,
	}
}

func (r EnvironmentRecord) String() string {
	return fmt.Sprintf("{temperature: %s, lightLevel: %s, timeOfDay: %s}",
		strconv.FormatFloat(r.Temperature, 'f', -1, 64), r.LightLevel, r.TimeOfDay)
}

// Observation is a partial update of an EnvironmentRecord. Nil fields are
// left untouched by a merge.
type Observation struct {
	Temperature *float64 `json:"temperature,omitempty"`
	LightLevel  *string  `json:"lightLevel,omitempty"`
	TimeOfDay   *string  `json:"timeOfDay,omitempty"`
}

func (o Observation) WithTemperature(celsius float64) Observation {
	o.Temperature = &celsius
	return o
}

func (o Observation) WithLightLevel(level string) Observation {
	o.LightLevel = &level
	return o
}

func (o Observation) WithTimeOfDay(timeOfDay string) Observation {
	o.TimeOfDay = &timeOfDay
	return o
}

// Empty reports whether the observation carries no fields.
func (o Observation) Empty() bool {
	return o.Temperature == nil && o.LightLevel == nil && o.TimeOfDay == nil
}

// Merge returns r with the present fields of o applied.
func (r EnvironmentRecord) Merge(o Observation) EnvironmentRecord {
	if o.Temperature != nil {
		r.Temperature = *o.Temperature
	}
	if o.LightLevel != nil {
		r.LightLevel = *o.LightLevel
	}
	if o.TimeOfDay != nil {
		r.TimeOfDay = *o.TimeOfDay
	}
	return r
}

// StateTrackingPolicy keeps an EnvironmentRecord and derives actions from it.
type StateTrackingPolicy struct {
	record EnvironmentRecord
}

func NewStateTrackingPolicy() *StateTrackingPolicy {
	return &StateTrackingPolicy{record: DefaultRecord()}
}

// UpdateState merges obs into the record and returns the new record.
func (p *StateTrackingPolicy) UpdateState(obs Observation) EnvironmentRecord {
	p.record = p.record.Merge(obs)
	return p.record
}

func (p *StateTrackingPolicy) State() EnvironmentRecord {
	return p.record
}

// Actions returns every action whose rule fires, in rule order.
func (p *StateTrackingPolicy) Actions() []string {
	return RecordActions(p.record)
}

// Act joins Actions with ", ", or returns DoNothing when no rule fires.
func (p *StateTrackingPolicy) Act() string {
	return JoinActions(p.Actions())
}

// RecordActions evaluates the temperature and lighting rules against r.
func RecordActions(r EnvironmentRecord) []string {
	actions := make([]string, 0, 2)

	if r.Temperature > hotAbove {
		actions = append(actions, TurnOnAC)
	} else if r.Temperature < coldBelow {
		actions = append(actions, TurnOnHeater)
	}

	if r.LightLevel == LightDark && r.TimeOfDay == Day {
		actions = append(actions, TurnOnLights)
	} else if r.LightLevel == LightDark && r.TimeOfDay == Night && r.Temperature > freezing {
		actions = append(actions, TurnOnDimLights)
	}

	return actions
}

func JoinActions(actions []string) string {
	if len(actions) == 0 {
		return DoNothing
	}
	return strings.Join(actions, ", ")
}

func (p Percept) String() string {
	return string(p)
}
