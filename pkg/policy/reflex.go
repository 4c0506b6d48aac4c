// Package policy holds the percept-to-action decision rules used by the
// course agents. Policies are pure: they never print, log or block.
package policy

// Percept is a single categorical signal fed to a reflex policy.
type Percept string

const (
	TooHot  Percept = "too hot"
	TooCold Percept = "too cold"
	Dark    Percept = "dark"
)

const (
	DoNothing       = "Do nothing"
	TurnOnFan       = "Turn on the fan"
	TurnOnHeater    = "Turn on the heater"
	TurnOnLight     = "Turn on the light"
	TurnOnAC        = "Turn on the AC"
	TurnOnLights    = "Turn on the lights"
	TurnOnDimLights = "Turn on dim lights"
)

// ReflexPolicy maps the most recent percept straight to an action.
type ReflexPolicy struct {
	current Percept
	seen    bool
}

func NewReflexPolicy() *ReflexPolicy {
	return &ReflexPolicy{}
}

// Perceive records p as the current percept.
func (p *ReflexPolicy) Perceive(percept Percept) {
	p.current = percept
	p.seen = true
}

// Current returns the latest percept and whether one has been seen.
func (p *ReflexPolicy) Current() (Percept, bool) {
	return p.current, p.seen
}

// Act decides from the latest percept only.
func (p *ReflexPolicy) Act() string {
	if !p.seen {
		return DoNothing
	}
	return ReflexAction(p.current)
}

// ReflexAction is the reflex rule table.
func ReflexAction(percept Percept) string {
	switch percept {
	case TooHot:
		return TurnOnFan
	case TooCold:
		return TurnOnHeater
	case Dark:
		return TurnOnLight
	default:
		return DoNothing
	}
}
