// Package cartpole implements the Cartpole classic control environment
package cartpole

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"

	env "github.com/boristopalov/agentlab/pkg/environment"
)

const (
	// Physical constants
	Gravity        float64 = 9.8
	CartMass       float64 = 1.0
	PoleMass       float64 = 0.1
	TotalMass      float64 = CartMass + PoleMass
	HalfPoleLength float64 = 0.5  // half of pole length
	ForceMag       float64 = 10.0 // Magnitude of force applied
	Dt             float64 = 0.02 // seconds between state updates

	// Episode ends once the cart or pole leaves these bounds
	PositionThreshold float64 = 2.4
	AngleThreshold    float64 = 12 * 2 * math.Pi / 360

	// Reset draws every state feature from (-StartBound, StartBound)
	StartBound float64 = 0.05

	ObservationDims = 4

	// Discrete actions
	PushLeft  = 0
	PushRight = 1
)

// Step limits of the registered variants
const (
	MaxStepsV0 = 200
	MaxStepsV1 = 500
)

// Cartpole implements the classic control environment Cartpole. A pole is
// attached by an unactuated joint to a cart moving along a frictionless
// track. The agent pushes the cart left or right to keep the pole upright.
//
// Observations are the cart position and velocity, and the pole angle and
// angular velocity:
//
//	Index	Feature			Bounds
//	  0		Cart position		±4.8
//	  1		Cart velocity		±Inf
//	  2		Pole angle		±24°
//	  3		Pole angular velocity	±Inf
//
// Actions are discrete:
//
//	Action	Meaning
//	  0		Push cart left
//	  1		Push cart right
//
// Every step yields a reward of 1, including the one that ends the episode.
// The episode terminates when the pole tilts more than 12° or the cart
// leaves ±2.4, and is truncated after maxSteps steps.
type Cartpole struct {
	name     string
	rng      *rand.Rand
	actions  *env.Discrete
	maxSteps int

	lastStep env.TimeStep
	done     bool

	positionBounds r1.Interval
	angleBounds    r1.Interval
}

// New constructs a Cartpole environment that truncates episodes after
// maxSteps steps and draws start states from a generator seeded with seed.
// The returned environment has already been reset.
func New(name string, maxSteps int, seed int64) *Cartpole {
	rng := rand.New(rand.NewSource(seed))
	// The action space samples from its own stream, seeded from rng.
	actionSeed := rng.Int63()
	c := &Cartpole{
		name:           name,
		rng:            rng,
		actions:        env.NewDiscrete(2, actionSeed),
		maxSteps:       maxSteps,
		positionBounds: r1.Interval{Min: -PositionThreshold, Max: PositionThreshold},
		angleBounds:    r1.Interval{Min: -AngleThreshold, Max: AngleThreshold},
	}
	c.Reset()
	return c
}

// Reset starts a new episode from a random state near upright
func (c *Cartpole) Reset() env.TimeStep {
	state := make([]float64, ObservationDims)
	for i := range state {
		state[i] = -StartBound + c.rng.Float64()*2*StartBound
	}

	c.lastStep = env.TimeStep{Observation: mat.NewVecDense(ObservationDims, state)}
	c.done = false
	return c.lastStep
}

// Step pushes the cart and integrates the dynamics for one time step using
// Euler's method.
func (c *Cartpole) Step(action int) (env.TimeStep, error) {
	if c.done {
		return env.TimeStep{}, env.ErrEpisodeDone
	}
	if !c.actions.Contains(action) {
		return env.TimeStep{}, fmt.Errorf("%w: %v ∉ %v", env.ErrIllegalAction, action, c.actions)
	}

	state := c.lastStep.Observation
	x, xDot := state.AtVec(0), state.AtVec(1)
	th, thDot := state.AtVec(2), state.AtVec(3)

	force := ForceMag
	if action == PushLeft {
		force = -ForceMag
	}

	cosTheta := math.Cos(th)
	sinTheta := math.Sin(th)
	poleMassLength := PoleMass * HalfPoleLength

	temp := (force + poleMassLength*thDot*thDot*sinTheta) / TotalMass
	thAcc := (Gravity*sinTheta - cosTheta*temp) /
		(HalfPoleLength * (4.0/3.0 - PoleMass*cosTheta*cosTheta/TotalMass))
	xAcc := temp - poleMassLength*thAcc*cosTheta/TotalMass

	x += Dt * xDot
	xDot += Dt * xAcc
	th += Dt * thDot
	thDot += Dt * thAcc

	next := env.TimeStep{
		Observation: mat.NewVecDense(ObservationDims, []float64{x, xDot, th, thDot}),
		Reward:      1.0,
		Number:      c.lastStep.Number + 1,
	}
	next.Terminated = !within(c.positionBounds, x) || !within(c.angleBounds, th)
	next.Truncated = c.maxSteps > 0 && next.Number >= c.maxSteps

	c.lastStep = next
	c.done = next.Last()
	return next, nil
}

// within reports whether v lies in the closed interval i
func within(i r1.Interval, v float64) bool {
	return v >= i.Min && v <= i.Max
}

func (c *Cartpole) ActionSpace() *env.Discrete {
	return c.actions
}

// ObservationSpace returns bounds twice as wide as the termination
// thresholds, matching what the classic implementation reports.
func (c *Cartpole) ObservationSpace() env.Box {
	high := []float64{2 * PositionThreshold, math.Inf(1), 2 * AngleThreshold, math.Inf(1)}
	low := make([]float64, len(high))
	for i, h := range high {
		low[i] = -h
	}
	return env.Box{
		Low:  mat.NewVecDense(ObservationDims, low),
		High: mat.NewVecDense(ObservationDims, high),
	}
}

func (c *Cartpole) Close() error {
	return nil
}

func (c *Cartpole) String() string {
	msg := "%s  |  Position: %.4f  |  Speed: %.4f  |  Angle: %.4f" +
		"  |  Angular Velocity: %.4f"

	state := c.lastStep.Observation
	return fmt.Sprintf(msg, c.name, state.AtVec(0), state.AtVec(1), state.AtVec(2), state.AtVec(3))
}
