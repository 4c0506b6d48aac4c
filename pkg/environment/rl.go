package environment

import (
	"errors"
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// ErrEpisodeDone is returned when stepping an episode that already ended.
var ErrEpisodeDone = errors.New("episode is done, call Reset")

// ErrIllegalAction is returned for actions outside the action space.
var ErrIllegalAction = errors.New("illegal action")

// TimeStep packages together a single step of agent-environment interaction
type TimeStep struct {
	Observation *mat.VecDense
	Reward      float64
	Terminated  bool
	Truncated   bool
	Number      int
}

// Last reports whether the episode ended on this step.
func (t TimeStep) Last() bool {
	return t.Terminated || t.Truncated
}

func (t TimeStep) String() string {
	var obs any = "[]"
	if t.Observation != nil {
		obs = mat.Formatted(t.Observation.T(), mat.Squeeze())
	}
	return fmt.Sprintf("TimeStep | Step: %v | Reward: %.2f | Terminated: %v | Truncated: %v | Observation: %v",
		t.Number, t.Reward, t.Terminated, t.Truncated, obs)
}

// Discrete is the action space {0, ..., N-1}.
type Discrete struct {
	N   int
	rng *rand.Rand
}

func NewDiscrete(n int, seed int64) *Discrete {
	return &Discrete{N: n, rng: rand.New(rand.NewSource(seed))}
}

// Sample draws a uniformly random action.
func (d *Discrete) Sample() int {
	return d.rng.Intn(d.N)
}

func (d *Discrete) Contains(action int) bool {
	return action >= 0 && action < d.N
}

func (d *Discrete) String() string {
	return fmt.Sprintf("Discrete(%d)", d.N)
}

// Box is a continuous space bounded per dimension.
type Box struct {
	Low  *mat.VecDense
	High *mat.VecDense
}

func (b Box) Len() int {
	return b.Low.Len()
}

func (b Box) String() string {
	return fmt.Sprintf("Box(low=%v, high=%v)",
		mat.Formatted(b.Low.T(), mat.Squeeze()), mat.Formatted(b.High.T(), mat.Squeeze()))
}

// RL is an episodic environment with a discrete action space
type RL interface {
	fmt.Stringer
	// Reset starts a new episode
	Reset() TimeStep
	// Step applies action and advances the episode by one step
	Step(action int) (TimeStep, error)
	ActionSpace() *Discrete
	ObservationSpace() Box
	Close() error
}
