package experiment

import (
	"context"

	"github.com/boristopalov/agentlab/pkg/environment"
	"gonum.org/v1/gonum/mat"
)

// Policy chooses an action given the current observation
type Policy interface {
	SelectAction(observation mat.Vector) int
}

// PolicyFunc adapts a function to the Policy interface.
type PolicyFunc func(observation mat.Vector) int

func (f PolicyFunc) SelectAction(observation mat.Vector) int {
	return f(observation)
}

// PoleAnglePolicy pushes the cart towards the side the pole leans to. It
// is not trained.
type PoleAnglePolicy struct{}

func (PoleAnglePolicy) SelectAction(observation mat.Vector) int {
	if observation.AtVec(2) > 0 {
		return 1
	}
	return 0
}

// RandomPolicy samples uniformly from an action space
type RandomPolicy struct {
	Space *environment.Discrete
}

func (p RandomPolicy) SelectAction(mat.Vector) int {
	return p.Space.Sample()
}

type StepRecord struct {
	Action int
	environment.TimeStep
}

type EpisodeResult struct {
	Steps       []StepRecord
	TotalReward float64
	Terminated  bool
	Truncated   bool
}

// Length is the number of steps taken
func (r EpisodeResult) Length() int {
	return len(r.Steps)
}

// RunEpisode resets e and follows p for at most maxSteps steps, stopping
// early when the episode ends. A non-positive maxSteps runs until the
// environment ends the episode.
func RunEpisode(ctx context.Context, e environment.RL, p Policy, maxSteps int) (EpisodeResult, error) {
	var result EpisodeResult
	observation := e.Reset().Observation

	for i := 0; maxSteps <= 0 || i < maxSteps; i++ {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		action := p.SelectAction(observation)
		step, err := e.Step(action)
		if err != nil {
			return result, err
		}

		result.Steps = append(result.Steps, StepRecord{Action: action, TimeStep: step})
		result.TotalReward += step.Reward
		observation = step.Observation

		if step.Last() {
			result.Terminated = step.Terminated
			result.Truncated = step.Truncated
			break
		}
	}
	return result, nil
}
