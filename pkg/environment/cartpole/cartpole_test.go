package cartpole

import (
	"errors"
	"math"
	"testing"

	env "github.com/boristopalov/agentlab/pkg/environment"
)

func TestReset(t *testing.T) {
	c := New("CartPole-v1", MaxStepsV1, 42)
	step := c.Reset()

	if step.Number != 0 || step.Last() {
		t.Errorf("reset step should be first, got %v", step)
	}
	if step.Observation.Len() != ObservationDims {
		t.Fatalf("observation has %d features, want %d", step.Observation.Len(), ObservationDims)
	}
	for i := 0; i < ObservationDims; i++ {
		if v := step.Observation.AtVec(i); math.Abs(v) > StartBound {
			t.Errorf("feature %d = %v outside ±%v", i, v, StartBound)
		}
	}
}

func TestSeedIsDeterministic(t *testing.T) {
	a := New("CartPole-v1", MaxStepsV1, 7)
	b := New("CartPole-v1", MaxStepsV1, 7)

	sameObservation := func(step int, x, y env.TimeStep) {
		t.Helper()
		for j := 0; j < ObservationDims; j++ {
			if x.Observation.AtVec(j) != y.Observation.AtVec(j) {
				t.Fatalf("step %d feature %d differs: %v != %v", step, j,
					x.Observation.AtVec(j), y.Observation.AtVec(j))
			}
		}
	}
	sameObservation(0, a.Reset(), b.Reset())

	for i := 1; i <= 20; i++ {
		sa, errA := a.Step(i % 2)
		sb, errB := b.Step(i % 2)
		if errA != nil || errB != nil {
			t.Fatalf("step %d: %v, %v", i, errA, errB)
		}
		sameObservation(i, sa, sb)
		if sa.Last() != sb.Last() {
			t.Fatalf("step %d: Last() = %v, %v", i, sa.Last(), sb.Last())
		}
		if sa.Last() {
			break
		}
	}
}

func TestActionSpaceHasOwnStream(t *testing.T) {
	const seed = 3
	c := New("CartPole-v1", MaxStepsV1, seed)
	shared := env.NewDiscrete(2, seed)

	same := true
	for i := 0; i < 64; i++ {
		if c.ActionSpace().Sample() != shared.Sample() {
			same = false
		}
	}
	if same {
		t.Errorf("action samples follow the start-state seed exactly")
	}

	again := New("CartPole-v1", MaxStepsV1, seed)
	first := New("CartPole-v1", MaxStepsV1, seed)
	for i := 0; i < 16; i++ {
		if x, y := first.ActionSpace().Sample(), again.ActionSpace().Sample(); x != y {
			t.Fatalf("sample %d = %d and %d for the same seed", i, x, y)
		}
	}
}

func TestStepPushesCart(t *testing.T) {
	c := New("CartPole-v1", MaxStepsV1, 1)
	start := c.Reset().Observation.AtVec(1)

	step, err := c.Step(PushRight)
	if err != nil {
		t.Fatal(err)
	}
	if step.Reward != 1.0 {
		t.Errorf("reward = %v, want 1", step.Reward)
	}
	if step.Number != 1 {
		t.Errorf("step number = %v, want 1", step.Number)
	}
	if got := step.Observation.AtVec(1); got <= start {
		t.Errorf("pushing right should increase cart velocity: %v -> %v", start, got)
	}
}

func TestIllegalAction(t *testing.T) {
	c := New("CartPole-v1", MaxStepsV1, 1)
	for _, a := range []int{-1, 2} {
		if _, err := c.Step(a); !errors.Is(err, env.ErrIllegalAction) {
			t.Errorf("Step(%d) error = %v, want ErrIllegalAction", a, err)
		}
	}
}

func TestConstantPushTerminates(t *testing.T) {
	c := New("CartPole-v1", MaxStepsV1, 42)

	var last env.TimeStep
	for i := 0; i < MaxStepsV1; i++ {
		step, err := c.Step(PushRight)
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		last = step
		if step.Last() {
			break
		}
	}

	if !last.Terminated {
		t.Fatalf("always pushing right should topple the pole, last step %v", last)
	}
	if last.Number >= MaxStepsV1 {
		t.Errorf("terminated at step %d, expected well before the limit", last.Number)
	}
	if _, err := c.Step(PushLeft); !errors.Is(err, env.ErrEpisodeDone) {
		t.Errorf("Step after termination error = %v, want ErrEpisodeDone", err)
	}

	c.Reset()
	if _, err := c.Step(PushLeft); err != nil {
		t.Errorf("Step after Reset: %v", err)
	}
}

func TestTruncation(t *testing.T) {
	c := New("CartPole-v0", 3, 42)

	var last env.TimeStep
	for i := 0; i < 3; i++ {
		step, err := c.Step(i % 2)
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		last = step
	}
	if !last.Truncated || last.Terminated {
		t.Errorf("third step should truncate, got %v", last)
	}
}

func TestTerminationOnLastAllowedStepAlsoTruncates(t *testing.T) {
	free := New("CartPole-v1", MaxStepsV1, 11)
	fallsAt := 0
	for {
		step, err := free.Step(PushRight)
		if err != nil {
			t.Fatalf("step %d: %v", fallsAt+1, err)
		}
		if step.Last() {
			if !step.Terminated {
				t.Fatalf("expected termination, got %v", step)
			}
			fallsAt = step.Number
			break
		}
	}

	limited := New("CartPole-v1", fallsAt, 11)
	var last env.TimeStep
	for i := 0; i < fallsAt; i++ {
		step, err := limited.Step(PushRight)
		if err != nil {
			t.Fatalf("step %d: %v", i+1, err)
		}
		last = step
	}
	if !last.Terminated || !last.Truncated {
		t.Errorf("step %d should be both terminated and truncated, got %v", fallsAt, last)
	}
}

func TestSpaces(t *testing.T) {
	c := New("CartPole-v1", MaxStepsV1, 0)

	if got := c.ActionSpace().String(); got != "Discrete(2)" {
		t.Errorf("ActionSpace() = %v, want Discrete(2)", got)
	}
	for i := 0; i < 20; i++ {
		if a := c.ActionSpace().Sample(); !c.ActionSpace().Contains(a) {
			t.Errorf("Sample() = %d outside the space", a)
		}
	}

	obs := c.ObservationSpace()
	if obs.Len() != ObservationDims {
		t.Fatalf("ObservationSpace().Len() = %d", obs.Len())
	}
	if got := obs.High.AtVec(0); got != 4.8 {
		t.Errorf("position bound = %v, want 4.8", got)
	}
	if !math.IsInf(obs.High.AtVec(1), 1) {
		t.Errorf("velocity bound should be +Inf")
	}
}
