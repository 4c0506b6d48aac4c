package experiment

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/boristopalov/agentlab/pkg/environment"
	"github.com/rs/zerolog"
)

type ExperimentStatus struct {
	Running   bool
	StartTime time.Time
	EndTime   time.Time
	Steps     int
	Errors    []error
}

type LessonConfig struct {
	Name string
	// Steps caps the number of steps; zero plays the whole script
	Steps int
	// StepInterval pauses between steps so a class can follow along
	StepInterval time.Duration
}

// Lesson plays a scripted Home environment step by step.
type Lesson struct {
	name      string
	steps     int
	interval  time.Duration
	env       *environment.Home
	logger    zerolog.Logger
	mu        sync.RWMutex
	status    ExperimentStatus
	decisions []environment.Decision
}

func NewLesson(cfg LessonConfig, env *environment.Home, logger zerolog.Logger) *Lesson {
	return &Lesson{
		name:     cfg.Name,
		steps:    cfg.Steps,
		interval: cfg.StepInterval,
		env:      env,
		logger:   logger.With().Str("lesson", cfg.Name).Logger(),
	}
}

// Run plays the lesson until the script ends, the step cap is reached or ctx
// is done. It returns every decision taken, in order.
func (l *Lesson) Run(ctx context.Context) ([]environment.Decision, error) {
	l.mu.Lock()
	l.status = ExperimentStatus{Running: true, StartTime: time.Now()}
	l.decisions = nil
	l.mu.Unlock()

	defer func() {
		l.mu.Lock()
		l.status.Running = false
		l.status.EndTime = time.Now()
		l.mu.Unlock()
	}()

	l.logger.Debug().Int("agents", len(l.env.GetAgents())).Msg("lesson starting")
	err := l.runLoop(ctx)
	if err != nil {
		l.mu.Lock()
		l.status.Errors = append(l.status.Errors, err)
		l.mu.Unlock()
	}
	return l.Decisions(), err
}

func (l *Lesson) runLoop(ctx context.Context) error {
	for i := 0; l.steps <= 0 || i < l.steps; i++ {
		if i > 0 && l.interval > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(l.interval):
			}
		}

		decisions, err := l.env.Step(ctx)
		if errors.Is(err, environment.ErrScriptDone) {
			return nil
		}
		if err != nil {
			return err
		}

		l.mu.Lock()
		l.status.Steps++
		l.decisions = append(l.decisions, decisions...)
		l.mu.Unlock()

		for _, d := range decisions {
			l.logger.Debug().Int("step", i+1).Str("agent", d.Name).Str("action", d.Action).Msg("decision")
		}
	}
	return nil
}

func (l *Lesson) Name() string {
	return l.name
}

func (l *Lesson) GetStatus() ExperimentStatus {
	l.mu.RLock()
	defer l.mu.RUnlock()

	status := l.status
	status.Errors = append([]error(nil), l.status.Errors...)
	return status
}

// Decisions returns a copy of the decisions taken so far.
func (l *Lesson) Decisions() []environment.Decision {
	l.mu.RLock()
	defer l.mu.RUnlock()

	decisions := make([]environment.Decision, len(l.decisions))
	copy(decisions, l.decisions)
	return decisions
}
