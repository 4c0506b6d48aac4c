package main

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/boristopalov/agentlab/pkg/agent"
	"github.com/boristopalov/agentlab/pkg/environment"
	"github.com/boristopalov/agentlab/pkg/experiment"
	"github.com/boristopalov/agentlab/pkg/messaging"
	"github.com/boristopalov/agentlab/pkg/policy"
	"github.com/boristopalov/agentlab/pkg/transcript"
)

const transcriptSubscriber = "transcript"

func (a *app) introCmd() *cobra.Command {
	var (
		transcriptPath string
		interval       time.Duration
	)
	cmd := &cobra.Command{
		Use:   "intro",
		Short: "Run the simple reflex and model-based agent lessons",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runIntro(cmd, transcriptPath, interval)
		},
	}
	cmd.Flags().StringVar(&transcriptPath, "transcript", "", "SQLite file to keep the transcript in")
	cmd.Flags().DurationVar(&interval, "interval", 0, "pause between lesson steps")
	return cmd
}

func (a *app) runIntro(cmd *cobra.Command, transcriptPath string, interval time.Duration) error {
	ctx := cmd.Context()

	broker := messaging.NewBroker()
	defer broker.Reset()

	sinks := []transcript.Sink{transcript.NewPrinter(cmd.OutOrStdout())}
	if transcriptPath != "" {
		store, err := transcript.Open(transcriptPath)
		if err != nil {
			return err
		}
		defer store.Close()
		sinks = append(sinks, store)
	}

	ch := make(chan messaging.Message, 64)
	if err := broker.Subscribe(transcriptSubscriber, ch); err != nil {
		return err
	}

	session := uuid.NewString()
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := transcript.Listen(ctx, session, ch, a.logger, sinks...); err != nil {
			a.logger.Warn().Err(err).Msg("transcript listener stopped early")
		}
	}()

	opts := []agent.AgentOption{agent.WithBroker(broker), agent.WithLogger(a.logger)}
	lessons := []struct {
		name   string
		agent  agent.Agent
		script []environment.Stimulus
	}{
		{"simple reflex agent", agent.NewReflexAgent("ThermoBot", opts...), environment.ThermostatScript()},
		{"model-based agent", agent.NewModelBasedAgent("HomeBot", opts...), environment.HouseholdScript()},
	}

	var runErr error
	for _, l := range lessons {
		home := environment.NewHome(l.script...)
		if err := home.AddAgent(l.agent); err != nil {
			runErr = err
			break
		}
		lesson := experiment.NewLesson(experiment.LessonConfig{Name: l.name, StepInterval: interval}, home, a.logger)
		if _, err := lesson.Run(ctx); err != nil {
			runErr = fmt.Errorf("lesson %q: %w", l.name, err)
			break
		}
	}

	if err := broker.Unsubscribe(transcriptSubscriber); err != nil {
		a.logger.Warn().Err(err).Msg("unsubscribe transcript")
	}
	close(ch)
	wg.Wait()

	if runErr == nil && transcriptPath != "" {
		a.logger.Info().Str("session", session).Str("path", transcriptPath).Msg("transcript saved")
	}
	return runErr
}

func (a *app) decideCmd() *cobra.Command {
	var (
		percept     string
		temperature float64
		lightLevel  string
		timeOfDay   string
	)
	cmd := &cobra.Command{
		Use:   "decide",
		Short: "Ask a policy for an action",
		Long: `With --percept the reflex policy decides. Otherwise the given
observation fields update the state-tracking policy, whose defaults fill in
anything left out.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if cmd.Flags().Changed("percept") {
				p := policy.NewReflexPolicy()
				p.Perceive(policy.Percept(percept))
				_, err := fmt.Fprintln(out, p.Act())
				return err
			}

			var obs policy.Observation
			if cmd.Flags().Changed("temperature") {
				obs = obs.WithTemperature(temperature)
			}
			if cmd.Flags().Changed("light") {
				obs = obs.WithLightLevel(lightLevel)
			}
			if cmd.Flags().Changed("time") {
				obs = obs.WithTimeOfDay(timeOfDay)
			}
			p := policy.NewStateTrackingPolicy()
			record := p.UpdateState(obs)
			a.logger.Debug().Stringer("state", record).Msg("state updated")
			_, err := fmt.Fprintln(out, p.Act())
			return err
		},
	}
	cmd.Flags().StringVar(&percept, "percept", "", `reflex percept ("too hot", "too cold", "dark")`)
	cmd.Flags().Float64Var(&temperature, "temperature", policy.DefaultTemperature, "temperature in Celsius")
	cmd.Flags().StringVar(&lightLevel, "light", policy.DefaultLightLevel, "light level (bright, dark)")
	cmd.Flags().StringVar(&timeOfDay, "time", policy.DefaultTimeOfDay, "time of day (day, night)")
	return cmd
}
