package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/boristopalov/agentlab/pkg/config"
)

// app carries what every subcommand needs once the root has loaded .env.
type app struct {
	envFile  string
	settings *config.Settings
	logger   zerolog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{
		settings: config.DefaultSettings(),
		logger:   zerolog.Nop(),
	}

	rootCmd := &cobra.Command{
		Use:   "agentlab",
		Short: "agentlab walks through simple AI agents: reflex, model-based and a CartPole sandbox.",
		Long: `agentlab runs the lessons of an introductory AI agents course.

Settings are read from the process environment after loading a .env file
(MODEL_NAME, GYM_ENV, API_TIMEOUT, LOG_LEVEL and friends).`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}
	rootCmd.PersistentFlags().StringVar(&a.envFile, "env-file", "", "path to a .env file (default: first of .env, ../.env, ../../.env)")

	rootCmd.AddCommand(
		a.introCmd(),
		a.decideCmd(),
		a.envCmd(),
		a.cartpoleCmd(),
		a.modelCmd(),
		a.convertCmd(),
	)
	return rootCmd
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	bootstrap := zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}).With().Timestamp().Logger()
	if _, err := config.LoadEnv(a.envFile, bootstrap); err != nil {
		return err
	}

	settings, err := config.LoadSettings()
	if err != nil {
		return err
	}
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	a.settings = settings
	a.logger = bootstrap.Level(settings.Level())
	a.logger.Debug().
		Str("model", settings.ModelName).
		Str("gym_env", settings.GymEnv).
		Dur("api_timeout", settings.APITimeout).
		Msg("settings loaded")
	return nil
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
