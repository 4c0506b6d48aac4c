package main

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"github.com/boristopalov/agentlab/internal/nbconvert"
	"github.com/boristopalov/agentlab/pkg/config"
	"github.com/boristopalov/agentlab/pkg/experiment"
	"github.com/boristopalov/agentlab/pkg/gym"
	"github.com/boristopalov/agentlab/pkg/providers"
)

const defaultPrompt = "Hello, I'm learning about AI agents!"

func (a *app) envCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "Report the runtime, API key availability and course settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)

			fmt.Fprintln(w, "Environment")
			for _, f := range config.CheckEnvironment() {
				fmt.Fprintf(w, "  %s\t%s\n", f.Key, f.Value)
			}

			s := a.settings
			fmt.Fprintln(w, "Settings")
			fmt.Fprintf(w, "  model_name\t%s\n", s.ModelName)
			fmt.Fprintf(w, "  embedding_model\t%s\n", s.EmbeddingModel)
			fmt.Fprintf(w, "  gym_env\t%s\n", s.GymEnv)
			fmt.Fprintf(w, "  debug_mode\t%t\n", s.DebugMode)
			fmt.Fprintf(w, "  api_timeout\t%s\n", s.APITimeout)
			fmt.Fprintf(w, "  api_retries\t%d\n", s.APIRetries)
			fmt.Fprintf(w, "  data_dir\t%s\n", s.DataDir)
			fmt.Fprintf(w, "  models_dir\t%s\n", s.ModelsDir)

			custom := config.CustomVariables(config.CoursePrefixes)
			if len(custom) > 0 {
				fmt.Fprintln(w, "Custom variables")
				for _, f := range custom {
					fmt.Fprintf(w, "  %s\t%s\n", f.Key, f.Value)
				}
			}
			return w.Flush()
		},
	}
}

func (a *app) cartpoleCmd() *cobra.Command {
	var (
		envName    string
		policyName string
		seed       int64
		steps      int
		show       int
	)
	cmd := &cobra.Command{
		Use:   "cartpole",
		Short: "Balance a pole with a fixed policy and report the episode",
		RunE: func(cmd *cobra.Command, args []string) error {
			if envName == "" {
				envName = a.settings.GymEnv
			}
			e, err := gym.Make(envName, seed)
			if err != nil {
				return err
			}
			defer e.Close()

			var p experiment.Policy
			switch policyName {
			case "pole":
				p = experiment.PoleAnglePolicy{}
			case "random":
				p = experiment.RandomPolicy{Space: e.ActionSpace()}
			default:
				return fmt.Errorf("unknown policy %q, want pole or random", policyName)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Environment: %s\n", e)
			fmt.Fprintf(out, "Action space: %s\n", e.ActionSpace())
			fmt.Fprintf(out, "Observation space: %s\n", e.ObservationSpace())

			a.logger.Info().Str("env", envName).Str("policy", policyName).Int64("seed", seed).Msg("running episode")
			result, err := experiment.RunEpisode(cmd.Context(), e, p, steps)
			if err != nil {
				return err
			}

			for i, s := range result.Steps {
				if i >= show {
					break
				}
				fmt.Fprintf(out, "Step %d: action=%d observation=%v reward=%g\n",
					s.Number, s.Action, mat.Formatted(s.Observation.T(), mat.Squeeze()), s.Reward)
			}
			fmt.Fprintf(out, "Episode finished after %d steps, total reward %g (terminated=%t truncated=%t)\n",
				result.Length(), result.TotalReward, result.Terminated, result.Truncated)
			return nil
		},
	}
	cmd.Flags().StringVar(&envName, "env", "", "environment name (default: GYM_ENV)")
	cmd.Flags().StringVar(&policyName, "policy", "pole", "policy to follow: pole or random")
	cmd.Flags().Int64Var(&seed, "seed", 42, "random seed")
	cmd.Flags().IntVar(&steps, "steps", 100, "maximum steps, 0 runs until the episode ends")
	cmd.Flags().IntVar(&show, "show", 5, "number of steps to print")
	return cmd
}

func (a *app) modelCmd() *cobra.Command {
	var name, baseURL string
	cmd := &cobra.Command{
		Use:   "model [prompt]",
		Short: "Load a hosted model and complete a prompt",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				name = a.settings.ModelName
			}
			prompt := defaultPrompt
			if len(args) == 1 {
				prompt = args[0]
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), a.settings.APITimeout*time.Duration(a.settings.APIRetries+1))
			defer cancel()

			opts := []providers.ProviderOption{
				providers.WithTimeout(a.settings.APITimeout),
				providers.WithMaxRetries(a.settings.APIRetries),
			}
			if baseURL != "" {
				opts = append(opts, providers.WithBaseURL(baseURL))
			}
			m, err := providers.Load(ctx, name, opts...)
			if err != nil {
				return fmt.Errorf("load model %s: %w", name, err)
			}
			a.logger.Info().Str("model", m.Name()).Msg("model loaded")

			reply, err := m.Complete(ctx, prompt)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), reply)
			return err
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "model name, e.g. openai/gpt-4o-mini or gemini/gemini-2.0-flash (default: MODEL_NAME)")
	cmd.Flags().StringVar(&baseURL, "base-url", "", "override the provider endpoint")
	return cmd
}

func (a *app) convertCmd() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert cell-marked Python scripts into executed notebooks",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := nbconvert.NewConverter(dir, a.logger).Run(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "found %d, converted %d, skipped %d, failed %d\n",
				res.Found, len(res.Converted), len(res.Skipped), len(res.Failed))
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", nbconvert.DefaultDir, "directory holding the scripts")
	return cmd
}
