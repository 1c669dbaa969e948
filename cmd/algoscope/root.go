package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/algoscope"
	"github.com/aretw0/algoscope/internal/config"
	"github.com/aretw0/algoscope/internal/logging"
	"github.com/aretw0/algoscope/pkg/observability"
)

var rootCmd = &cobra.Command{
	Use:   "algoscope",
	Short: "Algoscope plays sorting, searching and graph algorithms step by step",
	Long: `Algoscope turns classic algorithms into paced sequences of steps.
Feed it an array or a graph as YAML/JSON, or pick a scenario, and watch every
comparison, swap and relaxation in the terminal or over HTTP.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", config.DefaultPath, "Configuration file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (overrides the config file)")
	rootCmd.PersistentFlags().String("scenarios", "", "Directory holding the scenario library (overrides the config file)")
}

// env bundles what every command builds from the flags and the config file.
type env struct {
	cfg    *config.Config
	logger *slog.Logger
}

func loadEnv(cmd *cobra.Command) (*env, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.LogLevel = lvl
	}
	if dir, _ := cmd.Flags().GetString("scenarios"); dir != "" {
		cfg.Scenarios.Dir = dir
	}
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, logger: logging.New(level)}, nil
}

// newLab builds the Lab with logging hooks and the configured speed menu.
// extra hooks (metrics) are merged on top.
func (e *env) newLab(opts ...algoscope.Option) *algoscope.Lab {
	all := []algoscope.Option{
		algoscope.WithLogger(e.logger),
		algoscope.WithLifecycleHooks(observability.LoggingHooks(e.logger)),
		algoscope.WithPlaybackOptions(e.cfg.PlaybackOptions()...),
	}
	return algoscope.New(append(all, opts...)...)
}
