package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/algoscope/internal/cli"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [algorithm]",
	Short: "Play an algorithm step by step",
	Long: `Plays an algorithm over an input document or a scenario, pacing the steps by
the selected speed. Ctrl+C stops the run after the current step.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv(cmd)
		if err != nil {
			return err
		}
		opts := cli.RunOptions{
			Input:   inputOptions(cmd, e),
			Profile: cli.ColorProfile(os.Stdout),
		}
		if len(args) > 0 {
			opts.Algorithm = args[0]
		}
		opts.Speed, _ = cmd.Flags().GetString("speed")
		opts.JSON, _ = cmd.Flags().GetBool("json")
		opts.NoDelay, _ = cmd.Flags().GetBool("no-delay")

		ctx := cli.NewSignalContext(cmdContext(cmd))
		defer ctx.Cancel()
		if err := cli.Execute(ctx, e.newLab(), opts, cmd.OutOrStdout()); err != nil {
			return err
		}
		if sig := ctx.Signal(); sig != nil {
			e.logger.Debug("run interrupted", "signal", sig)
		}
		return nil
	},
}

func inputOptions(cmd *cobra.Command, e *env) cli.InputOptions {
	path, _ := cmd.Flags().GetString("input")
	scenario, _ := cmd.Flags().GetString("scenario")
	return cli.InputOptions{Path: path, ScenarioID: scenario, ScenarioDir: e.cfg.Scenarios.Dir}
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("input", "i", "", "YAML or JSON input document")
	cmd.Flags().StringP("scenario", "s", "", "Scenario ID from the library")
}

func init() {
	rootCmd.AddCommand(runCmd)
	addInputFlags(runCmd)
	runCmd.Flags().String("speed", "", "Speed label from the menu (e.g. 2x)")
	runCmd.Flags().Bool("json", false, "Emit steps as NDJSON")
	runCmd.Flags().Bool("no-delay", false, "Publish steps without pacing")
}
