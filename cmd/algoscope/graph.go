package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/algoscope/internal/cli"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph [algorithm]",
	Short: "Export the input graph as a Mermaid diagram",
	Long: `Outputs a Mermaid flowchart (graph LR) of the input graph. With an algorithm,
the diagram is overlaid with the state after --step steps (the last step by default).`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv(cmd)
		if err != nil {
			return err
		}
		opts := cli.GraphOptions{Input: inputOptions(cmd, e), Step: -1}
		if len(args) > 0 {
			opts.Algorithm = args[0]
		}
		if step, _ := cmd.Flags().GetInt("step"); step > 0 {
			opts.Step = step - 1
		}

		output, err := cli.RenderGraph(cmdContext(cmd), e.newLab(), opts)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), output)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	addInputFlags(graphCmd)
	graphCmd.Flags().Int("step", 0, "1-based step to overlay (0 = last)")
}
