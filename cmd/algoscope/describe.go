package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/algoscope/internal/cli"
	"github.com/aretw0/algoscope/internal/presentation/tui"
)

var describeCmd = &cobra.Command{
	Use:   "describe <algorithm>",
	Short: "Explain an algorithm",
	Long:  `Renders the catalogue notes of an algorithm as Markdown in the terminal.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv(cmd)
		if err != nil {
			return err
		}
		entry, err := e.newLab().Registry().Lookup(args[0])
		if err != nil {
			return err
		}

		md := fmt.Sprintf("# %s\n\n`%s` · %s\n\n%s\n", entry.Title, entry.Name, entry.Family, entry.Summary)
		out := cmd.OutOrStdout()
		if !cli.IsTerminal(os.Stdout) {
			_, err := fmt.Fprint(out, md)
			return err
		}
		render, err := tui.NewRenderer(cli.TerminalWidth(os.Stdout, 80))
		if err != nil {
			return err
		}
		rendered, err := render(md)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(out, rendered)
		return err
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
}
