package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/algoscope"
	"github.com/aretw0/algoscope/internal/cli"
	"github.com/aretw0/algoscope/internal/presentation/tui"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of algoscope",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		if banner, _ := cmd.Flags().GetBool("banner"); banner {
			tui.PrintBanner(out, cli.ColorProfile(os.Stdout))
		}
		fmt.Fprintf(out, "algoscope version %s\n", strings.TrimSpace(algoscope.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().Bool("banner", false, "Print the logo above the version")
}
