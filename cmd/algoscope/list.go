package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/aretw0/algoscope/pkg/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the available algorithms",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv(cmd)
		if err != nil {
			return err
		}
		entries := e.newLab().Algorithms()
		out := cmd.OutOrStdout()

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(entries)
		}

		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tFAMILY\tTITLE\tNEEDS")
		for _, entry := range entries {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", entry.Name, entry.Family, entry.Title, needs(entry))
		}
		return tw.Flush()
	},
}

func needs(e registry.Entry) string {
	var s string
	add := func(ok bool, label string) {
		if !ok {
			return
		}
		if s != "" {
			s += ","
		}
		s += label
	}
	add(e.NeedsStart, "start")
	add(e.NeedsGoal, "goal")
	add(e.NeedsWeights, "weights")
	if s == "" {
		return "-"
	}
	return s
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().Bool("json", false, "Print the catalogue as JSON")
}
