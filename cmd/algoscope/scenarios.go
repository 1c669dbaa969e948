package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/aretw0/algoscope/pkg/adapters/loam"
)

var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "List the scenarios of the library",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv(cmd)
		if err != nil {
			return err
		}
		if e.cfg.Scenarios.Dir == "" {
			return errors.New("no scenario directory: set scenarios.dir or pass --scenarios")
		}
		lib, err := loam.Open(e.cfg.Scenarios.Dir)
		if err != nil {
			return err
		}
		list, err := lib.List(cmd.Context())
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tALGORITHM\tTITLE")
		for _, s := range list {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", s.ID, s.Algorithm, s.Title)
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(scenariosCmd)
}
