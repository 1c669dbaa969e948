package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/algoscope/pkg/schema"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check an input document",
	Long: `Decodes the document, reports every field error and every edge that points to
an unknown node, then binds the declared algorithm to catch input it rejects.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv(cmd)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		doc, err := schema.ParseFile(args[0])
		if err != nil {
			return err
		}
		in, err := doc.Input()
		if err != nil {
			if fields := schema.Fields(err); len(fields) > 0 {
				for _, fe := range fields {
					fmt.Fprintf(out, "  - %v\n", fe)
				}
				return fmt.Errorf("validation failed: %d errors", len(fields))
			}
			return err
		}

		issues := schema.DanglingEdges(in.Graph.Validate())
		for _, fe := range issues {
			fmt.Fprintf(out, "  - %v\n", fe)
		}
		if doc.Algorithm != "" {
			if _, err := e.newLab().Steps(cmdContext(cmd), doc.Algorithm, in); err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}
		}
		if len(issues) > 0 {
			return errors.New("validation failed: dangling edges")
		}
		fmt.Fprintln(out, "Input is valid! ✅")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
