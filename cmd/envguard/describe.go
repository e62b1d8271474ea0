package main

import (
	"github.com/spf13/cobra"

	"github.com/kbukum/envguard/schema"
)

func newDescribeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Print a markdown table documenting every variable",
		Long: `Print a markdown table documenting every variable in the schema.

Defaults of sensitive variables are masked.

Examples:
  envguard describe
  envguard describe --schema deploy/env.schema.yml > ENVIRONMENT.md`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			s, err := schema.ParseFile(a.settings.Schema)
			if err != nil {
				return err
			}
			return s.WriteMarkdown(a.stdout)
		},
	}
	cmd.Flags().StringVarP(&a.settings.Schema, "schema", "s", a.settings.Schema, "schema file (env: ENVGUARD_SCHEMA)")
	return cmd
}
