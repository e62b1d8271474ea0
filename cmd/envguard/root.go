package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/kbukum/envguard/logger"
	"github.com/kbukum/envguard/version"
)

// app carries what every subcommand shares.
type app struct {
	stdout   io.Writer
	stderr   io.Writer
	environ  []string
	settings settings
	log      *logger.Logger
}

func newRootCmd(stdout, stderr io.Writer, environ []string) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr, environ: environ}
	var settingsErr error
	a.settings, settingsErr = loadSettings(environ)

	root := &cobra.Command{
		Use:   "envguard",
		Short: "Validate environment variables against a schema",
		Long: `envguard validates environment variables against a declarative schema.

Every variable is checked before anything is reported, so one run lists
every missing or invalid variable. Values come from the process
environment, .env files and --set flags.`,
		Version:       version.Get().Short(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if settingsErr != nil {
				return fmt.Errorf("invalid envguard settings: %w", settingsErr)
			}
			cfg := a.settings.loggerConfig()
			if err := cfg.Validate(); err != nil {
				return err
			}
			a.log = logger.NewWithWriter(cfg, a.stderr, "envguard")
			return nil
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	addLoggingFlags(root.PersistentFlags(), &a.settings)

	root.AddCommand(newCheckCmd(a))
	root.AddCommand(newDescribeCmd(a))
	root.AddCommand(newVersionCmd(a))
	return root
}

func newVersionCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return version.Get().Write(a.stdout, asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")
	return cmd
}
