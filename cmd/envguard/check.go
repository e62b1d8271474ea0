package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kbukum/envguard/env"
	"github.com/kbukum/envguard/logger"
	"github.com/kbukum/envguard/schema"
	"github.com/kbukum/envguard/source"
	"github.com/kbukum/envguard/util"
)

// errCheckFailed is returned after the reporter has printed the failures.
var errCheckFailed = errors.New("environment check failed")

type checkOptions struct {
	envFiles []string
	sets     []string
	mode     string
	noOS     bool
	unknown  string
	prefixes []string
}

var unknownPolicies = map[string]env.UnknownKeyPolicy{
	"ignore": env.UnknownIgnore,
	"warn":   env.UnknownWarn,
	"fail":   env.UnknownFail,
}

func newCheckCmd(a *app) *cobra.Command {
	var opts checkOptions
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the environment against the schema",
		Long: `Validate the environment against the schema.

Precedence, highest first: --set values, the process environment, then
--env-file files in the order given. Every variable is checked and all
failures are printed together; the command exits 1 if any failed.

Examples:
  envguard check
  envguard check --env-file .env --env-file .env.local
  envguard check --no-os --env-file .env.production --mode production
  envguard check --unknown fail --prefix APP_`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return a.runCheck(opts)
		},
	}
	cmd.Flags().StringVarP(&a.settings.Schema, "schema", "s", a.settings.Schema, "schema file (env: ENVGUARD_SCHEMA)")
	cmd.Flags().StringArrayVarP(&opts.envFiles, "env-file", "e", nil, "dotenv file to read (repeatable)")
	cmd.Flags().StringArrayVar(&opts.sets, "set", nil, "KEY=VALUE override (repeatable)")
	cmd.Flags().StringVar(&opts.mode, "mode", "", "mode to validate for (development, test, production)")
	cmd.Flags().BoolVar(&opts.noOS, "no-os", false, "ignore the process environment")
	cmd.Flags().StringVar(&opts.unknown, "unknown", "ignore", "undeclared variables: ignore, warn or fail")
	cmd.Flags().StringSliceVar(&opts.prefixes, "prefix", nil, "only check undeclared variables with these prefixes")
	return cmd
}

func (a *app) runCheck(opts checkOptions) error {
	policy, ok := unknownPolicies[opts.unknown]
	if !ok {
		return fmt.Errorf("invalid --unknown value %q (want ignore, warn or fail)", opts.unknown)
	}

	s, err := schema.ParseFile(a.settings.Schema)
	if err != nil {
		return err
	}
	specs, err := s.Specs()
	if err != nil {
		return err
	}

	overrides, err := parseSets(opts.sets)
	if err != nil {
		return err
	}
	modeKey := util.Coalesce(s.ModeKey, env.DefaultModeKey)
	if opts.mode != "" {
		overrides[modeKey] = opts.mode
	}

	var files env.Map
	if len(opts.envFiles) > 0 {
		if files, err = source.DotEnv(opts.envFiles...); err != nil {
			return err
		}
	}
	var osEnv env.Source
	if !opts.noOS {
		osEnv = source.FromEnviron(a.environ)
	}
	raw := source.Snapshot(source.Layered(overrides, osEnv, files))

	prefixes := opts.prefixes
	if len(prefixes) == 0 {
		prefixes = s.Prefixes
	}

	failed := false
	reporter := &env.DefaultReporter{
		Logger:          a.log,
		Output:          a.stderr,
		Exit:            func(int) { failed = true },
		UnknownKeys:     policy,
		UnknownPrefixes: prefixes,
	}
	cleanOpts := append(s.Options(), env.WithReporter(reporter), env.WithLogger(a.log))
	cfg, err := env.Clean(raw, specs, cleanOpts...)
	if err != nil {
		return err
	}
	if failed {
		return errCheckFailed
	}

	mode, _ := raw.Lookup(modeKey)
	a.log.Info("environment validated", logger.Fields(logger.FieldCount, len(specs.Keys()), logger.FieldMode, mode))
	fmt.Fprintf(a.stdout, "ok: %d of %d variables set (mode %s)\n", countDeclared(cfg, specs), len(specs.Keys()), displayMode(mode))
	return nil
}

// parseSets parses KEY=VALUE flags. Values are unquoted and trimmed.
func parseSets(sets []string) (env.Map, error) {
	m := make(env.Map, len(sets))
	for _, set := range sets {
		key, value, ok := strings.Cut(set, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --set %q (want KEY=VALUE)", set)
		}
		m[key] = util.SanitizeEnvValue(value)
	}
	return m, nil
}

func countDeclared(cfg *env.Config, specs env.Specs) int {
	return len(util.Filter(specs.Keys(), cfg.Has))
}

func displayMode(mode string) string {
	if mode == "" {
		return "unset"
	}
	return mode
}
