// Package env validates and sanitizes a flat mapping of environment
// variables against declared typed specs and returns an immutable Config.
//
// It is meant to run once at process startup: every declared variable is
// resolved (explicit value, dev default, default), parsed and checked
// against its choices. Failures are aggregated and handed to a Reporter,
// whose default implementation prints a consolidated diagnostic and exits
// the process. After reporting, an ordered Middleware pipeline enriches the
// validated values before they are frozen.
//
// # Usage
//
//	specs := env.Specs{}.
//	    With("PORT", validators.Port().WithDefault(3000)).
//	    With("DATABASE_URL", validators.URL().WithDesc("Primary database"))
//
//	cfg, err := env.Clean(source.OS(), specs)
//	port, _ := env.Value[int](cfg, "PORT")
//
// # Modes
//
// The mode variable (NODE_ENV unless changed with WithModeKey) selects dev
// defaults: they apply whenever the mode is not exactly "production".
// Fallbacks built with TestOnly only resolve when the mode is exactly "test".
//
// # Strict mode
//
// WithoutReporter disables reporting: Clean returns the first error in
// declared order and evaluates no later keys.
package env
