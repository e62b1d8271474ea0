// Package source builds the raw environment handed to env.Clean.
//
// Sources are read once and snapshot into memory, so a Clean call never
// observes a change made while it runs:
//
//	raw, files, err := source.Load("billing-api")
//	cfg, err := env.Clean(raw, specs)
//
// Load searches the usual locations for a config.yml and a .env file and
// layers them under the process environment. The adapters it uses (OS,
// DotEnv, Viper, Layered) are exported for callers that assemble their
// own precedence.
package source
