package main

import (
	"github.com/spf13/pflag"

	"github.com/kbukum/envguard/env"
	"github.com/kbukum/envguard/logger"
	"github.com/kbukum/envguard/source"
	"github.com/kbukum/envguard/validators"
)

const defaultSchema = "env.schema.yml"

// settings are the CLI's own options. They come from ENVGUARD_*
// variables and are overridden by flags.
type settings struct {
	Schema    string `env:"ENVGUARD_SCHEMA"`
	LogLevel  string `env:"ENVGUARD_LOG_LEVEL"`
	LogFormat string `env:"ENVGUARD_LOG_FORMAT"`
	NoColor   bool   `env:"ENVGUARD_NO_COLOR"`
}

func settingsSpecs() env.Specs {
	return env.Specs{}.
		With("ENVGUARD_SCHEMA", validators.Str().
			WithDefault(defaultSchema).
			WithDesc("Schema file read by check and describe")).
		With("ENVGUARD_LOG_LEVEL", validators.Str().
			WithChoices("debug", "info", "warn", "error", "disabled").
			WithDefault("warn").
			WithDesc("CLI log level")).
		With("ENVGUARD_LOG_FORMAT", validators.Str().
			WithChoices(logger.FormatConsole, logger.FormatJSON, logger.FormatPretty).
			WithDefault(logger.FormatConsole).
			WithDesc("CLI log format")).
		With("ENVGUARD_NO_COLOR", validators.Bool().
			WithDefault(false).
			WithDesc("Disable colored console logs"))
}

// loadSettings validates the CLI's own environment.
func loadSettings(environ []string) (settings, error) {
	var s settings
	cfg, err := env.Clean(source.FromEnviron(environ), settingsSpecs(), env.WithoutReporter(), env.WithMiddleware())
	if err != nil {
		return s, err
	}
	if err := cfg.Decode(&s); err != nil {
		return s, err
	}
	return s, nil
}

// addLoggingFlags registers the flags that override the logging settings.
func addLoggingFlags(fs *pflag.FlagSet, s *settings) {
	fs.StringVar(&s.LogLevel, "log-level", s.LogLevel, "log level (debug, info, warn, error, disabled; env: ENVGUARD_LOG_LEVEL)")
	fs.StringVar(&s.LogFormat, "log-format", s.LogFormat, "log format (console, json, pretty; env: ENVGUARD_LOG_FORMAT)")
	fs.BoolVar(&s.NoColor, "no-color", s.NoColor, "disable colored logs (env: ENVGUARD_NO_COLOR)")
}

func (s settings) loggerConfig() *logger.Config {
	cfg := &logger.Config{
		Level:   s.LogLevel,
		Format:  s.LogFormat,
		NoColor: s.NoColor,
	}
	cfg.ApplyDefaults()
	return cfg
}
