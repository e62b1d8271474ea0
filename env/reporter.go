package env

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kbukum/envguard/errors"
	"github.com/kbukum/envguard/logger"
)

// Reporter surfaces the outcome of a validation pass. Clean calls it once,
// after every key is evaluated and before middleware runs.
type Reporter interface {
	Report(res Result)
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(res Result)

// Report implements Reporter.
func (f ReporterFunc) Report(res Result) { f(res) }

// UnknownKeyPolicy decides what happens to raw keys no spec declares.
type UnknownKeyPolicy int

const (
	// UnknownIgnore skips undeclared keys.
	UnknownIgnore UnknownKeyPolicy = iota
	// UnknownWarn logs a warning per undeclared key.
	UnknownWarn
	// UnknownFail treats undeclared keys as errors.
	UnknownFail
)

// DefaultReporter prints a consolidated diagnostic and exits with code 1
// when any key failed. Zero fields fall back to os.Stderr, os.Exit and the
// global logger.
type DefaultReporter struct {
	Logger *logger.Logger
	Output io.Writer
	Exit   func(code int)

	// UnknownKeys applies to raw keys matching UnknownPrefixes, or to all
	// raw keys when no prefix is set.
	UnknownKeys     UnknownKeyPolicy
	UnknownPrefixes []string
}

// Report implements Reporter.
func (r *DefaultReporter) Report(res Result) {
	log := r.resolveLogger()

	var unknown []error
	if r.UnknownKeys != UnknownIgnore {
		for _, k := range res.UnknownKeys(r.UnknownPrefixes...) {
			if r.UnknownKeys == UnknownWarn {
				log.Warn("environment variable is set but not declared", logger.Fields(logger.FieldKey, k))
				continue
			}
			unknown = append(unknown, errors.UnknownKey(k))
		}
	}

	if !res.HasErrors() && len(unknown) == 0 {
		return
	}

	for _, k := range res.FailedKeys() {
		err := res.Errors[k]
		log.Error("invalid environment variable", logger.MergeWithError(
			logger.Fields(logger.FieldKey, k, logger.FieldCode, string(errors.CodeOf(err))), err))
	}
	for _, err := range unknown {
		log.Error("undeclared environment variable", logger.ErrorFields(err.(*errors.EnvError).Key, err))
	}

	out := r.Output
	if out == nil {
		out = os.Stderr
	}
	fmt.Fprint(out, FormatResult(res, unknown...))

	exit := r.Exit
	if exit == nil {
		exit = os.Exit
	}
	exit(1)
}

func (r *DefaultReporter) resolveLogger() *logger.Logger {
	if r.Logger != nil {
		return r.Logger.WithComponent("env")
	}
	return logger.GetGlobalLogger().WithComponent("env")
}

// LogReporter logs every failure and a summary but never exits.
type LogReporter struct {
	Logger *logger.Logger
}

// Report implements Reporter.
func (r LogReporter) Report(res Result) {
	log := r.Logger
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	if !res.HasErrors() {
		log.Debug("environment validated", logger.Fields(logger.FieldCount, len(res.Env), logger.FieldMode, res.Mode))
		return
	}
	for _, k := range res.FailedKeys() {
		log.Error("invalid environment variable", logger.ErrorFields(k, res.Errors[k]))
	}
	log.Warn("environment validation failed", logger.Fields(logger.FieldCount, len(res.Errors)))
}

const banner = "================================"

// FormatResult renders the consolidated diagnostic the DefaultReporter
// prints: invalid keys, then missing keys, each in declared order, then
// any extra errors (undeclared keys).
func FormatResult(res Result, extra ...error) string {
	var b strings.Builder
	b.WriteString(banner + "\n")

	if invalid := res.InvalidKeys(); len(invalid) > 0 {
		b.WriteString(" Invalid environment variables:\n")
		for _, k := range invalid {
			fmt.Fprintf(&b, "    %s: %s\n", k, messageOf(res.Errors[k]))
		}
	}
	if missing := res.MissingKeys(); len(missing) > 0 {
		b.WriteString(" Missing environment variables:\n")
		for _, k := range missing {
			fmt.Fprintf(&b, "    %s: %s\n", k, missingMessageOf(res.Errors[k]))
		}
	}
	if len(extra) > 0 {
		b.WriteString(" Undeclared environment variables:\n")
		for _, err := range extra {
			if envErr, ok := errors.AsEnvError(err); ok && envErr.Key != "" {
				fmt.Fprintf(&b, "    %s: %s\n", envErr.Key, envErr.Message)
				continue
			}
			fmt.Fprintf(&b, "    %s\n", err)
		}
	}

	b.WriteString("\n Exiting with error code 1\n")
	b.WriteString(banner + "\n")
	return b.String()
}

func messageOf(err error) string {
	if envErr, ok := errors.AsEnvError(err); ok {
		return envErr.Message
	}
	return err.Error()
}

func missingMessageOf(err error) string {
	if envErr, ok := errors.AsEnvError(err); ok {
		if desc, ok := envErr.Details["description"].(string); ok && desc != "" {
			return desc
		}
	}
	return "(required)"
}
