package env

import (
	stderrors "errors"
	"fmt"

	"github.com/kbukum/envguard/errors"
	"github.com/kbukum/envguard/logger"
	"github.com/kbukum/envguard/util"
)

// Result is what a Reporter receives once every declared key has been
// evaluated.
type Result struct {
	// Errors maps each failed key to its error.
	Errors map[string]error
	// Env holds the values validated so far.
	Env Values
	// Raw is the environment the values were read from.
	Raw Source
	// Keys lists the declared keys in evaluation order.
	Keys []string
	// Mode is the value of the mode variable, empty when unset.
	Mode string
}

// HasErrors reports whether any key failed.
func (r Result) HasErrors() bool {
	return len(r.Errors) > 0
}

// FailedKeys returns the failed keys in declared order.
func (r Result) FailedKeys() []string {
	keys := make([]string, 0, len(r.Errors))
	for _, k := range r.Keys {
		if _, ok := r.Errors[k]; ok {
			keys = append(keys, k)
		}
	}
	return keys
}

// MissingKeys returns the keys that failed because no value was available.
func (r Result) MissingKeys() []string {
	return util.Filter(r.FailedKeys(), func(k string) bool {
		return errors.IsMissing(r.Errors[k])
	})
}

// InvalidKeys returns the keys that failed for any other reason.
func (r Result) InvalidKeys() []string {
	return util.Filter(r.FailedKeys(), func(k string) bool {
		return !errors.IsMissing(r.Errors[k])
	})
}

// UnknownKeys returns raw keys that no spec declares, sorted. When
// prefixes are given only keys starting with one of them are returned.
func (r Result) UnknownKeys(prefixes ...string) []string {
	if r.Raw == nil {
		return nil
	}
	declared := make(map[string]struct{}, len(r.Keys))
	for _, k := range r.Keys {
		declared[k] = struct{}{}
	}
	var unknown []string
	for _, k := range util.Unique(r.Raw.Keys()) {
		if _, ok := declared[k]; ok {
			continue
		}
		if len(prefixes) > 0 && !util.HasAnyPrefix(k, prefixes) {
			continue
		}
		unknown = append(unknown, k)
	}
	return util.SortStrings(unknown)
}

// Err joins every error in declared order, or returns nil.
func (r Result) Err() error {
	if !r.HasErrors() {
		return nil
	}
	errs := make([]error, 0, len(r.Errors))
	for _, k := range r.FailedKeys() {
		errs = append(errs, r.Errors[k])
	}
	return stderrors.Join(errs...)
}

type options struct {
	reporter      Reporter
	reporterSet   bool
	strict        bool
	middleware    []Middleware
	middlewareSet bool
	modeKey       string
	logger        *logger.Logger
}

// Option configures Clean and Check.
type Option func(*options)

// WithReporter replaces the default reporter. A nil reporter, including
// a nil *DefaultReporter or a nil ReporterFunc, selects strict mode like
// WithoutReporter.
func WithReporter(r Reporter) Option {
	if isNil(r) {
		return WithoutReporter()
	}
	return func(o *options) {
		o.reporter = r
		o.reporterSet = true
		o.strict = false
	}
}

// WithoutReporter disables reporting. Clean then returns the first error
// in declared order and evaluates no later key.
func WithoutReporter() Option {
	return func(o *options) {
		o.reporter = nil
		o.reporterSet = true
		o.strict = true
	}
}

// WithMiddleware replaces the default middleware catalog. Call it with no
// arguments to run no middleware at all.
func WithMiddleware(m ...Middleware) Option {
	return func(o *options) {
		o.middleware = m
		o.middlewareSet = true
	}
}

// WithModeKey changes the variable read to determine the mode.
func WithModeKey(key string) Option {
	return func(o *options) { o.modeKey = key }
}

// WithLogger sets the logger handed to the default reporter.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.logger = l }
}

func newOptions(opts []Option) *options {
	o := &options{modeKey: DefaultModeKey}
	for _, opt := range opts {
		opt(o)
	}
	if !o.reporterSet {
		o.reporter = &DefaultReporter{Logger: o.logger}
	}
	if !o.middlewareSet {
		o.middleware = DefaultMiddleware(o.modeKey)
	}
	return o
}

// Clean validates raw against specs and returns the frozen configuration.
//
// Every declared key is evaluated; failures are collected and handed, with
// the validated values, to the reporter exactly once. The default reporter
// exits the process when anything failed. Middleware then runs in order
// and the result is frozen. The returned error is only non-nil in strict
// mode (WithoutReporter), where it is the first failure in declared order.
func Clean(raw Source, specs Specs, opts ...Option) (*Config, error) {
	o := newOptions(opts)
	if raw == nil {
		raw = Map(nil)
	}

	res, err := evaluate(raw, specs, o.modeKey, o.strict)
	if err != nil {
		return nil, err
	}

	if o.reporter != nil {
		report := res
		report.Env = res.Env.clone()
		o.reporter.Report(report)
	}

	values := res.Env
	for _, m := range o.middleware {
		if m == nil {
			continue
		}
		values = m(values, raw)
		if values == nil {
			values = Values{}
		}
	}
	return freeze(values), nil
}

// MustClean is like Clean but panics if Clean returns an error.
func MustClean(raw Source, specs Specs, opts ...Option) *Config {
	cfg, err := Clean(raw, specs, opts...)
	if err != nil {
		panic(fmt.Sprintf("env: %v", err))
	}
	return cfg
}

// Check runs only the validation pass and returns its Result. It never
// reports, runs no middleware and ignores reporter options.
func Check(raw Source, specs Specs, opts ...Option) Result {
	o := newOptions(opts)
	if raw == nil {
		raw = Map(nil)
	}
	res, _ := evaluate(raw, specs, o.modeKey, false)
	return res
}

func evaluate(raw Source, specs Specs, modeKey string, strict bool) (Result, error) {
	entries := specs.normalize()
	mode, _ := raw.Lookup(modeKey)
	res := Result{
		Errors: make(map[string]error),
		Env:    make(Values, len(entries)),
		Raw:    raw,
		Keys:   make([]string, 0, len(entries)),
		Mode:   mode,
	}
	for _, e := range entries {
		res.Keys = append(res.Keys, e.Key)
	}

	for _, e := range entries {
		value, present, err := validateVar(e.Key, e.Spec, raw, mode)
		if err != nil {
			if strict {
				return res, err
			}
			res.Errors[e.Key] = err
			continue
		}
		if present {
			res.Env[e.Key] = value
		}
	}
	return res, nil
}
