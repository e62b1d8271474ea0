package env

import (
	"fmt"
	"time"

	"github.com/go-viper/mapstructure/v2"

	"github.com/kbukum/envguard/errors"
	"github.com/kbukum/envguard/util"
)

// Config is the frozen result of Clean. It holds a private deep copy of
// the values and exposes no mutators. Slices and maps handed out by the
// accessors are copies, so writing to them never changes later reads.
type Config struct {
	values map[string]any
	keys   []string
}

func freeze(v Values) *Config {
	values := make(map[string]any, len(v))
	for k, val := range v {
		values[k] = clone(val)
	}
	return &Config{values: values, keys: util.SortedKeys(values)}
}

// Get returns key's value, nil when absent.
func (c *Config) Get(key string) any {
	return clone(c.values[key])
}

// Lookup returns key's value and whether it is present.
func (c *Config) Lookup(key string) (any, bool) {
	v, ok := c.values[key]
	return clone(v), ok
}

// MustGet returns key's value and panics with an *errors.EnvError when the
// key is absent, which catches typos in variable names early.
func (c *Config) MustGet(key string) any {
	v, ok := c.values[key]
	if !ok {
		panic(errors.New(errors.ErrCodeUnknownKey, key, fmt.Sprintf("env var not found: %q", key)))
	}
	return clone(v)
}

// Has reports whether key is present.
func (c *Config) Has(key string) bool {
	_, ok := c.values[key]
	return ok
}

// Keys returns the present keys, sorted.
func (c *Config) Keys() []string {
	out := make([]string, len(c.keys))
	copy(out, c.keys)
	return out
}

// Len returns the number of present keys.
func (c *Config) Len() int {
	return len(c.values)
}

// All returns a copy of every key and value.
func (c *Config) All() map[string]any {
	out := make(map[string]any, len(c.values))
	for k, v := range c.values {
		out[k] = clone(v)
	}
	return out
}

// String returns key's value when it is a string.
func (c *Config) String(key string) string {
	s, _ := Value[string](c, key)
	return s
}

// Int returns key's value when it is an int.
func (c *Config) Int(key string) int {
	n, _ := Value[int](c, key)
	return n
}

// Float returns key's value when it is a float64.
func (c *Config) Float(key string) float64 {
	f, _ := Value[float64](c, key)
	return f
}

// Bool returns key's value when it is a bool.
func (c *Config) Bool(key string) bool {
	b, _ := Value[bool](c, key)
	return b
}

// Duration returns key's value when it is a time.Duration.
func (c *Config) Duration(key string) time.Duration {
	d, _ := Value[time.Duration](c, key)
	return d
}

// IsProduction reports the accessor added by the Accessors middleware.
func (c *Config) IsProduction() bool { return c.Bool(KeyIsProduction) }

// IsDev reports the accessor added by the Accessors middleware.
func (c *Config) IsDev() bool { return c.Bool(KeyIsDev) }

// IsTest reports the accessor added by the Accessors middleware.
func (c *Config) IsTest() bool { return c.Bool(KeyIsTest) }

// Decode copies the values into out, a pointer to a struct. Fields are
// matched by their `env` tag, or by name case-insensitively.
//
//	var cfg struct {
//	    Port    int           `env:"PORT"`
//	    Timeout time.Duration `env:"TIMEOUT"`
//	}
//	err := c.Decode(&cfg)
func (c *Config) Decode(out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  out,
		TagName: "env",
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return fmt.Errorf("env: decode: %w", err)
	}
	if err := dec.Decode(c.All()); err != nil {
		return fmt.Errorf("env: decode: %w", err)
	}
	return nil
}

// Value returns key's value as T. ok is false when the key is absent or
// holds another type.
func Value[T any](c *Config, key string) (T, bool) {
	v, ok := clone(c.values[key]).(T)
	return v, ok
}
