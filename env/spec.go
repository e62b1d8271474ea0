package env

import (
	"fmt"

	"github.com/kbukum/envguard/util"
)

// ParseFunc converts a raw environment string into a typed value.
type ParseFunc[T any] func(raw string) (T, error)

// Info is the human-readable metadata of a spec.
type Info struct {
	// Type names the validator that built the spec ("port", "url", ...).
	Type string
	// Desc describes what the variable is for.
	Desc string
	// Example is a sample value.
	Example string
	// Docs links to further documentation.
	Docs string
	// Sensitive keeps raw values out of error messages and tooling output.
	Sensitive bool
}

// String formats the metadata the way missing-value diagnostics show it:
//
//	Database URL (eg. "postgres://localhost/db"). See https://example.com/docs
func (i Info) String() string {
	s := i.Desc
	if i.Example != "" {
		if s != "" {
			s += " "
		}
		s += fmt.Sprintf("(eg. %q)", i.Example)
	}
	if i.Docs != "" {
		if s != "" {
			s += ". "
		}
		s += "See " + i.Docs
	}
	return s
}

// sentinel marks fallbacks that must resolve as missing outside test mode.
// Only testOnlyMarker exists; identity is the pointer.
type sentinel struct{ _ byte }

var testOnlyMarker = &sentinel{}

type fallbackState int

const (
	fallbackNone fallbackState = iota
	fallbackValue
	fallbackUndefined
	fallbackSentinel
)

// Fallback is a declared default or dev default. The zero value declares
// nothing.
type Fallback[T any] struct {
	value     T
	declared  bool
	undefined bool
	marker    *sentinel
}

// Fixed declares v as the fallback. Zero values such as "", 0 or false are
// valid fallbacks and are assigned like any other value.
func Fixed[T any](v T) Fallback[T] {
	return Fallback[T]{value: v, declared: true}
}

// Undefined declares the variable optional: when it is absent the key is
// left out of the result without an error.
func Undefined[T any]() Fallback[T] {
	return Fallback[T]{declared: true, undefined: true}
}

// TestOnly declares v as a fallback that only applies when the mode is
// exactly "test". In any other mode it resolves to the sentinel and the
// variable is reported missing.
func TestOnly[T any](v T) Fallback[T] {
	return Fallback[T]{value: v, declared: true, marker: testOnlyMarker}
}

// IsDeclared reports whether the fallback declares anything.
func (f Fallback[T]) IsDeclared() bool {
	return f.declared
}

// Resolve returns the fallback value for mode. ok is false when nothing is
// declared, when the fallback is Undefined, or when it resolves to the
// test-only sentinel.
func (f Fallback[T]) Resolve(mode string) (value T, ok bool) {
	if _, state := f.resolve(mode); state != fallbackValue {
		var zero T
		return zero, false
	}
	return f.value, true
}

// IsSentinel reports whether the fallback resolves to the test-only
// sentinel for mode.
func (f Fallback[T]) IsSentinel(mode string) bool {
	_, state := f.resolve(mode)
	return state == fallbackSentinel
}

func (f Fallback[T]) resolve(mode string) (any, fallbackState) {
	switch {
	case !f.declared:
		return nil, fallbackNone
	case f.marker == testOnlyMarker && mode != ModeTest:
		return nil, fallbackSentinel
	case f.undefined:
		return nil, fallbackUndefined
	default:
		return f.value, fallbackValue
	}
}

// Spec is the type-erased view of a *Var the engine works with. Build
// specs with New or the validators package.
type Spec interface {
	Info() Info
	erase() erasedSpec
}

type erasedSpec struct {
	parse   func(string) (any, error)
	def     func(mode string) (any, fallbackState)
	dev     func(mode string) (any, fallbackState)
	hasDev  bool
	choices []any
	info    Info
}

// Var declares one variable of type T. Configure it with the With*
// methods; each returns the receiver so calls chain.
type Var[T any] struct {
	parse   ParseFunc[T]
	def     Fallback[T]
	devDef  Fallback[T]
	choices []T
	info    Info
}

// New creates a spec around a custom parse function.
func New[T any](parse ParseFunc[T]) *Var[T] {
	return &Var[T]{parse: parse}
}

// WithDefault declares the value used when the variable is absent.
func (v *Var[T]) WithDefault(value T) *Var[T] {
	v.def = Fixed(value)
	return v
}

// WithDefaultFallback declares an arbitrary fallback as the default.
func (v *Var[T]) WithDefaultFallback(f Fallback[T]) *Var[T] {
	v.def = f
	return v
}

// WithDevDefault declares the value used when the variable is absent and
// the mode is not "production". It takes precedence over the default.
func (v *Var[T]) WithDevDefault(value T) *Var[T] {
	v.devDef = Fixed(value)
	return v
}

// WithDevDefaultFallback declares an arbitrary fallback as the dev
// default. With TestOnly it gives a variable that has a production
// default, is stubbed in test and is required in development.
func (v *Var[T]) WithDevDefaultFallback(f Fallback[T]) *Var[T] {
	v.devDef = f
	return v
}

// WithTestOnlyDefault declares value as a default that only applies in
// test mode.
func (v *Var[T]) WithTestOnlyDefault(value T) *Var[T] {
	v.def = TestOnly(value)
	return v
}

// Optional makes an absent variable valid: the key is omitted from the
// result.
func (v *Var[T]) Optional() *Var[T] {
	v.def = Undefined[T]()
	return v
}

// WithChoices restricts accepted values, defaults included, to choices.
func (v *Var[T]) WithChoices(choices ...T) *Var[T] {
	if choices == nil {
		choices = []T{}
	}
	v.choices = choices
	return v
}

// WithDesc sets the description.
func (v *Var[T]) WithDesc(desc string) *Var[T] {
	v.info.Desc = desc
	return v
}

// WithExample sets the example value.
func (v *Var[T]) WithExample(example string) *Var[T] {
	v.info.Example = example
	return v
}

// WithDocs sets the documentation link.
func (v *Var[T]) WithDocs(url string) *Var[T] {
	v.info.Docs = url
	return v
}

// WithType names the validator that built the spec.
func (v *Var[T]) WithType(name string) *Var[T] {
	v.info.Type = name
	return v
}

// Sensitive keeps the variable's values out of diagnostics.
func (v *Var[T]) Sensitive() *Var[T] {
	v.info.Sensitive = true
	return v
}

// Parser returns the parse function.
func (v *Var[T]) Parser() ParseFunc[T] { return v.parse }

// Default returns the declared default.
func (v *Var[T]) Default() Fallback[T] { return v.def }

// DevDefault returns the declared dev default.
func (v *Var[T]) DevDefault() Fallback[T] { return v.devDef }

// Choices returns the declared choices, nil when unrestricted.
func (v *Var[T]) Choices() []T { return v.choices }

// Info implements Spec.
func (v *Var[T]) Info() Info {
	if v == nil {
		return Info{}
	}
	return v.info
}

func (v *Var[T]) erase() erasedSpec {
	if v == nil {
		return erasedSpec{}
	}
	e := erasedSpec{
		def:    v.def.resolve,
		dev:    v.devDef.resolve,
		hasDev: v.devDef.declared,
		info:   v.info,
	}
	if v.parse != nil {
		parse := v.parse
		e.parse = func(raw string) (any, error) {
			return parse(raw)
		}
	}
	if v.choices != nil {
		e.choices = make([]any, len(v.choices))
		for i, c := range v.choices {
			e.choices[i] = c
		}
	}
	return e
}

// Entry pairs a variable name with its spec.
type Entry struct {
	Key  string
	Spec Spec
}

// Specs is the ordered set of declared variables. Declaration order is the
// evaluation order.
type Specs []Entry

// With returns s extended with key.
func (s Specs) With(key string, spec Spec) Specs {
	return append(s, Entry{Key: key, Spec: spec})
}

// Keys returns the declared keys in order, duplicates removed.
func (s Specs) Keys() []string {
	n := s.normalize()
	keys := make([]string, len(n))
	for i, e := range n {
		keys[i] = e.Key
	}
	return keys
}

// Lookup returns the spec declared for key.
func (s Specs) Lookup(key string) (Spec, bool) {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i].Key == key {
			return s[i].Spec, true
		}
	}
	return nil, false
}

// normalize collapses duplicate keys: the key keeps its first position
// and takes the last spec declared for it.
func (s Specs) normalize() Specs {
	index := make(map[string]int, len(s))
	out := make(Specs, 0, len(s))
	for _, e := range s {
		if i, ok := index[e.Key]; ok {
			out[i].Spec = e.Spec
			continue
		}
		index[e.Key] = len(out)
		out = append(out, e)
	}
	return out
}

// SpecsFromMap builds Specs from a map, ordering keys alphabetically.
func SpecsFromMap(m map[string]Spec) Specs {
	keys := util.SortedKeys(m)
	s := make(Specs, 0, len(keys))
	for _, k := range keys {
		s = append(s, Entry{Key: k, Spec: m[k]})
	}
	return s
}
