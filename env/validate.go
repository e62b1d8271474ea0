package env

import (
	"reflect"

	"github.com/kbukum/envguard/errors"
)

// Mode values recognised by the engine and the Accessors middleware.
const (
	ModeProduction  = "production"
	ModeDevelopment = "development"
	ModeTest        = "test"

	// DefaultModeKey is the variable read to determine the mode.
	DefaultModeKey = "NODE_ENV"
)

// validateVar runs the per-key pipeline. present is false, with a nil
// error, when the variable is validly absent (declared Optional).
func validateVar(key string, spec Spec, raw Source, mode string) (value any, present bool, err error) {
	if spec == nil {
		return nil, false, errors.MalformedSpec(key)
	}
	s := spec.erase()
	if s.parse == nil {
		return nil, false, errors.MalformedSpec(key)
	}

	fallback := s.def
	if mode != ModeProduction && s.hasDev {
		fallback = s.dev
	}

	if rawValue, ok := raw.Lookup(key); ok {
		value, err = s.parse(rawValue)
		if err != nil {
			return nil, false, errors.InvalidValue(key, err, s.info.Sensitive)
		}
	} else {
		var state fallbackState
		value, state = fallback(mode)
		switch state {
		case fallbackNone, fallbackSentinel:
			return nil, false, errors.Missing(key, s.info.String())
		case fallbackUndefined:
			return nil, false, nil
		}
	}

	if s.choices != nil {
		if dup, ok := firstDuplicate(s.choices); ok {
			return nil, false, errors.InvalidChoiceSet(key, dup)
		}
		if !containsValue(s.choices, value) {
			return nil, false, errors.NotInChoices(key, value, s.choices, s.info.Sensitive)
		}
	}

	if isNil(value) {
		return nil, false, errors.NullAfterParse(key)
	}
	return value, true, nil
}

func firstDuplicate(values []any) (any, bool) {
	for i := 1; i < len(values); i++ {
		for j := 0; j < i; j++ {
			if reflect.DeepEqual(values[i], values[j]) {
				return values[i], true
			}
		}
	}
	return nil, false
}

func containsValue(values []any, v any) bool {
	for _, c := range values {
		if reflect.DeepEqual(c, v) {
			return true
		}
	}
	return false
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

// clone deep-copies slices and maps, including those nested inside
// interface values. Other values are returned as they are.
func clone(v any) any {
	if v == nil {
		return nil
	}
	return cloneValue(reflect.ValueOf(v)).Interface()
}

func cloneValue(rv reflect.Value) reflect.Value {
	switch rv.Kind() {
	case reflect.Slice:
		if rv.IsNil() {
			return rv
		}
		out := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out.Index(i).Set(cloneValue(rv.Index(i)))
		}
		return out
	case reflect.Map:
		if rv.IsNil() {
			return rv
		}
		out := reflect.MakeMapWithSize(rv.Type(), rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out.SetMapIndex(iter.Key(), cloneValue(iter.Value()))
		}
		return out
	case reflect.Interface:
		if rv.IsNil() {
			return rv
		}
		out := reflect.New(rv.Type()).Elem()
		out.Set(cloneValue(rv.Elem()))
		return out
	}
	return rv
}
