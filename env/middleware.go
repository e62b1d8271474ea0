package env

// Values is the mapping from declared key to validated value that flows
// through the middleware pipeline.
type Values map[string]any

func (v Values) clone() Values {
	out := make(Values, len(v))
	for k, val := range v {
		out[k] = clone(val)
	}
	return out
}

// Middleware transforms the validated values after reporting. Each stage
// receives the previous stage's output and the untouched raw environment.
// Stages run in order and none is skipped; conditionals belong inside the
// stage.
type Middleware func(values Values, raw Source) Values

// Keys added by the Accessors middleware.
const (
	KeyIsProduction  = "isProduction"
	KeyIsProd        = "isProd"
	KeyIsTest        = "isTest"
	KeyIsDev         = "isDev"
	KeyIsDevelopment = "isDevelopment"
)

// DefaultMiddleware returns the catalog Clean applies when no middleware is
// configured.
func DefaultMiddleware(modeKey string) []Middleware {
	return []Middleware{Accessors(modeKey)}
}

// Accessors adds boolean mode accessors. The mode is the validated value of
// modeKey when it was declared as a string, the raw value otherwise. An
// unset mode counts as production. Declared keys with the same names are
// left untouched.
func Accessors(modeKey string) Middleware {
	return func(values Values, raw Source) Values {
		mode, ok := values[modeKey].(string)
		if !ok {
			mode, _ = raw.Lookup(modeKey)
		}
		isProd := mode == "" || mode == ModeProduction
		isDev := mode == ModeDevelopment
		isTest := mode == ModeTest

		set := func(key string, v bool) {
			if _, exists := values[key]; !exists {
				values[key] = v
			}
		}
		set(KeyIsProduction, isProd)
		set(KeyIsProd, isProd)
		set(KeyIsTest, isTest)
		set(KeyIsDev, isDev)
		set(KeyIsDevelopment, isDev)
		return values
	}
}

// Transform applies fn to key's value when key is present.
func Transform(key string, fn func(value any) any) Middleware {
	return func(values Values, _ Source) Values {
		if v, ok := values[key]; ok {
			values[key] = fn(v)
		}
		return values
	}
}

// Derive sets key to the value computed from the validated values and the
// raw environment. It overwrites any existing value.
func Derive(key string, fn func(values Values, raw Source) any) Middleware {
	return func(values Values, raw Source) Values {
		values[key] = fn(values, raw)
		return values
	}
}
