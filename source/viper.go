package source

import (
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"github.com/kbukum/envguard/env"
	"github.com/kbukum/envguard/util"
)

// Viper exposes the keys of a viper instance as environment keys. Nested
// keys are flattened: database.max_conns becomes DATABASE_MAX_CONNS. Lists
// are joined with commas; values that cannot be rendered as text are
// skipped.
func Viper(v *viper.Viper) env.Source {
	return &viperSource{v: v}
}

type viperSource struct {
	v *viper.Viper
}

func (s *viperSource) Lookup(key string) (string, bool) {
	for _, variant := range envKeyVariants(key) {
		if !s.v.IsSet(variant) {
			continue
		}
		if value, ok := stringify(s.v.Get(variant)); ok {
			return value, true
		}
	}
	return "", false
}

func (s *viperSource) Keys() []string {
	keys := make([]string, 0, len(s.v.AllKeys()))
	for _, k := range s.v.AllKeys() {
		envKey := ToEnvKey(k)
		if _, ok := s.Lookup(envKey); ok {
			keys = append(keys, envKey)
		}
	}
	return util.SortStrings(util.Unique(keys))
}

// ToEnvKey converts a viper key path to its environment variable name.
func ToEnvKey(viperKey string) string {
	return strings.ToUpper(strings.ReplaceAll(viperKey, ".", "_"))
}

func stringify(value any) (string, bool) {
	switch value.(type) {
	case nil:
		return "", false
	case []any, []string, []int:
		items, err := cast.ToStringSliceE(value)
		if err != nil {
			return "", false
		}
		return strings.Join(items, ","), true
	}
	s, err := cast.ToStringE(value)
	if err != nil {
		return "", false
	}
	return s, true
}

// envKeyVariants lists the viper keys an environment key may map to.
//
//	AUTH_JWT_SECRET -> [auth_jwt_secret, auth.jwt.secret, auth.jwt_secret]
//	HTTP_CORS_ALLOWED_ORIGINS -> [http_cors_allowed_origins, http.cors.allowed.origins, http.cors_allowed_origins, ...]
func envKeyVariants(envKey string) []string {
	lowerKey := strings.ToLower(envKey)
	parts := strings.Split(lowerKey, "_")

	if len(parts) <= 1 {
		return []string{lowerKey}
	}

	variants := []string{
		lowerKey,
		strings.ReplaceAll(lowerKey, "_", "."),
	}

	// progressive nesting
	for i := 1; i < len(parts); i++ {
		prefix := strings.Join(parts[:i], ".")
		suffix := strings.Join(parts[i:], "_")
		variants = append(variants, prefix+"."+suffix)
	}

	if len(parts) >= 3 {
		prefix := strings.Join(parts[:len(parts)-1], ".")
		variants = append(variants, prefix+"."+parts[len(parts)-1])
	}

	return util.Unique(variants)
}
