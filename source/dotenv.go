package source

import (
	"fmt"
	"io"

	"github.com/joho/godotenv"

	"github.com/kbukum/envguard/env"
)

// DotEnv reads .env files without touching the process environment. When
// several files define a key the first file wins, matching godotenv.Load.
func DotEnv(paths ...string) (env.Map, error) {
	m := env.Map{}
	for _, path := range paths {
		values, err := godotenv.Read(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read env file %s: %w", path, err)
		}
		for k, v := range values {
			if _, exists := m[k]; !exists {
				m[k] = v
			}
		}
	}
	return m, nil
}

// ParseDotEnv parses .env formatted content.
func ParseDotEnv(r io.Reader) (env.Map, error) {
	values, err := godotenv.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse env content: %w", err)
	}
	return env.Map(values), nil
}
