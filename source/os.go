package source

import (
	"os"
	"strings"

	"github.com/kbukum/envguard/env"
)

// OS returns a snapshot of the process environment.
func OS() env.Map {
	return FromEnviron(os.Environ())
}

// FromEnviron parses KEY=VALUE pairs as returned by os.Environ. Entries
// without "=" are skipped; a later duplicate replaces an earlier one.
func FromEnviron(pairs []string) env.Map {
	m := make(env.Map, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			continue
		}
		m[key] = value
	}
	return m
}
