package source

import (
	"github.com/kbukum/envguard/env"
	"github.com/kbukum/envguard/util"
)

// Layered combines sources in precedence order: Lookup returns the value
// from the first source that has the key. Nil sources are skipped.
func Layered(sources ...env.Source) env.Source {
	layers := make([]env.Source, 0, len(sources))
	for _, s := range sources {
		if s != nil {
			layers = append(layers, s)
		}
	}
	return layered(layers)
}

type layered []env.Source

func (l layered) Lookup(key string) (string, bool) {
	for _, s := range l {
		if v, ok := s.Lookup(key); ok {
			return v, true
		}
	}
	return "", false
}

func (l layered) Keys() []string {
	var keys []string
	for _, s := range l {
		keys = append(keys, s.Keys()...)
	}
	return util.SortStrings(util.Unique(keys))
}

// Snapshot copies any source into a Map.
func Snapshot(s env.Source) env.Map {
	m := env.Map{}
	if s == nil {
		return m
	}
	for _, k := range s.Keys() {
		if v, ok := s.Lookup(k); ok {
			m[k] = v
		}
	}
	return m
}
