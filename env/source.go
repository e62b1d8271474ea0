package env

import (
	"github.com/kbukum/envguard/util"
)

// Source is the raw environment. Lookup distinguishes an absent key from
// a key set to the empty string. Implementations must not change while a
// Clean call is running.
type Source interface {
	Lookup(key string) (string, bool)
	Keys() []string
}

// Map is a Source backed by an ordinary map.
type Map map[string]string

// Lookup implements Source.
func (m Map) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// Keys implements Source. Keys are returned sorted.
func (m Map) Keys() []string {
	return util.SortedKeys(m)
}
