package validators

import (
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kbukum/envguard/env"
	"github.com/kbukum/envguard/util"
	"github.com/kbukum/envguard/validation"
)

// Type names reported through env.Info.Type.
const (
	TypeStr      = "str"
	TypeBool     = "bool"
	TypeNum      = "num"
	TypeInt      = "int"
	TypePort     = "port"
	TypeHost     = "host"
	TypeURL      = "url"
	TypeEmail    = "email"
	TypeJSON     = "json"
	TypeDuration = "duration"
	TypeUUID     = "uuid"
	TypeSize     = "size"
	TypeList     = "list"
)

// Types lists every built-in type name.
var Types = []string{
	TypeStr, TypeBool, TypeNum, TypeInt, TypePort, TypeHost, TypeURL,
	TypeEmail, TypeJSON, TypeDuration, TypeUUID, TypeSize, TypeList,
}

// Str accepts any string, including the empty string.
func Str() *env.Var[string] {
	return env.New(ParseStr).WithType(TypeStr)
}

// Bool accepts true/t/yes/on/1 and false/f/no/off/0, case-insensitively.
func Bool() *env.Var[bool] {
	return env.New(ParseBool).WithType(TypeBool)
}

// Num accepts any finite floating point number.
func Num() *env.Var[float64] {
	return env.New(ParseNum).WithType(TypeNum)
}

// Int accepts base-10 integers.
func Int() *env.Var[int] {
	return env.New(ParseInt).WithType(TypeInt)
}

// Port accepts integers between 1 and 65535.
func Port() *env.Var[int] {
	return env.New(ParsePort).WithType(TypePort)
}

// Host accepts host names and IP addresses.
func Host() *env.Var[string] {
	return env.New(ParseHost).WithType(TypeHost)
}

// URL accepts absolute URLs and returns them unchanged.
func URL() *env.Var[string] {
	return env.New(ParseURL).WithType(TypeURL)
}

// Email accepts email addresses.
func Email() *env.Var[string] {
	return env.New(ParseEmail).WithType(TypeEmail)
}

// JSON accepts any JSON document and returns the decoded value. A literal
// null decodes to nil and is rejected by the engine.
func JSON() *env.Var[any] {
	return env.New(ParseJSON).WithType(TypeJSON)
}

// JSONOf decodes a JSON document into T.
func JSONOf[T any]() *env.Var[T] {
	return env.New(func(raw string) (T, error) {
		var out T
		if err := json.Unmarshal([]byte(raw), &out); err != nil {
			return out, fmt.Errorf("invalid json input: %w", err)
		}
		return out, nil
	}).WithType(TypeJSON)
}

// Duration accepts Go duration strings such as "1m30s".
func Duration() *env.Var[time.Duration] {
	return env.New(ParseDuration).WithType(TypeDuration)
}

// UUID accepts RFC 4122 UUIDs.
func UUID() *env.Var[uuid.UUID] {
	return env.New(ParseUUID).WithType(TypeUUID)
}

// Size accepts byte sizes such as "512KB" or "10MB" and returns bytes.
func Size() *env.Var[int64] {
	return env.New(ParseSize).WithType(TypeSize)
}

// List accepts a comma-separated list. Items are trimmed and empty items
// dropped; an empty input yields an empty list.
func List() *env.Var[[]string] {
	return env.New(ParseList).WithType(TypeList)
}

// Custom builds a spec around parse, named typeName.
func Custom[T any](typeName string, parse env.ParseFunc[T]) *env.Var[T] {
	return env.New(parse).WithType(typeName)
}

// --- parsers ---

// ParseStr returns raw unchanged.
func ParseStr(raw string) (string, error) {
	return raw, nil
}

// ParseBool parses the boolean spellings accepted by Bool.
func ParseBool(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "t", "yes", "on", "1":
		return true, nil
	case "false", "f", "no", "off", "0":
		return false, nil
	}
	return false, fmt.Errorf("invalid bool input: %q", raw)
}

// ParseNum parses a finite float.
func ParseNum(raw string) (float64, error) {
	n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, fmt.Errorf("invalid number input: %q", raw)
	}
	return n, nil
}

// ParseInt parses a base-10 integer.
func ParseInt(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid integer input: %q", raw)
	}
	return n, nil
}

// ParsePort parses a TCP/UDP port number.
func ParsePort(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 || n > 65535 {
		return 0, fmt.Errorf("invalid port input: %q", raw)
	}
	return n, nil
}

// ParseHost validates a host name or IP address.
func ParseHost(raw string) (string, error) {
	if !validation.Host(raw) {
		return "", fmt.Errorf("invalid host (domain or ip): %q", raw)
	}
	return raw, nil
}

// ParseURL validates an absolute URL.
func ParseURL(raw string) (string, error) {
	if !validation.URL(raw) {
		return "", fmt.Errorf("invalid url: %q", raw)
	}
	if _, err := url.Parse(raw); err != nil {
		return "", fmt.Errorf("invalid url: %q", raw)
	}
	return raw, nil
}

// ParseEmail validates an email address.
func ParseEmail(raw string) (string, error) {
	if !validation.Email(raw) {
		return "", fmt.Errorf("invalid email address: %q", raw)
	}
	return raw, nil
}

// ParseJSON decodes any JSON document.
func ParseJSON(raw string) (any, error) {
	var out any
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("invalid json input: %w", err)
	}
	return out, nil
}

// ParseDuration parses a Go duration string.
func ParseDuration(raw string) (time.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid duration input: %q", raw)
	}
	return d, nil
}

// ParseUUID parses a UUID.
func ParseUUID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid uuid input: %q", raw)
	}
	return id, nil
}

// ParseSize parses a human-readable byte size.
func ParseSize(raw string) (int64, error) {
	return util.ParseSize(raw)
}

// ParseList splits a comma-separated list.
func ParseList(raw string) ([]string, error) {
	items := util.Map(strings.Split(raw, ","), strings.TrimSpace)
	return util.Filter(items, func(s string) bool { return s != "" }), nil
}
