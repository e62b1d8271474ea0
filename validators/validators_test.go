package validators

import (
	"reflect"
	"testing"
	"time"

	"github.com/kbukum/envguard/env"
	"github.com/kbukum/envguard/errors"
)

func TestParsers(t *testing.T) {
	tests := []struct {
		name    string
		parse   func(string) (any, error)
		input   string
		want    any
		wantErr bool
	}{
		{"str", wrap(ParseStr), "hello", "hello", false},
		{"str empty", wrap(ParseStr), "", "", false},
		{"bool true", wrap(ParseBool), "true", true, false},
		{"bool yes", wrap(ParseBool), "YES", true, false},
		{"bool 1", wrap(ParseBool), "1", true, false},
		{"bool off", wrap(ParseBool), "off", false, false},
		{"bool invalid", wrap(ParseBool), "maybe", nil, true},
		{"num", wrap(ParseNum), "3.14", 3.14, false},
		{"num negative", wrap(ParseNum), "-2", -2.0, false},
		{"num invalid", wrap(ParseNum), "abc", nil, true},
		{"num nan", wrap(ParseNum), "NaN", nil, true},
		{"int", wrap(ParseInt), "42", 42, false},
		{"int float", wrap(ParseInt), "4.2", nil, true},
		{"port", wrap(ParsePort), "8080", 8080, false},
		{"port zero", wrap(ParsePort), "0", nil, true},
		{"port too high", wrap(ParsePort), "65536", nil, true},
		{"port max", wrap(ParsePort), "65535", 65535, false},
		{"host name", wrap(ParseHost), "db.internal", "db.internal", false},
		{"host ip", wrap(ParseHost), "127.0.0.1", "127.0.0.1", false},
		{"host invalid", wrap(ParseHost), "not a host", nil, true},
		{"url", wrap(ParseURL), "https://example.com/x?y=1", "https://example.com/x?y=1", false},
		{"url relative", wrap(ParseURL), "/path", nil, true},
		{"email", wrap(ParseEmail), "ops@example.com", "ops@example.com", false},
		{"email invalid", wrap(ParseEmail), "ops@", nil, true},
		{"json object", wrap(ParseJSON), `{"a":1}`, map[string]any{"a": 1.0}, false},
		{"json invalid", wrap(ParseJSON), `{a:1}`, nil, true},
		{"duration", wrap(ParseDuration), "1m30s", 90 * time.Second, false},
		{"duration invalid", wrap(ParseDuration), "10", nil, true},
		{"size", wrap(ParseSize), "10MB", int64(10 * 1024 * 1024), false},
		{"size invalid", wrap(ParseSize), "ten", nil, true},
		{"list", wrap(ParseList), " a, b ,,c ", []string{"a", "b", "c"}, false},
		{"list empty", wrap(ParseList), "", []string{}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.parse(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Errorf("expected error for %q, got %v", tc.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("parse(%q) = %#v, want %#v", tc.input, got, tc.want)
			}
		})
	}
}

func TestParseUUID(t *testing.T) {
	id, err := ParseUUID("f47ac10b-58cc-4372-a567-0e02b2c3d479")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id.String() != "f47ac10b-58cc-4372-a567-0e02b2c3d479" {
		t.Errorf("unexpected uuid %s", id)
	}
	if _, err := ParseUUID("not-a-uuid"); err == nil {
		t.Error("expected error for invalid uuid")
	}
}

func TestFactoryTypes(t *testing.T) {
	tests := []struct {
		spec env.Spec
		want string
	}{
		{Str(), TypeStr},
		{Bool(), TypeBool},
		{Num(), TypeNum},
		{Int(), TypeInt},
		{Port(), TypePort},
		{Host(), TypeHost},
		{URL(), TypeURL},
		{Email(), TypeEmail},
		{JSON(), TypeJSON},
		{Duration(), TypeDuration},
		{UUID(), TypeUUID},
		{Size(), TypeSize},
		{List(), TypeList},
		{Custom("color", ParseStr), "color"},
	}
	for _, tc := range tests {
		if got := tc.spec.Info().Type; got != tc.want {
			t.Errorf("expected type %q, got %q", tc.want, got)
		}
	}
}

func TestCleanWithCatalog(t *testing.T) {
	specs := env.Specs{}.
		With("PORT", Port().WithDefault(3000)).
		With("NAME", Str()).
		With("DEBUG", Bool().WithDefault(false)).
		With("LEVEL", Str().WithChoices("debug", "info").WithDevDefault("debug").WithDefault("info")).
		With("TAGS", List().Optional()).
		With("TIMEOUT", Duration().WithDefault(5*time.Second))

	cfg, err := env.Clean(env.Map{"NAME": "svc", "NODE_ENV": "production"}, specs, env.WithoutReporter())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Int("PORT") != 3000 || cfg.String("NAME") != "svc" || cfg.Bool("DEBUG") {
		t.Errorf("unexpected config %v", cfg.All())
	}
	if cfg.String("LEVEL") != "info" {
		t.Errorf("production must use the regular default, got %v", cfg.Get("LEVEL"))
	}
	if cfg.Has("TAGS") {
		t.Error("optional key must be omitted")
	}
	if cfg.Duration("TIMEOUT") != 5*time.Second {
		t.Errorf("unexpected timeout %v", cfg.Get("TIMEOUT"))
	}
}

func TestJSONNullIsRejected(t *testing.T) {
	_, err := env.Clean(env.Map{"DATA": "null"}, env.Specs{}.With("DATA", JSON()), env.WithoutReporter())
	if errors.CodeOf(err) != errors.ErrCodeNullAfterParse {
		t.Errorf("expected NULL_AFTER_PARSE, got %v", err)
	}
}

func TestJSONOf(t *testing.T) {
	type limits struct {
		Max int `json:"max"`
	}
	cfg, err := env.Clean(env.Map{"LIMITS": `{"max":5}`}, env.Specs{}.With("LIMITS", JSONOf[limits]()), env.WithoutReporter())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, ok := env.Value[limits](cfg, "LIMITS")
	if !ok || got.Max != 5 {
		t.Errorf("unexpected value %+v", got)
	}
}

func wrap[T any](fn func(string) (T, error)) func(string) (any, error) {
	return func(raw string) (any, error) {
		v, err := fn(raw)
		if err != nil {
			return nil, err
		}
		return v, nil
	}
}
