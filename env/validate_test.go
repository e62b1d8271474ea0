package env

import (
	stderrors "errors"
	"strings"
	"testing"

	"github.com/kbukum/envguard/errors"
)

func TestValidateVarExplicitValueWins(t *testing.T) {
	spec := port().WithDefault(3000).WithDevDefault(4000)
	for _, mode := range []string{"", ModeProduction, ModeDevelopment, ModeTest} {
		t.Run("mode="+mode, func(t *testing.T) {
			got, present, err := validateVar("PORT", spec, Map{"PORT": "8080"}, mode)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !present || got != 8080 {
				t.Errorf("expected 8080, got %v (present=%v)", got, present)
			}
		})
	}
}

func TestValidateVarDevDefault(t *testing.T) {
	spec := port().WithDefault(3000).WithDevDefault(4000)
	tests := []struct {
		mode string
		want int
	}{
		{ModeProduction, 3000},
		{"", 4000},
		{ModeDevelopment, 4000},
		{ModeTest, 4000},
		{"staging", 4000},
		{"Production", 4000},
	}
	for _, tc := range tests {
		t.Run("mode="+tc.mode, func(t *testing.T) {
			got, present, err := validateVar("PORT", spec, Map{}, tc.mode)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !present || got != tc.want {
				t.Errorf("expected %d, got %v", tc.want, got)
			}
		})
	}
}

func TestValidateVarDevDefaultOnlyIsMissingInProduction(t *testing.T) {
	spec := str().WithDevDefault("local")
	_, _, err := validateVar("HOST", spec, Map{}, ModeProduction)
	if !errors.IsMissing(err) {
		t.Fatalf("expected missing error, got %v", err)
	}
	got, _, err := validateVar("HOST", spec, Map{}, ModeDevelopment)
	if err != nil || got != "local" {
		t.Errorf("expected dev default, got %v, %v", got, err)
	}
}

func TestValidateVarFalsyDefaults(t *testing.T) {
	tests := []struct {
		name string
		spec Spec
		want any
	}{
		{"empty string", str().WithDefault(""), ""},
		{"zero", port().WithDefault(0), 0},
		{"false", boolean().WithDefault(false), false},
		{"empty dev default", str().WithDefault("x").WithDevDefault(""), ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, present, err := validateVar("KEY", tc.spec, Map{}, ModeDevelopment)
			if err != nil {
				t.Fatalf("falsy default must not be missing: %v", err)
			}
			if !present {
				t.Fatal("falsy default must be assigned")
			}
			if got != tc.want {
				t.Errorf("expected %#v, got %#v", tc.want, got)
			}
		})
	}
}

func TestValidateVarOptional(t *testing.T) {
	got, present, err := validateVar("KEY", str().Optional(), Map{}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if present || got != nil {
		t.Errorf("expected key to be skipped, got %v", got)
	}

	got, present, err = validateVar("KEY", str().Optional(), Map{"KEY": "set"}, "")
	if err != nil || !present || got != "set" {
		t.Errorf("expected explicit value, got %v %v %v", got, present, err)
	}
}

func TestValidateVarMissing(t *testing.T) {
	spec := str().WithDesc("Service name").WithExample("svc").WithDocs("https://docs.example.com")
	_, _, err := validateVar("NAME", spec, Map{}, ModeProduction)
	if !stderrors.Is(err, errors.ErrMissing) {
		t.Fatalf("expected missing error, got %v", err)
	}
	envErr, _ := errors.AsEnvError(err)
	if envErr.Key != "NAME" {
		t.Errorf("expected key NAME, got %q", envErr.Key)
	}
	want := `Service name (eg. "svc"). See https://docs.example.com`
	if envErr.Details["description"] != want {
		t.Errorf("expected description %q, got %v", want, envErr.Details["description"])
	}
}

func TestValidateVarEmptyStringIsPresent(t *testing.T) {
	got, present, err := validateVar("NAME", str(), Map{"NAME": ""}, "")
	if err != nil || !present || got != "" {
		t.Errorf("empty explicit value must be parsed, got %v %v %v", got, present, err)
	}
}

func TestValidateVarTestOnly(t *testing.T) {
	spec := str().WithTestOnlyDefault("stub")
	tests := []struct {
		mode    string
		missing bool
	}{
		{ModeTest, false},
		{ModeDevelopment, true},
		{ModeProduction, true},
		{"", true},
		{"testing", true},
	}
	for _, tc := range tests {
		t.Run("mode="+tc.mode, func(t *testing.T) {
			got, _, err := validateVar("API_KEY", spec, Map{}, tc.mode)
			if tc.missing {
				if !errors.IsMissing(err) {
					t.Fatalf("expected missing error, got %v", err)
				}
				return
			}
			if err != nil || got != "stub" {
				t.Errorf("expected stub, got %v %v", got, err)
			}
		})
	}

	got, _, err := validateVar("API_KEY", spec, Map{"API_KEY": "real"}, ModeProduction)
	if err != nil || got != "real" {
		t.Errorf("explicit value must override test-only default, got %v %v", got, err)
	}
}

func TestValidateVarTestOnlyDevDefault(t *testing.T) {
	spec := str().WithDefault("smtp.example.com").WithDevDefaultFallback(TestOnly("localhost"))
	tests := []struct {
		mode    string
		want    string
		missing bool
	}{
		{ModeProduction, "smtp.example.com", false},
		{ModeTest, "localhost", false},
		{ModeDevelopment, "", true},
		{"", "", true},
	}
	for _, tc := range tests {
		t.Run("mode="+tc.mode, func(t *testing.T) {
			got, _, err := validateVar("SMTP_HOST", spec, Map{}, tc.mode)
			if tc.missing {
				if !errors.IsMissing(err) {
					t.Fatalf("expected missing error, got %v", err)
				}
				return
			}
			if err != nil || got != tc.want {
				t.Errorf("expected %q, got %v %v", tc.want, got, err)
			}
		})
	}
}

func TestFallbackSentinel(t *testing.T) {
	f := TestOnly("stub")
	if !f.IsSentinel(ModeDevelopment) {
		t.Error("expected sentinel outside test mode")
	}
	if f.IsSentinel(ModeTest) {
		t.Error("expected value in test mode")
	}
	if v, ok := f.Resolve(ModeTest); !ok || v != "stub" {
		t.Errorf("expected stub, got %v %v", v, ok)
	}
	if _, ok := f.Resolve(ModeDevelopment); ok {
		t.Error("sentinel must not resolve to a value")
	}
	if Fixed("stub").IsSentinel(ModeDevelopment) {
		t.Error("a fixed fallback equal to the test value is not the sentinel")
	}
	var none Fallback[string]
	if none.IsDeclared() {
		t.Error("zero fallback must declare nothing")
	}
}

func TestValidateVarChoices(t *testing.T) {
	spec := str().WithChoices("debug", "info")

	if got, _, err := validateVar("LEVEL", spec, Map{"LEVEL": "info"}, ""); err != nil || got != "info" {
		t.Errorf("expected info, got %v %v", got, err)
	}

	_, _, err := validateVar("LEVEL", spec, Map{"LEVEL": "trace"}, "")
	if !stderrors.Is(err, errors.ErrNotInChoices) {
		t.Errorf("expected not-in-choices, got %v", err)
	}

	withDefault := str().WithChoices("debug", "info").WithDefault("verbose")
	_, _, err = validateVar("LEVEL", withDefault, Map{}, "")
	if !stderrors.Is(err, errors.ErrNotInChoices) {
		t.Errorf("defaults must be checked against choices, got %v", err)
	}
}

func TestValidateVarChoicesRedacted(t *testing.T) {
	spec := str().WithChoices("a", "b").Sensitive()
	_, _, err := validateVar("SECRET", spec, Map{"SECRET": "hunter2"}, "")
	if err == nil {
		t.Fatal("expected error")
	}
	if got := err.Error(); strings.Contains(got, "hunter2") {
		t.Errorf("sensitive value leaked: %q", got)
	}
}

func TestValidateVarEmptyChoices(t *testing.T) {
	_, _, err := validateVar("LEVEL", str().WithChoices(), Map{"LEVEL": "x"}, "")
	if !stderrors.Is(err, errors.ErrNotInChoices) {
		t.Errorf("empty choices accept nothing, got %v", err)
	}
}

func TestValidateVarDuplicateChoices(t *testing.T) {
	_, _, err := validateVar("LEVEL", str().WithChoices("a", "b", "a"), Map{"LEVEL": "a"}, "")
	if errors.CodeOf(err) != errors.ErrCodeInvalidChoiceSet {
		t.Errorf("expected INVALID_CHOICE_SET, got %v", err)
	}
}

func TestValidateVarInvalidValue(t *testing.T) {
	_, _, err := validateVar("PORT", port(), Map{"PORT": "abc"}, "")
	if errors.CodeOf(err) != errors.ErrCodeInvalidValue {
		t.Fatalf("expected INVALID_VALUE, got %v", err)
	}
	if !strings.Contains(err.Error(), `"abc"`) {
		t.Errorf("expected raw value in message, got %q", err.Error())
	}

	_, _, err = validateVar("PORT", port().Sensitive(), Map{"PORT": "abc"}, "")
	if strings.Contains(err.Error(), "abc") {
		t.Errorf("sensitive value leaked: %q", err.Error())
	}
}

func TestValidateVarMalformedSpec(t *testing.T) {
	tests := []struct {
		name string
		spec Spec
	}{
		{"nil spec", nil},
		{"nil var", (*Var[string])(nil)},
		{"nil parse", New[string](nil)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := validateVar("KEY", tc.spec, Map{"KEY": "x"}, "")
			if !stderrors.Is(err, errors.ErrMalformedSpec) {
				t.Errorf("expected malformed spec, got %v", err)
			}
		})
	}
}

func TestValidateVarNullAfterParse(t *testing.T) {
	spec := New(func(raw string) (any, error) { return nil, nil })
	_, _, err := validateVar("DATA", spec, Map{"DATA": "null"}, "")
	if errors.CodeOf(err) != errors.ErrCodeNullAfterParse {
		t.Errorf("expected NULL_AFTER_PARSE, got %v", err)
	}

	ptr := New(func(raw string) (*int, error) { return nil, nil })
	_, _, err = validateVar("PTR", ptr, Map{"PTR": "x"}, "")
	if errors.CodeOf(err) != errors.ErrCodeNullAfterParse {
		t.Errorf("expected NULL_AFTER_PARSE for nil pointer, got %v", err)
	}
}
