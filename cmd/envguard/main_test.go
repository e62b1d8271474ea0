package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testSchema = `
vars:
  - name: APP_PORT
    type: port
    default: "8080"
    desc: HTTP listen port
  - name: APP_NAME
    type: str
    desc: Service name
  - name: APP_TOKEN
    type: str
    default: dev-token
    sensitive: true
`

func writeSchema(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "env.schema.yml")
	if err := os.WriteFile(path, []byte(testSchema), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func run(t *testing.T, environ []string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr, environ)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestCheckPasses(t *testing.T) {
	schemaPath := writeSchema(t)
	out, _, err := run(t, []string{"APP_NAME=svc"}, "check", "--schema", schemaPath)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !strings.Contains(out, "ok: 3 of 3 variables set (mode unset)") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestCheckReportsEveryFailure(t *testing.T) {
	schemaPath := writeSchema(t)
	_, stderr, err := run(t, []string{"APP_PORT=nope"}, "check", "--schema", schemaPath, "--log-level", "disabled")
	if !errors.Is(err, errCheckFailed) {
		t.Fatalf("expected errCheckFailed, got %v", err)
	}
	for _, want := range []string{"APP_PORT", "APP_NAME: Service name", "Exiting with error code 1"} {
		if !strings.Contains(stderr, want) {
			t.Errorf("expected %q in:\n%s", want, stderr)
		}
	}
}

func TestCheckSources(t *testing.T) {
	schemaPath := writeSchema(t)
	dotenv := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(dotenv, []byte("APP_NAME=from-file\nAPP_PORT=1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Run("env file", func(t *testing.T) {
		if _, _, err := run(t, nil, "check", "-s", schemaPath, "--env-file", dotenv); err != nil {
			t.Fatalf("check: %v", err)
		}
	})

	t.Run("no-os ignores the process environment", func(t *testing.T) {
		_, _, err := run(t, []string{"APP_NAME=svc"}, "check", "-s", schemaPath, "--no-os", "--log-level", "disabled")
		if !errors.Is(err, errCheckFailed) {
			t.Fatalf("expected failure, got %v", err)
		}
	})

	t.Run("set overrides", func(t *testing.T) {
		_, _, err := run(t, []string{"APP_PORT=bad"}, "check", "-s", schemaPath, "--set", `APP_NAME="svc"`, "--set", "APP_PORT=9000")
		if err != nil {
			t.Fatalf("check: %v", err)
		}
	})

	t.Run("invalid set", func(t *testing.T) {
		_, _, err := run(t, nil, "check", "-s", schemaPath, "--set", "APP_NAME")
		if err == nil || errors.Is(err, errCheckFailed) {
			t.Fatalf("expected flag error, got %v", err)
		}
	})
}

func TestCheckUnknownPolicy(t *testing.T) {
	schemaPath := writeSchema(t)
	environ := []string{"APP_NAME=svc", "APP_PROT=1", "HOME=/root"}

	if _, _, err := run(t, environ, "check", "-s", schemaPath, "--unknown", "warn", "--prefix", "APP_", "--log-level", "disabled"); err != nil {
		t.Errorf("warn must not fail: %v", err)
	}

	_, stderr, err := run(t, environ, "check", "-s", schemaPath, "--unknown", "fail", "--prefix", "APP_", "--log-level", "disabled")
	if !errors.Is(err, errCheckFailed) {
		t.Fatalf("expected failure, got %v", err)
	}
	if !strings.Contains(stderr, "APP_PROT") || strings.Contains(stderr, "HOME") {
		t.Errorf("unexpected report:\n%s", stderr)
	}

	if _, _, err := run(t, environ, "check", "-s", schemaPath, "--unknown", "sometimes"); err == nil {
		t.Error("expected error for invalid policy")
	}
}

func TestCheckMissingSchema(t *testing.T) {
	_, _, err := run(t, nil, "check", "-s", filepath.Join(t.TempDir(), "missing.yml"))
	if err == nil || errors.Is(err, errCheckFailed) {
		t.Fatalf("expected schema error, got %v", err)
	}
}

func TestSchemaFromSettings(t *testing.T) {
	schemaPath := writeSchema(t)
	out, _, err := run(t, []string{"ENVGUARD_SCHEMA=" + schemaPath}, "describe")
	if err != nil {
		t.Fatalf("describe: %v", err)
	}
	if !strings.Contains(out, "`APP_PORT`") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestDescribeMasksSensitive(t *testing.T) {
	out, _, err := run(t, nil, "describe", "--schema", writeSchema(t))
	if err != nil {
		t.Fatalf("describe: %v", err)
	}
	if strings.Contains(out, "dev-token") {
		t.Errorf("sensitive default leaked:\n%s", out)
	}
	if !strings.Contains(out, "| `APP_TOKEN` | str | no | *** |") {
		t.Errorf("expected masked default:\n%s", out)
	}
}

func TestInvalidSettings(t *testing.T) {
	_, _, err := run(t, []string{"ENVGUARD_LOG_LEVEL=loud"}, "version")
	if err == nil || !strings.Contains(err.Error(), "ENVGUARD_LOG_LEVEL") {
		t.Fatalf("expected settings error, got %v", err)
	}
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, nil, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out, "envguard ") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestParseSets(t *testing.T) {
	m, err := parseSets([]string{"A=1", " B = 'two' ", "C="})
	if err != nil {
		t.Fatalf("parseSets: %v", err)
	}
	if m["A"] != "1" || m["B"] != "two" || m["C"] != "" {
		t.Errorf("unexpected values %v", m)
	}
	if _, err := parseSets([]string{"=x"}); err == nil {
		t.Error("expected error for empty key")
	}
}
