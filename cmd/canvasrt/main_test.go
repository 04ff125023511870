package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/funvibe/canvasrt/internal/config"
)

func envFrom(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func runCLI(t *testing.T, env map[string]string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), args, &stdout, &stderr, envFrom(env))
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestRunCommands(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr string
	}{
		{name: "version", args: []string{"version"}, want: "canvasrt version dev"},
		{name: "help", args: []string{"help"}, want: "Usage:"},
		{name: "no command", args: nil, wantErr: "missing command"},
		{name: "unknown command", args: []string{"frobnicate"}, wantErr: `unknown command "frobnicate"`},
		{name: "eval inline", args: []string{"eval", "-e", "{infix: {op: '+', left: 40, right: 2}}"}, want: "42\n"},
		{name: "eval error value", args: []string{"eval", "-e", "{var: nope}"}, want: "<Error: There is no variable named: nope>\n"},
		{name: "eval datastore", args: []string{"eval", "-db", "Users", "-e", "{infix: {op: '=', left: {var: Users}, right: {var: Users}}}"}, want: "true\n"},
		{name: "eval bad tree", args: []string{"eval", "-e", "{loop: 1}"}, wantErr: "unknown node"},
		{name: "eval without input", args: []string{"eval"}, wantErr: "eval needs -e or a file"},
		{name: "fmt", args: []string{"fmt", "-e", "{infix: {op: '*', left: {infix: {op: '+', left: 1, right: 2}}, right: 3}}"}, want: "(1 + 2) * 3\n"},
		{name: "fmt without input", args: []string{"fmt"}, wantErr: "fmt needs -e or a file"},
		{name: "publish without catalog", args: []string{"publish", "x.yaml"}, wantErr: "no package catalog"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := runCLI(t, nil, tt.args...)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("Expected error containing %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if !strings.Contains(stdout, tt.want) {
				t.Errorf("Output %q does not contain %q", stdout, tt.want)
			}
		})
	}
}

func TestTestCommand(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "ok.yaml", `
name: ok
tests:
  - {name: adds, expr: {infix: {op: '+', left: 1, right: 1}}, expect: {value: 2}}
  - {name: later, skip: true, expr: 1, expect: {value: 1}}
`)

	stdout, _, err := runCLI(t, map[string]string{"CANVASRT_FIXTURES": dir}, "test", "-v")
	if err != nil {
		t.Fatalf("Unexpected error: %v\n%s", err, stdout)
	}
	for _, want := range []string{"PASS ok.yaml/adds", "SKIP ok.yaml/later", "1 passed, 0 failed, 1 skipped"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("Output %q does not contain %q", stdout, want)
		}
	}

	writeFile(t, dir, "bad.yaml", `
name: bad
tests:
  - {name: wrong, expr: 1, expect: {value: 2}}
`)
	stdout, _, err = runCLI(t, nil, "test", "-run", "bad", dir)
	if err == nil || !strings.Contains(err.Error(), "1 test(s) failed") {
		t.Fatalf("Expected a failure, got %v", err)
	}
	if !strings.Contains(stdout, "FAIL bad.yaml/wrong: expected 2, got 1") {
		t.Errorf("Unexpected output %q", stdout)
	}
	if strings.Contains(stdout, "\033[") {
		t.Error("Colours written to a non-terminal")
	}
}

func TestPublishThenTest(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "catalog", "packages.db")
	lib := writeFile(t, dir, "lib.yaml", `
name: lib
packages:
  - name: acme.text.shout_v0
    params: [{name: s, type: String}]
    returns: String
    body: {call: {fn: String::toUppercase, args: [{var: s}]}}
tests: []
`)

	stdout, _, err := runCLI(t, nil, "publish", "-db", db, lib)
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if !strings.Contains(stdout, "published 1 package function(s)") {
		t.Errorf("Unexpected output %q", stdout)
	}

	fixtures := filepath.Join(dir, "fixtures")
	if err := os.Mkdir(fixtures, 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, fixtures, "uses.yaml", `
name: uses
tests:
  - {name: shout, expr: {call: {fn: acme.text.shout_v0, args: ["hey"]}}, expect: {value: "HEY"}}
`)
	env := map[string]string{"CANVASRT_PACKAGE_DB": db}
	if stdout, _, err := runCLI(t, env, "test", fixtures); err != nil {
		t.Fatalf("test: %v\n%s", err, stdout)
	}

	stdout, _, err = runCLI(t, env, "eval", "-e", `{call: {fn: acme.text.shout_v0, args: ["x"]}}`)
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	if stdout != "\"X\"\n" {
		t.Errorf("Unexpected output %q", stdout)
	}
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "canvasrt.yaml", `
logging:
  format: ${FORMAT}
evaluator:
  max_depth: 2
`)
	stdout, _, err := runCLI(t, map[string]string{"FORMAT": "json"}, "eval", "-config", path,
		"-e", "{let: {name: a, value: 1, body: {let: {name: b, value: 2, body: {let: {name: c, value: 3, body: {var: c}}}}}}}")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(stdout, "maximum recursion depth exceeded") {
		t.Errorf("Expected the recursion guard, got %q", stdout)
	}

	_, _, err = runCLI(t, map[string]string{"FORMAT": "xml"}, "eval", "-config", path, "-e", "1")
	if err == nil || !strings.Contains(err.Error(), "logging.format") {
		t.Errorf("Expected a validation error, got %v", err)
	}
}

func TestJSONLoggerNamesService(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(config.LoggingConfig{Format: "json", Level: "debug"}, &buf)
	logger.Debug("hello")
	out := buf.String()
	if !strings.Contains(out, `"meta":{"name":"canvasrt"}`) {
		t.Errorf("Expected meta.name in %q", out)
	}
	if !strings.Contains(out, `"msg":"hello"`) {
		t.Errorf("Expected the message in %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]string{"debug": "DEBUG", "WARN": "WARN", "error": "ERROR", "info": "INFO", "": "INFO"}
	for in, want := range tests {
		if got := parseLevel(in).String(); got != want {
			t.Errorf("parseLevel(%q) = %s, want %s", in, got, want)
		}
	}
}
