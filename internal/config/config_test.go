package config

import (
	"os"
	"path/filepath"
	"testing"
)

func envFrom(m map[string]string) func(string) string {
	return func(key string) string { return m[key] }
}

func TestDefaults(t *testing.T) {
	cfg, err := Load("", envFrom(nil))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Evaluator.MaxDepth != DefaultMaxEvalDepth {
		t.Errorf("MaxDepth = %d, want %d", cfg.Evaluator.MaxDepth, DefaultMaxEvalDepth)
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("Logging.Format = %q, want text", cfg.Logging.Format)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "canvasrt.yaml")
	content := `
fixtures: suites
package_db: ${DB_NAME}.db
logging:
  format: json
  level: debug
evaluator:
  max_depth: 500
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path, envFrom(map[string]string{"DB_NAME": "packages"}))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Fixtures != filepath.Join(dir, "suites") {
		t.Errorf("Fixtures = %q, want %q", cfg.Fixtures, filepath.Join(dir, "suites"))
	}
	if cfg.PackageDB != filepath.Join(dir, "packages.db") {
		t.Errorf("PackageDB = %q, want %q", cfg.PackageDB, filepath.Join(dir, "packages.db"))
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
	if cfg.Evaluator.MaxDepth != 500 {
		t.Errorf("MaxDepth = %d, want 500", cfg.Evaluator.MaxDepth)
	}
}

func TestEnvOverrides(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		check   func(*Config) bool
		wantErr bool
	}{
		{
			name:  "log format",
			env:   map[string]string{"CANVASRT_LOG_FORMAT": "json"},
			check: func(c *Config) bool { return c.Logging.Format == "json" },
		},
		{
			name:  "max depth",
			env:   map[string]string{"CANVASRT_MAX_DEPTH": "42"},
			check: func(c *Config) bool { return c.Evaluator.MaxDepth == 42 },
		},
		{
			name:  "package db",
			env:   map[string]string{"CANVASRT_PACKAGE_DB": "/tmp/p.db"},
			check: func(c *Config) bool { return c.PackageDB == "/tmp/p.db" },
		},
		{
			name:    "bad max depth",
			env:     map[string]string{"CANVASRT_MAX_DEPTH": "deep"},
			wantErr: true,
		},
		{
			name:    "bad format",
			env:     map[string]string{"CANVASRT_LOG_FORMAT": "xml"},
			wantErr: true,
		},
		{
			name:    "bad level",
			env:     map[string]string{"CANVASRT_LOG_LEVEL": "loud"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load("", envFrom(tt.env))
			if (err != nil) != tt.wantErr {
				t.Fatalf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && !tt.check(cfg) {
				t.Errorf("override not applied: %+v", cfg)
			}
		})
	}
}

func TestInterpolateEnv(t *testing.T) {
	got := string(interpolateEnv([]byte("a: ${X}, b: ${MISSING}, c: $Y"), envFrom(map[string]string{"X": "1"})))
	if got != "a: 1, b: , c: $Y" {
		t.Errorf("interpolateEnv = %q", got)
	}
}
