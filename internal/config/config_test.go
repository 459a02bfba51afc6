package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.URL != "https://www.plantuml.com/plantuml" {
		t.Fatalf("unexpected default server url %q", cfg.Server.URL)
	}
	if cfg.Server.Format != "png" {
		t.Fatalf("unexpected default format %q", cfg.Server.Format)
	}
	if cfg.Transport.TimeoutSeconds != 15 || cfg.Transport.MaxRetries != 3 {
		t.Fatalf("unexpected transport defaults: %+v", cfg.Transport)
	}
	if !cfg.Transport.RetryInvalidSyntax {
		t.Fatal("expected retry_invalid_syntax to default to true")
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[server]
url = "https://plantuml.internal.example/plantuml/"
format = "SVG"

[transport]
timeout_seconds = 30
max_retries = 1
retry_invalid_syntax = false

[logging]
level = "debug"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.URL != "https://plantuml.internal.example/plantuml" {
		t.Fatalf("trailing slash not normalized: %q", cfg.Server.URL)
	}
	if cfg.Server.Format != "svg" {
		t.Fatalf("format not lowercased: %q", cfg.Server.Format)
	}
	if cfg.Transport.TimeoutSeconds != 30 || cfg.Transport.MaxRetries != 1 {
		t.Fatalf("transport not overridden: %+v", cfg.Transport)
	}
	if cfg.Transport.RetryInvalidSyntax {
		t.Fatal("retry_invalid_syntax override lost")
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("logging level not overridden: %q", cfg.Logging.Level)
	}
	// Sections absent from the file keep their defaults.
	if cfg.Logging.Format != "console" {
		t.Fatalf("logging format default lost: %q", cfg.Logging.Format)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := map[string]func(*Config){
		"empty url":    func(c *Config) { c.Server.URL = "" },
		"bad scheme":   func(c *Config) { c.Server.URL = "ftp://example.com/plantuml" },
		"bad format":   func(c *Config) { c.Server.Format = "pdf" },
		"zero timeout": func(c *Config) { c.Transport.TimeoutSeconds = 0 },
		"neg retries":  func(c *Config) { c.Transport.MaxRetries = -1 },
		"bad logfmt":   func(c *Config) { c.Logging.Format = "xml" },
		"bad loglevel": func(c *Config) { c.Logging.Level = "trace" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation to fail")
			}
		})
	}
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[server\nurl ="), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("expected parse error, got %v", err)
	}
}
