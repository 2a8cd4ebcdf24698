package appconfig

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_CreatesDefaultsOnFirstRun(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.SSHCommand != "ssh" {
		t.Fatalf("unexpected ssh command: %s", cfg.SSHCommand)
	}
	if cfg.LogLevel != "warn" {
		t.Fatalf("unexpected log level: %s", cfg.LogLevel)
	}
	if !cfg.RedactErrors {
		t.Fatal("expected redact_errors default true")
	}
	if _, err := os.Stat(filepath.Join(xdg, "masuk", "config.yaml")); err != nil {
		t.Fatalf("expected config.yaml to be written: %v", err)
	}
}

func TestLoad_NormalizesInvalidValues(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	dir := filepath.Join(xdg, "masuk")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		t.Fatal(err)
	}
	content := []byte("ssh_command: \"\"\nlog_level: loud\n")
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), content, 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.SSHCommand != "ssh" {
		t.Fatalf("expected normalized ssh command, got %s", cfg.SSHCommand)
	}
	if cfg.LogLevel != "warn" {
		t.Fatalf("expected normalized log level, got %s", cfg.LogLevel)
	}
}

func TestLoad_KeepsOverrides(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	dir := filepath.Join(xdg, "masuk")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		t.Fatal(err)
	}
	content := []byte("ssh_command: mosh\nlog_level: debug\nredact_errors: false\n")
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), content, 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.SSHCommand != "mosh" || cfg.LogLevel != "debug" || cfg.RedactErrors {
		t.Fatalf("overrides not honored: %+v", cfg)
	}
}

func TestProfileFilePathUnderConfigDir(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	path, err := ProfileFilePath()
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(xdg, "masuk", "config.json")
	if path != want {
		t.Fatalf("unexpected path: want %s got %s", want, path)
	}
}
