package security

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRedactMessageReplacesHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		t.Skip("home directory not resolvable")
	}
	msg := "read " + filepath.Join(home, ".config", "masuk", "config.json") + ": permission denied"
	got := RedactMessage(msg)
	if strings.Contains(got, home) {
		t.Fatalf("home not redacted: %s", got)
	}
	if !strings.Contains(got, "~") {
		t.Fatalf("expected tilde placeholder: %s", got)
	}
}

func TestUserMessagePassthroughWithoutRedact(t *testing.T) {
	err := errors.New("plain failure")
	if got := UserMessage(err, false); got != "plain failure" {
		t.Fatalf("unexpected message: %q", got)
	}
	if got := UserMessage(nil, true); got != "" {
		t.Fatalf("expected empty message for nil error, got %q", got)
	}
}

func TestRunLocalAuditFlagsLooseStorePermissions(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	dir := filepath.Join(xdg, "masuk")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	report, err := RunLocalAudit()
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, f := range report.Findings {
		if strings.HasSuffix(f.Target, "config.json") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected finding for world-readable config.json, got %+v", report.Findings)
	}
}

func TestRunLocalAuditQuietOnTightPermissions(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	dir := filepath.Join(xdg, "masuk")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte("{}"), 0o600); err != nil {
		t.Fatal(err)
	}

	report, err := RunLocalAudit()
	if err != nil {
		t.Fatal(err)
	}
	if len(report.Findings) != 0 {
		t.Fatalf("expected no findings, got %+v", report.Findings)
	}
}
