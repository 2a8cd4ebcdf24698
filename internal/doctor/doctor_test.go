package doctor

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func seedStore(t *testing.T, content string) {
	t.Helper()
	xdg := t.TempDir()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", xdg)
	dir := filepath.Join(xdg, "masuk")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func hasCheck(issues []Issue, check string) bool {
	for _, issue := range issues {
		if issue.Check == check {
			return true
		}
	}
	return false
}

func TestRunFlagsReservedProfileName(t *testing.T) {
	seedStore(t, `{"profiles":{"list":{"host":"10.0.0.5"}},"updated_at":1700000000}`)
	report, err := Run()
	if err != nil {
		t.Fatal(err)
	}
	if !hasCheck(report.Issues, "reserved-name") {
		t.Fatalf("expected reserved-name issue, got %+v", report.Issues)
	}
}

func TestRunFlagsEmptyHost(t *testing.T) {
	seedStore(t, `{"profiles":{"web":{"host":""}},"updated_at":1700000000}`)
	report, err := Run()
	if err != nil {
		t.Fatal(err)
	}
	if !hasCheck(report.Issues, "empty-host") {
		t.Fatalf("expected empty-host issue, got %+v", report.Issues)
	}
}

func TestRunFlagsMalformedStore(t *testing.T) {
	seedStore(t, "{not json")
	report, err := Run()
	if err != nil {
		t.Fatal(err)
	}
	if !hasCheck(report.Issues, "store-parse") {
		t.Fatalf("expected store-parse issue, got %+v", report.Issues)
	}
}

func TestRunFlagsDuplicateTargets(t *testing.T) {
	seedStore(t, `{"profiles":{"a":{"host":"10.0.0.5"},"b":{"host":"10.0.0.5"}},"updated_at":1700000000}`)
	report, err := Run()
	if err != nil {
		t.Fatal(err)
	}
	if !hasCheck(report.Issues, "duplicate-target") {
		t.Fatalf("expected duplicate-target issue, got %+v", report.Issues)
	}
}

func TestRunJSONShape(t *testing.T) {
	seedStore(t, `{"profiles":{},"updated_at":1700000000}`)
	report, err := Run()
	if err != nil {
		t.Fatal(err)
	}
	b, err := json.Marshal(report)
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatal(err)
	}
	if _, ok := decoded["issues"]; !ok {
		t.Fatalf("expected issues key in json output: %s", string(b))
	}
}
