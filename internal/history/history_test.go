package history

import (
	"testing"
	"time"
)

func TestTouchAndLastConnected(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	if err := Touch("web"); err != nil {
		t.Fatalf("touch: %v", err)
	}
	got, err := LastConnected()
	if err != nil {
		t.Fatalf("last connected: %v", err)
	}
	if got["web"] <= 0 {
		t.Fatalf("expected timestamp for web, got %+v", got)
	}
}

func TestSortNamesRecent(t *testing.T) {
	names := []string{"db", "api", "cache"}
	now := time.Now().Unix()
	sorted := SortNamesRecent(names, map[string]int64{
		"api": now,
		"db":  now - 60,
	})
	if sorted[0] != "api" {
		t.Fatalf("expected api first, got %s", sorted[0])
	}
	if sorted[1] != "db" {
		t.Fatalf("expected db second, got %s", sorted[1])
	}
	if sorted[2] != "cache" {
		t.Fatalf("expected cache last, got %s", sorted[2])
	}
}
