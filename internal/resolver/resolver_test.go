package resolver

import (
	"errors"
	"testing"
)

func TestResolveBareAliasFastPath(t *testing.T) {
	action := Resolve([]string{"myhost"})
	if action.Kind != KindConnect || action.Profile != "myhost" {
		t.Fatalf("unexpected action: %+v", action)
	}
}

func TestResolveReservedTokensAlwaysDispatchCommands(t *testing.T) {
	for _, tok := range []string{"add", "list", "ls", "remove", "rm", "events", "doctor", "help", "--help", "-h"} {
		action := Resolve([]string{tok})
		if action.Kind != KindCommand {
			t.Fatalf("token %q: expected command dispatch, got %+v", tok, action)
		}
	}
}

func TestResolveNoArgsIsInteractive(t *testing.T) {
	if action := Resolve(nil); action.Kind != KindInteractive {
		t.Fatalf("unexpected action: %+v", action)
	}
}

func TestResolveMultipleTokensFallThrough(t *testing.T) {
	// Structured commands and the unknown-token fallback both go through the
	// command tree; only the single-token form takes the fast path.
	cases := [][]string{
		{"add", "web", "-h", "10.0.0.5"},
		{"somehost", "extra-args"},
		{"remove", "web"},
	}
	for _, args := range cases {
		if action := Resolve(args); action.Kind != KindCommand {
			t.Fatalf("args %v: expected command dispatch, got %+v", args, action)
		}
	}
}

func TestResolveBlankTokenIsNotAProfile(t *testing.T) {
	if action := Resolve([]string{""}); action.Kind == KindConnect {
		t.Fatalf("blank token resolved to connect: %+v", action)
	}
}

func TestFallbackProfileTakesFirstPositional(t *testing.T) {
	profile, err := FallbackProfile([]string{"somehost", "extra", "tokens"})
	if err != nil {
		t.Fatalf("fallback: %v", err)
	}
	if profile != "somehost" {
		t.Fatalf("unexpected profile: %q", profile)
	}
}

func TestFallbackProfileEmptyArgs(t *testing.T) {
	for _, args := range [][]string{nil, {}, {""}, {"  "}} {
		if _, err := FallbackProfile(args); !errors.Is(err, ErrNoProfileSpecified) {
			t.Fatalf("args %v: expected ErrNoProfileSpecified, got %v", args, err)
		}
	}
}

func TestReserved(t *testing.T) {
	if !Reserved("list") {
		t.Fatal("expected list to be reserved")
	}
	if Reserved("mybox") {
		t.Fatal("did not expect mybox to be reserved")
	}
}
