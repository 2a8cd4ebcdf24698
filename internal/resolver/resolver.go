// Package resolver classifies raw command-line tokens into a structured
// action before any command parsing happens.
//
// The ergonomic fast path is the whole point: `masuk myhost` connects
// directly, without a connect subcommand. Only when the invocation cannot be
// a bare alias does the argument list fall through to the regular command
// tree. A reserved single token always targets the built-in command, never a
// same-named profile; such a profile is effectively shadowed (see doctor's
// reserved-name check).
package resolver

import (
	"errors"
	"strings"
)

// ErrNoProfileSpecified is returned when the fallback connect path receives
// no positional token to use as a profile name.
var ErrNoProfileSpecified = errors.New("no profile specified")

// Kind tags the resolved action.
type Kind int

const (
	// KindCommand delegates to the structured command tree (add/list/remove/help).
	KindCommand Kind = iota
	// KindConnect is a direct "connect to profile" resolution.
	KindConnect
	// KindInteractive is a bare invocation with no tokens at all.
	KindInteractive
)

// Action is the tagged result of classifying one invocation.
type Action struct {
	Kind    Kind
	Profile string // set for KindConnect
}

// reservedNames are tokens that always dispatch to a built-in command when
// they appear as the sole argument. A profile stored under one of these
// names is shadowed on the bare form.
var reservedNames = map[string]struct{}{
	"add":    {},
	"list":   {},
	"ls":     {},
	"remove": {},
	"rm":     {},
	"events": {},
	"doctor": {},
	"help":   {},
	"--help": {},
	"-h":     {},
}

// Reserved reports whether tok is a built-in command name.
func Reserved(tok string) bool {
	_, ok := reservedNames[tok]
	return ok
}

// Resolve classifies args (the argument list after the program name).
func Resolve(args []string) Action {
	if len(args) == 0 {
		return Action{Kind: KindInteractive}
	}
	if len(args) == 1 && !Reserved(args[0]) && strings.TrimSpace(args[0]) != "" {
		return Action{Kind: KindConnect, Profile: args[0]}
	}
	return Action{Kind: KindCommand}
}

// FallbackProfile extracts the profile name from an unrecognized command
// invocation: the first positional token is the profile, any trailing tokens
// are ignored. Zero usable tokens is ErrNoProfileSpecified.
func FallbackProfile(args []string) (string, error) {
	for _, a := range args {
		if strings.TrimSpace(a) != "" {
			return a, nil
		}
	}
	return "", ErrNoProfileSpecified
}
