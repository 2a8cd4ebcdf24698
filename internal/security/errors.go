package security

import (
	"os"
	"strings"
)

// UserMessage returns a message safe to show on the diagnostic stream.
func UserMessage(err error, redact bool) string {
	if err == nil {
		return ""
	}
	if redact {
		return RedactMessage(err.Error())
	}
	return err.Error()
}

// RedactMessage strips the home directory prefix from user-visible text.
func RedactMessage(msg string) string {
	if msg == "" {
		return msg
	}
	out := msg
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		out = strings.ReplaceAll(out, home, "~")
	}
	return out
}
