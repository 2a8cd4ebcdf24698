// Package main is the entry point for the masuk binary.
//
// masuk is a thin alias layer over the system ssh client: it stores named
// connection profiles (host, optional user, optional port) in a local config
// file and dispatches sessions by name.
//
// Usage:
//
//	masuk <profile>                               # connect to a stored profile
//	masuk add <profile> -h <host> [-u u] [-p p]   # create or overwrite a profile
//	masuk list                                    # list profiles sorted by name
//	masuk remove <profile>                        # delete a profile
//	masuk                                         # interactive profile picker
//
// Argument classification and dispatch live in internal/cli; this file only
// handles top-level error reporting and exit codes. A remote session that
// ends with a non-zero status propagates that status as masuk's own exit
// code; every other failure exits 1.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/herpiko/masuk/internal/appconfig"
	"github.com/herpiko/masuk/internal/cli"
	"github.com/herpiko/masuk/internal/security"
	"github.com/herpiko/masuk/internal/sshclient"
)

func main() {
	err := cli.Execute(os.Args[1:])
	if err == nil {
		return
	}

	redact := true
	if settings, cfgErr := appconfig.Load(); cfgErr == nil {
		redact = settings.RedactErrors
	}
	fmt.Fprintln(os.Stderr, "Error:", security.UserMessage(err, redact))

	var sess *sshclient.SessionError
	if errors.As(err, &sess) && sess.ExitStatus > 0 {
		os.Exit(sess.ExitStatus)
	}
	os.Exit(1)
}
