// Package doctor runs local diagnostics over masuk's configuration.
package doctor

import (
	"errors"
	"fmt"
	"sort"

	"github.com/herpiko/masuk/internal/appconfig"
	"github.com/herpiko/masuk/internal/resolver"
	"github.com/herpiko/masuk/internal/security"
	"github.com/herpiko/masuk/internal/sshclient"
	"github.com/herpiko/masuk/internal/store"
	"github.com/herpiko/masuk/internal/util"
)

type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

type Issue struct {
	Severity       Severity `json:"severity"`
	Check          string   `json:"check"`
	Target         string   `json:"target"`
	Message        string   `json:"message"`
	Recommendation string   `json:"recommendation"`
}

type Report struct {
	Issues []Issue `json:"issues"`
}

// Run executes local diagnostics for masuk operations.
func Run() (Report, error) {
	var issues []Issue

	settings, err := appconfig.Load()
	if err != nil {
		settings = appconfig.Default()
		issues = append(issues, Issue{
			Severity:       SeverityMedium,
			Check:          "settings",
			Target:         "config.yaml",
			Message:        err.Error(),
			Recommendation: "fix or delete config.yaml so defaults can be rewritten",
		})
	}

	client := &sshclient.Client{Bin: settings.SSHCommand}
	if err := client.EnsureBinary(); err != nil {
		issues = append(issues, Issue{
			Severity:       SeverityHigh,
			Check:          "ssh-binary",
			Target:         "PATH",
			Message:        err.Error(),
			Recommendation: "install an OpenSSH client and ensure it is on PATH",
		})
	}

	if st, err := store.Open(); err == nil {
		issues = append(issues, storeIssues(st)...)
	}

	if audit, err := security.RunLocalAudit(); err == nil {
		for _, f := range audit.Findings {
			sev := SeverityLow
			if f.Severity == security.SeverityMedium {
				sev = SeverityMedium
			}
			if f.Severity == security.SeverityHigh {
				sev = SeverityHigh
			}
			issues = append(issues, Issue{
				Severity:       sev,
				Check:          "file-permissions",
				Target:         f.Target,
				Message:        f.Message,
				Recommendation: f.Recommendation,
			})
		}
	}

	sort.Slice(issues, func(i, j int) bool {
		ri := severityRank(issues[i].Severity)
		rj := severityRank(issues[j].Severity)
		if ri != rj {
			return ri > rj
		}
		if issues[i].Check != issues[j].Check {
			return issues[i].Check < issues[j].Check
		}
		if issues[i].Target != issues[j].Target {
			return issues[i].Target < issues[j].Target
		}
		return issues[i].Message < issues[j].Message
	})
	return Report{Issues: issues}, nil
}

func storeIssues(st *store.Store) []Issue {
	cfg, err := st.Load()
	if err != nil {
		var parseErr *store.ParseError
		if errors.As(err, &parseErr) {
			return []Issue{{
				Severity:       SeverityHigh,
				Check:          "store-parse",
				Target:         st.Path(),
				Message:        err.Error(),
				Recommendation: "repair config.json by hand; masuk never discards a malformed store",
			}}
		}
		return []Issue{{
			Severity:       SeverityHigh,
			Check:          "store-read",
			Target:         st.Path(),
			Message:        err.Error(),
			Recommendation: "check ownership and permissions of the masuk config directory",
		}}
	}

	var issues []Issue
	targets := map[string][]string{}
	for _, name := range cfg.Names() {
		hc := cfg.Profiles[name]
		if hc.Host == "" {
			issues = append(issues, Issue{
				Severity:       SeverityHigh,
				Check:          "empty-host",
				Target:         name,
				Message:        "profile has an empty host",
				Recommendation: fmt.Sprintf("re-add it: masuk add %s -h <host>", name),
			})
		}
		if hc.Port != 0 {
			if err := util.ValidatePort(int(hc.Port)); err != nil {
				issues = append(issues, Issue{
					Severity:       SeverityMedium,
					Check:          "port-range",
					Target:         name,
					Message:        err.Error(),
					Recommendation: "re-add the profile with a valid port",
				})
			}
		}
		if resolver.Reserved(name) {
			issues = append(issues, Issue{
				Severity:       SeverityMedium,
				Check:          "reserved-name",
				Target:         name,
				Message:        "profile name collides with a built-in command and cannot be reached with the bare form",
				Recommendation: "rename the profile; reserved single tokens always run the built-in command",
			})
		}
		targets[hc.Display()] = append(targets[hc.Display()], name)
	}
	for target, names := range targets {
		if len(names) < 2 {
			continue
		}
		issues = append(issues, Issue{
			Severity:       SeverityLow,
			Check:          "duplicate-target",
			Target:         target,
			Message:        fmt.Sprintf("target is configured by %d profiles", len(names)),
			Recommendation: "remove duplicates unless the aliases are intentional",
		})
	}
	return issues
}

func severityRank(s Severity) int {
	switch s {
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	default:
		return 1
	}
}
