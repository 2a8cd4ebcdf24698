// Package cli provides the command-line interface for masuk.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/herpiko/masuk/internal/appconfig"
	"github.com/herpiko/masuk/internal/doctor"
	"github.com/herpiko/masuk/internal/events"
	"github.com/herpiko/masuk/internal/history"
	"github.com/herpiko/masuk/internal/logging"
	"github.com/herpiko/masuk/internal/model"
	"github.com/herpiko/masuk/internal/resolver"
	"github.com/herpiko/masuk/internal/sshclient"
	"github.com/herpiko/masuk/internal/store"
	"github.com/herpiko/masuk/internal/ui"
	"github.com/herpiko/masuk/internal/util"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// Execute is the single dispatch point: it classifies the raw argument list
// and either connects directly (the bare-alias fast path), opens the
// interactive picker, or hands the invocation to the command tree.
func Execute(args []string) error {
	settings, err := appconfig.Load()
	if err != nil {
		return err
	}
	logging.Setup(settings.LogLevel)

	switch action := resolver.Resolve(args); action.Kind {
	case resolver.KindConnect:
		st, err := store.Open()
		if err != nil {
			return err
		}
		client := &sshclient.Client{Bin: settings.SSHCommand}
		return runConnect(st, client, events.NewStore(), action.Profile)
	case resolver.KindInteractive:
		return ui.Run()
	default:
		root := NewRootCommand()
		root.SetArgs(args)
		return root.Execute()
	}
}

// NewRootCommand creates the root cobra command. Unrecognized leading tokens
// fall through to the root handler, which treats the first positional token
// as a profile name to connect to.
func NewRootCommand() *cobra.Command {
	var debug bool
	var usePTY bool
	root := &cobra.Command{
		Use:           "masuk [profile]",
		Short:         "SSH host and port manager",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if debug {
				logging.Setup("debug")
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := resolver.FallbackProfile(args)
			if err != nil {
				return err
			}
			settings, err := appconfig.Load()
			if err != nil {
				return err
			}
			st, err := store.Open()
			if err != nil {
				return err
			}
			client := &sshclient.Client{Bin: settings.SSHCommand, PTY: usePTY}
			return runConnect(st, client, events.NewStore(), profile)
		},
	}
	root.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	root.Flags().BoolVar(&usePTY, "pty", false, "run the session on a local pseudo-terminal")

	root.AddCommand(newAddCmd())
	root.AddCommand(newListCmd())
	root.AddCommand(newRemoveCmd())
	root.AddCommand(newEventsCmd())
	root.AddCommand(newDoctorCmd())
	return root
}

func newAddCmd() *cobra.Command {
	var host, user string
	var port uint16
	cmd := &cobra.Command{
		Use:     "add <profile>",
		Short:   "Add a profile with host and optional user/port",
		Example: "  masuk add foobar -h 192.168.1.81 -u root -p 2222",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := store.Open()
			if err != nil {
				return err
			}
			return runAdd(st, args[0], host, user, port)
		},
	}
	cmd.Flags().StringVarP(&host, "host", "h", "", "host/IP address")
	cmd.Flags().StringVarP(&user, "user", "u", "", "ssh user (optional)")
	cmd.Flags().Uint16VarP(&port, "port", "p", 0, "ssh port (optional, omit to use the ssh default)")
	// -h belongs to --host here; register help without a shorthand so cobra
	// does not try to claim -h for it.
	cmd.Flags().Bool("help", false, "help for add")
	_ = cmd.MarkFlagRequired("host")
	return cmd
}

func newListCmd() *cobra.Command {
	var recent bool
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all configured profiles",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := store.Open()
			if err != nil {
				return err
			}
			return runList(st, recent)
		},
	}
	cmd.Flags().BoolVar(&recent, "recent", false, "sort by last connected instead of name")
	return cmd
}

func newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <profile>",
		Aliases: []string{"rm"},
		Short:   "Remove a profile",
		Example: "  masuk remove foobar",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := store.Open()
			if err != nil {
				return err
			}
			return runRemove(st, args[0])
		},
	}
}

func newEventsCmd() *cobra.Command {
	var profile string
	var limit int
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Show the connect session journal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			evts, err := events.NewStore().Read(events.Query{Profile: profile, Limit: limit})
			if err != nil {
				return err
			}
			if jsonOut {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(evts)
			}
			if len(evts) == 0 {
				fmt.Println("No events recorded yet.")
				return nil
			}
			fmt.Printf("%-25s %-16s %-20s %-24s %s\n", "TIME", "PROFILE", "EVENT", "TARGET", "DETAIL")
			for _, evt := range evts {
				fmt.Printf("%-25s %-16s %-20s %-24s %s\n",
					evt.Timestamp.Format("2006-01-02 15:04:05 MST"),
					evt.Profile, evt.EventType, util.EmptyDash(evt.Target), evt.Message)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&profile, "profile", "", "filter by profile name")
	cmd.Flags().IntVar(&limit, "limit", 0, "show only the last N events")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "output JSON")
	return cmd
}

func newDoctorCmd() *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose local masuk configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := doctor.Run()
			if err != nil {
				return err
			}
			if jsonOut {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}
			if len(report.Issues) == 0 {
				fmt.Println("No issues found.")
				return nil
			}
			for _, issue := range report.Issues {
				fmt.Printf("[%s] %s (%s): %s\n    fix: %s\n",
					strings.ToUpper(string(issue.Severity)), issue.Check, issue.Target,
					issue.Message, issue.Recommendation)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "output JSON")
	return cmd
}

func runAdd(st *store.Store, profile, host, user string, port uint16) error {
	if strings.TrimSpace(host) == "" {
		return fmt.Errorf("host cannot be empty")
	}
	cfg, err := st.Load()
	if err != nil {
		return err
	}
	hc := model.HostConfig{Host: host, User: user, Port: port}
	cfg.Profiles[profile] = hc
	if err := st.Save(cfg); err != nil {
		return err
	}
	fmt.Printf("✓ Added profile '%s' → %s\n", profile, hc.Display())
	return nil
}

func runList(st *store.Store, recent bool) error {
	cfg, err := st.Load()
	if err != nil {
		return err
	}
	if len(cfg.Profiles) == 0 {
		fmt.Println("No profiles configured yet. Use 'masuk add <profile> -h <host>' to add one.")
		return nil
	}
	names := cfg.Names()
	if recent {
		lastConnected, err := history.LastConnected()
		if err != nil {
			return err
		}
		names = history.SortNamesRecent(names, lastConnected)
	}
	fmt.Println("\nConfigured profiles:")
	fmt.Println()
	for _, name := range names {
		fmt.Printf("  %s → %s\n", name, cfg.Profiles[name].Display())
	}
	fmt.Println()
	return nil
}

func runRemove(st *store.Store, profile string) error {
	cfg, err := st.Load()
	if err != nil {
		return err
	}
	if _, ok := cfg.Profiles[profile]; !ok {
		return &store.NotFoundError{Profile: profile}
	}
	delete(cfg.Profiles, profile)
	if err := st.Save(cfg); err != nil {
		return err
	}
	fmt.Printf("✓ Removed profile '%s'\n", profile)
	return nil
}

func runConnect(st *store.Store, runner sshclient.Runner, journal *events.Store, profile string) error {
	cfg, err := st.Load()
	if err != nil {
		return err
	}
	hc, ok := cfg.Profiles[profile]
	if !ok {
		return fmt.Errorf("%w. Use 'masuk list' to see available profiles", &store.NotFoundError{Profile: profile})
	}

	fmt.Printf("Connecting to %s (%s)...\n", profile, hc.Display())
	sid := events.NewSessionID()
	appendEvent(journal, events.Event{
		SessionID: sid, Profile: profile, Target: hc.Display(),
		EventType: events.TypeConnectRequested,
	})

	if err := runner.Run(context.Background(), hc); err != nil {
		evt := events.Event{
			SessionID: sid, Profile: profile, Target: hc.Display(),
			EventType: events.TypeConnectFailed, Message: err.Error(),
		}
		var sess *sshclient.SessionError
		if errors.As(err, &sess) {
			evt.ExitStatus = sess.ExitStatus
		}
		appendEvent(journal, evt)
		return err
	}

	appendEvent(journal, events.Event{
		SessionID: sid, Profile: profile, Target: hc.Display(),
		EventType: events.TypeConnectSucceeded,
	})
	if err := history.Touch(profile); err != nil {
		log.Warn().Err(err).Str("profile", profile).Msg("failed to record history")
	}
	return nil
}

func appendEvent(journal *events.Store, evt events.Event) {
	if err := journal.Append(evt); err != nil {
		log.Warn().Err(err).Str("event", evt.EventType).Msg("failed to record event")
	}
}
