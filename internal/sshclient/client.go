// Package sshclient launches interactive sessions via the system ssh binary.
//
// This package does NOT implement the SSH protocol. It shells out to the
// configured remote-login binary, which means sessions inherit the user's
// full SSH configuration (keys, agents, ProxyJump chains, etc.) without
// reimplementing any of that logic.
//
// The default mode connects the child process directly to the current
// process's stdin/stdout/stderr, so the remote session behaves exactly as if
// the user had typed the ssh command themselves; interrupt signals reach the
// child through the shared controlling terminal. RunPTY is the alternative
// mode: it allocates a local pseudo-terminal and proxies the session through
// it, useful when masuk itself is not attached to a terminal.
//
// All arguments are passed via exec.Command's argv (not shell interpolation),
// which prevents injection from profile names or hosts that contain shell
// metacharacters.
package sshclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"

	"github.com/creack/pty"
	"github.com/herpiko/masuk/internal/model"
	"github.com/rs/zerolog/log"
)

// LaunchError reports that the ssh process could not be started at all
// (binary missing, exec failure).
type LaunchError struct {
	Bin string
	Err error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("launch %s: %v", e.Bin, e.Err)
}

func (e *LaunchError) Unwrap() error { return e.Err }

// SessionError reports a session that started but ended with a non-zero
// status. Remote sessions routinely end this way (user-initiated disconnect,
// remote command failure), so callers treat it as an ordinary command
// failure and propagate ExitStatus as the process exit code.
type SessionError struct {
	ExitStatus int
}

func (e *SessionError) Error() string {
	return fmt.Sprintf("remote session exited with status %d", e.ExitStatus)
}

// Runner is the blocking run-to-completion capability the connect handler
// depends on. Tests substitute a fake; Client is the real implementation.
type Runner interface {
	Run(ctx context.Context, hc model.HostConfig) error
}

// Client launches sessions with the system ssh binary.
//
// Client is stateless apart from its configuration and safe for concurrent
// use; each call creates an independent exec.Cmd.
type Client struct {
	// Bin is the remote-login binary to invoke, "ssh" by default.
	Bin string
	// PTY selects pseudo-terminal mode for Run.
	PTY bool
}

// New creates a client that invokes "ssh".
func New() *Client { return &Client{Bin: "ssh"} }

func (c *Client) bin() string {
	if c.Bin == "" {
		return "ssh"
	}
	return c.Bin
}

// EnsureBinary checks that the remote-login binary is available on PATH.
// Called early so a missing install produces a clear message instead of a
// confusing exec error later.
func (c *Client) EnsureBinary() error {
	if _, err := exec.LookPath(c.bin()); err != nil {
		return fmt.Errorf("%s binary not found in PATH", c.bin())
	}
	return nil
}

// BuildConnectArgs composes the argv for a session without starting a
// process: an optional "-p <port>" followed by the target ("user@host" or
// "host"). Kept separate so argument composition is unit-testable.
func BuildConnectArgs(hc model.HostConfig) []string {
	var args []string
	if hc.Port != 0 {
		args = append(args, "-p", strconv.Itoa(int(hc.Port)))
	}
	return append(args, hc.Target())
}

// ConnectCommand creates an exec.Cmd for an interactive session. The caller
// is responsible for wiring stdio and starting the process.
func (c *Client) ConnectCommand(hc model.HostConfig) *exec.Cmd {
	return exec.Command(c.bin(), BuildConnectArgs(hc)...)
}

// Run launches the session and blocks until it exits. No timeout is imposed;
// an interactive session may run indefinitely. If ctx is cancelled while the
// session is active the child is killed.
func (c *Client) Run(ctx context.Context, hc model.HostConfig) error {
	if c.PTY {
		return c.runPTY(ctx, hc)
	}
	cmd := c.ConnectCommand(hc)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	log.Debug().Str("bin", c.bin()).Strs("args", cmd.Args[1:]).Msg("starting session")
	if err := cmd.Start(); err != nil {
		return &LaunchError{Bin: c.bin(), Err: err}
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()
	select {
	case <-ctx.Done():
		_ = cmd.Process.Kill()
		<-done
		return ctx.Err()
	case err := <-done:
		return classifyWait(c.bin(), err)
	}
}

// runPTY starts the session attached to a local pseudo-terminal, forwarding
// the user's stdin into the PTY and the PTY output to stdout.
func (c *Client) runPTY(ctx context.Context, hc model.HostConfig) error {
	cmd := c.ConnectCommand(hc)
	f, err := pty.Start(cmd)
	if err != nil {
		return &LaunchError{Bin: c.bin(), Err: err}
	}
	defer f.Close()

	go func() {
		_, _ = io.Copy(f, os.Stdin)
	}()
	_, _ = io.Copy(os.Stdout, f)

	if ctx.Err() != nil {
		_ = cmd.Process.Kill()
	}
	return classifyWait(c.bin(), cmd.Wait())
}

func classifyWait(bin string, err error) error {
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		status := exitErr.ExitCode()
		if status < 0 {
			status = 1
		}
		return &SessionError{ExitStatus: status}
	}
	return &LaunchError{Bin: bin, Err: err}
}
