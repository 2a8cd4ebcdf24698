package sshclient

import (
	"context"
	"errors"
	"os/exec"
	"reflect"
	"testing"

	"github.com/herpiko/masuk/internal/model"
)

func TestBuildConnectArgs(t *testing.T) {
	cases := []struct {
		name string
		hc   model.HostConfig
		want []string
	}{
		{"host only", model.HostConfig{Host: "10.0.0.5"}, []string{"10.0.0.5"}},
		{"with user", model.HostConfig{Host: "10.0.0.5", User: "admin"}, []string{"admin@10.0.0.5"}},
		{"with port", model.HostConfig{Host: "10.0.0.5", Port: 2200}, []string{"-p", "2200", "10.0.0.5"}},
		{"full", model.HostConfig{Host: "10.0.0.5", User: "admin", Port: 2200}, []string{"-p", "2200", "admin@10.0.0.5"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := BuildConnectArgs(tc.hc); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("args mismatch\nwant=%v\n got=%v", tc.want, got)
			}
		})
	}
}

func TestEnsureBinaryMissing(t *testing.T) {
	c := &Client{Bin: "definitely-not-a-real-binary-xyz"}
	if err := c.EnsureBinary(); err == nil {
		t.Fatal("expected error for missing binary")
	}
}

func TestRunLaunchFailure(t *testing.T) {
	c := &Client{Bin: "/nonexistent/path/to/ssh"}
	err := c.Run(context.Background(), model.HostConfig{Host: "example.com"})
	var launchErr *LaunchError
	if !errors.As(err, &launchErr) {
		t.Fatalf("expected LaunchError, got %v", err)
	}
}

func TestRunNonZeroExitIsSessionError(t *testing.T) {
	// "false" ignores its arguments and exits 1, standing in for an ssh
	// session that ends with a failure status.
	if _, err := exec.LookPath("false"); err != nil {
		t.Skip("false binary not available in test environment")
	}
	c := &Client{Bin: "false"}
	err := c.Run(context.Background(), model.HostConfig{Host: "example.com"})
	var sess *SessionError
	if !errors.As(err, &sess) {
		t.Fatalf("expected SessionError, got %v", err)
	}
	if sess.ExitStatus != 1 {
		t.Fatalf("unexpected exit status: %d", sess.ExitStatus)
	}
}

func TestRunCleanExit(t *testing.T) {
	if _, err := exec.LookPath("true"); err != nil {
		t.Skip("true binary not available in test environment")
	}
	c := &Client{Bin: "true"}
	if err := c.Run(context.Background(), model.HostConfig{Host: "example.com"}); err != nil {
		t.Fatalf("expected clean exit, got %v", err)
	}
}
