package model

import (
	"fmt"
	"sort"
	"time"
)

// HostConfig is one stored connection profile. Host is always non-empty once
// stored; User and Port are optional and elided from the persisted JSON when
// unset so the file round-trips cleanly.
type HostConfig struct {
	Host string `json:"host"`
	User string `json:"user,omitempty"`
	Port uint16 `json:"port,omitempty"`
}

// Target returns the ssh destination, "user@host" or just "host" when no
// user is configured. The port is passed separately via -p.
func (h HostConfig) Target() string {
	if h.User != "" {
		return h.User + "@" + h.Host
	}
	return h.Host
}

// Display renders the profile as "user@host:port" with absent parts elided.
func (h HostConfig) Display() string {
	s := h.Target()
	if h.Port != 0 {
		s = fmt.Sprintf("%s:%d", s, h.Port)
	}
	return s
}

// Profiles maps profile name to its host configuration. Names are
// case-sensitive unique keys; iteration order is undefined.
type Profiles map[string]HostConfig

// Config is the persisted root of the profile store. UpdatedAt is stamped on
// every save and is metadata only; it is never read back to drive behavior.
type Config struct {
	Profiles  Profiles `json:"profiles"`
	UpdatedAt int64    `json:"updated_at"`
}

// NewConfig returns an empty config stamped with the current time.
func NewConfig() *Config {
	return &Config{
		Profiles:  Profiles{},
		UpdatedAt: time.Now().Unix(),
	}
}

// Names returns all profile names sorted ascending.
func (c *Config) Names() []string {
	out := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
