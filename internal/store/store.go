// Package store owns load/save of the persisted profile collection.
//
// Profiles live in a single JSON file (config.json under the masuk config
// directory) with the shape:
//
//	{"profiles": {"<name>": {"host": ..., "user": ..., "port": ...}}, "updated_at": ...}
//
// Load establishes the file on first run; Save replaces the whole file
// through a temp-file rename so a crash mid-write cannot leave a truncated
// store behind. A malformed file is a fatal parse error, never silently
// reset, since discarding it would lose the user's profiles.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/herpiko/masuk/internal/appconfig"
	"github.com/herpiko/masuk/internal/model"
	"github.com/rs/zerolog/log"
)

// IOError reports a filesystem failure while reading or writing the store.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// ParseError reports a store file whose content does not match the schema.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// NotFoundError reports a lookup or removal of a profile that is not stored.
type NotFoundError struct {
	Profile string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("profile '%s' not found", e.Profile)
}

// Store reads and writes one profile file. The path is fixed at construction
// so handlers operate on an explicit value rather than ambient global state.
type Store struct {
	path string
}

// New creates a store bound to the given file path.
func New(path string) *Store {
	return &Store{path: path}
}

// Open creates a store bound to the default profile file location.
func Open() (*Store, error) {
	path, err := appconfig.ProfileFilePath()
	if err != nil {
		return nil, err
	}
	return New(path), nil
}

// Path returns the file the store is bound to.
func (s *Store) Path() string { return s.path }

// Load reads the profile file, creating the parent directory and an empty
// config on first run so subsequent invocations find a valid file.
func (s *Store) Load() (*model.Config, error) {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return nil, &IOError{Op: "create dir", Path: filepath.Dir(s.path), Err: err}
	}
	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := model.NewConfig()
			if err := s.Save(cfg); err != nil {
				return nil, err
			}
			log.Debug().Str("path", s.path).Msg("initialized empty profile store")
			return cfg, nil
		}
		return nil, &IOError{Op: "read", Path: s.path, Err: err}
	}
	var cfg model.Config
	if err := json.Unmarshal(b, &cfg); err != nil {
		return nil, &ParseError{Path: s.path, Err: err}
	}
	if cfg.Profiles == nil {
		cfg.Profiles = model.Profiles{}
	}
	return &cfg, nil
}

// Save stamps updated_at and writes the whole config, replacing any previous
// content. The write goes to a temp file in the same directory followed by a
// rename, so readers never observe a partial file.
func (s *Store) Save(cfg *model.Config) error {
	cfg.UpdatedAt = time.Now().Unix()

	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize config: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return &IOError{Op: "create dir", Path: dir, Err: err}
	}
	tmp, err := os.CreateTemp(dir, ".config-*.tmp")
	if err != nil {
		return &IOError{Op: "create temp", Path: dir, Err: err}
	}
	tmpPath := tmp.Name()
	defer func() {
		tmp.Close()
		os.Remove(tmpPath)
	}()

	if _, err := tmp.Write(b); err != nil {
		return &IOError{Op: "write", Path: tmpPath, Err: err}
	}
	if err := tmp.Sync(); err != nil {
		return &IOError{Op: "sync", Path: tmpPath, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &IOError{Op: "close", Path: tmpPath, Err: err}
	}
	if err := os.Chmod(tmpPath, 0o600); err != nil {
		return &IOError{Op: "chmod", Path: tmpPath, Err: err}
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return &IOError{Op: "rename", Path: s.path, Err: err}
	}
	log.Debug().Str("path", s.path).Int("profiles", len(cfg.Profiles)).Msg("saved profile store")
	return nil
}
