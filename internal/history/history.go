// Package history tracks when each profile was last connected to.
package history

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/herpiko/masuk/internal/appconfig"
)

type store struct {
	LastConnected map[string]int64 `json:"last_connected"`
}

func filePath() (string, error) {
	dir, err := appconfig.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "history.json"), nil
}

// Touch records a successful connect for a profile.
func Touch(profile string) error {
	st, err := load()
	if err != nil {
		return err
	}
	if st.LastConnected == nil {
		st.LastConnected = map[string]int64{}
	}
	st.LastConnected[profile] = time.Now().Unix()
	return save(st)
}

// LastConnected returns last successful connect timestamps by profile name.
func LastConnected() (map[string]int64, error) {
	st, err := load()
	if err != nil {
		return nil, err
	}
	return st.LastConnected, nil
}

// SortNamesRecent returns a new slice sorted by recent activity (desc),
// then name.
func SortNamesRecent(names []string, lastConnected map[string]int64) []string {
	out := append([]string(nil), names...)
	sort.Slice(out, func(i, j int) bool {
		ti := lastConnected[out[i]]
		tj := lastConnected[out[j]]
		if ti != tj {
			return ti > tj
		}
		return out[i] < out[j]
	})
	return out
}

func load() (store, error) {
	path, err := filePath()
	if err != nil {
		return store{}, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return store{LastConnected: map[string]int64{}}, nil
		}
		return store{}, err
	}
	var st store
	if err := json.Unmarshal(b, &st); err != nil {
		return store{LastConnected: map[string]int64{}}, nil
	}
	if st.LastConnected == nil {
		st.LastConnected = map[string]int64{}
	}
	return st, nil
}

func save(st store) error {
	path, err := filePath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	b, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o600)
}
