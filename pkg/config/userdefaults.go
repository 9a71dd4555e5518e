package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// UserDefaults holds the subset of Config a user may persist across runs:
// the algorithm and output choices plus the API port, not the batch
// settings or the other API settings.
type UserDefaults struct {
	ScoreCutoff int          `toml:"score_cutoff"`
	Output      OutputFormat `toml:"output"`
	APIPort     int          `toml:"api_port"`
}

// DefaultUserDefaults mirrors DefaultConfig's values for the same fields.
func DefaultUserDefaults() *UserDefaults {
	return &UserDefaults{
		ScoreCutoff: -1,
		Output:      OutputHuman,
		APIPort:     DefaultAPIPort,
	}
}

// LoadUserDefaults reads ~/.config/editdist/config.toml, decoding over
// DefaultUserDefaults so any keys the file omits keep their default value.
// A missing file is not an error; it simply yields the defaults.
func LoadUserDefaults() (*UserDefaults, error) {
	path, err := userDefaultsPath()
	if err != nil {
		return nil, err
	}

	defaults := DefaultUserDefaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaults, nil
		}
		return nil, err
	}

	if _, err := toml.Decode(string(data), defaults); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	return defaults, nil
}

// ApplyTo overlays u onto cfg: it only touches the fields UserDefaults
// tracks, leaving batch settings and the other API settings the caller
// already set alone.
func (u *UserDefaults) ApplyTo(cfg *Config) {
	cfg.ScoreCutoff = u.ScoreCutoff
	cfg.Output = u.Output
	cfg.APIPort = u.APIPort
}

func userDefaultsPath() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "editdist", "config.toml"), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "editdist", "config.toml"), nil
}
