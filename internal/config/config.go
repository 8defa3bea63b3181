// Package config loads the optional client configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// File is the on-disk client configuration. Every field is optional;
// flags and environment variables override whatever is set here.
type File struct {
	// BaseURL is the remote storefront API endpoint.
	BaseURL string `yaml:"base_url"`

	// CacheDir enables a persistent catalog cache when set.
	CacheDir string `yaml:"cache_dir"`

	// SessionDir overrides where session state is persisted.
	SessionDir string `yaml:"session_dir"`
}

// Load reads the configuration file at path. If path is empty, uses
// ~/.rentkit/config.yaml. A missing file is not an error: the zero
// configuration is returned.
func Load(path string) (*File, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(home, ".rentkit", "config.yaml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &File{}, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg File
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	log.Debug().Str("path", path).Msg("loaded config file")

	return &cfg, nil
}
