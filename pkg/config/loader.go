package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

const (
	// ProjectConfigFile is the name of the project-level config file
	ProjectConfigFile = "sdfwot.yaml"
	// UserConfigDir is the directory for user-level config, relative to home
	UserConfigDir = ".config/sdfwot"
	// UserConfigFile is the name of the user-level config file
	UserConfigFile = "config.yaml"
)

// Loader handles configuration loading with layered precedence
type Loader struct {
	// HomeDir and WorkDir default to the user's home and the current
	// directory.
	HomeDir string
	WorkDir string
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	home, _ := os.UserHomeDir()
	cwd, _ := os.Getwd()
	return &Loader{HomeDir: home, WorkDir: cwd}
}

// Load loads configuration with layered precedence:
// 1. Default config
// 2. User config (~/.config/sdfwot/config.yaml)
// 3. Project config (sdfwot.yaml in the working directory)
// 4. explicit, when non-empty; it must exist
func (l *Loader) Load(explicit string) (*Config, error) {
	config := DefaultConfig()

	for _, path := range []string{l.userConfigPath(), l.projectConfigPath()} {
		if path == "" {
			continue
		}
		layer, err := LoadFromFile(path)
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				log.Warn().Err(err).Str("path", path).Msg("Failed to load config")
			}
			continue
		}
		log.Debug().Str("path", path).Msg("Loaded config")
		config.Merge(layer)
	}

	if explicit != "" {
		layer, err := LoadFromFile(explicit)
		if err != nil {
			return nil, err
		}
		log.Debug().Str("path", explicit).Msg("Loaded config")
		config.Merge(layer)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (l *Loader) userConfigPath() string {
	if l.HomeDir == "" {
		return ""
	}
	return filepath.Join(l.HomeDir, UserConfigDir, UserConfigFile)
}

func (l *Loader) projectConfigPath() string {
	if l.WorkDir == "" {
		return ""
	}
	return filepath.Join(l.WorkDir, ProjectConfigFile)
}
