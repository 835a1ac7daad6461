package db

import (
	"context"
	"errors"
	"fmt"
)

var ErrNoActiveProfile = errors.New("no active profile found")

// Config represents the complete runtime configuration loaded from the database.
type Config struct {
	Profile   *Profile
	APIServer *APIServer
}

// APIAddress returns the API server listen address.
func (c *Config) APIAddress() string {
	if c.APIServer == nil {
		return fmt.Sprintf("%s:%d", DefaultAPIHost, DefaultAPIPort)
	}
	return c.APIServer.Address()
}

// DefaultTarget returns the kind an SDF document converts to when the
// caller names no target.
func (c *Config) DefaultTarget() string {
	if c.Profile == nil || c.Profile.DefaultTarget == "" {
		return DefaultTarget
	}
	return c.Profile.DefaultTarget
}

// RecordHistory reports whether conversions are stored.
func (c *Config) RecordHistory() bool {
	return c.Profile == nil || c.Profile.RecordHistory
}

// ActiveConfig loads the complete configuration for the active profile.
func (db *DB) ActiveConfig(ctx context.Context) (*Config, error) {
	profile, err := db.Profiles().GetActive(ctx)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			return nil, ErrNoActiveProfile
		}
		return nil, fmt.Errorf("failed to get active profile: %w", err)
	}

	config := &Config{
		Profile: profile,
	}

	apiServer, err := db.apiServer(ctx, profile.ID)
	if err != nil && !errors.Is(err, ErrAPIServerNotFound) {
		return nil, fmt.Errorf("failed to get API server config: %w", err)
	}
	config.APIServer = apiServer

	return config, nil
}
