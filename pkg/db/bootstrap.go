package db

import (
	"context"
	"fmt"
)

// Defaults written on first run.
const (
	DefaultProfileName = "default"
	DefaultTarget      = "tm"
	DefaultAPIHost     = "0.0.0.0"
	DefaultAPIPort     = 8080
)

// Bootstrap initializes the database with default data if it's empty.
// This is called after migrations and handles first-run setup.
func (db *DB) Bootstrap(ctx context.Context) error {
	needed, err := db.NeedsBootstrap(ctx)
	if err != nil {
		return fmt.Errorf("failed to check profiles: %w", err)
	}
	if !needed {
		return nil // Already bootstrapped
	}

	profile := &Profile{
		Name:          DefaultProfileName,
		DefaultTarget: DefaultTarget,
		RecordHistory: true,
		IsActive:      true,
	}
	if err := db.Profiles().Create(ctx, profile); err != nil {
		return fmt.Errorf("failed to create default profile: %w", err)
	}

	apiServer := &APIServer{ProfileID: profile.ID, Host: DefaultAPIHost, Port: DefaultAPIPort}
	if err := db.addAPIServer(ctx, apiServer); err != nil {
		return fmt.Errorf("failed to create default API server: %w", err)
	}

	return nil
}

// NeedsBootstrap returns true if the database needs initial setup.
func (db *DB) NeedsBootstrap(ctx context.Context) (bool, error) {
	var count int
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM profiles`).Scan(&count)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}
