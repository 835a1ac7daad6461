package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"
)

var ErrAPIServerNotFound = errors.New("api server config not found")

// APIServer is the listen address the conversion API uses for a profile.
type APIServer struct {
	ID        int64
	ProfileID int64
	Host      string
	Port      int
	CreatedAt time.Time
}

// Address returns host:port.
func (a *APIServer) Address() string {
	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

// apiServer loads the listen address stored for a profile.
func (db *DB) apiServer(ctx context.Context, profileID int64) (*APIServer, error) {
	a := &APIServer{ProfileID: profileID}
	var createdAt string
	err := db.QueryRowContext(ctx,
		`SELECT id, host, port, created_at FROM api_servers WHERE profile_id = ?`,
		profileID,
	).Scan(&a.ID, &a.Host, &a.Port, &createdAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, ErrAPIServerNotFound
	case err != nil:
		return nil, err
	}
	a.CreatedAt, _ = time.Parse(time.DateTime, createdAt)
	return a, nil
}

// addAPIServer stores a listen address and sets its ID.
func (db *DB) addAPIServer(ctx context.Context, a *APIServer) error {
	result, err := db.ExecContext(ctx,
		`INSERT INTO api_servers (profile_id, host, port) VALUES (?, ?, ?)`,
		a.ProfileID, a.Host, a.Port,
	)
	if err != nil {
		return fmt.Errorf("failed to store API server address: %w", err)
	}
	if a.ID, err = result.LastInsertId(); err != nil {
		return err
	}
	return nil
}
