package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrConversionNotFound = errors.New("conversion not found")

// Conversion status values
const (
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
)

// Conversion is one recorded conversion run.
type Conversion struct {
	ID         string
	ProfileID  *int64
	SourceKind string
	TargetKind string
	Source     string // file path or client label, may be empty
	InputSize  int
	OutputSize int
	Status     string
	Error      string
	Duration   time.Duration
	CreatedAt  time.Time
}

// ConversionFilter narrows a List call. Zero values mean no restriction.
type ConversionFilter struct {
	Status     string
	SourceKind string
	Limit      int
}

// ConversionStore records and queries conversion history.
type ConversionStore interface {
	Create(ctx context.Context, c *Conversion) error
	Get(ctx context.Context, id string) (*Conversion, error)
	List(ctx context.Context, filter ConversionFilter) ([]*Conversion, error)
	DeleteBefore(ctx context.Context, before time.Time) (int64, error)
}

// Conversions returns a ConversionStore for this database.
func (db *DB) Conversions() ConversionStore {
	return &conversionStore{db: db}
}

type conversionStore struct {
	db *DB
}

const conversionColumns = `id, profile_id, source_kind, target_kind, source, input_size, output_size,
	status, error, duration_ms, created_at`

func scanConversion(row rowScanner) (*Conversion, error) {
	c := &Conversion{}
	var profileID sql.NullInt64
	var durationMS int64
	var createdAt string
	err := row.Scan(&c.ID, &profileID, &c.SourceKind, &c.TargetKind, &c.Source, &c.InputSize, &c.OutputSize,
		&c.Status, &c.Error, &durationMS, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrConversionNotFound
	}
	if err != nil {
		return nil, err
	}
	if profileID.Valid {
		c.ProfileID = &profileID.Int64
	}
	c.Duration = time.Duration(durationMS) * time.Millisecond
	c.CreatedAt, _ = time.Parse(time.DateTime, createdAt)
	return c, nil
}

func (s *conversionStore) Create(ctx context.Context, c *Conversion) error {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC().Truncate(time.Second)
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO conversions (`+conversionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, c.ID, c.ProfileID, c.SourceKind, c.TargetKind, c.Source, c.InputSize, c.OutputSize,
		c.Status, c.Error, c.Duration.Milliseconds(), c.CreatedAt.UTC().Format(time.DateTime))
	if err != nil {
		return fmt.Errorf("failed to record conversion: %w", err)
	}
	return nil
}

func (s *conversionStore) Get(ctx context.Context, id string) (*Conversion, error) {
	return scanConversion(s.db.QueryRowContext(ctx,
		`SELECT `+conversionColumns+` FROM conversions WHERE id = ?`, id))
}

func (s *conversionStore) List(ctx context.Context, filter ConversionFilter) ([]*Conversion, error) {
	var where []string
	var args []any
	if filter.Status != "" {
		where = append(where, "status = ?")
		args = append(args, filter.Status)
	}
	if filter.SourceKind != "" {
		where = append(where, "source_kind = ?")
		args = append(args, filter.SourceKind)
	}

	query := `SELECT ` + conversionColumns + ` FROM conversions`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY created_at DESC, rowid DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var conversions []*Conversion
	for rows.Next() {
		c, err := scanConversion(rows)
		if err != nil {
			return nil, err
		}
		conversions = append(conversions, c)
	}
	return conversions, rows.Err()
}

// DeleteBefore removes records created before the given time and returns
// how many were removed.
func (s *conversionStore) DeleteBefore(ctx context.Context, before time.Time) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM conversions WHERE created_at < ?`,
		before.UTC().Format(time.DateTime))
	if err != nil {
		return 0, fmt.Errorf("failed to prune conversions: %w", err)
	}
	return result.RowsAffected()
}
