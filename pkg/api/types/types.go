package types

import (
	"encoding/json"
	"time"

	"github.com/urmzd/sdfwot/pkg/db"
)

// --- Response DTOs ---

// ErrorResponse represents an API error
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// HealthResponse is returned from GET /health
type HealthResponse struct {
	Status    string    `json:"status"`
	Database  string    `json:"database"`
	Timestamp time.Time `json:"timestamp"`
}

// ConvertResponse is returned from POST /convert
type ConvertResponse struct {
	ID         string          `json:"id"`
	From       string          `json:"from"`
	To         string          `json:"to"`
	DurationMS int64           `json:"duration_ms"`
	Document   json.RawMessage `json:"document" swaggertype:"object"`
}

// ValidateResponse is returned from POST /validate
type ValidateResponse struct {
	Kind  string `json:"kind"`
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

// Conversion is one history record
type Conversion struct {
	ID         string    `json:"id"`
	ProfileID  *int64    `json:"profile_id,omitempty"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	Source     string    `json:"source,omitempty"`
	InputSize  int       `json:"input_size"`
	OutputSize int       `json:"output_size"`
	Status     string    `json:"status"`
	Error      string    `json:"error,omitempty"`
	DurationMS int64     `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}

// ConversionResponse is returned from GET /conversions/:id
type ConversionResponse struct {
	Conversion Conversion `json:"conversion"`
}

// ListConversionsResponse is returned from GET /conversions
type ListConversionsResponse struct {
	Conversions []Conversion `json:"conversions"`
	Count       int          `json:"count"`
}

// NewConversion converts a stored record to its API form.
func NewConversion(c *db.Conversion) Conversion {
	return Conversion{
		ID:         c.ID,
		ProfileID:  c.ProfileID,
		From:       c.SourceKind,
		To:         c.TargetKind,
		Source:     c.Source,
		InputSize:  c.InputSize,
		OutputSize: c.OutputSize,
		Status:     c.Status,
		Error:      c.Error,
		DurationMS: c.Duration.Milliseconds(),
		CreatedAt:  c.CreatedAt,
	}
}
