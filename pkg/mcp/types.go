package mcp

import (
	"encoding/json"
	"time"

	"github.com/urmzd/sdfwot/pkg/db"
)

// --- Health Tool ---

// GetHealthOutput is the output for the get_health tool
type GetHealthOutput struct {
	Status    string `json:"status" jsonschema:"description=Overall health status (healthy or unhealthy)"`
	Database  string `json:"database" jsonschema:"description=History database status (connected, disconnected or disabled)"`
	Timestamp string `json:"timestamp" jsonschema:"description=ISO8601 timestamp"`
}

// --- Convert Tool ---

// ConvertDocumentOutput is the output for the convert_document tool
type ConvertDocumentOutput struct {
	ID       string          `json:"id" jsonschema:"description=Conversion identifier"`
	From     string          `json:"from" jsonschema:"description=Source kind"`
	To       string          `json:"to" jsonschema:"description=Target kind"`
	Document json.RawMessage `json:"document" jsonschema:"description=Converted document"`
}

// --- Validate Tool ---

// ValidateDocumentOutput is the output for the validate_document tool
type ValidateDocumentOutput struct {
	Kind  string `json:"kind" jsonschema:"description=Document kind"`
	Valid bool   `json:"valid" jsonschema:"description=Whether the document matches its schema"`
	Error string `json:"error,omitempty" jsonschema:"description=Validation failure"`
}

// --- History Tools ---

// ConversionInfo represents a recorded conversion in tool outputs
type ConversionInfo struct {
	ID         string `json:"id" jsonschema:"description=Conversion identifier"`
	From       string `json:"from" jsonschema:"description=Source kind"`
	To         string `json:"to" jsonschema:"description=Target kind"`
	Source     string `json:"source,omitempty" jsonschema:"description=File path or client label"`
	Status     string `json:"status" jsonschema:"description=succeeded or failed"`
	Error      string `json:"error,omitempty" jsonschema:"description=Failure message"`
	InputSize  int    `json:"input_size" jsonschema:"description=Source size in bytes"`
	OutputSize int    `json:"output_size" jsonschema:"description=Output size in bytes"`
	DurationMS int64  `json:"duration_ms" jsonschema:"description=Conversion time in milliseconds"`
	CreatedAt  string `json:"created_at" jsonschema:"description=ISO8601 timestamp"`
}

// ListConversionsOutput is the output for the list_conversions tool
type ListConversionsOutput struct {
	Conversions []ConversionInfo `json:"conversions" jsonschema:"description=Recorded conversions"`
	Count       int              `json:"count" jsonschema:"description=Number of records returned"`
}

// GetConversionOutput is the output for the get_conversion tool
type GetConversionOutput struct {
	Conversion ConversionInfo `json:"conversion" jsonschema:"description=Recorded conversion"`
}

// ConversionToInfo converts a stored record to a ConversionInfo
func ConversionToInfo(c *db.Conversion) ConversionInfo {
	return ConversionInfo{
		ID:         c.ID,
		From:       c.SourceKind,
		To:         c.TargetKind,
		Source:     c.Source,
		Status:     c.Status,
		Error:      c.Error,
		InputSize:  c.InputSize,
		OutputSize: c.OutputSize,
		DurationMS: c.Duration.Milliseconds(),
		CreatedAt:  c.CreatedAt.UTC().Format(time.RFC3339),
	}
}
