package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/urmzd/sdfwot/pkg/convert"
	"github.com/urmzd/sdfwot/pkg/db"
	"github.com/urmzd/sdfwot/pkg/document"
)

const defaultListLimit = 20

func (s *Server) handleGetHealth(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	databaseStatus := "disabled"
	if s.database != nil {
		databaseStatus = "connected"
		if err := s.database.PingContext(ctx); err != nil {
			databaseStatus = "disconnected"
		}
	}

	status := "healthy"
	if databaseStatus == "disconnected" {
		status = "unhealthy"
	}

	out := GetHealthOutput{
		Status:    status,
		Database:  databaseStatus,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleConvertDocument(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	from, err := requiredKind(request, "from")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	var to document.Kind
	if raw := request.GetString("to", ""); raw != "" {
		if to, err = document.ParseKind(raw); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}
	doc, err := requiredString(request, "document")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	res, err := s.service.Convert(ctx, convert.Request{
		From:   from,
		To:     to,
		Input:  []byte(doc),
		Source: "mcp",
	})
	if err != nil {
		if convert.IsClientError(err) {
			return mcp.NewToolResultError(fmt.Sprintf("invalid request: %s", err)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("conversion failed: %s", err)), nil
	}

	out := ConvertDocumentOutput{
		ID:       res.ID,
		From:     string(res.From),
		To:       string(res.To),
		Document: res.Output,
	}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleValidateDocument(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	kind, err := requiredKind(request, "kind")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	doc, err := requiredString(request, "document")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	out := ValidateDocumentOutput{Kind: string(kind), Valid: true}
	if err := s.service.Validate(kind, []byte(doc)); err != nil {
		out.Valid = false
		out.Error = err.Error()
	}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handlePrintDocument(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	kind, err := requiredKind(request, "kind")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	doc, err := requiredString(request, "document")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	out, err := s.service.Print(kind, []byte(doc))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load document: %s", err)), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) handleListConversions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filter := db.ConversionFilter{
		Status:     request.GetString("status", ""),
		SourceKind: request.GetString("kind", ""),
		Limit:      request.GetInt("limit", defaultListLimit),
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultListLimit
	}

	records, err := s.history.List(ctx, filter)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list conversions: %s", err)), nil
	}

	infos := make([]ConversionInfo, 0, len(records))
	for _, r := range records {
		infos = append(infos, ConversionToInfo(r))
	}

	out := ListConversionsOutput{
		Conversions: infos,
		Count:       len(infos),
	}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleGetConversion(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requiredString(request, "id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	record, err := s.history.Get(ctx, id)
	if err != nil {
		if errors.Is(err, db.ErrConversionNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("conversion %q not found", id)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("failed to get conversion: %s", err)), nil
	}

	out := GetConversionOutput{Conversion: ConversionToInfo(record)}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

// --- helpers ---

func requiredString(request mcp.CallToolRequest, key string) (string, error) {
	args := request.GetArguments()
	v, ok := args[key]
	if !ok || v == nil {
		return "", fmt.Errorf("required parameter %q is missing", key)
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", fmt.Errorf("parameter %q must be a non-empty string", key)
	}
	return s, nil
}

func requiredKind(request mcp.CallToolRequest, key string) (document.Kind, error) {
	raw, err := requiredString(request, key)
	if err != nil {
		return "", err
	}
	return document.ParseKind(raw)
}

func formatJSON(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"error":"failed to marshal response: %s"}`, err)
	}
	return string(b)
}
