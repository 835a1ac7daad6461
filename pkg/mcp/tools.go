package mcp

import "github.com/mark3labs/mcp-go/mcp"

var kindNames = []string{"sdf", "tm", "td"}

// registerTools registers all MCP tools with the server
func (s *Server) registerTools() {
	s.mcpServer.AddTool(
		mcp.NewTool("get_health",
			mcp.WithDescription("Check the health status of the converter and its history database"),
		),
		s.handleGetHealth,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("convert_document",
			mcp.WithDescription("Convert an SDF model to a WoT Thing Model or Thing Description, or a Thing Model back to SDF"),
			mcp.WithString("from",
				mcp.Required(),
				mcp.Enum(kindNames...),
				mcp.Description("Kind of the source document"),
			),
			mcp.WithString("to",
				mcp.Enum(kindNames...),
				mcp.Description("Target kind (default tm for SDF input, sdf otherwise)"),
			),
			mcp.WithString("document",
				mcp.Required(),
				mcp.Description("Source document as JSON text"),
			),
		),
		s.handleConvertDocument,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("validate_document",
			mcp.WithDescription("Check a document against the JSON schema of its kind"),
			mcp.WithString("kind",
				mcp.Required(),
				mcp.Enum(kindNames...),
				mcp.Description("Kind of the document"),
			),
			mcp.WithString("document",
				mcp.Required(),
				mcp.Description("Document as JSON text"),
			),
		),
		s.handleValidateDocument,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("print_document",
			mcp.WithDescription("Load a document and write it back in normalized form, dropping unknown members"),
			mcp.WithString("kind",
				mcp.Required(),
				mcp.Enum(kindNames...),
				mcp.Description("Kind of the document"),
			),
			mcp.WithString("document",
				mcp.Required(),
				mcp.Description("Document as JSON text"),
			),
		),
		s.handlePrintDocument,
	)

	if s.history == nil {
		return
	}

	s.mcpServer.AddTool(
		mcp.NewTool("list_conversions",
			mcp.WithDescription("List recorded conversions, newest first"),
			mcp.WithString("status",
				mcp.Enum("succeeded", "failed"),
				mcp.Description("Only return conversions with this status"),
			),
			mcp.WithString("kind",
				mcp.Enum(kindNames...),
				mcp.Description("Only return conversions from this source kind"),
			),
			mcp.WithNumber("limit",
				mcp.Min(1),
				mcp.Description("Maximum number of records (default 20)"),
			),
		),
		s.handleListConversions,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("get_conversion",
			mcp.WithDescription("Get a single recorded conversion by ID"),
			mcp.WithString("id",
				mcp.Required(),
				mcp.Description("Conversion ID"),
			),
		),
		s.handleGetConversion,
	)
}
