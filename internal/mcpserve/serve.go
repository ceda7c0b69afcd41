// Package mcpserve exposes a Model Context Protocol server over an
// already-populated store, via `recon serve`. It is an optional,
// external-collaborator integration surface (SPEC_FULL.md §6): the core
// pipeline never imports this package, and mcpserve only ever calls
// store.Query, the same method the pipeline coordinator runs the stage 4
// query with. Statements are not restricted to reads.
package mcpserve

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/filerecon/recon/internal/buildinfo"
	"github.com/filerecon/recon/internal/store"
)

// Server wraps an mcp.Server bound to a single recon store.
type Server struct {
	store *store.Store
	mcp   *mcp.Server
}

// queryParams is the input schema for the "query" tool.
type queryParams struct {
	SQL string `json:"sql"`
}

// NewServer builds an MCP server with a single "query" tool bound to st.
// The store is treated as a black box: the tool passes sql straight to
// store.Query, exactly as the pipeline coordinator does for a CLI-driven
// final query.
func NewServer(st *store.Store) *Server {
	s := &Server{store: st}
	s.mcp = mcp.NewServer(&mcp.Implementation{
		Name:    "recon",
		Version: buildinfo.Version,
	}, nil)
	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	s.mcp.AddTool(&mcp.Tool{
		Name:        "query",
		Description: "Run a SQL statement against the recon store and return its columns and rows.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"sql": {
					Type:        "string",
					Description: "SQL statement to run against the recon files store",
				},
			},
			Required: []string{"sql"},
		},
	}, s.handleQuery)
}

func (s *Server) handleQuery(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params queryParams
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return errorResult(fmt.Errorf("invalid parameters: %w", err)), nil
	}

	result, err := s.store.Query(ctx, params.SQL)
	if err != nil {
		return errorResult(fmt.Errorf("running query: %w", err)), nil
	}

	body, err := json.Marshal(map[string]any{
		"columns": result.Columns,
		"rows":    result.Rows,
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling query result: %w", err)
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(body)}},
	}, nil
}

func errorResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: err.Error()}},
	}
}

// Serve runs server on stdio until ctx is canceled.
func Serve(ctx context.Context, s *Server) error {
	slog.Default().With("component", "mcpserve").Info("starting MCP server on stdio")
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}
