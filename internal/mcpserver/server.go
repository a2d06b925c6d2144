// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes Raido's waypoint tools for LLM integration via stdio.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/raido/internal/registry"
	"github.com/starford/raido/internal/waypoint"
)

// Server wraps the MCP server with Raido tools.
type Server struct {
	mcp    *server.MCPServer
	reg    *registry.DB
	engine *waypoint.Engine
}

// New creates a new MCP server with all Raido tools registered.
func New(reg *registry.DB, engine *waypoint.Engine) *Server {
	s := &Server{reg: reg, engine: engine}

	s.mcp = server.NewMCPServer(
		"Raido",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("list_waypoints",
		mcp.WithDescription("List every note carrying a generated index block, with its marker kind."),
	), s.listWaypoints)

	s.mcp.AddTool(mcp.NewTool("nearest_waypoint",
		mcp.WithDescription("Find the closest ancestor folder note containing an index for the given vault path. Does not modify anything."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Vault-relative path to start from (e.g. Projects/Alpha/note.md)")),
	), s.nearestWaypoint)

	s.mcp.AddTool(mcp.NewTool("regenerate_waypoint",
		mcp.WithDescription("Regenerate the index block of a note that already carries a Waypoint or Landmark marker, then propagate to nested ancestor indices."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Vault-relative path of the marker-bearing note")),
		mcp.WithString("kind", mcp.Description("Marker kind: Waypoint (default) or Landmark")),
	), s.regenerateWaypoint)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) listWaypoints(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rows, err := s.reg.List()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(rows) == 0 {
		return mcp.NewToolResultText("no waypoints registered"), nil
	}
	out, _ := json.MarshalIndent(rows, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) nearestWaypoint(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	note, kind, ok := s.engine.Nearest(path)
	if !ok {
		return mcp.NewToolResultText(fmt.Sprintf("no ancestor index found for %s", path)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("%s (%s)", note, kind)), nil
}

func (s *Server) regenerateWaypoint(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	kind := waypoint.KindWaypoint
	if k, kerr := req.RequireString("kind"); kerr == nil && strings.EqualFold(k, "landmark") {
		kind = waypoint.KindLandmark
	}
	if err := s.engine.Update(path, kind); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.engine.PropagateFrom(path); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("regenerated: %s (%s)", path, kind)), nil
}
