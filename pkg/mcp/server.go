// Package mcp implements a Model Context Protocol server exposing partition
// comparison and analytics as MCP tools over stdio transport.
package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Sumatoshi-tech/hierpart/pkg/observability"
	"github.com/Sumatoshi-tech/hierpart/pkg/version"
)

// serverName is the MCP server implementation name.
const serverName = "hierpart"

// toolCount is the expected number of registered tools.
const toolCount = 2

// Tool descriptions.
const (
	compareToolDescription = "Compare two hierarchical partition trees stored on disk " +
		"and return their hierarchical mutual information, optionally normalized by " +
		"the geometric mean of the self-information of each tree."
	statsToolDescription = "Load a hierarchical partition tree from disk and return " +
		"its structural statistics: node and edge counts, depth and branching factor " +
		"distributions, and the consistency check result."
)

// ServerDeps holds injectable dependencies for the MCP server.
// Zero-value fields use production defaults.
type ServerDeps struct {
	// Logger is an optional structured logger. Nil uses slog default.
	Logger *slog.Logger

	// Metrics is an optional comparison metrics recorder. Nil disables metrics.
	Metrics *observability.CompareMetrics
}

// Server wraps the MCP SDK server with hierpart tool registrations.
type Server struct {
	inner   *mcpsdk.Server
	tools   []string
	metrics *observability.CompareMetrics
}

// NewServer creates a new MCP server with all hierpart tools registered.
func NewServer(deps ServerDeps) *Server {
	opts := &mcpsdk.ServerOptions{}
	if deps.Logger != nil {
		opts.Logger = deps.Logger
	}

	inner := mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    serverName,
			Version: version.Version,
		},
		opts,
	)

	srv := &Server{
		inner:   inner,
		tools:   make([]string, 0, toolCount),
		metrics: deps.Metrics,
	}

	srv.registerTools()

	return srv
}

// ListToolNames returns the sorted names of all registered tools.
func (s *Server) ListToolNames() []string {
	names := make([]string, len(s.tools))
	copy(names, s.tools)
	sort.Strings(names)

	return names
}

// Run starts the MCP server on stdio transport. It blocks until the context
// is canceled or the connection closes.
func (s *Server) Run(ctx context.Context) error {
	err := s.inner.Run(ctx, &mcpsdk.StdioTransport{})
	if err != nil {
		return fmt.Errorf("mcp server: %w", err)
	}

	return nil
}

// RunWithTransport starts the MCP server on the given transport. It blocks
// until the context is canceled or the connection closes.
func (s *Server) RunWithTransport(ctx context.Context, transport mcpsdk.Transport) error {
	err := s.inner.Run(ctx, transport)
	if err != nil {
		return fmt.Errorf("mcp server: %w", err)
	}

	return nil
}

// registerTools adds all hierpart MCP tools to the server.
func (s *Server) registerTools() {
	mcpsdk.AddTool(s.inner, &mcpsdk.Tool{
		Name:        ToolNameCompare,
		Description: compareToolDescription,
	}, s.handleCompare)
	s.tools = append(s.tools, ToolNameCompare)

	mcpsdk.AddTool(s.inner, &mcpsdk.Tool{
		Name:        ToolNameStats,
		Description: statsToolDescription,
	}, s.handleStats)
	s.tools = append(s.tools, ToolNameStats)
}
