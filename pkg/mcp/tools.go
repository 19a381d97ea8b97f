package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Sumatoshi-tech/hierpart/pkg/hierpart"
	"github.com/Sumatoshi-tech/hierpart/pkg/hmi"
	"github.com/Sumatoshi-tech/hierpart/pkg/persist"
)

// Tool name constants.
const (
	ToolNameCompare = "hierpart_compare"
	ToolNameStats   = "hierpart_stats"
)

// Sentinel errors for tool input validation.
var (
	// ErrEmptyPath indicates a required path parameter is empty.
	ErrEmptyPath = errors.New("path parameter is required and must not be empty")
)

// CompareInput is the input schema for the hierpart_compare tool.
type CompareInput struct {
	XPath      string `json:"x_path"               jsonschema:"path to the first partition tree file"`
	YPath      string `json:"y_path"               jsonschema:"path to the second partition tree file"`
	Normalized bool   `json:"normalized,omitempty" jsonschema:"also compute the normalized score"`
}

// StatsInput is the input schema for the hierpart_stats tool.
type StatsInput struct {
	Path string `json:"path" jsonschema:"path to a partition tree file"`
}

// CompareOutput is the structured result of the hierpart_compare tool.
type CompareOutput struct {
	HMI        float64  `json:"hmi"`
	Normalized *float64 `json:"normalized,omitempty"`
	SelfX      *float64 `json:"self_x,omitempty"`
	SelfY      *float64 `json:"self_y,omitempty"`
}

// StatsOutput is the structured result of the hierpart_stats tool.
type StatsOutput struct {
	Nodes         int     `json:"nodes"`
	Edges         int     `json:"edges"`
	Elements      int     `json:"elements"`
	Leaves        int     `json:"leaves"`
	MaxDepth      int     `json:"max_depth"`
	MeanLeafDepth float64 `json:"mean_leaf_depth"`
	MeanBranching float64 `json:"mean_branching_factor"`
	Consistent    bool    `json:"consistent"`
}

// ToolOutput is a generic wrapper for tool results.
type ToolOutput struct {
	Data any `json:"data"`
}

// errorResult builds a CallToolResult with isError set.
func errorResult(err error) (*mcpsdk.CallToolResult, ToolOutput, error) {
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: err.Error()},
		},
		IsError: true,
	}, ToolOutput{}, nil
}

// jsonResult builds a CallToolResult with JSON-encoded content.
func jsonResult(value any) (*mcpsdk.CallToolResult, ToolOutput, error) {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return errorResult(fmt.Errorf("encode result: %w", err))
	}

	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: string(data)},
		},
	}, ToolOutput{Data: value}, nil
}

func (s *Server) handleCompare(
	ctx context.Context,
	_ *mcpsdk.CallToolRequest,
	input CompareInput,
) (*mcpsdk.CallToolResult, ToolOutput, error) {
	if input.XPath == "" || input.YPath == "" {
		return errorResult(ErrEmptyPath)
	}

	x, err := persist.Load(input.XPath)
	if err != nil {
		return errorResult(err)
	}

	y, err := persist.Load(input.YPath)
	if err != nil {
		return errorResult(err)
	}

	start := time.Now()

	out := CompareOutput{}
	if input.Normalized {
		res := hmi.Normalized(x, y)
		out.HMI = res.Cross
		out.Normalized = &res.Score
		out.SelfX = &res.SelfX
		out.SelfY = &res.SelfY
	} else {
		out.HMI = hmi.Compare(x, y)
	}

	s.metrics.Record(ctx, ToolNameCompare, time.Since(start), x.NumNodes()+y.NumNodes(), nil)

	return jsonResult(out)
}

func (s *Server) handleStats(
	ctx context.Context,
	_ *mcpsdk.CallToolRequest,
	input StatsInput,
) (*mcpsdk.CallToolResult, ToolOutput, error) {
	if input.Path == "" {
		return errorResult(ErrEmptyPath)
	}

	p, err := persist.Load(input.Path)
	if err != nil {
		return errorResult(err)
	}

	start := time.Now()
	out := buildStats(p)
	s.metrics.Record(ctx, ToolNameStats, time.Since(start), p.NumNodes(), nil)

	return jsonResult(out)
}

func buildStats(p *hierpart.Partition[string]) StatsOutput {
	leafDepths := p.DepthsBasicStats()
	branching := p.BranchingFactorsBasicStats(true)

	return StatsOutput{
		Nodes:         p.NumNodes(),
		Edges:         p.NumEdges(),
		Elements:      p.TotalNumElements(),
		Leaves:        len(p.Leaves()),
		MaxDepth:      p.MaxDepth(),
		MeanLeafDepth: leafDepths.Mean,
		MeanBranching: branching.Mean,
		Consistent:    p.Consistency(),
	}
}
