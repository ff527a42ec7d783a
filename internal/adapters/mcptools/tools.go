// Package mcptools exposes the roster pipeline as Model Context Protocol tools.
package mcptools

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	service "github.com/okian/pitchside/internal/app"
	"github.com/okian/pitchside/internal/domain/filter"
	"github.com/okian/pitchside/internal/domain/model"
	"github.com/okian/pitchside/internal/domain/pitch"
	"github.com/okian/pitchside/internal/domain/stats"
	"github.com/okian/pitchside/pkg/logger"
)

// Implementation name and version announced to MCP clients.
const (
	ServerName    = "pitchside"
	ServerVersion = "1.0.0"
	DefaultPath   = "/mcp"
)

// Dependencies is the part of the roster service the tools call.
type Dependencies interface {
	Options(ctx context.Context) (filter.Selection, error)
	Dashboard(ctx context.Context, q service.Query) (service.Dashboard, error)
	Compare(ctx context.Context, q service.Query, a, b int) (service.Comparison, error)
	Layout() pitch.Layout
}

// SelectionArgs narrows the squad. An omitted list keeps every value; an
// empty list keeps none.
type SelectionArgs struct {
	Statuses      []string `json:"statuses,omitempty" jsonschema:"Statuses to keep: Starting 11, Bench (omit for all)"`
	Positions     []string `json:"positions,omitempty" jsonschema:"General positions to keep (omit for all)"`
	Nationalities []string `json:"nationalities,omitempty" jsonschema:"Nationalities to keep (omit for all)"`
}

func (a SelectionArgs) query() service.Query {
	return service.Query{Statuses: a.Statuses, Positions: a.Positions, Nationalities: a.Nationalities}
}

// FiltersArgs is the input of roster_filters.
type FiltersArgs struct{}

// CompareArgs is the input of compare_players.
type CompareArgs struct {
	A             int      `json:"a" jsonschema:"First player id (required)"`
	B             int      `json:"b" jsonschema:"Second player id (required)"`
	Statuses      []string `json:"statuses,omitempty" jsonschema:"Statuses to search (omit for all)"`
	Positions     []string `json:"positions,omitempty" jsonschema:"General positions to search (omit for all)"`
	Nationalities []string `json:"nationalities,omitempty" jsonschema:"Nationalities to search (omit for all)"`
}

func (a CompareArgs) query() service.Query {
	return SelectionArgs{Statuses: a.Statuses, Positions: a.Positions, Nationalities: a.Nationalities}.query()
}

// SummaryResult is the output of roster_summary.
type SummaryResult struct {
	RunID        string           `json:"run_id"`
	Club         string           `json:"club"`
	Selection    filter.Selection `json:"selection"`
	Summary      stats.Summary    `json:"summary"`
	Display      stats.Display    `json:"display"`
	DuplicateIDs []int            `json:"duplicate_ids"`
}

// PitchResult is the output of pitch_layout.
type PitchResult struct {
	Layout   pitch.Layout      `json:"layout"`
	Pitch    []model.Placement `json:"pitch"`
	Unmapped []model.Placement `json:"unmapped"`
}

// Tools holds the tool handlers.
type Tools struct {
	deps Dependencies
}

// New creates the tool handlers.
func New(deps Dependencies) (*Tools, error) {
	if deps == nil {
		return nil, ErrNilDeps
	}
	return &Tools{deps: deps}, nil
}

// NewServer builds an MCP server with every roster tool registered.
func NewServer(deps Dependencies) (*mcp.Server, error) {
	t, err := New(deps)
	if err != nil {
		return nil, err
	}

	server := mcp.NewServer(&mcp.Implementation{Name: ServerName, Version: ServerVersion}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "roster_filters",
		Description: "Statuses, general positions and nationalities present in the squad",
	}, t.Filters)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "roster_summary",
		Description: "Headline squad metrics (player count, average value, wage and age, total value) for a selection",
	}, t.Summary)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "best_by_position",
		Description: "Highest rated player of each general position in a selection",
	}, t.BestByPosition)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "pitch_layout",
		Description: "Pitch coordinates of the starting players in a selection",
	}, t.PitchLayout)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "compare_players",
		Description: "Skill ratings of two players side by side",
	}, t.ComparePlayers)

	return server, nil
}

// Register mounts the streamable HTTP transport of server at path. wrap
// decorates the handler, e.g. with request metrics; it may be nil.
func Register(ctx context.Context, r chi.Router, path string, server *mcp.Server, wrap func(http.HandlerFunc) http.HandlerFunc) {
	if r == nil {
		panic("router is nil")
	}
	if path == "" {
		path = DefaultPath
	}
	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, &mcp.StreamableHTTPOptions{JSONResponse: true})

	var h http.HandlerFunc = handler.ServeHTTP
	if wrap != nil {
		h = wrap(h)
	}
	r.Handle(path, h)
	logger.Get().Info(ctx, "mcp tools registered", logger.String("path", path))
}

// Filters handles roster_filters.
func (t *Tools) Filters(ctx context.Context, _ *mcp.CallToolRequest, _ FiltersArgs) (*mcp.CallToolResult, any, error) {
	sel, err := t.deps.Options(ctx)
	if err != nil {
		return toolError(ctx, "roster_filters", err), nil, nil
	}
	return toolJSON(ctx, "roster_filters", sel)
}

// Summary handles roster_summary.
func (t *Tools) Summary(ctx context.Context, _ *mcp.CallToolRequest, args SelectionArgs) (*mcp.CallToolResult, any, error) {
	d, err := t.deps.Dashboard(ctx, args.query())
	if err != nil {
		return toolError(ctx, "roster_summary", err), nil, nil
	}
	return toolJSON(ctx, "roster_summary", SummaryResult{
		RunID:        d.RunID,
		Club:         d.Club,
		Selection:    d.Selection,
		Summary:      d.Summary,
		Display:      d.Display,
		DuplicateIDs: d.DuplicateIDs,
	})
}

// BestByPosition handles best_by_position.
func (t *Tools) BestByPosition(ctx context.Context, _ *mcp.CallToolRequest, args SelectionArgs) (*mcp.CallToolResult, any, error) {
	d, err := t.deps.Dashboard(ctx, args.query())
	if err != nil {
		return toolError(ctx, "best_by_position", err), nil, nil
	}
	return toolJSON(ctx, "best_by_position", d.BestByPosition)
}

// PitchLayout handles pitch_layout.
func (t *Tools) PitchLayout(ctx context.Context, _ *mcp.CallToolRequest, args SelectionArgs) (*mcp.CallToolResult, any, error) {
	d, err := t.deps.Dashboard(ctx, args.query())
	if err != nil {
		return toolError(ctx, "pitch_layout", err), nil, nil
	}
	return toolJSON(ctx, "pitch_layout", PitchResult{
		Layout:   t.deps.Layout(),
		Pitch:    d.Pitch,
		Unmapped: d.Unmapped,
	})
}

// ComparePlayers handles compare_players.
func (t *Tools) ComparePlayers(ctx context.Context, _ *mcp.CallToolRequest, args CompareArgs) (*mcp.CallToolResult, any, error) {
	if args.A <= 0 || args.B <= 0 {
		return toolError(ctx, "compare_players", ErrPlayerIDs), nil, nil
	}
	c, err := t.deps.Compare(ctx, args.query(), args.A, args.B)
	if err != nil {
		return toolError(ctx, "compare_players", err), nil, nil
	}
	return toolJSON(ctx, "compare_players", c)
}

func toolJSON(ctx context.Context, tool string, v any) (*mcp.CallToolResult, any, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return toolError(ctx, tool, err), nil, nil
	}
	logger.Get().Debug(ctx, "mcp tool call", logger.String("tool", tool), logger.Int("bytes", len(b)))
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(b)}},
	}, nil, nil
}

func toolError(ctx context.Context, tool string, err error) *mcp.CallToolResult {
	logger.Get().Warn(ctx, "mcp tool failed", logger.String("tool", tool), logger.Error(err))
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("error: %v", err)}},
	}
}
