package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dmmcquay/goban-engine/internal/board"
	"github.com/dmmcquay/goban-engine/internal/cache"
	"github.com/dmmcquay/goban-engine/internal/lifedeath"
	"github.com/dmmcquay/goban-engine/internal/logging"
	"github.com/dmmcquay/goban-engine/internal/metrics"
	"github.com/dmmcquay/goban-engine/internal/rules"
	"github.com/dmmcquay/goban-engine/internal/scoring"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ToolsHandler manages the MCP tools exposed by the engine.
type ToolsHandler struct {
	logger     logging.Logger
	middleware *Middleware
	scoreCache *cache.ScoreCache
	prometheus *metrics.PrometheusCollector
}

// NewToolsHandler creates a new tools handler. scoreCache may be nil to
// disable score caching.
func NewToolsHandler(logger logging.Logger, scoreCache *cache.ScoreCache) *ToolsHandler {
	return &ToolsHandler{
		logger:     logger,
		scoreCache: scoreCache,
		prometheus: metrics.NewPrometheusCollector(),
	}
}

// SetMiddleware sets the middleware for the tools handler.
func (h *ToolsHandler) SetMiddleware(middleware *Middleware) {
	h.middleware = middleware
}

// positionParams appends the game description parameters shared by every tool.
func positionParams(extra ...mcp.ToolOption) []mcp.ToolOption {
	opts := []mcp.ToolOption{
		mcp.WithNumber("boardSize",
			mcp.Description("Board size: 9, 13, or 19 (default 19)"),
		),
		mcp.WithString("ruleSet",
			mcp.Description("Rule set: chinese, japanese, aga, ing, or new_zealand (default chinese)"),
		),
		mcp.WithNumber("komi",
			mcp.Description("Komi; 0 selects the rule set default"),
		),
		mcp.WithNumber("handicap",
			mcp.Description("Handicap stones placed before play (0-9)"),
		),
		mcp.WithArray("moves",
			mcp.Description("Moves played so far, in order: objects with 'color' (black/white) and 'coord' (GTP, e.g. 'D4', or 'pass')"),
		),
	}
	return append(opts, extra...)
}

func (h *ToolsHandler) wrap(name string, handler ToolHandler) ToolHandler {
	if h.middleware != nil {
		return h.middleware.WrapTool(name, handler)
	}
	return handler
}

// RegisterTools registers all tools with the MCP server.
func (h *ToolsHandler) RegisterTools(s *server.MCPServer) {
	checkMoveTool := mcp.NewTool("checkMove",
		positionParams(
			mcp.WithDescription("Check whether a move is legal in the given position, reporting the exact reason when it is not (occupied, suicide, ko, superko)."),
			mcp.WithString("color",
				mcp.Description("Color to play: black or white"),
				mcp.Required(),
			),
			mcp.WithString("coord",
				mcp.Description("Move to check, in GTP notation (e.g. 'D4')"),
				mcp.Required(),
			),
		)...,
	)
	s.AddTool(checkMoveTool, server.ToolHandlerFunc(h.wrap("checkMove", h.HandleCheckMove)))

	playMovesTool := mcp.NewTool("playMoves",
		positionParams(
			mcp.WithDescription("Replay a sequence of moves and return the resulting position: a board diagram, stone and capture counts, and the current ko point if any."),
		)...,
	)
	s.AddTool(playMovesTool, server.ToolHandlerFunc(h.wrap("playMoves", h.HandlePlayMoves)))

	groupStatusTool := mcp.NewTool("groupStatus",
		positionParams(
			mcp.WithDescription("Report the group at a coordinate: its color, size, liberty count, atari flag, and candidate eye points."),
			mcp.WithString("coord",
				mcp.Description("Any stone of the group, in GTP notation"),
				mcp.Required(),
			),
		)...,
	)
	s.AddTool(groupStatusTool, server.ToolHandlerFunc(h.wrap("groupStatus", h.HandleGroupStatus)))

	scoreGameTool := mcp.NewTool("scoreGame",
		positionParams(
			mcp.WithDescription("Score the final position under the selected rule set. Dead stones may be listed explicitly or detected heuristically."),
			mcp.WithArray("deadStones",
				mcp.Description("Stones to treat as dead, in GTP notation"),
			),
			mcp.WithBoolean("autoDetectDead",
				mcp.Description("Detect dead stones heuristically when none are given"),
			),
		)...,
	)
	s.AddTool(scoreGameTool, server.ToolHandlerFunc(h.wrap("scoreGame", h.HandleScoreGame)))

	estimateTool := mcp.NewTool("estimateLifeDeath",
		positionParams(
			mcp.WithDescription("Estimate the life/death status of every group (alive, dead, unsettled, or seki) and list detected seki regions. Heuristic, not a full reading."),
		)...,
	)
	s.AddTool(estimateTool, server.ToolHandlerFunc(h.wrap("estimateLifeDeath", h.HandleEstimateLifeDeath)))

	findTacticsTool := mcp.NewTool("findTactics",
		positionParams(
			mcp.WithDescription("Find immediate tactical moves for a color: captures of opponent groups in atari and moves that put opponent groups into atari."),
			mcp.WithString("color",
				mcp.Description("Color to move: black or white"),
				mcp.Required(),
			),
		)...,
	)
	s.AddTool(findTacticsTool, server.ToolHandlerFunc(h.wrap("findTactics", h.HandleFindTactics)))
}

// requestArgs extracts the argument map from a tool request.
func requestArgs(request mcp.CallToolRequest) (map[string]interface{}, error) {
	args := request.Params.Arguments
	if args == nil {
		return nil, fmt.Errorf("missing arguments")
	}
	argsMap, ok := args.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("invalid arguments format")
	}
	return argsMap, nil
}

// HandleCheckMove handles the checkMove tool.
func (h *ToolsHandler) HandleCheckMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger := h.logger.WithField("tool", "checkMove")

	argsMap, err := requestArgs(request)
	if err != nil {
		return nil, err
	}

	pos, err := parsePosition(argsMap)
	if err != nil {
		return nil, err
	}

	colorStr, _ := argsMap["color"].(string)
	c, err := parseColor(colorStr)
	if err != nil {
		return nil, err
	}

	coordStr, ok := argsMap["coord"].(string)
	if !ok {
		return nil, fmt.Errorf("missing required parameter 'coord'")
	}
	p, err := board.ParseGTP(coordStr, pos.BoardSize)
	if err != nil {
		return nil, err
	}

	state, err := Replay(pos)
	if err != nil {
		return nil, err
	}

	result := state.Engine.IsLegalMove(state.Board, p.X, p.Y, c, state.KoPoint)
	h.prometheus.RecordMove(result.String())
	logger.Debug("Move %s %s checked: %s", c, coordStr, result)

	out := map[string]interface{}{
		"coord":  board.FormatGTP(p, pos.BoardSize),
		"color":  c.String(),
		"legal":  result == rules.Success,
		"result": result.String(),
	}
	resultJSON, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to format result: %w", err)
	}
	return mcp.NewToolResultText(string(resultJSON)), nil
}

// HandlePlayMoves handles the playMoves tool.
func (h *ToolsHandler) HandlePlayMoves(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger := h.logger.WithField("tool", "playMoves")

	argsMap, err := requestArgs(request)
	if err != nil {
		return nil, err
	}

	pos, err := parsePosition(argsMap)
	if err != nil {
		return nil, err
	}

	state, err := Replay(pos)
	if err != nil {
		return nil, err
	}

	h.prometheus.RecordCaptures(board.Black.String(), state.CapturedBlack)
	h.prometheus.RecordCaptures(board.White.String(), state.CapturedWhite)

	black, white, empty := state.Board.CountStones()
	logger.Debug("Replayed %d moves: %d black, %d white on board", len(pos.Moves), black, white)

	var sb strings.Builder
	sb.WriteString(state.Board.String())
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Moves played: %d\n", len(pos.Moves)))
	sb.WriteString(fmt.Sprintf("Stones: black %d, white %d, empty %d\n", black, white, empty))
	sb.WriteString(fmt.Sprintf("Captured: black %d, white %d\n", state.CapturedBlack, state.CapturedWhite))
	sb.WriteString(fmt.Sprintf("Next to play: %s\n", state.NextColor))
	if state.KoPoint != nil {
		sb.WriteString(fmt.Sprintf("Ko point: %s\n", board.FormatGTP(*state.KoPoint, pos.BoardSize)))
	}

	return mcp.NewToolResultText(sb.String()), nil
}

// HandleGroupStatus handles the groupStatus tool.
func (h *ToolsHandler) HandleGroupStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	argsMap, err := requestArgs(request)
	if err != nil {
		return nil, err
	}

	pos, err := parsePosition(argsMap)
	if err != nil {
		return nil, err
	}

	coordStr, ok := argsMap["coord"].(string)
	if !ok {
		return nil, fmt.Errorf("missing required parameter 'coord'")
	}
	p, err := board.ParseGTP(coordStr, pos.BoardSize)
	if err != nil {
		return nil, err
	}

	state, err := Replay(pos)
	if err != nil {
		return nil, err
	}

	status := state.Engine.CheckGroupStatus(state.Board, p.X, p.Y)
	if !status.Exists {
		return mcp.NewToolResultText(fmt.Sprintf("No stone at %s", board.FormatGTP(p, pos.BoardSize))), nil
	}

	eyes := make([]string, 0, len(status.Eyes))
	for _, e := range sortedPoints(status.Eyes) {
		eyes = append(eyes, board.FormatGTP(e, pos.BoardSize))
	}

	out := map[string]interface{}{
		"coord":     board.FormatGTP(p, pos.BoardSize),
		"color":     status.Color.String(),
		"size":      status.Size,
		"liberties": status.Liberties,
		"inAtari":   status.InAtari,
		"eyes":      eyes,
	}
	resultJSON, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to format result: %w", err)
	}
	return mcp.NewToolResultText(string(resultJSON)), nil
}

// HandleScoreGame handles the scoreGame tool.
func (h *ToolsHandler) HandleScoreGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger := h.logger.WithField("tool", "scoreGame")

	argsMap, err := requestArgs(request)
	if err != nil {
		return nil, err
	}

	pos, err := parsePosition(argsMap)
	if err != nil {
		return nil, err
	}

	state, err := Replay(pos)
	if err != nil {
		return nil, err
	}

	deadStones := make(map[board.Point]bool)
	if val, ok := argsMap["deadStones"]; ok {
		list, ok := val.([]interface{})
		if !ok {
			return nil, fmt.Errorf("deadStones must be an array of coordinates")
		}
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("deadStones entries must be strings")
			}
			p, err := board.ParseGTP(s, pos.BoardSize)
			if err != nil {
				return nil, err
			}
			if state.Board.IsEmpty(p.X, p.Y) {
				return nil, fmt.Errorf("no stone at %s to mark dead", s)
			}
			deadStones[p] = true
		}
	}

	if len(deadStones) == 0 {
		autoDetect := false
		if val, ok := argsMap["autoDetectDead"]; ok {
			autoDetect, _ = val.(bool)
		}
		if autoDetect {
			deadStones = lifedeath.New(state.Board).SuggestDeadStones()
			logger.Debug("Auto-detected %d dead stones", len(deadStones))
		}
	}

	key := cache.Key(state.Board, string(pos.RuleSet), pos.Komi, deadStones)
	if result, ok := h.scoreCache.Get(key); ok {
		h.prometheus.RecordCacheHit()
		return formatScore(result)
	}
	h.prometheus.RecordCacheMiss()

	start := time.Now()
	system := scoring.NewSystem(pos.RuleSet, pos.Komi)
	result := system.CalculateScore(state.Board, state.CapturedBlack, state.CapturedWhite, deadStones)
	h.prometheus.RecordScoring(string(pos.RuleSet), time.Since(start).Seconds())

	h.scoreCache.Put(key, &result)
	h.prometheus.SetCacheItems(float64(h.scoreCache.Len()))

	return formatScore(&result)
}

func formatScore(result *scoring.Result) (*mcp.CallToolResult, error) {
	resultJSON, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to format result: %w", err)
	}
	return mcp.NewToolResultText(string(resultJSON)), nil
}

// HandleEstimateLifeDeath handles the estimateLifeDeath tool.
func (h *ToolsHandler) HandleEstimateLifeDeath(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	argsMap, err := requestArgs(request)
	if err != nil {
		return nil, err
	}

	pos, err := parsePosition(argsMap)
	if err != nil {
		return nil, err
	}

	state, err := Replay(pos)
	if err != nil {
		return nil, err
	}

	analyzer := lifedeath.New(state.Board)
	analyses := analyzer.AnalyzeAll()

	var sb strings.Builder
	sb.WriteString("# Life/Death Estimate\n\n")
	sb.WriteString("Heuristic estimate; unsettled groups need reading.\n\n")

	if len(analyses) == 0 {
		sb.WriteString("No groups on the board.\n")
		return mcp.NewToolResultText(sb.String()), nil
	}

	for _, ga := range analyses {
		stones := sortedPoints(ga.Group.Stones())
		anchor := board.FormatGTP(stones[0], pos.BoardSize)
		sb.WriteString(fmt.Sprintf("- %s group at %s: %s (%d stones, %d liberties)\n",
			ga.Group.Color(), anchor, ga.Status, ga.Group.Size(), ga.Group.Liberties()))
	}

	if regions := analyzer.SekiRegions(); len(regions) > 0 {
		sb.WriteString("\n## Seki regions\n")
		for _, r := range regions {
			coords := make([]string, 0, len(r.Points))
			for _, p := range sortedPoints(r.Points) {
				coords = append(coords, board.FormatGTP(p, pos.BoardSize))
			}
			sb.WriteString(fmt.Sprintf("- %s\n", strings.Join(coords, " ")))
		}
	}

	if dead := analyzer.SuggestDeadStones(); len(dead) > 0 {
		points := make([]board.Point, 0, len(dead))
		for p := range dead {
			points = append(points, p)
		}
		coords := make([]string, 0, len(points))
		for _, p := range sortedPoints(points) {
			coords = append(coords, board.FormatGTP(p, pos.BoardSize))
		}
		sb.WriteString("\n## Suggested dead stones\n")
		sb.WriteString(strings.Join(coords, " "))
		sb.WriteString("\n")
	}

	return mcp.NewToolResultText(sb.String()), nil
}

// HandleFindTactics handles the findTactics tool.
func (h *ToolsHandler) HandleFindTactics(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	argsMap, err := requestArgs(request)
	if err != nil {
		return nil, err
	}

	pos, err := parsePosition(argsMap)
	if err != nil {
		return nil, err
	}

	colorStr, _ := argsMap["color"].(string)
	c, err := parseColor(colorStr)
	if err != nil {
		return nil, err
	}

	state, err := Replay(pos)
	if err != nil {
		return nil, err
	}

	captures := state.Engine.FindCapturingMoves(state.Board, c)
	ataris := state.Engine.FindAtariMoves(state.Board, c)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# Tactics for %s\n\n", c))

	if len(captures) > 0 {
		sb.WriteString("## Capturing moves\n")
		for _, m := range captures {
			sb.WriteString(fmt.Sprintf("- %s captures %d stone(s)\n",
				board.FormatGTP(m.Point, pos.BoardSize), m.Captures))
		}
		sb.WriteString("\n")
	}

	if len(ataris) > 0 {
		sb.WriteString("## Atari moves\n")
		for _, m := range ataris {
			sb.WriteString(fmt.Sprintf("- %s puts a %d-stone group into atari\n",
				board.FormatGTP(m.Point, pos.BoardSize), m.GroupSize))
		}
		sb.WriteString("\n")
	}

	if len(captures) == 0 && len(ataris) == 0 {
		sb.WriteString("No immediate captures or ataris found.\n")
	}

	return mcp.NewToolResultText(sb.String()), nil
}

// sortedPoints orders points top-to-bottom, left-to-right for stable output.
func sortedPoints(points []board.Point) []board.Point {
	out := append([]board.Point(nil), points...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}
