package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	explorer "github.com/goganux/texas-career-path-explorer"
	"github.com/goganux/texas-career-path-explorer/internal/logging"
	"github.com/goganux/texas-career-path-explorer/pkg/domain"
	"github.com/goganux/texas-career-path-explorer/pkg/pathway"
	"github.com/goganux/texas-career-path-explorer/pkg/ports"
	"github.com/goganux/texas-career-path-explorer/pkg/session"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mitchellh/mapstructure"
	"golang.org/x/sync/errgroup"
)

// InterestsURI is the resource listing every career interest.
const InterestsURI = "pathways://interests"

// ExplorerResponse is the structured result of every explorer tool.
type ExplorerResponse struct {
	SessionID    string              `json:"session_id" jsonschema_description:"Explorer session to pass to the next tool call"`
	InterestID   int                 `json:"interest_id" jsonschema_description:"Career interest the explorer is showing"`
	Outcome      pathway.Outcome     `json:"outcome,omitempty" jsonschema_description:"What a selection did: highlighted, cleared or detail"`
	Node         *domain.PathwayNode `json:"node,omitempty" jsonschema_description:"The selected node"`
	FilterActive *bool               `json:"filter_active,omitempty" jsonschema_description:"Whether the toggled status is now part of the filter"`
	View         pathway.View        `json:"view" jsonschema_description:"Filtered columns with active-path flags"`
}

// InterestsResponse is the result of list_interests.
type InterestsResponse struct {
	Interests []domain.Interest `json:"interests"`
}

// Server exposes the explorer as MCP tools.
type Server struct {
	catalog   ports.CatalogRepository
	sessions  *session.Manager
	mcpServer *server.MCPServer
	logger    *slog.Logger
}

// Option configures the server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates the MCP server and registers its tools and resources.
func NewServer(catalog ports.CatalogRepository, sessions *session.Manager, opts ...Option) *Server {
	s := &Server{
		catalog:   catalog,
		sessions:  sessions,
		mcpServer: server.NewMCPServer("pathways-mcp", explorer.Version),
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer exposes the underlying server, mainly for in-process clients.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio serves on stdin/stdout until the input closes.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves over SSE on addr until ctx is canceled.
func (s *Server) ServeSSE(ctx context.Context, addr, baseURL string) error {
	if baseURL == "" {
		baseURL = "http://localhost" + addr
	}
	sse := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sse.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sse.MessageHandler()))
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("MCP server listening (SSE)", "address", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	})
	return g.Wait()
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("list_interests",
		mcp.WithDescription("List the career interests an explorer can be opened on."),
		mcp.WithOutputSchema[InterestsResponse](),
	), mcp.NewStructuredToolHandler(s.handleListInterests))

	s.mcpServer.AddTool(mcp.NewTool("open_explorer",
		mcp.WithDescription("Open a pathway explorer on a career interest. Returns a session id and the initial view."),
		mcp.WithNumber("interest_id", mcp.Required(), mcp.Description("Career interest id from list_interests")),
		mcp.WithOutputSchema[ExplorerResponse](),
	), mcp.NewStructuredToolHandler(s.handleOpenExplorer))

	s.mcpServer.AddTool(mcp.NewTool("select_node",
		mcp.WithDescription("Click a pathway node. A career toggles its prerequisite path; other nodes open their details."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Explorer session id")),
		mcp.WithNumber("node_id", mcp.Required(), mcp.Description("Pathway node id")),
		mcp.WithOutputSchema[ExplorerResponse](),
	), mcp.NewStructuredToolHandler(s.handleSelectNode))

	statuses := make([]string, len(domain.Statuses))
	for i, st := range domain.Statuses {
		statuses[i] = string(st)
	}
	s.mcpServer.AddTool(mcp.NewTool("toggle_filter",
		mcp.WithDescription("Add or remove a status from the explorer's filter."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Explorer session id")),
		mcp.WithString("status", mcp.Required(), mcp.Enum(statuses...), mcp.Description("Node status")),
		mcp.WithOutputSchema[ExplorerResponse](),
	), mcp.NewStructuredToolHandler(s.handleToggleFilter))

	s.mcpServer.AddTool(mcp.NewTool("reset_highlights",
		mcp.WithDescription("Clear the highlighted career path."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Explorer session id")),
		mcp.WithOutputSchema[ExplorerResponse](),
	), mcp.NewStructuredToolHandler(s.handleReset))

	s.mcpServer.AddTool(mcp.NewTool("view_pathways",
		mcp.WithDescription("Return the explorer's current filtered columns."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Explorer session id")),
		mcp.WithOutputSchema[ExplorerResponse](),
	), mcp.NewStructuredToolHandler(s.handleView))
}

type sessionArgs struct {
	SessionID string `mapstructure:"session_id"`
}

type openArgs struct {
	InterestID int `mapstructure:"interest_id"`
}

type selectArgs struct {
	SessionID string `mapstructure:"session_id"`
	NodeID    int    `mapstructure:"node_id"`
}

type toggleArgs struct {
	SessionID string `mapstructure:"session_id"`
	Status    string `mapstructure:"status"`
}

// decodeArgs copies tool arguments into dst. JSON numbers arrive as float64.
func decodeArgs(args map[string]any, dst any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           dst,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(args); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

func requireSession(id string) error {
	if id == "" {
		return errors.New("session_id is required")
	}
	return nil
}

func explorerResponse(res session.Result) ExplorerResponse {
	return ExplorerResponse{
		SessionID:  res.Session.SessionID,
		InterestID: res.View.InterestID,
		View:       res.View,
	}
}

func (s *Server) handleListInterests(ctx context.Context, _ mcp.CallToolRequest, _ map[string]any) (InterestsResponse, error) {
	interests, err := s.catalog.ListInterests(ctx)
	if err != nil {
		return InterestsResponse{}, fmt.Errorf("failed to list interests: %w", err)
	}
	return InterestsResponse{Interests: interests}, nil
}

func (s *Server) handleOpenExplorer(ctx context.Context, _ mcp.CallToolRequest, args map[string]any) (ExplorerResponse, error) {
	var in openArgs
	if err := decodeArgs(args, &in); err != nil {
		return ExplorerResponse{}, err
	}
	if _, err := s.catalog.GetInterest(ctx, in.InterestID); err != nil {
		return ExplorerResponse{}, err
	}
	res, err := s.sessions.Open(ctx, in.InterestID)
	if err != nil {
		return ExplorerResponse{}, fmt.Errorf("open explorer failed: %w", err)
	}
	return explorerResponse(res), nil
}

func (s *Server) handleSelectNode(ctx context.Context, _ mcp.CallToolRequest, args map[string]any) (ExplorerResponse, error) {
	var in selectArgs
	if err := decodeArgs(args, &in); err != nil {
		return ExplorerResponse{}, err
	}
	if err := requireSession(in.SessionID); err != nil {
		return ExplorerResponse{}, err
	}
	sel, err := s.sessions.Select(ctx, in.SessionID, in.NodeID)
	if err != nil {
		s.logger.Warn("MCP select failed", "session_id", in.SessionID, "node_id", in.NodeID, "err", err)
		return ExplorerResponse{}, err
	}
	resp := explorerResponse(sel.Result)
	resp.Outcome = sel.Outcome
	resp.Node = &sel.Node
	return resp, nil
}

func (s *Server) handleToggleFilter(ctx context.Context, _ mcp.CallToolRequest, args map[string]any) (ExplorerResponse, error) {
	var in toggleArgs
	if err := decodeArgs(args, &in); err != nil {
		return ExplorerResponse{}, err
	}
	if err := requireSession(in.SessionID); err != nil {
		return ExplorerResponse{}, err
	}
	status, err := domain.ParseStatus(in.Status)
	if err != nil {
		return ExplorerResponse{}, err
	}
	res, active, err := s.sessions.ToggleFilter(ctx, in.SessionID, status)
	if err != nil {
		return ExplorerResponse{}, err
	}
	resp := explorerResponse(res)
	resp.FilterActive = &active
	return resp, nil
}

func (s *Server) handleReset(ctx context.Context, _ mcp.CallToolRequest, args map[string]any) (ExplorerResponse, error) {
	var in sessionArgs
	if err := decodeArgs(args, &in); err != nil {
		return ExplorerResponse{}, err
	}
	if err := requireSession(in.SessionID); err != nil {
		return ExplorerResponse{}, err
	}
	res, err := s.sessions.Reset(ctx, in.SessionID)
	if err != nil {
		return ExplorerResponse{}, err
	}
	return explorerResponse(res), nil
}

func (s *Server) handleView(ctx context.Context, _ mcp.CallToolRequest, args map[string]any) (ExplorerResponse, error) {
	var in sessionArgs
	if err := decodeArgs(args, &in); err != nil {
		return ExplorerResponse{}, err
	}
	if err := requireSession(in.SessionID); err != nil {
		return ExplorerResponse{}, err
	}
	res, err := s.sessions.View(ctx, in.SessionID)
	if err != nil {
		return ExplorerResponse{}, err
	}
	return explorerResponse(res), nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(InterestsURI, "Career Interests",
		mcp.WithResourceDescription("Every career interest with its id"),
		mcp.WithMIMEType("application/json"),
	), s.readInterests)
}

func (s *Server) readInterests(ctx context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	interests, err := s.catalog.ListInterests(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list interests: %w", err)
	}
	data, err := json.Marshal(interests)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      InterestsURI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
