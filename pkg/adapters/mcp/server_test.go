package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/goganux/texas-career-path-explorer/pkg/adapters/memory"
	"github.com/goganux/texas-career-path-explorer/pkg/domain"
	"github.com/goganux/texas-career-path-explorer/pkg/pathway"
	"github.com/goganux/texas-career-path-explorer/pkg/session"
	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T) *Server {
	t.Helper()
	repo, err := memory.NewSeeded()
	require.NoError(t, err)
	return NewServer(repo, session.NewManager(memory.NewStore(), repo))
}

func TestTools_Registered(t *testing.T) {
	s := newServer(t)
	ctx := context.Background()

	c, err := client.NewInProcessClient(s.MCPServer())
	require.NoError(t, err)
	defer c.Close()
	require.NoError(t, c.Start(ctx))

	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{Name: "pathways-test", Version: "0.0.0"}
	_, err = c.Initialize(ctx, initReq)
	require.NoError(t, err)

	tools, err := c.ListTools(ctx, mcp.ListToolsRequest{})
	require.NoError(t, err)

	var names []string
	for _, tool := range tools.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{
		"list_interests", "open_explorer", "select_node",
		"toggle_filter", "reset_highlights", "view_pathways",
	}, names)
}

func TestExplorerTools(t *testing.T) {
	s := newServer(t)
	ctx := context.Background()
	req := mcp.CallToolRequest{}

	interests, err := s.handleListInterests(ctx, req, nil)
	require.NoError(t, err)
	require.Len(t, interests.Interests, 5)

	// Numbers arrive from JSON as float64.
	opened, err := s.handleOpenExplorer(ctx, req, map[string]any{"interest_id": float64(2)})
	require.NoError(t, err)
	require.NotEmpty(t, opened.SessionID)
	assert.Equal(t, 2, opened.InterestID)

	sel, err := s.handleSelectNode(ctx, req, map[string]any{"session_id": opened.SessionID, "node_id": float64(25)})
	require.NoError(t, err)
	assert.Equal(t, pathway.OutcomeHighlighted, sel.Outcome)
	require.NotNil(t, sel.Node)
	assert.Equal(t, "Executive Chef", sel.Node.Title)
	require.NotNil(t, sel.View.SelectedCareerID)
	assert.Equal(t, 25, *sel.View.SelectedCareerID)

	toggled, err := s.handleToggleFilter(ctx, req, map[string]any{"session_id": opened.SessionID, "status": "Completed"})
	require.NoError(t, err)
	require.NotNil(t, toggled.FilterActive)
	assert.True(t, *toggled.FilterActive)
	assert.Equal(t, []domain.Status{domain.StatusCompleted}, toggled.View.ActiveFilters)

	reset, err := s.handleReset(ctx, req, map[string]any{"session_id": opened.SessionID})
	require.NoError(t, err)
	assert.Nil(t, reset.View.SelectedCareerID)

	view, err := s.handleView(ctx, req, map[string]any{"session_id": opened.SessionID})
	require.NoError(t, err)
	assert.Equal(t, []domain.Status{domain.StatusCompleted}, view.View.ActiveFilters, "filter survives reset")
}

func TestExplorerTools_Errors(t *testing.T) {
	s := newServer(t)
	ctx := context.Background()
	req := mcp.CallToolRequest{}

	_, err := s.handleOpenExplorer(ctx, req, map[string]any{"interest_id": float64(42)})
	assert.ErrorIs(t, err, domain.ErrInterestNotFound)

	_, err = s.handleView(ctx, req, map[string]any{})
	assert.EqualError(t, err, "session_id is required")

	_, err = s.handleReset(ctx, req, map[string]any{"session_id": "gone"})
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	opened, err := s.handleOpenExplorer(ctx, req, map[string]any{"interest_id": 1})
	require.NoError(t, err)

	_, err = s.handleToggleFilter(ctx, req, map[string]any{"session_id": opened.SessionID, "status": "archived"})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)

	_, err = s.handleSelectNode(ctx, req, map[string]any{"session_id": opened.SessionID, "node_id": float64(999)})
	assert.ErrorIs(t, err, domain.ErrNodeNotFound)
}

func TestInterestsResource(t *testing.T) {
	s := newServer(t)

	contents, err := s.readInterests(context.Background(), mcp.ReadResourceRequest{})
	require.NoError(t, err)
	require.Len(t, contents, 1)

	text, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, InterestsURI, text.URI)

	var interests []domain.Interest
	require.NoError(t, json.Unmarshal([]byte(text.Text), &interests))
	assert.Equal(t, "Culinary Arts", interests[1].Name)
}
