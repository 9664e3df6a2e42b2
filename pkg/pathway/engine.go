package pathway

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/goganux/texas-career-path-explorer/internal/logging"
	"github.com/goganux/texas-career-path-explorer/pkg/domain"
)

// Engine is the pathway selection engine for one interest.
// It composes the node store, highlighter and status filter.
type Engine struct {
	store       *NodeStore
	highlighter *Highlighter
	filter      *Filter
	detail      DetailView
	hooks       domain.EngineHooks
	now         func() time.Time
	base        *slog.Logger
	logger      *slog.Logger
}

// Option configures the Engine.
type Option func(*Engine)

// WithLogger sets a structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks domain.EngineHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithClock sets the time source used to stamp events.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// WithDetailView sets the collaborator that opens course, certification and major details.
func WithDetailView(view DetailView) Option {
	return func(e *Engine) {
		e.detail = view
	}
}

// NewEngine loads the node set and starts idle and unfiltered.
func NewEngine(nodes domain.NodeSet, opts ...Option) *Engine {
	e := &Engine{
		filter: NewFilter(),
		detail: noopDetailView{},
		now:    time.Now,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.base = e.logger
	e.logger = e.base.With("interest_id", nodes.InterestID)

	e.store = NewNodeStore(nodes)
	e.highlighter = NewHighlighter(e.store)
	e.highlighter.hooks = e.hooks
	e.highlighter.logger = e.logger
	e.highlighter.now = e.now
	return e
}

// InterestID is the interest whose node set is loaded.
func (e *Engine) InterestID() int {
	return e.store.InterestID()
}

// Store exposes the read-only node store.
func (e *Engine) Store() *NodeStore {
	return e.store
}

// Select routes a node click: careers toggle highlighting, every other type
// opens the detail view without touching the selection.
func (e *Engine) Select(node domain.PathwayNode) Outcome {
	if !node.PathwayType.Highlightable() {
		e.SelectDetail(node)
		return OutcomeDetail
	}
	return e.highlighter.Select(node)
}

// SelectByID looks the node up in the current store before selecting it.
// Returns domain.ErrNodeNotFound for ids outside the loaded node set.
func (e *Engine) SelectByID(id int) (domain.PathwayNode, Outcome, error) {
	node, ok := e.store.Lookup(id)
	if !ok {
		return domain.PathwayNode{}, "", fmt.Errorf("node %d in interest %d: %w", id, e.store.InterestID(), domain.ErrNodeNotFound)
	}
	return node, e.Select(node), nil
}

// SelectDetail hands a course, certification or major to the detail view.
// The selection state is never modified on this path; careers are ignored.
func (e *Engine) SelectDetail(node domain.PathwayNode) {
	if node.PathwayType.Highlightable() {
		e.logger.Debug("Ignoring detail request for career node", "node_id", node.ID)
		return
	}
	e.detail.OpenDetail(node.Clone())
	if e.hooks.OnDetail != nil {
		e.hooks.OnDetail(&domain.DetailEvent{
			EventBase: domain.EventBase{
				Timestamp:  e.highlighter.now(),
				Type:       domain.EventDetail,
				InterestID: e.store.InterestID(),
			},
			NodeID:      node.ID,
			PathwayType: node.PathwayType,
		})
	}
}

// ResetHighlights forces Idle (background click). Idempotent.
func (e *Engine) ResetHighlights() {
	e.highlighter.Reset()
}

// ChangeInterest resets highlighting and filters and replaces the node set wholesale.
func (e *Engine) ChangeInterest(nodes domain.NodeSet) {
	previous := e.store.InterestID()
	e.highlighter.Replace(NewNodeStore(nodes))
	e.store = e.highlighter.store
	e.filter.Clear()
	e.logger = e.base.With("interest_id", nodes.InterestID)
	e.highlighter.logger = e.logger
	e.logger.Debug("Interest changed", "previous_interest_id", previous, "nodes", e.store.Len())
}

// ToggleFilter flips a status in the filter and returns whether it is now active.
func (e *Engine) ToggleFilter(status domain.Status) (bool, error) {
	if !status.Valid() {
		return false, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, status)
	}
	return e.filter.Toggle(status), nil
}

// ClearFilters removes every status from the filter.
func (e *Engine) ClearFilters() {
	e.filter.Clear()
}

// IsActive reports whether the node is on the active path.
func (e *Engine) IsActive(id int) bool {
	return e.highlighter.IsActive(id)
}

// Matches returns how each highlighted node was matched.
func (e *Engine) Matches() MatchSet {
	return e.highlighter.Matches()
}

// View projects the current state into renderable columns.
func (e *Engine) View() View {
	return Project(e.store, e.highlighter, e.filter)
}

// Selection returns the serializable selection state.
func (e *Engine) Selection() domain.SelectionState {
	return e.highlighter.State()
}

// Filter returns the serializable filter state.
func (e *Engine) Filter() domain.FilterState {
	return e.filter.State()
}

// Snapshot writes the engine state into a session record.
func (e *Engine) Snapshot(sessionID string) *domain.ExplorerSession {
	return &domain.ExplorerSession{
		SessionID:  sessionID,
		InterestID: e.store.InterestID(),
		Selection:  e.Selection(),
		Filter:     e.Filter(),
		UpdatedAt:  time.Now().UTC(),
	}
}

// Restore applies a persisted session to an engine loaded with the session's interest.
// Unknown statuses are dropped and the highlight is recomputed from the selected career.
func (e *Engine) Restore(session *domain.ExplorerSession) {
	e.filter.Clear()
	for _, s := range session.Filter.ActiveStatuses {
		if !s.Valid() {
			e.logger.Warn("Dropping unknown status from persisted filter", "status", s)
			continue
		}
		e.filter.Add(s)
	}
	e.highlighter.Restore(session.Selection)
}
