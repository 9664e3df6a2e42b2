package pathway

import (
	"log/slog"
	"slices"
	"time"

	"github.com/goganux/texas-career-path-explorer/internal/logging"
	"github.com/goganux/texas-career-path-explorer/pkg/domain"
)

// Outcome reports what a selection did.
type Outcome string

const (
	// OutcomeHighlighted: a career is now selected and its prerequisites are active.
	OutcomeHighlighted Outcome = "highlighted"
	// OutcomeCleared: the selected career was selected again and highlighting is idle.
	OutcomeCleared Outcome = "cleared"
	// OutcomeDetail: the node is not highlight-capable and was routed to the detail view.
	OutcomeDetail Outcome = "detail"
)

// Reset reasons reported on ResetEvent.
const (
	ReasonDeselect       = "deselect"
	ReasonReselect       = "reselect"
	ReasonExplicit       = "explicit"
	ReasonInterestChange = "interest_change"
	ReasonRestore        = "restore"
)

// Highlighter is the Idle/Highlighting state machine.
// It owns the active-path lookup; nodes in the store are never written.
type Highlighter struct {
	store *NodeStore

	selected    *int
	highlighted map[int]struct{}
	matches     MatchSet

	// restoring suppresses hooks and match logging while state is rebuilt.
	restoring bool

	hooks  domain.EngineHooks
	logger *slog.Logger
	now    func() time.Time
}

// NewHighlighter creates an idle highlighter over store.
func NewHighlighter(store *NodeStore) *Highlighter {
	return &Highlighter{
		store:       store,
		highlighted: make(map[int]struct{}),
		matches:     make(MatchSet),
		logger:      logging.NewNop(),
		now:         time.Now,
	}
}

// Select applies single-select toggle semantics to node.
//
// Non-career nodes return OutcomeDetail and leave the state untouched.
// Selecting the current career clears highlighting; any other career fully
// resets first and then highlights the new one.
func (h *Highlighter) Select(node domain.PathwayNode) Outcome {
	if !node.PathwayType.Highlightable() {
		return OutcomeDetail
	}

	if h.selected != nil && *h.selected == node.ID {
		h.reset(ReasonDeselect)
		return OutcomeCleared
	}

	if h.selected != nil {
		h.reset(ReasonReselect)
	}
	h.highlight(node)
	return OutcomeHighlighted
}

// Reset forces Idle. Safe to call in any state.
func (h *Highlighter) Reset() {
	h.reset(ReasonExplicit)
}

// Replace swaps the node store after forcing Idle.
// No active-path state survives the swap.
func (h *Highlighter) Replace(store *NodeStore) {
	h.reset(ReasonInterestChange)
	h.store = store
}

// Restore rebuilds the state for a persisted selection against the current store.
// Highlights are recomputed rather than trusted; a selection that is no longer
// in the store, or is not a career, restores to Idle.
func (h *Highlighter) Restore(state domain.SelectionState) {
	h.restoring = true
	defer func() { h.restoring = false }()

	h.reset(ReasonRestore)
	if state.SelectedCareerID == nil {
		return
	}
	node, ok := h.store.Lookup(*state.SelectedCareerID)
	if !ok || !node.PathwayType.Highlightable() {
		h.logger.Warn("Dropping persisted selection not present in node set",
			"interest_id", h.store.InterestID(),
			"career_id", *state.SelectedCareerID,
		)
		return
	}
	h.highlight(node)
}

// IsActive reports whether id is on the active path (the selected career or one of its prerequisites).
func (h *Highlighter) IsActive(id int) bool {
	if h.selected != nil && *h.selected == id {
		return true
	}
	_, ok := h.highlighted[id]
	return ok
}

// Selected returns the selected career id, if any.
func (h *Highlighter) Selected() (int, bool) {
	if h.selected == nil {
		return 0, false
	}
	return *h.selected, true
}

// Matches returns the match details of the current highlight.
func (h *Highlighter) Matches() MatchSet {
	out := make(MatchSet, len(h.matches))
	for id, m := range h.matches {
		out[id] = m
	}
	return out
}

// State returns the serializable selection state.
func (h *Highlighter) State() domain.SelectionState {
	state := domain.SelectionState{HighlightedIDs: make([]int, 0, len(h.highlighted))}
	if h.selected != nil {
		id := *h.selected
		state.SelectedCareerID = &id
	}
	for id := range h.highlighted {
		state.HighlightedIDs = append(state.HighlightedIDs, id)
	}
	slices.Sort(state.HighlightedIDs)
	return state
}

func (h *Highlighter) highlight(node domain.PathwayNode) {
	candidates := h.store.Candidates(node.ID)
	unknown := !h.store.Contains(node.ID)
	if unknown {
		// Caller error: degrade to an empty candidate set instead of failing.
		h.logger.Warn("Selected career is not part of the node set",
			"interest_id", h.store.InterestID(),
			"career_id", node.ID,
		)
		candidates = nil
	}

	matches := MatchPrerequisites(node, candidates)

	id := node.ID
	h.selected = &id
	h.matches = matches
	h.highlighted = make(map[int]struct{}, len(matches))
	for nodeID := range matches {
		h.highlighted[nodeID] = struct{}{}
	}

	if h.restoring {
		return
	}

	for _, m := range matches.Fallbacks() {
		title := ""
		if n, ok := h.store.Lookup(m.NodeID); ok {
			title = n.Title
		}
		h.logger.Info("Prerequisite matched by title fallback",
			"interest_id", h.store.InterestID(),
			"career_id", node.ID,
			"node_id", m.NodeID,
			"node_title", title,
			"step_name", m.StepName,
		)
		if h.hooks.OnTitleFallback != nil {
			h.hooks.OnTitleFallback(&domain.TitleFallbackEvent{
				EventBase: h.event(domain.EventTitleFallback),
				CareerID:  node.ID,
				NodeID:    m.NodeID,
				NodeTitle: title,
				StepName:  m.StepName,
			})
		}
	}

	h.logger.Debug("Career highlighted",
		"interest_id", h.store.InterestID(),
		"career_id", node.ID,
		"highlighted", len(matches),
	)
	if h.hooks.OnHighlight != nil {
		h.hooks.OnHighlight(&domain.HighlightEvent{
			EventBase:      h.event(domain.EventHighlight),
			CareerID:       node.ID,
			HighlightedIDs: matches.IDs(),
			Unknown:        unknown,
		})
	}
}

func (h *Highlighter) reset(reason string) {
	previous := h.selected
	wasIdle := previous == nil && len(h.highlighted) == 0

	h.selected = nil
	h.highlighted = make(map[int]struct{})
	h.matches = make(MatchSet)

	if wasIdle || h.restoring {
		return
	}
	if h.hooks.OnReset != nil {
		h.hooks.OnReset(&domain.ResetEvent{
			EventBase:        h.event(domain.EventReset),
			PreviousCareerID: previous,
			Reason:           reason,
		})
	}
}

func (h *Highlighter) event(t domain.EventType) domain.EventBase {
	return domain.EventBase{
		Timestamp:  h.now(),
		Type:       t,
		InterestID: h.store.InterestID(),
	}
}
