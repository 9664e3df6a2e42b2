package domain

import (
	"slices"
	"time"
)

// SelectionState is the serializable form of the highlight engine's state.
type SelectionState struct {
	// SelectedCareerID is the node currently driving highlighting, nil when idle.
	SelectedCareerID *int `json:"selectedCareerId,omitempty"`

	// HighlightedIDs are the prerequisites of SelectedCareerID, sorted ascending.
	HighlightedIDs []int `json:"highlightedIds"`
}

// Idle reports whether nothing is selected.
func (s SelectionState) Idle() bool {
	return s.SelectedCareerID == nil
}

// FilterState is the serializable form of the status filter.
type FilterState struct {
	// ActiveStatuses lists the statuses to show; empty means show everything.
	ActiveStatuses []Status `json:"activeStatuses"`
}

// ExplorerSession binds one explorer's view state to an interest.
type ExplorerSession struct {
	SessionID  string         `json:"sessionId"`
	InterestID int            `json:"interestId"`
	Selection  SelectionState `json:"selection"`
	Filter     FilterState    `json:"filter"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}

// NewExplorerSession creates an idle, unfiltered session for an interest.
func NewExplorerSession(sessionID string, interestID int) *ExplorerSession {
	return &ExplorerSession{
		SessionID:  sessionID,
		InterestID: interestID,
		Selection:  SelectionState{HighlightedIDs: []int{}},
		Filter:     FilterState{ActiveStatuses: []Status{}},
		UpdatedAt:  time.Now().UTC(),
	}
}

// Snapshot returns a deep copy of the session.
func (s *ExplorerSession) Snapshot() *ExplorerSession {
	if s == nil {
		return nil
	}
	c := *s
	if s.Selection.SelectedCareerID != nil {
		id := *s.Selection.SelectedCareerID
		c.Selection.SelectedCareerID = &id
	}
	c.Selection.HighlightedIDs = slices.Clone(s.Selection.HighlightedIDs)
	c.Filter.ActiveStatuses = slices.Clone(s.Filter.ActiveStatuses)
	return &c
}
