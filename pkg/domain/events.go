package domain

import (
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventHighlight     EventType = "highlight"
	EventReset         EventType = "reset"
	EventDetail        EventType = "detail"
	EventTitleFallback EventType = "title_fallback"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp  time.Time `json:"timestamp"`
	Type       EventType `json:"type"`
	InterestID int       `json:"interest_id"`
}

// HighlightEvent is emitted after a career selection has been highlighted.
type HighlightEvent struct {
	EventBase
	CareerID       int   `json:"career_id"`
	HighlightedIDs []int `json:"highlighted_ids"`
	Unknown        bool  `json:"unknown,omitempty"` // career was not part of the node set
}

// ResetEvent is emitted when highlighting returns to idle.
type ResetEvent struct {
	EventBase
	PreviousCareerID *int   `json:"previous_career_id,omitempty"`
	Reason           string `json:"reason"`
}

// DetailEvent is emitted when a node is routed to the detail view.
type DetailEvent struct {
	EventBase
	NodeID      int         `json:"node_id"`
	PathwayType PathwayType `json:"pathway_type"`
}

// TitleFallbackEvent records a prerequisite matched only by title text.
// These matches are candidates for data cleanup.
type TitleFallbackEvent struct {
	EventBase
	CareerID  int    `json:"career_id"`
	NodeID    int    `json:"node_id"`
	NodeTitle string `json:"node_title"`
	StepName  string `json:"step_name"`
}

// EngineHooks defines callbacks for engine observability.
// Hooks run synchronously on the caller's goroutine.
type EngineHooks struct {
	OnHighlight     func(*HighlightEvent)
	OnReset         func(*ResetEvent)
	OnDetail        func(*DetailEvent)
	OnTitleFallback func(*TitleFallbackEvent)
}
