package domain

import (
	"fmt"
	"strings"
)

// Status is the progress label of a pathway node.
type Status string

const (
	StatusCompleted   Status = "completed"
	StatusInProgress  Status = "in-progress"
	StatusAvailable   Status = "available"
	StatusEligible    Status = "eligible"
	StatusRecommended Status = "recommended"
	StatusOption      Status = "option"
)

// Statuses lists every node status in filter-menu order.
var Statuses = []Status{
	StatusCompleted,
	StatusInProgress,
	StatusAvailable,
	StatusEligible,
	StatusRecommended,
	StatusOption,
}

var statusLabels = map[Status]string{
	StatusCompleted:   "Completed",
	StatusInProgress:  "In Progress",
	StatusAvailable:   "Available",
	StatusEligible:    "Eligible",
	StatusRecommended: "Recommended",
	StatusOption:      "Optional",
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Label returns the human readable filter label.
func (s Status) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

// ParseStatus normalizes user input (case, surrounding space) into a Status.
func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}
	return s, nil
}
