package domain

import (
	"fmt"
	"strings"
)

// PathwayType determines the column a node is rendered in and whether
// selecting it highlights prerequisites or opens a detail view.
type PathwayType string

const (
	PathwayCourse        PathwayType = "course"
	PathwayCertification PathwayType = "certification"
	PathwayMajor         PathwayType = "major"
	PathwayCareer        PathwayType = "career"
)

// PathwayTypes lists the columns in render order.
var PathwayTypes = []PathwayType{PathwayCourse, PathwayCertification, PathwayMajor, PathwayCareer}

// Valid reports whether t is one of the four known columns.
func (t PathwayType) Valid() bool {
	switch t {
	case PathwayCourse, PathwayCertification, PathwayMajor, PathwayCareer:
		return true
	}
	return false
}

// Highlightable reports whether selecting a node of this type drives
// prerequisite highlighting (as opposed to opening the detail view).
func (t PathwayType) Highlightable() bool {
	return t == PathwayCareer
}

// RequiredStep is a declared prerequisite of a node.
// Status uses the progress vocabulary (completed, in-progress, upcoming, required).
type RequiredStep struct {
	ID     int    `json:"id" yaml:"id" mapstructure:"id"`
	Name   string `json:"name" yaml:"name" mapstructure:"name"`
	Status string `json:"status" yaml:"status" mapstructure:"status"`
}

// Company is an employer shown on career detail views.
type Company struct {
	Name        string `json:"name" yaml:"name" mapstructure:"name"`
	Location    string `json:"location" yaml:"location" mapstructure:"location"`
	Description string `json:"description" yaml:"description" mapstructure:"description"`
}

// AdditionalInfo holds the type-specific attributes of a node.
type AdditionalInfo struct {
	Schools       []string       `json:"schools,omitempty" yaml:"schools,omitempty" mapstructure:"schools"`
	Salary        string         `json:"salary,omitempty" yaml:"salary,omitempty" mapstructure:"salary"`
	GrowthRate    string         `json:"growthRate,omitempty" yaml:"growthRate,omitempty" mapstructure:"growthRate"`
	Companies     []Company      `json:"companies,omitempty" yaml:"companies,omitempty" mapstructure:"companies"`
	Skills        []string       `json:"skills,omitempty" yaml:"skills,omitempty" mapstructure:"skills"`
	RequiredSteps []RequiredStep `json:"requiredSteps,omitempty" yaml:"requiredSteps,omitempty" mapstructure:"requiredSteps"`
}

// PathwayNode represents one course, certification, major or career entry.
// Whether a node is on the active path is view state owned by the highlight
// engine and is deliberately not stored here.
type PathwayNode struct {
	ID             int             `json:"id" yaml:"id" mapstructure:"id"`
	InterestID     int             `json:"interestId" yaml:"interestId" mapstructure:"interestId"`
	PathwayType    PathwayType     `json:"pathwayType" yaml:"pathwayType" mapstructure:"pathwayType"`
	Title          string          `json:"title" yaml:"title" mapstructure:"title"`
	Description    string          `json:"description" yaml:"description" mapstructure:"description"`
	Status         Status          `json:"status" yaml:"status" mapstructure:"status"`
	AdditionalInfo *AdditionalInfo `json:"additionalInfo,omitempty" yaml:"additionalInfo,omitempty" mapstructure:"additionalInfo"`
}

// RequiredSteps returns the declared prerequisites, or nil when none are declared.
func (n PathwayNode) RequiredSteps() []RequiredStep {
	if n.AdditionalInfo == nil {
		return nil
	}
	return n.AdditionalInfo.RequiredSteps
}

// HasRequiredSteps reports whether the node declares a prerequisite list.
func (n PathwayNode) HasRequiredSteps() bool {
	return len(n.RequiredSteps()) > 0
}

// Clone returns a deep copy so snapshots handed across ports never alias.
func (n PathwayNode) Clone() PathwayNode {
	if n.AdditionalInfo == nil {
		return n
	}
	info := *n.AdditionalInfo
	info.Schools = append([]string(nil), n.AdditionalInfo.Schools...)
	info.Companies = append([]Company(nil), n.AdditionalInfo.Companies...)
	info.Skills = append([]string(nil), n.AdditionalInfo.Skills...)
	info.RequiredSteps = append([]RequiredStep(nil), n.AdditionalInfo.RequiredSteps...)
	n.AdditionalInfo = &info
	return n
}

// NormalizedTitle is the lower-cased title used by text matching.
func (n PathwayNode) NormalizedTitle() string {
	return strings.ToLower(n.Title)
}

// Validate checks the fields a repository relies on.
func (n PathwayNode) Validate() error {
	if n.InterestID <= 0 {
		return fmt.Errorf("%w: node %d has no interest", ErrInvalidNode, n.ID)
	}
	if !n.PathwayType.Valid() {
		return fmt.Errorf("%w: node %d has pathway type %q", ErrInvalidNode, n.ID, n.PathwayType)
	}
	return nil
}
