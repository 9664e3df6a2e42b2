package graph

import (
	"fmt"
	"strings"

	"github.com/goganux/texas-career-path-explorer/pkg/domain"
	"github.com/goganux/texas-career-path-explorer/pkg/pathway"
)

// Overlay marks the highlighted path of an explorer on the graph.
type Overlay struct {
	SelectedCareerID int
	ActiveIDs        []int
}

var columns = []struct {
	title string
	kind  domain.PathwayType
}{
	{"Courses", domain.PathwayCourse},
	{"Certifications", domain.PathwayCertification},
	{"Majors", domain.PathwayMajor},
	{"Careers", domain.PathwayCareer},
}

// GenerateMermaid renders an interest's pathway graph as a left-to-right flowchart,
// one subgraph per column. Shapes follow the pathway type:
// - Course: [Rectangle]
// - Certification: [[Subroutine]]
// - Major: [/Parallelogram/]
// - Career: ([Stadium])
// Every prerequisite of a career gets an edge into it; title-fallback matches are dotted.
func GenerateMermaid(set domain.NodeSet, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	all := set.All()
	for _, col := range columns {
		nodes := columnOf(set, col.kind)
		if len(nodes) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "    subgraph %s[\"%s\"]\n", col.kind, col.title)
		for _, n := range nodes {
			opener, closer := shape(n.PathwayType)
			fmt.Fprintf(&sb, "        %s%s\"%s\"%s\n", nodeID(n.ID), opener, escapeLabel(n.Title), closer)
		}
		sb.WriteString("    end\n")
	}

	for _, career := range set.Careers {
		matches := pathway.MatchPrerequisites(career, all)
		for _, id := range matches.IDs() {
			m := matches[id]
			if m.Rule == pathway.RuleTitleFallback {
				fmt.Fprintf(&sb, "    %s -. \"%s\" .-> %s\n", nodeID(id), escapeLabel(m.StepName), nodeID(career.ID))
				continue
			}
			fmt.Fprintf(&sb, "    %s --> %s\n", nodeID(id), nodeID(career.ID))
		}
	}

	if overlay != nil && overlay.SelectedCareerID != 0 {
		sb.WriteString("\n    %% Active path\n")
		// Black text keeps contrast on both light and dark themes.
		sb.WriteString("    classDef active fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef selected fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[int]bool)
		for _, id := range overlay.ActiveIDs {
			if id == overlay.SelectedCareerID || seen[id] {
				continue
			}
			seen[id] = true
			fmt.Fprintf(&sb, "    class %s active;\n", nodeID(id))
		}
		fmt.Fprintf(&sb, "    class %s selected;\n", nodeID(overlay.SelectedCareerID))
	}

	return sb.String()
}

func columnOf(set domain.NodeSet, t domain.PathwayType) []domain.PathwayNode {
	switch t {
	case domain.PathwayCourse:
		return set.Courses
	case domain.PathwayCertification:
		return set.Certifications
	case domain.PathwayMajor:
		return set.Majors
	}
	return set.Careers
}

func shape(t domain.PathwayType) (string, string) {
	switch t {
	case domain.PathwayCertification:
		return "[[", "]]"
	case domain.PathwayMajor:
		return "[/", "/]"
	case domain.PathwayCareer:
		return "([", "])"
	}
	return "[", "]"
}

func nodeID(id int) string {
	return fmt.Sprintf("n%d", id)
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}
