package tui

import (
	"fmt"
	"strings"

	"github.com/goganux/texas-career-path-explorer/pkg/domain"
	"github.com/goganux/texas-career-path-explorer/pkg/pathway"
)

// ViewMarkdown lays out a projected view as Markdown, one section per column.
// Active-path nodes are bold and starred; dimmed nodes are struck through.
func ViewMarkdown(title string, view pathway.View) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", title)

	if len(view.ActiveFilters) > 0 {
		labels := make([]string, len(view.ActiveFilters))
		for i, s := range view.ActiveFilters {
			labels[i] = s.Label()
		}
		fmt.Fprintf(&sb, "_Filter: %s_\n\n", strings.Join(labels, ", "))
	}

	sections := []struct {
		name  string
		nodes []pathway.ProjectedNode
	}{
		{"Courses", view.Courses},
		{"Certifications", view.Certifications},
		{"Majors", view.Majors},
		{"Careers", view.Careers},
	}
	for _, sec := range sections {
		fmt.Fprintf(&sb, "## %s\n\n", sec.name)
		if len(sec.nodes) == 0 {
			sb.WriteString("_none_\n\n")
			continue
		}
		for _, n := range sec.nodes {
			sb.WriteString(nodeLine(n))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func nodeLine(n pathway.ProjectedNode) string {
	label := fmt.Sprintf("%d. %s", n.ID, n.Title)
	switch {
	case n.IsActivePath:
		label = "**" + label + "** ★"
	case n.Dimmed:
		label = "~~" + label + "~~"
	}
	return fmt.Sprintf("- %s (%s)\n", label, n.Status.Label())
}

// DetailMarkdown describes a single node for the detail view.
func DetailMarkdown(n domain.PathwayNode) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "## %s\n\n", n.Title)
	fmt.Fprintf(&sb, "_%s · %s_\n\n", n.PathwayType, n.Status.Label())
	if n.Description != "" {
		sb.WriteString(n.Description + "\n\n")
	}
	info := n.AdditionalInfo
	if info == nil {
		return sb.String()
	}
	if info.Salary != "" {
		fmt.Fprintf(&sb, "- **Salary:** %s\n", info.Salary)
	}
	if info.GrowthRate != "" {
		fmt.Fprintf(&sb, "- **Growth:** %s\n", info.GrowthRate)
	}
	if len(info.Schools) > 0 {
		fmt.Fprintf(&sb, "- **Schools:** %s\n", strings.Join(info.Schools, ", "))
	}
	if len(info.Skills) > 0 {
		fmt.Fprintf(&sb, "- **Skills:** %s\n", strings.Join(info.Skills, ", "))
	}
	for _, c := range info.Companies {
		fmt.Fprintf(&sb, "- **%s** (%s): %s\n", c.Name, c.Location, c.Description)
	}
	if len(info.RequiredSteps) > 0 {
		sb.WriteString("\n### Required steps\n\n")
		for _, st := range info.RequiredSteps {
			fmt.Fprintf(&sb, "1. %s (%s)\n", st.Name, st.Status)
		}
	}
	return sb.String()
}
