package dsl

import "github.com/goganux/texas-career-path-explorer/pkg/domain"

// NodeBuilder provides a fluent API for configuring a node.
type NodeBuilder struct {
	node domain.PathwayNode
}

// Status sets the student's standing on the node.
func (n *NodeBuilder) Status(status domain.Status) *NodeBuilder {
	n.node.Status = status
	return n
}

// Describe sets the description shown in the detail view.
func (n *NodeBuilder) Describe(text string) *NodeBuilder {
	n.node.Description = text
	return n
}

// Requires appends a required step. Status defaults to "required".
func (n *NodeBuilder) Requires(id int, name string) *NodeBuilder {
	return n.RequiresWithStatus(id, name, "required")
}

// RequiresWithStatus appends a required step with a progress status
// (completed, in-progress, upcoming, required).
func (n *NodeBuilder) RequiresWithStatus(id int, name, status string) *NodeBuilder {
	info := n.info()
	info.RequiredSteps = append(info.RequiredSteps, domain.RequiredStep{ID: id, Name: name, Status: status})
	return n
}

// Salary sets the salary range of a career.
func (n *NodeBuilder) Salary(salary string) *NodeBuilder {
	n.info().Salary = salary
	return n
}

// Growth sets the job growth rate of a career.
func (n *NodeBuilder) Growth(rate string) *NodeBuilder {
	n.info().GrowthRate = rate
	return n
}

// Skills appends skills.
func (n *NodeBuilder) Skills(skills ...string) *NodeBuilder {
	info := n.info()
	info.Skills = append(info.Skills, skills...)
	return n
}

// Schools appends schools offering a major.
func (n *NodeBuilder) Schools(schools ...string) *NodeBuilder {
	info := n.info()
	info.Schools = append(info.Schools, schools...)
	return n
}

// Company appends an employer.
func (n *NodeBuilder) Company(name, location, description string) *NodeBuilder {
	info := n.info()
	info.Companies = append(info.Companies, domain.Company{Name: name, Location: location, Description: description})
	return n
}

// Build returns a copy of the underlying node.
func (n *NodeBuilder) Build() domain.PathwayNode {
	return n.node.Clone()
}

func (n *NodeBuilder) info() *domain.AdditionalInfo {
	if n.node.AdditionalInfo == nil {
		n.node.AdditionalInfo = &domain.AdditionalInfo{}
	}
	return n.node.AdditionalInfo
}
