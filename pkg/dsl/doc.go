/*
Package dsl provides a fluent builder for an interest's pathway graph.

It lets tests, examples and tools describe courses, certifications, majors and careers in Go
instead of YAML or Markdown documents.

Example usage:

	b := dsl.New(1)

	b.Course(1, "Introduction to Robotics").Status(domain.StatusCompleted)
	b.Certification(3, "Robotics Programming Certificate").Status(domain.StatusEligible)

	b.Career(11, "Robotics Engineer").
		Salary("$85,000 - $110,000").
		Requires(1, "Intro to Robotics").
		Requires(3, "Robotics Programming Certificate")

	set, err := b.Build()         // domain.NodeSet for pathway.NewEngine
	repo, err := b.Repository()   // in-memory ports.PathwayRepository
*/
package dsl
