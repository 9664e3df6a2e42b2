/*
Package explorer is the career pathway explorer: a selection engine that lets a
student pick a target career and see which courses, certifications and majors
lead to it.

The module is organised hexagonally. The engine in pkg/pathway is synchronous
and owns the highlight and filter state for one interest's node set. Storage,
sessions and market data sit behind the interfaces in pkg/ports, with
adapters for memory, Loam document directories and Redis. The HTTP and MCP
adapters expose the explorer over the network, and cmd/pathways is the CLI.

# Concept

Each interest (Robotics & Engineering, Culinary Arts, ...) owns a graph of
pathway nodes in four columns: courses, certifications, majors and careers.
Selecting a career computes its active path from the career's required steps:

  - a node is on the path when its id is one of the career's step ids;
  - or when one of its own steps carries such an id;
  - or, as a title fallback, when its title contains a step name, ignoring case.

Selecting the same career again clears the path. Any other node type opens its
detail view. A status filter narrows every column independently of the path.

# Usage

	repo, _ := memory.NewSeeded()
	set, _ := repo.List(ctx, 1)

	e := pathway.NewEngine(set)
	e.SelectByID(11) // Robotics Engineer
	view := e.View()

For multi-request surfaces use session.Manager, which persists the engine
state per explorer session and serializes access to it.
*/
package explorer
