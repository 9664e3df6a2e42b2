/*
Package pathway implements the pathway selection engine.

Given the node set of one career interest, the engine decides which courses,
certifications and majors are prerequisites of a selected career, keeps
highlight mode and detail mode mutually exclusive, filters nodes by status and
projects the four renderable columns.

# Components

  - NodeStore: read-only snapshot of the interest's nodes.
  - MatchPrerequisites: the requirement matcher (id, step id, title fallback).
  - Highlighter: Idle/Highlighting state machine owning the active-path lookup.
  - Filter: independent multi-select status filter.
  - Project: pure composition into per-column views.
  - Engine: per-interest facade over the above.

All operations are synchronous and perform no I/O. The engine is not safe for
concurrent use; callers that share an explorer across goroutines serialize
access (see package session).
*/
package pathway
