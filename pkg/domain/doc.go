/*
Package domain contains the core models of the career pathway explorer.

It defines the entities the selection engine works on (pathway nodes grouped
per interest), the serializable explorer state (selection and status filter)
and the catalog records served alongside the pathway graph. The package is
kept free of I/O and persistence concerns.

# Key Entities

  - PathwayNode: one course, certification, major or career entry.
  - NodeSet: the four columns of an interest's pathway graph.
  - SelectionState / FilterState: the explorer's view state.
  - ExplorerSession: a persisted explorer bound to one interest.
  - Interest, Student, Progress, SimilarPathway, MarketTrends: catalog data.
*/
package domain
