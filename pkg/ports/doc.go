/*
Package ports defines the driven ports (interfaces) of the pathway explorer.

These interfaces decouple the selection engine and its surfaces from storage
and data sources, so the in-memory seed data, a Loam document directory or
Redis can be swapped without touching the engine.

# Key Interfaces

  - PathwayRepository: the node store provider (get, list per interest, upsert).
  - CatalogRepository: interests, students, progress and similar pathways.
  - SessionStore: persists explorer sessions between requests.
  - DistributedLocker: coordinates session access across replicas.
  - MarketSource: job market trends per interest.
*/
package ports
