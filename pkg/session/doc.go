/*
Package session implements explorer session management and persistence orchestration.

A Manager rebuilds a pathway.Engine for every operation: it loads the persisted
ExplorerSession, lists the interest's node set from the repository, restores the
engine, applies the change and saves the new snapshot. Access to one session is
serialized with reference-counted local locks and, when configured, a
distributed lock, so the engine itself never needs to be shared between goroutines.
*/
package session
