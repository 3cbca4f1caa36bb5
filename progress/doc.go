// Package progress keeps aggregated task counters (total, running,
// completed, failed, pending) for a single run. The tracker lives in the run
// context so every component receiving the context can update it.
package progress
