// Package scheduler runs an action over every node of a dependency graph so
// that a node starts only after all of its dependencies completed
// successfully. Eligible nodes are admitted through a limiter, so the same
// concurrency bound applies to ordered and unordered runs.
package scheduler
