// Package graph holds the workspace dependency graph: an adjacency of
// workspace handles restricted to the current set and the selected
// dependency categories.
package graph
