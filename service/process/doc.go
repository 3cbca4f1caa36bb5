// Package process spawns one shell command per workspace and multiplexes its
// stdout and stderr into line-buffered, optionally prefixed and coloured
// output. Every child is tracked in a run-scoped Registry so that a
// termination signal received by the host can be forwarded, and children
// still running at the end of a run can be shut down.
package process
