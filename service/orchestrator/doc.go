// Package orchestrator runs a task once per workspace using one of four
// strategies selected from run options: serial, serial in dependency order,
// parallel, and parallel in dependency order. It applies the
// continue-on-error policy and aggregates failures.
package orchestrator
