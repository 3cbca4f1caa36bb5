// Package workspace defines the run's nodes: workspaces of a monorepo held in
// an ordered Set arena and addressed by integer handles.
package workspace
