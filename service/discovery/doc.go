// Package discovery locates the workspaces of a monorepo. Workspace globs
// are read from the root package.json "workspaces" field (a list, or an
// object with a "packages" list) or from pnpm-workspace.yaml, expanded
// relative to the root, and every matched package.json becomes a Workspace.
package discovery
