// Package version decides whether a dependency declared in a workspace
// manifest resolves to a sibling workspace, either through a local path
// reference or an npm-style semantic version range.
package version
