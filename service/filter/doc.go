// Package filter narrows a workspace set with glob patterns matched against
// workspace names and against directories relative to the repository root.
package filter
