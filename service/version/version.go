package version

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/viant/wsrun/model/graph"
	"github.com/viant/wsrun/model/workspace"
)

const workspaceProtocol = "workspace:"

var localReference = regexp.MustCompile(`^(?:file|link|workspace):(.+)$`)

// Satisfier is the graph.Satisfier backed by Satisfies.
var Satisfier graph.Satisfier = graph.SatisfierFunc(Satisfies)

// Satisfies reports whether candidate fulfils requirement declared by from.
// Local references (file:, link:, workspace:<path>) must point at the
// candidate's directory; workspace:*, workspace:^ and workspace:~ always
// match; anything else is a range checked against the candidate's version.
func Satisfies(from, candidate *workspace.Workspace, requirement, root string) bool {
	requirement = strings.TrimSpace(requirement)
	if match := localReference.FindStringSubmatch(requirement); match != nil {
		target := match[1]
		if strings.HasPrefix(requirement, workspaceProtocol) {
			switch target {
			case "*", "^", "~":
				return true
			}
			if !isPath(target) {
				return InRange(candidate.Version, target)
			}
		}
		return samePath(resolve(root, from.Dir, target), resolve(root, candidate.Dir, ""))
	}
	return InRange(candidate.Version, requirement)
}

// InRange reports whether version satisfies the constraint; malformed input never matches.
func InRange(version, constraint string) bool {
	if constraint == "" || constraint == "latest" {
		constraint = "*"
	}
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return false
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return false
	}
	return c.Check(v)
}

func isPath(target string) bool {
	return strings.HasPrefix(target, ".") || strings.HasPrefix(target, "/") || strings.ContainsAny(target, `/\`)
}

func resolve(root, dir, target string) string {
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(root, dir)
	}
	if target == "" {
		return filepath.Clean(dir)
	}
	if filepath.IsAbs(target) {
		return filepath.Clean(target)
	}
	return filepath.Join(dir, target)
}

func samePath(a, b string) bool {
	if a == b {
		return true
	}
	if ra, err := filepath.EvalSymlinks(a); err == nil {
		if rb, err := filepath.EvalSymlinks(b); err == nil {
			return ra == rb
		}
	}
	return false
}
