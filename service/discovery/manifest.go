package discovery

import (
	"fmt"

	"github.com/viant/wsrun/internal/yml"
	"github.com/viant/wsrun/model/workspace"
)

const (
	// ManifestFile is the package manifest file name.
	ManifestFile = "package.json"
	// PnpmWorkspaceFile lists workspace globs for pnpm repositories.
	PnpmWorkspaceFile = "pnpm-workspace.yaml"
)

// Manifest holds the package.json fields used by the runner.
type Manifest struct {
	Name         string
	Version      string
	Private      bool
	Workspaces   []string
	Dependencies map[workspace.DependencyType]map[string]string
}

// ParseManifest decodes a package.json document.
func ParseManifest(data []byte) (*Manifest, error) {
	node, err := yml.Parse(data)
	if err != nil {
		return nil, err
	}
	if !node.IsMap() {
		return nil, fmt.Errorf("expected object")
	}
	ret := &Manifest{
		Name:    node.Lookup("name").String(),
		Version: node.Lookup("version").String(),
		Private: node.Lookup("private").String() == "true",
	}
	if ret.Workspaces, err = workspacePatterns(node.Lookup("workspaces")); err != nil {
		return nil, fmt.Errorf("invalid workspaces: %w", err)
	}
	for _, depType := range workspace.DependencyTypes {
		deps := node.Lookup(string(depType)).StringMap()
		if len(deps) == 0 {
			continue
		}
		if ret.Dependencies == nil {
			ret.Dependencies = make(map[workspace.DependencyType]map[string]string)
		}
		ret.Dependencies[depType] = deps
	}
	return ret, nil
}

// workspacePatterns accepts ["a/*"] as well as {"packages": ["a/*"]}.
func workspacePatterns(node *yml.Node) ([]string, error) {
	if node.IsMap() {
		return node.Lookup("packages").Strings()
	}
	return node.Strings()
}

// parsePnpmWorkspace reads the packages list of pnpm-workspace.yaml.
func parsePnpmWorkspace(data []byte) ([]string, error) {
	node, err := yml.Parse(data)
	if err != nil {
		return nil, err
	}
	return node.Lookup("packages").Strings()
}

// Workspace converts manifest located in dir to a workspace.
func (m *Manifest) Workspace(dir string) *workspace.Workspace {
	return &workspace.Workspace{
		Name:         m.Name,
		Dir:          dir,
		Version:      m.Version,
		Dependencies: m.Dependencies,
	}
}
