package workspace

// ID is a workspace handle: its index inside the owning Set.
type ID int

// Workspace represents a single package of a monorepo.
type Workspace struct {
	ID           ID                                   `json:"id" yaml:"id"`
	Name         string                               `json:"name" yaml:"name"`
	Dir          string                               `json:"dir" yaml:"dir"`
	Version      string                               `json:"version,omitempty" yaml:"version,omitempty"`
	Dependencies map[DependencyType]map[string]string `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
}

// DependenciesOf returns declared dependencies (name -> requirement) of the supplied category.
func (w *Workspace) DependenciesOf(depType DependencyType) map[string]string {
	if w == nil || w.Dependencies == nil {
		return nil
	}
	return w.Dependencies[depType]
}

// WithDependency declares a dependency, it is meant for programmatic construction and tests.
func (w *Workspace) WithDependency(depType DependencyType, name, requirement string) *Workspace {
	if w.Dependencies == nil {
		w.Dependencies = make(map[DependencyType]map[string]string)
	}
	deps, ok := w.Dependencies[depType]
	if !ok {
		deps = make(map[string]string)
		w.Dependencies[depType] = deps
	}
	deps[name] = requirement
	return w
}
