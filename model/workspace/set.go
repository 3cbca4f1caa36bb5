package workspace

import "fmt"

// Set is an ordered arena of workspaces; a workspace ID indexes Items.
type Set struct {
	Root   string
	Items  []*Workspace
	byName map[string]ID
}

// NewSet assigns handles to workspaces in the supplied order.
func NewSet(root string, workspaces ...*Workspace) (*Set, error) {
	ret := &Set{Root: root, byName: make(map[string]ID, len(workspaces))}
	for _, ws := range workspaces {
		if ws == nil {
			continue
		}
		if _, ok := ret.byName[ws.Name]; ok {
			return nil, fmt.Errorf("duplicate workspace name: %v", ws.Name)
		}
		clone := *ws
		clone.ID = ID(len(ret.Items))
		ret.Items = append(ret.Items, &clone)
		ret.byName[clone.Name] = clone.ID
	}
	return ret, nil
}

// Len returns number of workspaces.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Items)
}

// Get returns workspace for the handle or nil.
func (s *Set) Get(id ID) *Workspace {
	if s == nil || int(id) < 0 || int(id) >= len(s.Items) {
		return nil
	}
	return s.Items[id]
}

// ByName looks up a workspace by its package name.
func (s *Set) ByName(name string) (*Workspace, bool) {
	if s == nil {
		return nil, false
	}
	id, ok := s.byName[name]
	if !ok {
		return nil, false
	}
	return s.Items[id], true
}

// Names returns workspace names in set order.
func (s *Set) Names() []string {
	ret := make([]string, 0, s.Len())
	for _, ws := range s.Items {
		ret = append(ret, ws.Name)
	}
	return ret
}

// MaxNameLen returns the longest name length, used to align output prefixes.
func (s *Set) MaxNameLen() int {
	max := 0
	if s == nil {
		return max
	}
	for _, ws := range s.Items {
		if l := len([]rune(ws.Name)); l > max {
			max = l
		}
	}
	return max
}

// Filter returns a new set holding workspaces accepted by keep, re-indexed.
func (s *Set) Filter(keep func(ws *Workspace) bool) *Set {
	var selected []*Workspace
	for _, ws := range s.Items {
		if keep(ws) {
			selected = append(selected, ws)
		}
	}
	ret, _ := NewSet(s.Root, selected...) // names already unique
	return ret
}
