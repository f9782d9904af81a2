// Package hierarchy answers ancestor and descendant queries over the team forest.
package hierarchy

import (
	teamModel "github.com/savelyev-an/admin-console/internal/team/model"
)

// Index is an in-memory snapshot of the team parent relation.
// A team referencing a parent that is not in the snapshot is treated as a root.
type Index struct {
	parent   map[string]string
	children map[string][]string
}

// New builds an index from a full team snapshot.
func New(teams []teamModel.Team) *Index {
	idx := &Index{
		parent:   make(map[string]string, len(teams)),
		children: make(map[string][]string),
	}

	known := make(map[string]struct{}, len(teams))
	for _, t := range teams {
		known[t.ID] = struct{}{}
	}

	for _, t := range teams {
		if t.ParentID == nil {
			continue
		}
		if _, ok := known[*t.ParentID]; !ok {
			// Dangling parent reference: stop walking here.
			continue
		}
		idx.parent[t.ID] = *t.ParentID
		idx.children[*t.ParentID] = append(idx.children[*t.ParentID], t.ID)
	}

	return idx
}

// IsAncestor reports whether ancestorID appears on teamID's parent chain.
// A team is not its own ancestor. The walk keeps a visited set so a
// corrupted cyclic chain still terminates.
func (i *Index) IsAncestor(ancestorID, teamID string) bool {
	visited := map[string]struct{}{teamID: {}}
	current := teamID

	for {
		parent, ok := i.parent[current]
		if !ok {
			return false
		}
		if parent == ancestorID {
			return true
		}
		if _, seen := visited[parent]; seen {
			return false
		}
		visited[parent] = struct{}{}
		current = parent
	}
}

// Descendants returns the given teams plus every team reachable below them.
// Expansion is breadth-first; the result set doubles as the visited set.
func (i *Index) Descendants(teamIDs []string) map[string]struct{} {
	result := make(map[string]struct{}, len(teamIDs))
	frontier := make([]string, 0, len(teamIDs))

	for _, id := range teamIDs {
		if _, ok := result[id]; ok {
			continue
		}
		result[id] = struct{}{}
		frontier = append(frontier, id)
	}

	for len(frontier) > 0 {
		next := make([]string, 0)
		for _, id := range frontier {
			for _, child := range i.children[id] {
				if _, ok := result[child]; ok {
					continue
				}
				result[child] = struct{}{}
				next = append(next, child)
			}
		}
		frontier = next
	}

	return result
}
