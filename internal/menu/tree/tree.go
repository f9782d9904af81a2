// Package tree shapes a flat menu snapshot into the nested structure served to clients.
package tree

import (
	"sort"

	menuModel "github.com/savelyev-an/admin-console/internal/menu/model"
)

// Depth is the hard nesting cap: root, child, grandchild.
// Menus stored deeper than this are never rendered.
const Depth = 3

// Build returns the nested menu forest restricted to the visible id set.
// Every level is sorted ascending by sort order. A node is attached only
// if its id is visible, so callers must pass ancestor-completed sets to
// avoid dropping reachable leaves.
func Build(menus []menuModel.Menu, visible map[string]struct{}) []menuModel.MenuNode {
	return build(menus, func(id string) bool {
		_, ok := visible[id]
		return ok
	})
}

// BuildAll returns the nested menu forest without any id restriction.
// Used for the system-admin short-circuit.
func BuildAll(menus []menuModel.Menu) []menuModel.MenuNode {
	return build(menus, func(string) bool { return true })
}

func build(menus []menuModel.Menu, include func(id string) bool) []menuModel.MenuNode {
	byParent := make(map[string][]menuModel.Menu)
	var roots []menuModel.Menu

	for _, m := range menus {
		if !include(m.ID) {
			continue
		}
		if m.ParentID == nil {
			roots = append(roots, m)
			continue
		}
		byParent[*m.ParentID] = append(byParent[*m.ParentID], m)
	}

	sortMenus(roots)
	for _, siblings := range byParent {
		sortMenus(siblings)
	}

	nodes := make([]menuModel.MenuNode, 0, len(roots))
	for _, root := range roots {
		node := toNode(root)
		for _, child := range byParent[root.ID] {
			childNode := toNode(child)
			for _, grandchild := range byParent[child.ID] {
				// Depth cap: grandchildren never get children attached.
				childNode.Children = append(childNode.Children, toNode(grandchild))
			}
			node.Children = append(node.Children, childNode)
		}
		nodes = append(nodes, node)
	}

	return nodes
}

func sortMenus(menus []menuModel.Menu) {
	sort.SliceStable(menus, func(a, b int) bool {
		if menus[a].SortOrder != menus[b].SortOrder {
			return menus[a].SortOrder < menus[b].SortOrder
		}
		return menus[a].Path < menus[b].Path
	})
}

func toNode(m menuModel.Menu) menuModel.MenuNode {
	return menuModel.MenuNode{
		ID:        m.ID,
		Name:      m.Name,
		Path:      m.Path,
		Icon:      m.Icon,
		SortOrder: m.SortOrder,
		ParentID:  m.ParentID,
	}
}
