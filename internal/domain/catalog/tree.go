package catalog

import (
	"sort"
	"strings"

	"github.com/BruksfildServices01/service-catalog/internal/models"
)

// Tree is an id-keyed view over one tenant's categories. Every walk keeps a
// visited set, so a parent loop that slipped into storage ends the walk
// instead of spinning.
type Tree struct {
	nodes    map[uint]*models.ServiceCategory
	children map[uint][]uint
	roots    []uint
}

func NewTree(categories []models.ServiceCategory) *Tree {
	t := &Tree{
		nodes:    make(map[uint]*models.ServiceCategory, len(categories)),
		children: make(map[uint][]uint),
	}

	for i := range categories {
		c := &categories[i]
		t.nodes[c.ID] = c
	}

	for id, c := range t.nodes {
		// orphans (dangling parent) are shown as roots
		if c.ParentID == nil || t.nodes[*c.ParentID] == nil || *c.ParentID == id {
			t.roots = append(t.roots, id)
			continue
		}
		t.children[*c.ParentID] = append(t.children[*c.ParentID], id)
	}

	t.sortIDs(t.roots)
	for _, ids := range t.children {
		t.sortIDs(ids)
	}
	return t
}

func (t *Tree) sortIDs(ids []uint) {
	sort.Slice(ids, func(i, j int) bool {
		a, b := t.nodes[ids[i]], t.nodes[ids[j]]
		if a.SortOrder != b.SortOrder {
			return a.SortOrder < b.SortOrder
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID < b.ID
	})
}

func (t *Tree) Get(id uint) (*models.ServiceCategory, bool) {
	c, ok := t.nodes[id]
	return c, ok
}

func (t *Tree) Len() int {
	return len(t.nodes)
}

func (t *Tree) pick(ids []uint, activeOnly bool) []*models.ServiceCategory {
	out := make([]*models.ServiceCategory, 0, len(ids))
	for _, id := range ids {
		c := t.nodes[id]
		if activeOnly && !c.IsActive {
			continue
		}
		out = append(out, c)
	}
	return out
}

func (t *Tree) Roots(activeOnly bool) []*models.ServiceCategory {
	return t.pick(t.roots, activeOnly)
}

func (t *Tree) Children(id uint, activeOnly bool) []*models.ServiceCategory {
	return t.pick(t.children[id], activeOnly)
}

// Ancestors lists the parent chain from the root down to the immediate
// parent. The category itself is not included.
func (t *Tree) Ancestors(id uint) []*models.ServiceCategory {
	c, ok := t.nodes[id]
	if !ok {
		return nil
	}

	visited := map[uint]bool{id: true}
	var chain []*models.ServiceCategory
	for c.ParentID != nil {
		pid := *c.ParentID
		parent, ok := t.nodes[pid]
		if !ok || visited[pid] {
			break
		}
		visited[pid] = true
		chain = append(chain, parent)
		c = parent
	}

	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// Descendants walks the subtree in pre-order. With activeOnly an inactive
// child is skipped together with everything below it.
func (t *Tree) Descendants(id uint, activeOnly bool) []*models.ServiceCategory {
	if _, ok := t.nodes[id]; !ok {
		return nil
	}

	visited := map[uint]bool{id: true}
	var out []*models.ServiceCategory

	var walk func(uint)
	walk = func(parent uint) {
		for _, cid := range t.children[parent] {
			if visited[cid] {
				continue
			}
			visited[cid] = true

			c := t.nodes[cid]
			if activeOnly && !c.IsActive {
				continue
			}
			out = append(out, c)
			walk(cid)
		}
	}
	walk(id)
	return out
}

func (t *Tree) DescendantIDs(id uint, activeOnly bool) []uint {
	desc := t.Descendants(id, activeOnly)
	ids := make([]uint, 0, len(desc))
	for _, c := range desc {
		ids = append(ids, c.ID)
	}
	return ids
}

// WouldCycle reports whether making newParent the parent of id would put id
// on its own parent chain. A chain that already loops counts as a cycle.
func (t *Tree) WouldCycle(id, newParent uint) bool {
	if id == newParent {
		return true
	}

	visited := map[uint]bool{}
	cur := newParent
	for {
		if cur == id {
			return true
		}
		if visited[cur] {
			return true
		}
		visited[cur] = true

		c, ok := t.nodes[cur]
		if !ok || c.ParentID == nil {
			return false
		}
		cur = *c.ParentID
	}
}

// TotalCount adds the direct counts of id and of its active descendants.
func (t *Tree) TotalCount(id uint, counts map[uint]int) int {
	total := counts[id]
	for _, cid := range t.DescendantIDs(id, true) {
		total += counts[cid]
	}
	return total
}

// Path renders "Root > ... > Name".
func (t *Tree) Path(id uint) string {
	c, ok := t.nodes[id]
	if !ok {
		return ""
	}

	names := make([]string, 0, 4)
	for _, a := range t.Ancestors(id) {
		names = append(names, a.Name)
	}
	names = append(names, c.Name)
	return strings.Join(names, " > ")
}
