package combine

import "github.com/philipparndt/meshcombine/internal/scene"

// MaterialGroup holds the entries sharing one material, in scan order.
type MaterialGroup struct {
	Material *scene.Material
	Entries  []SourceEntry
}

// MaterialGroups is an insertion ordered mapping from material identity to
// its group. Iteration order is the order materials were first seen.
type MaterialGroups struct {
	groups []*MaterialGroup
	index  map[*scene.Material]int
}

// GroupByMaterial partitions entries by material pointer.
func GroupByMaterial(entries []SourceEntry) *MaterialGroups {
	g := &MaterialGroups{index: make(map[*scene.Material]int)}
	for _, e := range entries {
		g.add(e)
	}
	return g
}

func (g *MaterialGroups) add(e SourceEntry) {
	if i, ok := g.index[e.Material]; ok {
		g.groups[i].Entries = append(g.groups[i].Entries, e)
		return
	}
	g.index[e.Material] = len(g.groups)
	g.groups = append(g.groups, &MaterialGroup{
		Material: e.Material,
		Entries:  []SourceEntry{e},
	})
}

// Len returns the number of distinct materials.
func (g *MaterialGroups) Len() int {
	return len(g.groups)
}

// Groups returns the groups in first-seen order.
func (g *MaterialGroups) Groups() []*MaterialGroup {
	return g.groups
}

// Lookup returns the group for m, nil if m was never seen.
func (g *MaterialGroups) Lookup(m *scene.Material) *MaterialGroup {
	if i, ok := g.index[m]; ok {
		return g.groups[i]
	}
	return nil
}
