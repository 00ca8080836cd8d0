package condense

import (
	"fmt"
	"sort"

	"github.com/morozRed/skillgraph/internal/fileutil"
	"github.com/morozRed/skillgraph/internal/graph"
)

// Cycle describes one supernode produced by condensation.
type Cycle struct {
	ID      string   `json:"id"`
	Members []string `json:"members"`
	Label   string   `json:"label"`
}

// Condense collapses every nontrivial strongly-connected component of
// the graph into a single supernode and rewrites the edge set through
// the member -> supernode mapping. Ghost, script, and pre-existing
// cycle nodes never participate in cycle analysis. The input graph is
// not modified.
func Condense(g *graph.Graph) (*graph.Graph, []Cycle) {
	eligible := make(map[string]bool, len(g.Nodes))
	for id, node := range g.Nodes {
		if node.IsGhost || node.Kind == graph.KindScript || node.Kind == graph.KindCycle {
			continue
		}
		eligible[id] = true
	}

	adjacency, selfLoops := subAdjacency(g.Edges, eligible)
	components := tarjan(eligible, adjacency)

	memberToCycle := make(map[string]string)
	cycles := make([]Cycle, 0)
	for _, component := range components {
		if len(component) < 2 && !selfLoops[component[0]] {
			continue
		}
		members := append([]string(nil), component...)
		sort.Strings(members)
		cycleID := fmt.Sprintf("cycle:%d", len(cycles)+1)
		cycles = append(cycles, Cycle{
			ID:      cycleID,
			Members: members,
			Label:   fmt.Sprintf("cycle(%d)", len(members)),
		})
		for _, member := range members {
			memberToCycle[member] = cycleID
		}
	}

	condensed := graph.NewGraph()
	for id, node := range g.Nodes {
		if _, absorbed := memberToCycle[id]; absorbed {
			continue
		}
		clone := *node
		condensed.Nodes[id] = &clone
	}
	for _, cycle := range cycles {
		condensed.Nodes[cycle.ID] = &graph.Node{
			ID:      cycle.ID,
			Label:   cycle.Label,
			Kind:    graph.KindCycle,
			Members: cycle.Members,
		}
	}

	seen := make(map[string]bool, len(g.Edges))
	for _, edge := range g.Edges {
		rewritten := edge
		if cycleID, ok := memberToCycle[edge.Source]; ok {
			rewritten.Source = cycleID
		}
		if cycleID, ok := memberToCycle[edge.Target]; ok {
			rewritten.Target = cycleID
		}
		if rewritten.Source == rewritten.Target {
			continue
		}
		if rewritten.Source != edge.Source || rewritten.Target != edge.Target {
			rewritten.RewrittenFrom = edge.ID()
		}
		key := rewritten.ID()
		if seen[key] {
			continue
		}
		seen[key] = true
		condensed.Edges = append(condensed.Edges, rewritten)
	}

	return condensed, cycles
}

// subAdjacency restricts the edge set to eligible endpoints, returning
// sorted de-duplicated neighbor lists plus the set of vertices that
// carry a self-loop in the original (unfiltered) edges.
func subAdjacency(edges []graph.Edge, eligible map[string]bool) (map[string][]string, map[string]bool) {
	neighborSets := make(map[string]map[string]bool)
	selfLoops := make(map[string]bool)
	for _, edge := range edges {
		if edge.Source == edge.Target {
			selfLoops[edge.Source] = true
		}
		if !eligible[edge.Source] || !eligible[edge.Target] {
			continue
		}
		set, ok := neighborSets[edge.Source]
		if !ok {
			set = make(map[string]bool)
			neighborSets[edge.Source] = set
		}
		set[edge.Target] = true
	}

	adjacency := make(map[string][]string, len(neighborSets))
	for source, set := range neighborSets {
		adjacency[source] = fileutil.MapKeysSorted(set)
	}
	return adjacency, selfLoops
}

// tarjan emits strongly-connected components in reverse topological
// order. Vertices are visited in sorted id order so component
// numbering is deterministic for a given graph.
func tarjan(vertices map[string]bool, adjacency map[string][]string) [][]string {
	order := fileutil.MapKeysSorted(vertices)

	index := 0
	indices := make(map[string]int, len(vertices))
	lowlinks := make(map[string]int, len(vertices))
	onStack := make(map[string]bool, len(vertices))
	stack := make([]string, 0, len(vertices))
	components := make([][]string, 0)

	var strongConnect func(v string)
	strongConnect = func(v string) {
		indices[v] = index
		lowlinks[v] = index
		index++
		stack = append(stack, v)
		onStack[v] = true

		for _, w := range adjacency[v] {
			if _, visited := indices[w]; !visited {
				strongConnect(w)
				if lowlinks[w] < lowlinks[v] {
					lowlinks[v] = lowlinks[w]
				}
			} else if onStack[w] && indices[w] < lowlinks[v] {
				lowlinks[v] = indices[w]
			}
		}

		if lowlinks[v] == indices[v] {
			component := make([]string, 0, 1)
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[w] = false
				component = append(component, w)
				if w == v {
					break
				}
			}
			components = append(components, component)
		}
	}

	for _, v := range order {
		if _, visited := indices[v]; !visited {
			strongConnect(v)
		}
	}
	return components
}
