package export

import (
	"sort"

	"github.com/morozRed/skillgraph/internal/fileutil"
	"github.com/morozRed/skillgraph/internal/graph"
)

// Options select which node classes receive adjacency entries. The
// zero value exports only real document nodes.
type Options struct {
	IncludeGhosts  bool `json:"include_ghost" mapstructure:"include_ghost"`
	IncludeScripts bool `json:"include_scripts" mapstructure:"include_scripts"`
	IncludeCycles  bool `json:"include_cycles" mapstructure:"include_cycles"`
}

// Neighbors is one node's outgoing view grouped by reference kind.
// Lists hold distinct target ids in sorted order; empty lists are
// retained.
type Neighbors struct {
	All     []string `json:"all"`
	Wiki    []string `json:"wiki"`
	Related []string `json:"related"`
	Scripts []string `json:"scripts"`
}

// Adjacency emits the per-node view for every included node. Targets
// are listed regardless of their own node class; the option flags
// control only which nodes get an entry of their own.
func Adjacency(g *graph.Graph, opts Options) map[string]Neighbors {
	grouped := make(map[string]map[string]map[string]bool)
	for _, edge := range g.Edges {
		byKind, ok := grouped[edge.Source]
		if !ok {
			byKind = make(map[string]map[string]bool)
			grouped[edge.Source] = byKind
		}
		set, ok := byKind[edge.Kind]
		if !ok {
			set = make(map[string]bool)
			byKind[edge.Kind] = set
		}
		set[edge.Target] = true
	}

	out := make(map[string]Neighbors, len(g.Nodes))
	for id, node := range g.Nodes {
		if !included(node, opts) {
			continue
		}
		byKind := grouped[id]
		wiki := sortedTargets(byKind[graph.EdgeWiki])
		related := sortedTargets(byKind[graph.EdgeRelated])
		scripts := sortedTargets(byKind[graph.EdgeScripts])
		out[id] = Neighbors{
			All:     union(wiki, related, scripts),
			Wiki:    wiki,
			Related: related,
			Scripts: scripts,
		}
	}
	return out
}

func included(node *graph.Node, opts Options) bool {
	switch {
	case node.IsGhost:
		return opts.IncludeGhosts
	case node.Kind == graph.KindScript:
		return opts.IncludeScripts
	case node.Kind == graph.KindCycle:
		return opts.IncludeCycles
	default:
		return true
	}
}

func sortedTargets(set map[string]bool) []string {
	if len(set) == 0 {
		return []string{}
	}
	return fileutil.MapKeysSorted(set)
}

func union(lists ...[]string) []string {
	merged := make([]string, 0)
	for _, list := range lists {
		merged = append(merged, list...)
	}
	merged = fileutil.DedupeStrings(merged)
	sort.Strings(merged)
	return merged
}
