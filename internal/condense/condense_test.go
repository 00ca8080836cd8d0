package condense

import (
	"reflect"
	"testing"

	"github.com/morozRed/skillgraph/internal/graph"
)

func testGraph(nodes []*graph.Node, edges []graph.Edge) *graph.Graph {
	g := graph.NewGraph()
	for _, node := range nodes {
		g.Nodes[node.ID] = node
	}
	g.Edges = edges
	return g
}

func skillNode(id string) *graph.Node {
	return &graph.Node{ID: id, Label: id, Kind: "skill"}
}

func TestCondenseBidirectionalPair(t *testing.T) {
	g := testGraph(
		[]*graph.Node{skillNode("a"), skillNode("b")},
		[]graph.Edge{
			{Source: "a", Target: "b", Kind: graph.EdgeRelated},
			{Source: "b", Target: "a", Kind: graph.EdgeRelated},
		},
	)
	condensed, cycles := Condense(g)

	if len(cycles) != 1 {
		t.Fatalf("expected 1 cycle, got %d", len(cycles))
	}
	cycle := cycles[0]
	if cycle.ID != "cycle:1" || cycle.Label != "cycle(2)" {
		t.Fatalf("unexpected cycle %+v", cycle)
	}
	if !reflect.DeepEqual(cycle.Members, []string{"a", "b"}) {
		t.Fatalf("unexpected members %v", cycle.Members)
	}
	if len(condensed.Nodes) != 1 {
		t.Fatalf("expected 1 node, got %d", len(condensed.Nodes))
	}
	supernode := condensed.Nodes["cycle:1"]
	if supernode == nil || supernode.Kind != graph.KindCycle || supernode.IsGhost {
		t.Fatalf("unexpected supernode %+v", supernode)
	}
	if len(condensed.Edges) != 0 {
		t.Fatalf("expected no edges after condensation, got %+v", condensed.Edges)
	}
}

func TestCondenseSelfLoop(t *testing.T) {
	g := testGraph(
		[]*graph.Node{skillNode("a")},
		[]graph.Edge{{Source: "a", Target: "a", Kind: graph.EdgeRelated}},
	)
	condensed, cycles := Condense(g)

	if len(cycles) != 1 {
		t.Fatalf("self-loop should produce a size-1 cycle, got %d", len(cycles))
	}
	if cycles[0].Label != "cycle(1)" || !reflect.DeepEqual(cycles[0].Members, []string{"a"}) {
		t.Fatalf("unexpected cycle %+v", cycles[0])
	}
	for _, edge := range condensed.Edges {
		if edge.Source == edge.Target {
			t.Fatalf("self-loop survived condensation: %+v", edge)
		}
	}
}

func TestCondenseIneligibleNodes(t *testing.T) {
	ghost := &graph.Node{ID: "unresolved:x", Label: "x", Kind: graph.KindUnresolved, IsGhost: true}
	script := &graph.Node{ID: "script:run.sh", Label: "run.sh", Kind: graph.KindScript}
	g := testGraph(
		[]*graph.Node{skillNode("a"), ghost, script},
		[]graph.Edge{
			{Source: "a", Target: "unresolved:x", Kind: graph.EdgeRelated},
			{Source: "a", Target: "script:run.sh", Kind: graph.EdgeScripts},
		},
	)
	condensed, cycles := Condense(g)

	if len(cycles) != 0 {
		t.Fatalf("ghost and script nodes must not form cycles, got %v", cycles)
	}
	if len(condensed.Nodes) != 3 || len(condensed.Edges) != 2 {
		t.Fatalf("expected graph unchanged, got %d nodes %d edges", len(condensed.Nodes), len(condensed.Edges))
	}
}

func TestCondenseRewritesIncidentEdges(t *testing.T) {
	g := testGraph(
		[]*graph.Node{skillNode("a"), skillNode("b"), skillNode("c"), skillNode("d")},
		[]graph.Edge{
			{Source: "a", Target: "b", Kind: graph.EdgeRelated},
			{Source: "b", Target: "a", Kind: graph.EdgeRelated},
			{Source: "c", Target: "a", Kind: graph.EdgeRelated},
			{Source: "c", Target: "b", Kind: graph.EdgeWiki},
			{Source: "a", Target: "d", Kind: graph.EdgeRelated},
		},
	)
	condensed, cycles := Condense(g)

	if len(cycles) != 1 {
		t.Fatalf("expected 1 cycle, got %d", len(cycles))
	}
	if len(condensed.Nodes) != 3 {
		t.Fatalf("expected cycle:1, c, d; got %d nodes", len(condensed.Nodes))
	}

	edges := condensed.SortedEdges()
	if len(edges) != 3 {
		t.Fatalf("expected 3 rewritten edges, got %+v", edges)
	}
	for _, edge := range edges {
		switch {
		case edge.Source == "c" && edge.Target == "cycle:1" && edge.Kind == graph.EdgeRelated:
			if edge.RewrittenFrom != "c|a|related" {
				t.Fatalf("missing rewrite annotation: %+v", edge)
			}
		case edge.Source == "c" && edge.Target == "cycle:1" && edge.Kind == graph.EdgeWiki:
		case edge.Source == "cycle:1" && edge.Target == "d":
		default:
			t.Fatalf("unexpected edge %+v", edge)
		}
	}
}

func TestCondenseTwoCyclesStableNumbering(t *testing.T) {
	g := testGraph(
		[]*graph.Node{skillNode("a"), skillNode("b"), skillNode("x"), skillNode("y")},
		[]graph.Edge{
			{Source: "a", Target: "b", Kind: graph.EdgeRelated},
			{Source: "b", Target: "a", Kind: graph.EdgeRelated},
			{Source: "x", Target: "y", Kind: graph.EdgeRelated},
			{Source: "y", Target: "x", Kind: graph.EdgeRelated},
		},
	)
	_, first := Condense(g)
	_, second := Condense(g)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("cycle numbering must be deterministic: %v vs %v", first, second)
	}
	if len(first) != 2 {
		t.Fatalf("expected 2 cycles, got %d", len(first))
	}
	if !reflect.DeepEqual(first[0].Members, []string{"a", "b"}) {
		t.Fatalf("expected a/b component emitted first, got %v", first[0].Members)
	}
}

func TestCondenseInputUntouched(t *testing.T) {
	g := testGraph(
		[]*graph.Node{skillNode("a"), skillNode("b")},
		[]graph.Edge{
			{Source: "a", Target: "b", Kind: graph.EdgeRelated},
			{Source: "b", Target: "a", Kind: graph.EdgeRelated},
		},
	)
	Condense(g)
	if len(g.Nodes) != 2 || len(g.Edges) != 2 {
		t.Fatalf("condense must not mutate its input")
	}
	if g.Nodes["a"].Kind != "skill" {
		t.Fatalf("input node mutated: %+v", g.Nodes["a"])
	}
}
