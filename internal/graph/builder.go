package graph

import (
	"fmt"
	"strings"

	"github.com/morozRed/skillgraph/internal/resolve"
	"github.com/morozRed/skillgraph/internal/schema"
)

// Builder accumulates nodes and edges from validated records. Nodes
// are upserted (ghosts promote in place when the real document shows
// up), edges are append-only and de-duplicated by (source, target,
// kind). Output order is unsorted; callers re-sort.
type Builder struct {
	graph    *Graph
	edgeSeen map[string]bool
	warnings []string
}

func NewBuilder() *Builder {
	return &Builder{
		graph:    NewGraph(),
		edgeSeen: make(map[string]bool),
	}
}

// Build constructs the full unsorted graph for a record set. The
// resolver must have been constructed from the same records.
func Build(records []schema.Record, resolver *resolve.Resolver) (*Graph, []string) {
	b := NewBuilder()
	for _, record := range records {
		b.addRecordNode(record)
	}
	for _, record := range records {
		b.addRecordEdges(record, resolver)
	}
	return b.graph, b.warnings
}

func (b *Builder) addRecordNode(record schema.Record) {
	if record.ID == "" {
		b.warn("skipping %s: name %q normalizes to an empty id", record.SourcePath, record.DisplayName)
		return
	}
	b.upsert(&Node{
		ID:       record.ID,
		Label:    record.DisplayName,
		Kind:     record.Kind,
		Category: record.Category,
		Status:   record.Status,
	})
}

func (b *Builder) addRecordEdges(record schema.Record, resolver *resolve.Resolver) {
	if record.ID == "" {
		return
	}

	for _, script := range record.Scripts {
		script = strings.TrimSpace(script)
		if script == "" {
			continue
		}
		scriptID := "script:" + script
		b.upsert(&Node{
			ID:    scriptID,
			Label: scriptLabel(script),
			Kind:  KindScript,
		})
		b.addEdge(Edge{Source: record.ID, Target: scriptID, Kind: EdgeScripts})
	}

	for _, target := range record.Related {
		b.addReference(record.ID, target, EdgeRelated, resolver)
	}
	for _, target := range record.WikiLinks {
		b.addReference(record.ID, target, EdgeWiki, resolver)
	}
}

func (b *Builder) addReference(sourceID, rawTarget, kind string, resolver *resolve.Resolver) {
	resolution := resolver.Resolve(rawTarget)
	if !resolution.Found {
		b.upsert(&Node{
			ID:      resolution.ID,
			Label:   resolution.DisplayName,
			Kind:    KindUnresolved,
			IsGhost: true,
		})
	}
	b.addEdge(Edge{
		Source:    sourceID,
		Target:    resolution.ID,
		Kind:      kind,
		MatchedBy: resolution.MatchedBy,
		RawTarget: strings.TrimSpace(rawTarget),
	})
}

// upsert inserts a node or merges it into an existing one with the
// same id. A ghost overwritten by a real node promotes in place: kind,
// label, and display attributes take the real values and is_ghost
// clears. Real-over-real keeps the existing attributes (first record
// wins for display) and records a collision warning.
func (b *Builder) upsert(node *Node) {
	existing, ok := b.graph.Nodes[node.ID]
	if !ok {
		b.graph.Nodes[node.ID] = node
		return
	}
	if existing.IsGhost && !node.IsGhost {
		existing.Kind = node.Kind
		existing.Label = node.Label
		existing.Category = node.Category
		existing.Status = node.Status
		existing.IsGhost = false
		return
	}
	if !existing.IsGhost && !node.IsGhost && existing.Kind != KindScript {
		b.warn("id collision on %q: keeping %q, dropping %q", node.ID, existing.Label, node.Label)
		return
	}
	// Ghost over real (or ghost over ghost): keep the existing values,
	// fill only fields the existing node left empty.
	if existing.Label == "" {
		existing.Label = node.Label
	}
	if existing.Category == "" {
		existing.Category = node.Category
	}
	if existing.Status == "" {
		existing.Status = node.Status
	}
}

func (b *Builder) addEdge(edge Edge) {
	key := edge.ID()
	if b.edgeSeen[key] {
		return
	}
	b.edgeSeen[key] = true
	b.graph.Edges = append(b.graph.Edges, edge)
}

func (b *Builder) warn(format string, args ...any) {
	b.warnings = append(b.warnings, fmt.Sprintf(format, args...))
}

func scriptLabel(path string) string {
	if idx := strings.LastIndexByte(path, '/'); idx != -1 {
		return path[idx+1:]
	}
	return path
}
