package engine

import (
	"context"

	"github.com/morozRed/skillgraph/internal/adapter"
	"github.com/morozRed/skillgraph/internal/condense"
	"github.com/morozRed/skillgraph/internal/export"
	"github.com/morozRed/skillgraph/internal/graph"
	"github.com/morozRed/skillgraph/internal/health"
	"github.com/morozRed/skillgraph/internal/resolve"
	"github.com/morozRed/skillgraph/internal/scan"
	"github.com/morozRed/skillgraph/internal/schema"
)

// Options is the host-supplied build configuration. DenseThreshold and
// DensityThreshold are layout hints for downstream consumers; the
// engine passes them through unchanged.
type Options struct {
	CondenseCycles   bool           `json:"condense_cycles" mapstructure:"condense_cycles"`
	Adjacency        export.Options `json:"adjacency_options" mapstructure:"adjacency_options"`
	DenseThreshold   int            `json:"dense_threshold,omitempty" mapstructure:"dense_threshold"`
	DensityThreshold float64        `json:"density_threshold,omitempty" mapstructure:"density_threshold"`
}

func DefaultOptions() Options {
	return Options{CondenseCycles: true}
}

// Meta carries the graph's summary counts plus the pass-through layout
// hints.
type Meta struct {
	NodeCount        int     `json:"node_count"`
	EdgeCount        int     `json:"edge_count"`
	CycleCount       int     `json:"cycle_count"`
	DenseThreshold   int     `json:"dense_threshold,omitempty"`
	DensityThreshold float64 `json:"density_threshold,omitempty"`
}

// Graph is the stable output schema of one build.
type Graph struct {
	Nodes        []graph.Node                `json:"nodes"`
	Edges        []graph.Edge                `json:"edges"`
	Adjacency    map[string]export.Neighbors `json:"adjacency"`
	RawAdjacency map[string]export.Neighbors `json:"raw_adjacency"`
	Cycles       []condense.Cycle            `json:"cycles"`
	Meta         Meta                        `json:"meta"`
	Warnings     []string                    `json:"warnings,omitempty"`
}

// BuildGraph runs the full pipeline: scan, validate, resolve, build,
// condense, export. It always returns a well-formed graph, even when
// the collection is empty or the scan was cancelled midway; input
// defects surface as warnings, never as errors.
func BuildGraph(ctx context.Context, a adapter.Adapter, opts Options) *Graph {
	docs := scan.Scan(ctx, a)

	var records []schema.Record
	var warnings []string
	for _, doc := range docs {
		result := schema.Validate(doc.Path, doc.Text)
		if !result.HasHeader {
			continue
		}
		for _, message := range result.Errors {
			warnings = append(warnings, doc.Path+": "+message)
		}
		for _, message := range result.Warnings {
			warnings = append(warnings, doc.Path+": "+message)
		}
		records = append(records, result.Record)
	}

	resolver := resolve.New(records)
	built, buildWarnings := graph.Build(records, resolver)
	warnings = append(warnings, buildWarnings...)

	rawAdjacency := export.Adjacency(built, opts.Adjacency)

	final := built
	cycles := []condense.Cycle{}
	if opts.CondenseCycles {
		final, cycles = condense.Condense(built)
	}

	return &Graph{
		Nodes:        final.SortedNodes(),
		Edges:        final.SortedEdges(),
		Adjacency:    export.Adjacency(final, opts.Adjacency),
		RawAdjacency: rawAdjacency,
		Cycles:       cycles,
		Meta: Meta{
			NodeCount:        len(final.Nodes),
			EdgeCount:        len(final.Edges),
			CycleCount:       len(cycles),
			DenseThreshold:   opts.DenseThreshold,
			DensityThreshold: opts.DensityThreshold,
		},
		Warnings: warnings,
	}
}

// RunHealthChecks executes the six health rules over an adapter.
func RunHealthChecks(ctx context.Context, a adapter.Adapter) *health.Report {
	return health.Run(ctx, a)
}
