package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/morozRed/skillgraph/internal/adapter"
	"github.com/morozRed/skillgraph/internal/engine"
	"github.com/morozRed/skillgraph/internal/export"
	"github.com/morozRed/skillgraph/internal/fileutil"
	"github.com/morozRed/skillgraph/internal/schema"
)

type AdjacencyView struct {
	ID        string           `json:"id"`
	Neighbors export.Neighbors `json:"neighbors"`
}

func RunAdjacency(cmd *cobra.Command, args []string) error {
	rootPath, err := resolveRoot(args, 1)
	if err != nil {
		return err
	}
	asJSON, err := boolFlag(cmd, "json")
	if err != nil {
		return err
	}
	opts, err := LoadOptions(rootPath, cmd)
	if err != nil {
		return err
	}
	// Lookup should work for every node class, whatever the project
	// config exports.
	opts.Adjacency = export.Options{IncludeGhosts: true, IncludeScripts: true, IncludeCycles: true}

	a := adapter.NewNative(rootPath)
	if missing := adapter.Validate(a); len(missing) > 0 {
		return fmt.Errorf("adapter is missing operations: %v", missing)
	}

	result := engine.BuildGraph(cmd.Context(), a, opts)

	id := args[0]
	neighbors, ok := result.Adjacency[id]
	if !ok {
		id = schema.NormalizeID(args[0])
		neighbors, ok = result.Adjacency[id]
	}
	if !ok {
		return fmt.Errorf("no node matches %q", args[0])
	}

	if asJSON {
		return fileutil.PrintJSON(AdjacencyView{ID: id, Neighbors: neighbors})
	}

	fmt.Printf("node %s\n", id)
	printNeighborGroup("all", neighbors.All)
	printNeighborGroup("wiki", neighbors.Wiki)
	printNeighborGroup("related", neighbors.Related)
	printNeighborGroup("scripts", neighbors.Scripts)
	return nil
}

func printNeighborGroup(kind string, targets []string) {
	if len(targets) == 0 {
		fmt.Printf("%s: none\n", kind)
		return
	}
	fmt.Printf("%s (%d): %s\n", kind, len(targets), strings.Join(targets, ", "))
}
