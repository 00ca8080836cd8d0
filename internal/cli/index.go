package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/morozRed/skillgraph/internal/adapter"
	"github.com/morozRed/skillgraph/internal/engine"
	"github.com/morozRed/skillgraph/internal/fileutil"
)

func RunIndex(cmd *cobra.Command, args []string) error {
	rootPath, err := resolveRoot(args, 0)
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

	a := adapter.NewNative(rootPath)
	if missing := adapter.Validate(a); len(missing) > 0 {
		return fmt.Errorf("adapter is missing operations: %v", missing)
	}

	start := time.Now()
	result := engine.BuildGraph(cmd.Context(), a, opts)

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode graph: %w", err)
	}
	outputPath := filepath.Join(rootPath, OutputDir, GraphFile)
	rewritten, err := fileutil.WriteIfChangedTracked(outputPath, append(data, '\n'))
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", outputPath, err)
	}

	summary := IndexSummary{
		Mode:       "index",
		RootPath:   rootPath,
		OutputPath: outputPath,
		Nodes:      result.Meta.NodeCount,
		Edges:      result.Meta.EdgeCount,
		Cycles:     result.Meta.CycleCount,
		Condensed:  opts.CondenseCycles,
		Rewritten:  rewritten,
		DurationMS: time.Since(start).Milliseconds(),
		Warnings:   result.Warnings,
	}

	if asJSON {
		return fileutil.PrintJSON(summary)
	}

	fmt.Printf("indexed %s\n", rootPath)
	fmt.Printf("graph: nodes=%d edges=%d cycles=%d condensed=%t\n", summary.Nodes, summary.Edges, summary.Cycles, summary.Condensed)
	fmt.Printf("output: %s rewritten=%t\n", summary.OutputPath, summary.Rewritten)
	if len(summary.Warnings) > 0 {
		fmt.Printf("warnings (%d):\n", len(summary.Warnings))
		for _, warning := range summary.Warnings {
			fmt.Printf("  %s\n", warning)
		}
	}
	return nil
}
