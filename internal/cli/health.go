package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/morozRed/skillgraph/internal/adapter"
	"github.com/morozRed/skillgraph/internal/engine"
	"github.com/morozRed/skillgraph/internal/fileutil"
	"github.com/morozRed/skillgraph/internal/health"
)

func RunHealth(cmd *cobra.Command, args []string) error {
	rootPath, err := resolveRoot(args, 0)
	if err != nil {
		return err
	}
	asJSON, err := boolFlag(cmd, "json")
	if err != nil {
		return err
	}

	a := adapter.NewNative(rootPath)
	if missing := adapter.Validate(a); len(missing) > 0 {
		return fmt.Errorf("adapter is missing operations: %v", missing)
	}

	report := engine.RunHealthChecks(cmd.Context(), a)

	if asJSON {
		return fileutil.PrintJSON(report)
	}

	fmt.Printf("health: %s\n", report.Overall)
	for _, result := range report.Results {
		fmt.Printf("%s: %s (%s)\n", result.RuleID, result.Status, result.Message)
		printDetail(result)
	}
	fmt.Printf("checked at %s in %dms\n", report.CheckedAt, report.DurationMS)
	return nil
}

func printDetail(result health.RuleResult) {
	switch detail := result.Detail.(type) {
	case []health.BrokenReference:
		for _, broken := range detail {
			fmt.Printf("  %s -> %s\n", broken.File, broken.Target)
		}
	case []string:
		for _, file := range detail {
			fmt.Printf("  %s\n", file)
		}
	default:
		if detail == nil || result.Status == health.StatusPass {
			return
		}
		if data, err := json.Marshal(detail); err == nil {
			fmt.Printf("  %s\n", data)
		}
	}
}
