package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

const (
	// OutputDir holds generated artifacts, relative to the scan root.
	OutputDir = ".skillgraph"
	// GraphFile is the graph artifact name inside OutputDir.
	GraphFile = "graph.json"
)

// resolveRoot picks the scan root from a trailing positional argument,
// defaulting to the working directory.
func resolveRoot(args []string, positional int) (string, error) {
	if len(args) > positional {
		abs, err := filepath.Abs(args[positional])
		if err != nil {
			return "", fmt.Errorf("failed to resolve path %q: %w", args[positional], err)
		}
		return abs, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to resolve working directory: %w", err)
	}
	return cwd, nil
}

func boolFlag(cmd *cobra.Command, name string) (bool, error) {
	if cmd.Flags().Lookup(name) == nil {
		return false, nil
	}
	value, err := cmd.Flags().GetBool(name)
	if err != nil {
		return false, fmt.Errorf("failed to read --%s: %w", name, err)
	}
	return value, nil
}
