package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewRootCommand(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "skillgraph",
		Short: "Index skill-file collections into a reference graph",
		Long: `Skillgraph scans a directory of skill files - markdown documents with
structured metadata headers and [[wiki-link]] references - and derives
a normalized, cycle-condensed node/edge graph plus a health report.

Graph output is written to .skillgraph/graph.json and can be
version-controlled.`,
	}

	indexCmd := &cobra.Command{
		Use:   "index [path]",
		Short: "Scan a collection and write .skillgraph/graph.json",
		Args:  cobra.MaximumNArgs(1),
		RunE:  RunIndex,
	}
	indexCmd.Flags().Bool("no-condense", false, "Keep reference cycles instead of condensing them into supernodes")
	indexCmd.Flags().Bool("include-ghosts", false, "Include unresolved placeholder nodes in the adjacency view")
	indexCmd.Flags().Bool("include-scripts", false, "Include script nodes in the adjacency view")
	indexCmd.Flags().Bool("include-cycles", false, "Include cycle supernodes in the adjacency view")
	indexCmd.Flags().Bool("json", false, "Print machine-readable run summary")

	healthCmd := &cobra.Command{
		Use:   "health [path]",
		Short: "Run the six collection health rules",
		Args:  cobra.MaximumNArgs(1),
		RunE:  RunHealth,
	}
	healthCmd.Flags().Bool("json", false, "Print machine-readable health report")

	adjacencyCmd := &cobra.Command{
		Use:   "adjacency <id> [path]",
		Short: "Show one node's outgoing references grouped by kind",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  RunAdjacency,
	}
	adjacencyCmd.Flags().Bool("json", false, "Print machine-readable adjacency view")
	adjacencyCmd.Flags().Bool("no-condense", false, "Inspect the pre-condensation graph")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("skillgraph %s\n", version)
		},
	}

	rootCmd.AddCommand(
		indexCmd,
		healthCmd,
		adjacencyCmd,
		versionCmd,
	)

	return rootCmd
}
