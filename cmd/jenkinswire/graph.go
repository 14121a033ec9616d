package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jenkinswire/jenkinswire/internal/graphviz"
)

func newGraphCmd() *cobra.Command {
	var (
		outputFormat      string
		includeParameters bool
		clusterByService  bool
	)

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Generate DOT graph of resource dependencies",
		Long: `Generate a DOT or Mermaid format graph showing resource dependencies.

The output can be rendered with Graphviz:
    jenkinswire graph --app-name ci | dot -Tpng -o deps.png

Or used in GitHub markdown (Mermaid format):
    jenkinswire graph --app-name ci -f mermaid

Examples:
    jenkinswire graph --app-name ci
    jenkinswire graph --app-name ci -p              # include parameters
    jenkinswire graph --app-name ci -c              # cluster by service
    jenkinswire graph --app-name ci -f mermaid      # mermaid format`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGraph(outputFormat, includeParameters, clusterByService)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "dot", "Output format: dot or mermaid")
	cmd.Flags().BoolVarP(&includeParameters, "include-parameters", "p", false, "Include parameter nodes in the graph")
	cmd.Flags().BoolVarP(&clusterByService, "cluster", "c", false, "Cluster resources by AWS service")

	return cmd
}

func runGraph(format string, includeParams bool, cluster bool) error {
	stack, err := assembleStack()
	if err != nil {
		return err
	}

	var graphFormat graphviz.Format
	switch format {
	case "dot":
		graphFormat = graphviz.FormatDOT
	case "mermaid":
		graphFormat = graphviz.FormatMermaid
	default:
		return fmt.Errorf("unknown format: %s (use 'dot' or 'mermaid')", format)
	}

	gen := &graphviz.Generator{
		Format:            graphFormat,
		IncludeParameters: includeParams,
		ClusterByService:  cluster,
	}

	return gen.Generate(stack.Graph, os.Stdout)
}
