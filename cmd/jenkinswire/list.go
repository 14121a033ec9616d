package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	jenkinswire "github.com/jenkinswire/jenkinswire"
)

func newListCmd() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the resources in the deployment topology",
		Long: `List assembles the topology and displays every resource it contains.

Examples:
    jenkinswire list --app-name ci
    jenkinswire list --app-name ci --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(outputFormat)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "Output format: text or json")

	return cmd
}

func runList(format string) error {
	stack, err := assembleStack()
	if err != nil {
		return err
	}

	nodes := stack.Graph.Nodes()
	listResult := jenkinswire.ListResult{
		Resources: make([]jenkinswire.ListResource, 0, len(nodes)),
	}

	// Nodes come back in assembly order, which reads naturally in text output
	for _, node := range nodes {
		listResult.Resources = append(listResult.Resources, jenkinswire.ListResource{
			ID:        node.ID,
			LogicalID: node.LogicalID,
			Type:      node.Resource.ResourceType(),
		})
	}

	return outputListResult(listResult, format)
}

func outputListResult(result jenkinswire.ListResult, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))

	case "text":
		fmt.Printf("Topology resources (%d):\n\n", len(result.Resources))
		for _, res := range result.Resources {
			fmt.Printf("  %-24s %-24s %s\n", res.ID, res.LogicalID, res.Type)
		}

	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	return nil
}
