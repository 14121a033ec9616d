package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	jenkinswire "github.com/jenkinswire/jenkinswire"
	"github.com/jenkinswire/jenkinswire/internal/deploy"
	"github.com/jenkinswire/jenkinswire/internal/differ"
	"github.com/jenkinswire/jenkinswire/internal/template"
)

func newDiffCmd() *cobra.Command {
	var (
		outputFormat string
		ignoreOrder  bool
		againstFile  string
	)

	cmd := &cobra.Command{
		Use:   "diff",
		Short: "Compare the assembled template against the deployed stack or a file",
		Long: `Diff assembles the topology and compares the rendered template against a
baseline: the template CloudFormation currently holds for the deployed stack,
or a saved template file when --file is given.

Examples:
    jenkinswire diff --app-name ci
    jenkinswire diff --app-name ci --file template.json
    jenkinswire diff --app-name ci --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(cmd, outputFormat, ignoreOrder, againstFile)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "Output format: text or json")
	cmd.Flags().BoolVar(&ignoreOrder, "ignore-order", false, "Ignore array element order in comparisons")
	cmd.Flags().StringVar(&againstFile, "file", "", "Compare against a template file instead of the deployed stack")

	return cmd
}

func runDiff(cmd *cobra.Command, format string, ignoreOrder bool, againstFile string) error {
	stack, err := assembleStack()
	if err != nil {
		return err
	}

	fresh, err := template.Build(stack)
	if err != nil {
		return err
	}

	var baseline *jenkinswire.Template
	if againstFile != "" {
		baseline, err = differ.LoadTemplate(againstFile)
		if err != nil {
			return fmt.Errorf("loading baseline template: %w", err)
		}
	} else {
		baseline, err = deployedBaseline(cmd, stack.Config.AppName)
		if err != nil {
			return err
		}
	}

	result, err := differ.Compare(baseline, fresh, differ.Options{IgnoreOrder: ignoreOrder})
	if err != nil {
		return err
	}

	diffResult := jenkinswire.DiffResult{
		Success: result.Summary.Total == 0,
		Diff:    result.Diff,
		Summary: result.Summary,
	}

	return outputDiffResult(diffResult, format)
}

// deployedBaseline fetches the template CloudFormation holds for the stack.
func deployedBaseline(cmd *cobra.Command, appName string) (*jenkinswire.Template, error) {
	ctx := cmd.Context()

	clients, err := deploy.NewClients(ctx, newLogger(),
		deploy.WithProfile(viper.GetString("profile")),
		deploy.WithRegion(viper.GetString("region")),
	)
	if err != nil {
		return nil, err
	}

	body, err := clients.DeployedTemplate(ctx, stackName(topologyConfig()))
	if err != nil {
		return nil, err
	}
	return differ.ParseTemplate([]byte(body))
}

func outputDiffResult(result jenkinswire.DiffResult, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))

	case "text":
		if result.Summary.Total == 0 {
			fmt.Println("No differences found.")
			return nil
		}

		for _, e := range result.Diff.Added {
			fmt.Printf("+ %s (%s)\n", e.Resource, e.Type)
		}
		for _, e := range result.Diff.Removed {
			fmt.Printf("- %s (%s)\n", e.Resource, e.Type)
		}
		for _, e := range result.Diff.Modified {
			fmt.Printf("~ %s (%s)\n", e.Resource, e.Type)
			for _, change := range e.Changes {
				fmt.Printf("    %s\n", change)
			}
		}
		fmt.Printf("\n%d added, %d removed, %d modified\n",
			result.Summary.Added, result.Summary.Removed, result.Summary.Modified)

	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if !result.Success {
		os.Exit(1)
	}

	return nil
}
