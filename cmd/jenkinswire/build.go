package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	jenkinswire "github.com/jenkinswire/jenkinswire"
	"github.com/jenkinswire/jenkinswire/internal/template"
	"github.com/jenkinswire/jenkinswire/topology"
)

func newBuildCmd() *cobra.Command {
	var (
		outputFormat string
		outputFile   string
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Render the deployment topology as a CloudFormation template",
		Long: `Build assembles the Jenkins deployment topology and renders it as a
CloudFormation template.

Examples:
    jenkinswire build --app-name ci
    jenkinswire build --app-name ci -o template.json
    jenkinswire build --app-name ci --format yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(outputFormat, outputFile)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "Output format: json or yaml")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")

	return cmd
}

// assembleStack assembles the topology from the resolved configuration.
func assembleStack() (*topology.Stack, error) {
	cfg := topologyConfig()
	if cfg.AppName == "" {
		return nil, fmt.Errorf("app name is required (--app-name or JENKINSWIRE_APP_NAME)")
	}
	return topology.Assemble(cfg)
}

func runBuild(format, outputFile string) error {
	stack, err := assembleStack()
	if err != nil {
		buildResult := jenkinswire.BuildResult{
			Success: false,
			Errors:  []string{err.Error()},
		}
		return outputResult(buildResult, format, outputFile)
	}

	tmpl, err := template.Build(stack)
	if err != nil {
		buildResult := jenkinswire.BuildResult{
			Success: false,
			Errors:  []string{err.Error()},
		}
		return outputResult(buildResult, format, outputFile)
	}

	resourceNames := make([]string, 0, len(stack.Graph.Nodes()))
	for _, node := range stack.Graph.Nodes() {
		resourceNames = append(resourceNames, node.ID)
	}

	buildResult := jenkinswire.BuildResult{
		Success:   true,
		Template:  *tmpl,
		Resources: resourceNames,
	}

	return outputResult(buildResult, format, outputFile)
}

func outputResult(result jenkinswire.BuildResult, format, outputFile string) error {
	// Handle build failures - output errors to stderr
	if !result.Success {
		for _, e := range result.Errors {
			fmt.Fprintln(os.Stderr, e)
		}
		return fmt.Errorf("build failed")
	}

	// Output the raw CloudFormation template, not the result envelope
	var data []byte
	var err error

	switch format {
	case "json":
		data, err = template.ToJSON(&result.Template)
	case "yaml":
		data, err = template.ToYAML(&result.Template)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if err != nil {
		return err
	}

	if outputFile == "" {
		fmt.Println(string(data))
		return nil
	}

	return os.WriteFile(outputFile, data, 0644)
}
