package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jenkinswire/jenkinswire/internal/deploy"
)

func newStatusCmd() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the deployed stack and its live resource state",
		Long: `Status reads the stack's current state plus live views of the resources
behind it: the load balancer's state and DNS name, the service's desired and
running task counts, and the file system's lifecycle state.

Examples:
    jenkinswire status --app-name ci
    jenkinswire status --app-name ci --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd, outputFormat)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "Output format: text or json")

	return cmd
}

func runStatus(cmd *cobra.Command, format string) error {
	ctx := cmd.Context()

	cfg := topologyConfig()
	if cfg.AppName == "" {
		return fmt.Errorf("app name is required (--app-name or JENKINSWIRE_APP_NAME)")
	}

	clients, err := deploy.NewClients(ctx, newLogger(),
		deploy.WithProfile(viper.GetString("profile")),
		deploy.WithRegion(cfg.Region),
	)
	if err != nil {
		return err
	}

	status, err := clients.Status(ctx, stackName(cfg), cfg.AppName)
	if err != nil {
		return err
	}

	switch format {
	case "json":
		data, err := json.MarshalIndent(status, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))

	case "text":
		fmt.Printf("Stack %s: %s\n", status.Stack.Name, status.Stack.Status)
		if status.Stack.Reason != "" {
			fmt.Printf("  reason: %s\n", status.Stack.Reason)
		}
		if status.LoadBalancerDNS != "" {
			fmt.Printf("Load balancer: %s (%s)\n", status.LoadBalancerDNS, status.LoadBalancerState)
		}
		fmt.Printf("Service tasks: %d running / %d desired\n", status.ServiceRunning, status.ServiceDesired)
		if status.FileSystemState != "" {
			fmt.Printf("File system: %s\n", status.FileSystemState)
		}
		if url := status.Stack.Outputs["JenkinsURL"]; url != "" {
			fmt.Printf("Jenkins: %s\n", url)
		}

	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	return nil
}
