// Command jenkinswire assembles the Jenkins-on-Fargate deployment topology
// and drives CloudFormation with the result.
//
// Usage:
//
//	jenkinswire build --app-name ci          Render the CloudFormation template
//	jenkinswire validate --app-name ci       Schema checks + cfn-lint
//	jenkinswire deploy --app-name ci ...     Submit the stack and wait
//	jenkinswire destroy --app-name ci        Tear the stack down
//	jenkinswire version                      Show version
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jenkinswire/jenkinswire/topology"
)

func main() {
	rootCmd := newRootCmd()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "jenkinswire",
		Short: "Provision Jenkins on ECS Fargate with EFS-backed state",
		Long: `jenkinswire assembles a fixed deployment topology - containerized Jenkins on
ECS Fargate, persistent state on EFS through an access point, an internet-facing
load balancer in front - as a typed resource graph, renders it to a
CloudFormation template, and drives CloudFormation for deploy and teardown.

Configuration comes from flags or JENKINSWIRE_* environment variables:

    jenkinswire build --app-name ci
    JENKINSWIRE_APP_NAME=ci jenkinswire build`,
	}

	rootCmd.PersistentFlags().String("app-name", "", "Application name used in resource identifiers and tags")
	rootCmd.PersistentFlags().String("account", "", "Target AWS account ID (deploy refuses a mismatch)")
	rootCmd.PersistentFlags().String("region", "", "Target AWS region")
	rootCmd.PersistentFlags().String("profile", "", "AWS profile to use")

	_ = viper.BindPFlag("app-name", rootCmd.PersistentFlags().Lookup("app-name"))
	_ = viper.BindPFlag("account", rootCmd.PersistentFlags().Lookup("account"))
	_ = viper.BindPFlag("region", rootCmd.PersistentFlags().Lookup("region"))
	_ = viper.BindPFlag("profile", rootCmd.PersistentFlags().Lookup("profile"))

	viper.SetEnvPrefix("JENKINSWIRE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	rootCmd.AddCommand(
		newBuildCmd(),
		newGraphCmd(),
		newListCmd(),
		newValidateCmd(),
		newDiffCmd(),
		newDeployCmd(),
		newDestroyCmd(),
		newStatusCmd(),
		newWatchCmd(),
		newVersionCmd(),
	)

	return rootCmd
}

// topologyConfig reads the topology inputs once: flags and JENKINSWIRE_*
// environment first, then the plain environment fallbacks.
func topologyConfig() topology.Config {
	cfg := topology.FromEnv()
	if v := viper.GetString("app-name"); v != "" {
		cfg.AppName = v
	}
	if v := viper.GetString("account"); v != "" {
		cfg.Account = v
	}
	if v := viper.GetString("region"); v != "" {
		cfg.Region = v
	}
	return cfg
}

// stackName is the CloudFormation stack name for the topology.
func stackName(cfg topology.Config) string {
	return cfg.AppName + "-jenkins"
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("jenkinswire %s\n", getVersion())
		},
	}
}
