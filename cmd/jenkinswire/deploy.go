package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jenkinswire/jenkinswire/internal/deploy"
	"github.com/jenkinswire/jenkinswire/internal/template"
)

// newLogger builds the console logger the deploy driver streams stack events
// through.
func newLogger() zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
}

func newDeployCmd() *cobra.Command {
	var (
		vpcID   string
		subnetA string
		subnetB string
	)

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy the Jenkins stack to CloudFormation",
		Long: `Deploy assembles the topology, renders the template, and submits it to
CloudFormation. An existing stack is updated; a new one is created. The
command waits for a terminal status, streaming stack events as they happen.

When --account is set, deploy resolves the caller identity first and refuses
to run against any other account.

Examples:
    jenkinswire deploy --app-name ci --vpc-id vpc-0abc --subnet-a subnet-0a --subnet-b subnet-0b
    jenkinswire deploy --app-name ci --account 123456789012 --region us-east-1 ...`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDeploy(cmd, vpcID, subnetA, subnetB)
		},
	}

	cmd.Flags().StringVar(&vpcID, "vpc-id", "", "VPC to deploy into")
	cmd.Flags().StringVar(&subnetA, "subnet-a", "", "First subnet for the service, mount targets, and load balancer")
	cmd.Flags().StringVar(&subnetB, "subnet-b", "", "Second subnet, in a different availability zone")
	_ = cmd.MarkFlagRequired("vpc-id")
	_ = cmd.MarkFlagRequired("subnet-a")
	_ = cmd.MarkFlagRequired("subnet-b")

	return cmd
}

func runDeploy(cmd *cobra.Command, vpcID, subnetA, subnetB string) error {
	ctx := cmd.Context()

	stack, err := assembleStack()
	if err != nil {
		return err
	}

	tmpl, err := template.Build(stack)
	if err != nil {
		return err
	}
	body, err := template.ToJSON(tmpl)
	if err != nil {
		return err
	}

	logger := newLogger()
	clients, err := deploy.NewClients(ctx, logger,
		deploy.WithProfile(viper.GetString("profile")),
		deploy.WithRegion(stack.Config.Region),
	)
	if err != nil {
		return err
	}

	account, err := clients.Preflight(ctx, stack.Config.Account)
	if err != nil {
		return err
	}
	logger.Info().Str("account", account).Str("app", stack.Config.AppName).Msg("deploying")

	info, err := clients.Deploy(ctx, deploy.DeployInput{
		StackName:    stackName(stack.Config),
		TemplateBody: string(body),
		Parameters: map[string]string{
			"VpcId":     vpcID,
			"SubnetIdA": subnetA,
			"SubnetIdB": subnetB,
		},
		Tags: map[string]string{
			"AppName": stack.Config.AppName,
		},
	})
	if err != nil {
		return err
	}

	fmt.Printf("Stack %s: %s\n", info.Name, info.Status)
	for _, key := range []string{"JenkinsURL", "LoadBalancerDNS", "FileSystemId", "ClusterName"} {
		if v := info.Outputs[key]; v != "" {
			fmt.Printf("  %s: %s\n", key, v)
		}
	}
	return nil
}
