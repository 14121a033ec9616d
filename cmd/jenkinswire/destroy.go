package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jenkinswire/jenkinswire/internal/deploy"
)

func newDestroyCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "destroy",
		Short: "Delete the Jenkins stack",
		Long: `Destroy deletes the CloudFormation stack and waits until it is gone.

The file system carries a Delete policy, so teardown removes the Jenkins
state along with everything else. There is no orphaned storage to clean up,
and no way to get the data back.

Examples:
    jenkinswire destroy --app-name ci --yes`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDestroy(cmd, yes)
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Skip the confirmation prompt")

	return cmd
}

func runDestroy(cmd *cobra.Command, yes bool) error {
	ctx := cmd.Context()

	cfg := topologyConfig()
	if cfg.AppName == "" {
		return fmt.Errorf("app name is required (--app-name or JENKINSWIRE_APP_NAME)")
	}

	if !yes {
		fmt.Printf("This deletes stack %s including the Jenkins file system. Continue? [y/N] ", stackName(cfg))
		var answer string
		_, _ = fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	logger := newLogger()
	clients, err := deploy.NewClients(ctx, logger,
		deploy.WithProfile(viper.GetString("profile")),
		deploy.WithRegion(cfg.Region),
	)
	if err != nil {
		return err
	}

	if _, err := clients.Preflight(ctx, cfg.Account); err != nil {
		return err
	}

	return clients.Destroy(ctx, stackName(cfg))
}
