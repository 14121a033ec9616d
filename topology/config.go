// Package topology assembles the Jenkins deployment topology as an explicit
// typed resource graph.
//
// The topology is fixed: one ECS Fargate service running jenkins/jenkins:lts,
// persistent state on an EFS file system scoped through an access point, an
// internet-facing Application Load Balancer in front, and the supporting
// security groups, mount targets, IAM roles, and log group. Assemble produces
// the graph; internal/template renders it into the CloudFormation template
// the provisioning engine executes.
package topology

import "os"

// Config carries the topology inputs. It is read once and threaded
// explicitly through assembly; nothing reads ambient state afterwards.
type Config struct {
	// AppName is used verbatim in resource identifiers and as the AppName
	// tag value on every resource. Assembly does not validate it; an empty
	// name produces identifiers the provisioning engine rejects at plan time.
	AppName string

	// Account is the target AWS account ID. Optional; when set, the deploy
	// driver refuses to submit to a different account.
	Account string

	// Region is the target AWS region.
	Region string
}

// FromEnv reads the topology inputs from the process environment.
// JENKINSWIRE_APP_NAME, JENKINSWIRE_ACCOUNT, and JENKINSWIRE_REGION are
// read first; the region falls back to AWS_REGION and AWS_DEFAULT_REGION.
func FromEnv() Config {
	cfg := Config{
		AppName: os.Getenv("JENKINSWIRE_APP_NAME"),
		Account: os.Getenv("JENKINSWIRE_ACCOUNT"),
		Region:  os.Getenv("JENKINSWIRE_REGION"),
	}
	if cfg.Region == "" {
		cfg.Region = os.Getenv("AWS_REGION")
	}
	if cfg.Region == "" {
		cfg.Region = os.Getenv("AWS_DEFAULT_REGION")
	}
	return cfg
}

// id forms a topology identifier from the application name and role suffix.
func (c Config) id(roleSuffix string) string {
	return c.AppName + "-" + roleSuffix
}
