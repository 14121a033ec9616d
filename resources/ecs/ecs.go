// Package ecs provides CloudFormation resource types for Amazon ECS.
//
// Only the types rendered by the Jenkins topology are defined.
package ecs

// Cluster represents an AWS::ECS::Cluster resource.
type Cluster struct {
	ClusterName     any
	ClusterSettings []any
	Tags            []any
}

// ResourceType returns the CloudFormation type for Cluster.
func (Cluster) ResourceType() string { return "AWS::ECS::Cluster" }

// Cluster_ClusterSettings configures a cluster setting such as containerInsights.
type Cluster_ClusterSettings struct {
	Name  string
	Value string
}

// TaskDefinition represents an AWS::ECS::TaskDefinition resource.
type TaskDefinition struct {
	Family                  any
	Cpu                     string
	Memory                  string
	NetworkMode             string
	RequiresCompatibilities []string
	ExecutionRoleArn        any
	TaskRoleArn             any
	ContainerDefinitions    []any
	Volumes                 []any
	Tags                    []any
}

// ResourceType returns the CloudFormation type for TaskDefinition.
func (TaskDefinition) ResourceType() string { return "AWS::ECS::TaskDefinition" }

// TaskDefinition_ContainerDefinition describes one container in a task definition.
type TaskDefinition_ContainerDefinition struct {
	Name             string
	Image            string
	Essential        bool
	PortMappings     []any
	MountPoints      []any
	LogConfiguration any
	Environment      []any
}

// TaskDefinition_PortMapping exposes a container port.
type TaskDefinition_PortMapping struct {
	ContainerPort int
	Protocol      string
}

// TaskDefinition_MountPoint mounts a task volume into a container.
type TaskDefinition_MountPoint struct {
	ContainerPath string
	SourceVolume  string
	ReadOnly      bool
}

// TaskDefinition_LogConfiguration routes container logs to a log driver.
type TaskDefinition_LogConfiguration struct {
	LogDriver string
	Options   map[string]any
}

// TaskDefinition_KeyValuePair is a name/value environment entry.
type TaskDefinition_KeyValuePair struct {
	Name  string
	Value any
}

// TaskDefinition_Volume declares a task-level volume.
type TaskDefinition_Volume struct {
	Name                   string
	EFSVolumeConfiguration any
}

// TaskDefinition_EFSVolumeConfiguration backs a volume with an EFS file system.
type TaskDefinition_EFSVolumeConfiguration struct {
	FilesystemId        any
	TransitEncryption   string
	AuthorizationConfig any
}

// TaskDefinition_AuthorizationConfig scopes EFS volume access.
type TaskDefinition_AuthorizationConfig struct {
	AccessPointId any
	IAM           string
}

// Service represents an AWS::ECS::Service resource.
type Service struct {
	ServiceName                   any
	Cluster                       any
	TaskDefinition                any
	DesiredCount                  int
	LaunchType                    string
	PlatformVersion               string
	HealthCheckGracePeriodSeconds int
	DeploymentConfiguration       any
	NetworkConfiguration          any
	LoadBalancers                 []any
	EnableECSManagedTags          bool
	PropagateTags                 string
	Tags                          []any
}

// ResourceType returns the CloudFormation type for Service.
func (Service) ResourceType() string { return "AWS::ECS::Service" }

// Service_DeploymentConfiguration bounds healthy capacity during deploys.
type Service_DeploymentConfiguration struct {
	MaximumPercent        int
	MinimumHealthyPercent *int
}

// Service_NetworkConfiguration wraps the awsvpc configuration.
type Service_NetworkConfiguration struct {
	AwsvpcConfiguration any
}

// Service_AwsVpcConfiguration configures VPC networking for a Fargate service.
type Service_AwsVpcConfiguration struct {
	AssignPublicIp string
	Subnets        []any
	SecurityGroups []any
}

// Service_LoadBalancer attaches a container port to a target group.
type Service_LoadBalancer struct {
	ContainerName  string
	ContainerPort  int
	TargetGroupArn any
}
