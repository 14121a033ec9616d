package topology

import (
	. "github.com/jenkinswire/jenkinswire/intrinsics"
	"github.com/jenkinswire/jenkinswire/resources/ecs"
	"github.com/jenkinswire/jenkinswire/resources/iam"
	"github.com/jenkinswire/jenkinswire/resources/logs"
)

// Jenkins container constants. The image reference is fixed; Jenkins serves
// its UI on 8080 and keeps all state under /var/jenkins_home.
const (
	containerName  = "jenkins"
	containerImage = "jenkins/jenkins:lts"
	containerPort  = 8080
	jenkinsHome    = "/var/jenkins_home"

	taskCPU    = "1024"
	taskMemory = "2048"
)

// ----------------------------------------------------------------------------
// ECS Cluster
// ----------------------------------------------------------------------------

// addCluster declares the ECS cluster that runs the Jenkins service.
// The cluster carries the bare application name as its platform-visible name.
func addCluster(g *Graph, cfg Config) (*Node, error) {
	cluster := ecs.Cluster{
		ClusterName: cfg.AppName,
		Tags:        []any{appTag(cfg)},
	}
	return g.AddResource(cfg.id("cluster"), cluster)
}

// ----------------------------------------------------------------------------
// CloudWatch Log Group
// ----------------------------------------------------------------------------

// addLogGroup stores container logs with 30-day retention.
func addLogGroup(g *Graph, cfg Config) (*Node, error) {
	group := logs.LogGroup{
		LogGroupName:    "/ecs/" + cfg.AppName,
		RetentionInDays: 30,
		Tags:            []any{appTag(cfg)},
	}
	return g.AddResource(cfg.id("logs"), group)
}

// ----------------------------------------------------------------------------
// IAM Roles
// ----------------------------------------------------------------------------

// ecsAssumeRolePolicy is the trust policy for both task roles.
var ecsAssumeRolePolicy = PolicyDocument{
	Version: "2012-10-17",
	Statement: []any{
		PolicyStatement{
			Effect:    "Allow",
			Principal: ServicePrincipal{"ecs-tasks.amazonaws.com"},
			Action:    "sts:AssumeRole",
		},
	},
}

// addTaskRoles declares the execution role (image pulls, log writes) and the
// task role (EFS client access through the access point).
func addTaskRoles(g *Graph, cfg Config, fileSystem, accessPoint *Node) (execRole, taskRole *Node, err error) {
	execRole, err = g.AddResource(cfg.id("exec-role"), iam.Role{
		RoleName:                 cfg.id("exec-role"),
		AssumeRolePolicyDocument: ecsAssumeRolePolicy,
		ManagedPolicyArns: []any{
			"arn:aws:iam::aws:policy/service-role/AmazonECSTaskExecutionRolePolicy",
		},
		Tags: []any{appTag(cfg)},
	})
	if err != nil {
		return nil, nil, err
	}

	mountPolicy := iam.Role_Policy{
		PolicyName: "efs-client",
		PolicyDocument: PolicyDocument{
			Version: "2012-10-17",
			Statement: []any{
				PolicyStatement{
					Effect: "Allow",
					Action: []any{
						"elasticfilesystem:ClientMount",
						"elasticfilesystem:ClientWrite",
					},
					Resource: GetAtt{LogicalName: fileSystem.LogicalID, Attribute: "Arn"},
					Condition: Json{
						StringEquals: Json{
							"elasticfilesystem:AccessPointArn": GetAtt{
								LogicalName: accessPoint.LogicalID,
								Attribute:   "Arn",
							},
						},
					},
				},
			},
		},
	}

	taskRole, err = g.AddResource(cfg.id("task-role"), iam.Role{
		RoleName:                 cfg.id("task-role"),
		AssumeRolePolicyDocument: ecsAssumeRolePolicy,
		Policies:                 []any{mountPolicy},
		Tags:                     []any{appTag(cfg)},
	})
	if err != nil {
		return nil, nil, err
	}

	if err := g.Connect(taskRole, fileSystem, KindReference); err != nil {
		return nil, nil, err
	}
	if err := g.Connect(taskRole, accessPoint, KindReference); err != nil {
		return nil, nil, err
	}
	return execRole, taskRole, nil
}

// ----------------------------------------------------------------------------
// Task Definition
// ----------------------------------------------------------------------------

type taskDefinitionInputs struct {
	fileSystem  *Node
	accessPoint *Node
	logGroup    *Node
	execRole    *Node
	taskRole    *Node
}

// addTaskDefinition declares the Fargate task template: one container, one
// volume, one port mapping. The task-definition family uses the bare
// application name.
func addTaskDefinition(g *Graph, cfg Config, in taskDefinitionInputs) (*Node, error) {
	const volumeName = "jenkins-home"

	container := ecs.TaskDefinition_ContainerDefinition{
		Name:      containerName,
		Image:     containerImage,
		Essential: true,
		PortMappings: []any{
			ecs.TaskDefinition_PortMapping{ContainerPort: containerPort, Protocol: "tcp"},
		},
		MountPoints: []any{
			// The volume is mounted read-write; Jenkins writes its state here.
			ecs.TaskDefinition_MountPoint{
				ContainerPath: jenkinsHome,
				SourceVolume:  volumeName,
			},
		},
		LogConfiguration: ecs.TaskDefinition_LogConfiguration{
			LogDriver: "awslogs",
			Options: map[string]any{
				"awslogs-group":         Ref{LogicalName: in.logGroup.LogicalID},
				"awslogs-region":        AWS_REGION,
				"awslogs-stream-prefix": containerName,
			},
		},
	}

	volume := ecs.TaskDefinition_Volume{
		Name: volumeName,
		EFSVolumeConfiguration: ecs.TaskDefinition_EFSVolumeConfiguration{
			FilesystemId:      Ref{LogicalName: in.fileSystem.LogicalID},
			TransitEncryption: "ENABLED",
			AuthorizationConfig: ecs.TaskDefinition_AuthorizationConfig{
				AccessPointId: Ref{LogicalName: in.accessPoint.LogicalID},
				IAM:           "ENABLED",
			},
		},
	}

	task, err := g.AddResource(cfg.id("task"), ecs.TaskDefinition{
		Family:                  cfg.AppName,
		Cpu:                     taskCPU,
		Memory:                  taskMemory,
		NetworkMode:             "awsvpc",
		RequiresCompatibilities: []string{"FARGATE"},
		ExecutionRoleArn:        GetAtt{LogicalName: in.execRole.LogicalID, Attribute: "Arn"},
		TaskRoleArn:             GetAtt{LogicalName: in.taskRole.LogicalID, Attribute: "Arn"},
		ContainerDefinitions:    []any{container},
		Volumes:                 []any{volume},
		Tags:                    []any{appTag(cfg)},
	})
	if err != nil {
		return nil, err
	}

	for _, dep := range []*Node{in.accessPoint, in.fileSystem, in.logGroup, in.execRole, in.taskRole} {
		if err := g.Connect(task, dep, KindReference); err != nil {
			return nil, err
		}
	}
	return task, nil
}
