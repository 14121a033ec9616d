package topology

import (
	. "github.com/jenkinswire/jenkinswire/intrinsics"
	"github.com/jenkinswire/jenkinswire/resources/ecs"
)

// Service sizing. Jenkins keeps its state on disk, so there is exactly one
// replica; the 0/100 healthy percentages allow the single task to be fully
// replaced during a deploy.
const (
	desiredCount           = 1
	minHealthyPercent      = 0
	maxHealthyPercent      = 100
	healthCheckGracePeriod = 300
	fargatePlatformVersion = "1.4.0"
)

// addService declares the long-running Jenkins service. The cluster and task
// definition nodes are required inputs: the service cannot be assembled
// before both exist in the graph.
//
// The service waits for the listener and the mount targets before creation;
// those are explicit ordering edges rendered as DependsOn.
func addService(g *Graph, cfg Config, cluster, task, serviceSG, listener *Node, mountTargets []*Node) (*Node, error) {
	service := ecs.Service{
		ServiceName:                   cfg.AppName,
		Cluster:                       Ref{LogicalName: cluster.LogicalID},
		TaskDefinition:                Ref{LogicalName: task.LogicalID},
		DesiredCount:                  desiredCount,
		LaunchType:                    "FARGATE",
		PlatformVersion:               fargatePlatformVersion,
		HealthCheckGracePeriodSeconds: healthCheckGracePeriod,
		DeploymentConfiguration: ecs.Service_DeploymentConfiguration{
			MaximumPercent:        maxHealthyPercent,
			MinimumHealthyPercent: IntPtr(minHealthyPercent),
		},
		NetworkConfiguration: ecs.Service_NetworkConfiguration{
			AwsvpcConfiguration: ecs.Service_AwsVpcConfiguration{
				AssignPublicIp: "ENABLED",
				Subnets:        []any{Param("SubnetIdA"), Param("SubnetIdB")},
				SecurityGroups: []any{Ref{LogicalName: serviceSG.LogicalID}},
			},
		},
		Tags: []any{appTag(cfg)},
	}

	node, err := g.AddResource(cfg.id("service"), service)
	if err != nil {
		return nil, err
	}

	for _, dep := range []*Node{cluster, task, serviceSG} {
		if err := g.Connect(node, dep, KindReference); err != nil {
			return nil, err
		}
	}

	// The service cannot start before the target group is attached to the
	// listener, and its tasks cannot mount the file system before the mount
	// targets exist.
	if err := g.Connect(node, listener, KindOrdering); err != nil {
		return nil, err
	}
	for _, mt := range mountTargets {
		if err := g.Connect(node, mt, KindOrdering); err != nil {
			return nil, err
		}
	}

	return node, nil
}

// attachServiceToTargetGroup fills in the service's load balancer attachment
// once the target group node exists.
func attachServiceToTargetGroup(service *Node, targetGroup *Node) {
	svc := service.Resource.(ecs.Service)
	svc.LoadBalancers = []any{
		ecs.Service_LoadBalancer{
			ContainerName:  containerName,
			ContainerPort:  containerPort,
			TargetGroupArn: Ref{LogicalName: targetGroup.LogicalID},
		},
	}
	service.Resource = svc
}
