package topology

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jenkinswire/jenkinswire/internal/serialize"
	"github.com/jenkinswire/jenkinswire/resources/ec2"
	"github.com/jenkinswire/jenkinswire/resources/ecs"
	"github.com/jenkinswire/jenkinswire/resources/efs"
	"github.com/jenkinswire/jenkinswire/resources/elasticloadbalancingv2"
)

func assemble(t *testing.T) *Stack {
	t.Helper()
	stack, err := Assemble(Config{AppName: "ci"})
	require.NoError(t, err)
	return stack
}

func node(t *testing.T, stack *Stack, id string) *Node {
	t.Helper()
	n, ok := stack.Graph.Node(id)
	require.True(t, ok, "missing node %s", id)
	return n
}

func TestAssemble_AllResourcesPresent(t *testing.T) {
	stack := assemble(t)

	want := []string{
		"ci-cluster", "ci-efs", "ci-ap", "ci-task", "ci-service",
		"ci-elb", "ci-listener", "ci-target",
		"ci-elb-sg", "ci-service-sg", "ci-efs-sg",
		"ci-mt-a", "ci-mt-b", "ci-exec-role", "ci-task-role", "ci-logs",
	}
	assert.Len(t, stack.Graph.Nodes(), len(want))
	for _, id := range want {
		_, ok := stack.Graph.Node(id)
		assert.True(t, ok, "missing node %s", id)
	}
}

func TestAssemble_IdentifiersCarryAppName(t *testing.T) {
	stack := assemble(t)

	for _, n := range stack.Graph.Nodes() {
		assert.True(t, strings.HasPrefix(n.ID, "ci-"), "node %s should be prefixed with the app name", n.ID)
	}
}

// Every taggable resource carries the AppName tag. Mount targets cannot carry
// tags and are exempt.
func TestAssemble_AppNameTagEverywhere(t *testing.T) {
	stack := assemble(t)

	exempt := map[string]bool{"ci-mt-a": true, "ci-mt-b": true}

	for _, n := range stack.Graph.Nodes() {
		if exempt[n.ID] {
			continue
		}

		props, err := serialize.Resource(n.Resource)
		require.NoError(t, err)

		var tags []any
		for _, key := range []string{"Tags", "FileSystemTags", "AccessPointTags"} {
			if v, ok := props[key].([]any); ok {
				tags = v
				break
			}
		}
		require.NotNil(t, tags, "node %s has no tags", n.ID)

		found := false
		for _, raw := range tags {
			tag, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			if tag["Key"] == "AppName" && tag["Value"] == "ci" {
				found = true
				break
			}
		}
		assert.True(t, found, "node %s is missing the AppName tag", n.ID)
	}
}

func TestAssemble_TaskDefinition(t *testing.T) {
	stack := assemble(t)

	task := node(t, stack, "ci-task").Resource.(ecs.TaskDefinition)
	assert.Equal(t, "ci", task.Family)
	assert.Equal(t, "1024", task.Cpu)
	assert.Equal(t, "2048", task.Memory)
	assert.Equal(t, "awsvpc", task.NetworkMode)
	assert.Equal(t, []string{"FARGATE"}, task.RequiresCompatibilities)

	// Exactly one container, one volume, one port mapping
	require.Len(t, task.ContainerDefinitions, 1)
	require.Len(t, task.Volumes, 1)

	container := task.ContainerDefinitions[0].(ecs.TaskDefinition_ContainerDefinition)
	assert.Equal(t, "jenkins", container.Name)
	assert.Equal(t, "jenkins/jenkins:lts", container.Image)
	assert.True(t, container.Essential)
	require.Len(t, container.PortMappings, 1)
	port := container.PortMappings[0].(ecs.TaskDefinition_PortMapping)
	assert.Equal(t, 8080, port.ContainerPort)

	require.Len(t, container.MountPoints, 1)
	mount := container.MountPoints[0].(ecs.TaskDefinition_MountPoint)
	assert.Equal(t, "/var/jenkins_home", mount.ContainerPath)
	assert.Equal(t, "jenkins-home", mount.SourceVolume)

	volume := task.Volumes[0].(ecs.TaskDefinition_Volume)
	assert.Equal(t, "jenkins-home", volume.Name)
	efsConfig := volume.EFSVolumeConfiguration.(ecs.TaskDefinition_EFSVolumeConfiguration)
	assert.Equal(t, "ENABLED", efsConfig.TransitEncryption)
	auth := efsConfig.AuthorizationConfig.(ecs.TaskDefinition_AuthorizationConfig)
	assert.Equal(t, "ENABLED", auth.IAM)
}

func TestAssemble_AccessPoint(t *testing.T) {
	stack := assemble(t)

	ap := node(t, stack, "ci-ap").Resource.(efs.AccessPoint)

	posix := ap.PosixUser.(efs.AccessPoint_PosixUser)
	assert.Equal(t, "1000", posix.Uid)
	assert.Equal(t, "1000", posix.Gid)

	root := ap.RootDirectory.(efs.AccessPoint_RootDirectory)
	assert.Equal(t, "/jenkins-home", root.Path)
	creation := root.CreationInfo.(efs.AccessPoint_CreationInfo)
	assert.Equal(t, "1000", creation.OwnerUid)
	assert.Equal(t, "1000", creation.OwnerGid)
	assert.Equal(t, "755", creation.Permissions)
}

func TestAssemble_FileSystem(t *testing.T) {
	stack := assemble(t)

	n := node(t, stack, "ci-efs")
	assert.Equal(t, "Delete", n.DeletionPolicy)

	fs := n.Resource.(efs.FileSystem)
	assert.True(t, fs.Encrypted)
}

func TestAssemble_LoadBalancerAndListener(t *testing.T) {
	stack := assemble(t)

	elb := node(t, stack, "ci-elb").Resource.(elasticloadbalancingv2.LoadBalancer)
	assert.Equal(t, "ci", elb.Name)
	assert.Equal(t, "internet-facing", elb.Scheme)
	assert.Equal(t, "application", elb.Type)
	assert.Len(t, elb.Subnets, 2)

	listener := node(t, stack, "ci-listener").Resource.(elasticloadbalancingv2.Listener)
	assert.Equal(t, 80, listener.Port)
	assert.Equal(t, "HTTP", listener.Protocol)

	// The forward action is patched in when the target group attaches
	require.Len(t, listener.DefaultActions, 1)
	action := listener.DefaultActions[0].(elasticloadbalancingv2.Listener_Action)
	assert.Equal(t, "forward", action.Type)
	assert.NotNil(t, action.TargetGroupArn)
}

func TestAssemble_TargetGroup(t *testing.T) {
	stack := assemble(t)

	tg := node(t, stack, "ci-target").Resource.(elasticloadbalancingv2.TargetGroup)
	assert.Equal(t, "ci-target", tg.Name)
	assert.Equal(t, 8080, tg.Port)
	assert.Equal(t, "ip", tg.TargetType)
	assert.Equal(t, "/login", tg.HealthCheckPath)

	require.Len(t, tg.TargetGroupAttributes, 1)
	attr := tg.TargetGroupAttributes[0].(elasticloadbalancingv2.TargetGroup_TargetGroupAttribute)
	assert.Equal(t, "deregistration_delay.timeout_seconds", attr.Key)
	assert.Equal(t, "10", attr.Value)
}

func TestAssemble_Service(t *testing.T) {
	stack := assemble(t)

	svc := node(t, stack, "ci-service").Resource.(ecs.Service)
	assert.Equal(t, "ci", svc.ServiceName)
	assert.Equal(t, 1, svc.DesiredCount)
	assert.Equal(t, "FARGATE", svc.LaunchType)
	assert.Equal(t, 300, svc.HealthCheckGracePeriodSeconds)

	deployment := svc.DeploymentConfiguration.(ecs.Service_DeploymentConfiguration)
	assert.Equal(t, 100, deployment.MaximumPercent)
	require.NotNil(t, deployment.MinimumHealthyPercent)
	assert.Equal(t, 0, *deployment.MinimumHealthyPercent)

	network := svc.NetworkConfiguration.(ecs.Service_NetworkConfiguration)
	awsvpc := network.AwsvpcConfiguration.(ecs.Service_AwsVpcConfiguration)
	assert.Equal(t, "ENABLED", awsvpc.AssignPublicIp)

	// The service is registered with the target group on the container port
	require.Len(t, svc.LoadBalancers, 1)
	lb := svc.LoadBalancers[0].(ecs.Service_LoadBalancer)
	assert.Equal(t, "jenkins", lb.ContainerName)
	assert.Equal(t, 8080, lb.ContainerPort)
}

func TestAssemble_SecurityGroupChain(t *testing.T) {
	stack := assemble(t)

	elbSG := node(t, stack, "ci-elb-sg").Resource.(ec2.SecurityGroup)
	require.Len(t, elbSG.SecurityGroupIngress, 1)
	ingress := elbSG.SecurityGroupIngress[0].(ec2.SecurityGroup_Ingress)
	assert.Equal(t, 80, ingress.FromPort)
	assert.Equal(t, "0.0.0.0/0", ingress.CidrIp)

	serviceSG := node(t, stack, "ci-service-sg").Resource.(ec2.SecurityGroup)
	require.Len(t, serviceSG.SecurityGroupIngress, 1)
	ingress = serviceSG.SecurityGroupIngress[0].(ec2.SecurityGroup_Ingress)
	assert.Equal(t, 8080, ingress.FromPort)
	assert.NotNil(t, ingress.SourceSecurityGroupId)
	assert.Empty(t, ingress.CidrIp)

	efsSG := node(t, stack, "ci-efs-sg").Resource.(ec2.SecurityGroup)
	require.Len(t, efsSG.SecurityGroupIngress, 1)
	ingress = efsSG.SecurityGroupIngress[0].(ec2.SecurityGroup_Ingress)
	assert.Equal(t, 2049, ingress.FromPort)
	assert.NotNil(t, ingress.SourceSecurityGroupId)
}

func TestAssemble_OrderingEdges(t *testing.T) {
	stack := assemble(t)

	deps := stack.Graph.DependenciesOfKind("ci-service", KindOrdering)
	assert.ElementsMatch(t, []string{"ci-listener", "ci-mt-a", "ci-mt-b"}, deps)

	// No other node carries ordering edges
	for _, n := range stack.Graph.Nodes() {
		if n.ID == "ci-service" {
			continue
		}
		assert.Empty(t, stack.Graph.DependenciesOfKind(n.ID, KindOrdering), "unexpected ordering edges on %s", n.ID)
	}
}

func TestAssemble_TopologicalOrder(t *testing.T) {
	stack := assemble(t)

	order, err := stack.Graph.TopologicalOrder()
	require.NoError(t, err)
	require.Len(t, order, 16)

	pos := make(map[string]int, len(order))
	for i, id := range order {
		pos[id] = i
	}

	// Dependencies come before their dependents
	assert.Less(t, pos["ci-cluster"], pos["ci-efs"])
	assert.Less(t, pos["ci-efs"], pos["ci-ap"])
	assert.Less(t, pos["ci-efs"], pos["ci-mt-a"])
	assert.Less(t, pos["ci-exec-role"], pos["ci-task"])
	assert.Less(t, pos["ci-elb"], pos["ci-listener"])
	assert.Less(t, pos["ci-listener"], pos["ci-service"])
	assert.Less(t, pos["ci-mt-b"], pos["ci-service"])
	assert.Less(t, pos["ci-service"], pos["ci-target"])
}

func TestAssemble_ParametersAndOutputs(t *testing.T) {
	stack := assemble(t)

	assert.Equal(t, []string{"VpcId", "SubnetIdA", "SubnetIdB"}, stack.Graph.ParameterNames())
	assert.Equal(t, []string{"JenkinsURL", "LoadBalancerDNS", "FileSystemId", "ClusterName"}, stack.Graph.OutputNames())
}

func TestDescription(t *testing.T) {
	stack := assemble(t)
	assert.Contains(t, stack.Description(), "ci")
	assert.Contains(t, stack.Description(), "Jenkins")
}
