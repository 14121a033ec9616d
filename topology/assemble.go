package topology

import (
	jenkinswire "github.com/jenkinswire/jenkinswire"
	. "github.com/jenkinswire/jenkinswire/intrinsics"
)

// Stack is the assembled topology: the configuration it was built from and
// the resource graph handed to the template renderer.
type Stack struct {
	Config Config
	Graph  *Graph
}

// Description is the template description carried on every rendered stack.
func (s *Stack) Description() string {
	return "Jenkins on ECS Fargate with EFS-backed persistent state (" + s.Config.AppName + ")"
}

// Assemble builds the full Jenkins deployment topology for the given
// configuration. It runs once, synchronously, to completion; the result is a
// static description with no runtime phases of its own.
//
// Assembly does not validate the application name; invalid identifiers are
// left to the provisioning engine to reject at plan time.
func Assemble(cfg Config) (*Stack, error) {
	g := NewGraph()

	if err := addNetworkParameters(g); err != nil {
		return nil, err
	}

	cluster, err := addCluster(g, cfg)
	if err != nil {
		return nil, err
	}

	fileSystem, err := addFileSystem(g, cfg, cluster)
	if err != nil {
		return nil, err
	}

	accessPoint, err := addAccessPoint(g, cfg, fileSystem)
	if err != nil {
		return nil, err
	}

	logGroup, err := addLogGroup(g, cfg)
	if err != nil {
		return nil, err
	}

	execRole, taskRole, err := addTaskRoles(g, cfg, fileSystem, accessPoint)
	if err != nil {
		return nil, err
	}

	task, err := addTaskDefinition(g, cfg, taskDefinitionInputs{
		fileSystem:  fileSystem,
		accessPoint: accessPoint,
		logGroup:    logGroup,
		execRole:    execRole,
		taskRole:    taskRole,
	})
	if err != nil {
		return nil, err
	}

	elbSG, serviceSG, efsSG, err := addSecurityGroups(g, cfg)
	if err != nil {
		return nil, err
	}

	mountTargets, err := addMountTargets(g, cfg, fileSystem, efsSG)
	if err != nil {
		return nil, err
	}

	elb, err := addLoadBalancer(g, cfg, cluster, elbSG)
	if err != nil {
		return nil, err
	}

	listener, err := addListener(g, cfg, elb)
	if err != nil {
		return nil, err
	}

	service, err := addService(g, cfg, cluster, task, serviceSG, listener, mountTargets)
	if err != nil {
		return nil, err
	}

	if _, err := attachTargetGroup(g, cfg, listener, service); err != nil {
		return nil, err
	}

	if err := addOutputs(g, cfg, cluster, fileSystem, elb); err != nil {
		return nil, err
	}

	return &Stack{Config: cfg, Graph: g}, nil
}

// addNetworkParameters declares the execution network inputs. The virtual
// network itself is not reconciled here; a VPC whose settings do not match
// the topology fails at deploy time with the engine's own error output.
func addNetworkParameters(g *Graph) error {
	params := []struct {
		name  string
		param jenkinswire.Parameter
	}{
		{"VpcId", jenkinswire.Parameter{
			Type:        "AWS::EC2::VPC::Id",
			Description: "VPC the cluster, file system, and load balancer share",
		}},
		{"SubnetIdA", jenkinswire.Parameter{
			Type:        "AWS::EC2::Subnet::Id",
			Description: "First subnet for tasks, mount targets, and the load balancer",
		}},
		{"SubnetIdB", jenkinswire.Parameter{
			Type:        "AWS::EC2::Subnet::Id",
			Description: "Second subnet for tasks, mount targets, and the load balancer",
		}},
	}
	for _, p := range params {
		if err := g.AddParameter(p.name, p.param); err != nil {
			return err
		}
	}
	return nil
}

// addOutputs publishes the stack's entry points.
func addOutputs(g *Graph, cfg Config, cluster, fileSystem, elb *Node) error {
	outputs := []struct {
		name   string
		output jenkinswire.Output
	}{
		{"JenkinsURL", jenkinswire.Output{
			Description: "Jenkins login URL",
			Value:       Sub{String: "http://${" + elb.LogicalID + ".DNSName}/"},
		}},
		{"LoadBalancerDNS", jenkinswire.Output{
			Description: "DNS name of the load balancer",
			Value:       GetAtt{LogicalName: elb.LogicalID, Attribute: "DNSName"},
		}},
		{"FileSystemId", jenkinswire.Output{
			Description: "EFS file system holding Jenkins state",
			Value:       Ref{LogicalName: fileSystem.LogicalID},
		}},
		{"ClusterName", jenkinswire.Output{
			Description: "ECS cluster name",
			Value:       Ref{LogicalName: cluster.LogicalID},
		}},
	}
	for _, o := range outputs {
		if err := g.AddOutput(o.name, o.output); err != nil {
			return err
		}
	}
	return nil
}

// appTag is the tag applied to every taggable resource in the topology.
func appTag(cfg Config) Tag {
	return Tag{Key: "AppName", Value: cfg.AppName}
}
