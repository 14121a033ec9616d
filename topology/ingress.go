package topology

import (
	. "github.com/jenkinswire/jenkinswire/intrinsics"
	"github.com/jenkinswire/jenkinswire/resources/ec2"
	"github.com/jenkinswire/jenkinswire/resources/elasticloadbalancingv2"
)

// Listener and health-check constants.
const (
	listenerPort            = 80
	healthCheckPath         = "/login"
	deregistrationDelaySecs = "10"
)

// ----------------------------------------------------------------------------
// Security Groups
// ----------------------------------------------------------------------------

// addSecurityGroups declares the three security groups: public ingress to the
// load balancer, load balancer to the service, and service to the file system
// on the NFS port.
func addSecurityGroups(g *Graph, cfg Config) (elbSG, serviceSG, efsSG *Node, err error) {
	elbSG, err = g.AddResource(cfg.id("elb-sg"), ec2.SecurityGroup{
		GroupDescription: "Public ingress to the " + cfg.AppName + " load balancer",
		VpcId:            Param("VpcId"),
		SecurityGroupIngress: []any{
			ec2.SecurityGroup_Ingress{
				IpProtocol:  "tcp",
				FromPort:    listenerPort,
				ToPort:      listenerPort,
				CidrIp:      "0.0.0.0/0",
				Description: "HTTP from anywhere",
			},
		},
		Tags: []any{appTag(cfg)},
	})
	if err != nil {
		return nil, nil, nil, err
	}

	serviceSG, err = g.AddResource(cfg.id("service-sg"), ec2.SecurityGroup{
		GroupDescription: "Load balancer to the " + cfg.AppName + " service",
		VpcId:            Param("VpcId"),
		SecurityGroupIngress: []any{
			ec2.SecurityGroup_Ingress{
				IpProtocol:            "tcp",
				FromPort:              containerPort,
				ToPort:                containerPort,
				SourceSecurityGroupId: Ref{LogicalName: elbSG.LogicalID},
				Description:           "Jenkins UI from the load balancer",
			},
		},
		Tags: []any{appTag(cfg)},
	})
	if err != nil {
		return nil, nil, nil, err
	}
	if err = g.Connect(serviceSG, elbSG, KindReference); err != nil {
		return nil, nil, nil, err
	}

	// The service grants itself network permission to reach the file system
	// on the NFS port.
	efsSG, err = g.AddResource(cfg.id("efs-sg"), ec2.SecurityGroup{
		GroupDescription: "Service to the " + cfg.AppName + " file system",
		VpcId:            Param("VpcId"),
		SecurityGroupIngress: []any{
			ec2.SecurityGroup_Ingress{
				IpProtocol:            "tcp",
				FromPort:              nfsPort,
				ToPort:                nfsPort,
				SourceSecurityGroupId: Ref{LogicalName: serviceSG.LogicalID},
				Description:           "NFS from the service",
			},
		},
		Tags: []any{appTag(cfg)},
	})
	if err != nil {
		return nil, nil, nil, err
	}
	if err = g.Connect(efsSG, serviceSG, KindReference); err != nil {
		return nil, nil, nil, err
	}

	return elbSG, serviceSG, efsSG, nil
}

// ----------------------------------------------------------------------------
// Load Balancer
// ----------------------------------------------------------------------------

// addLoadBalancer declares the internet-facing entry point, bound to the
// cluster's virtual network and carrying the bare application name.
func addLoadBalancer(g *Graph, cfg Config, cluster, elbSG *Node) (*Node, error) {
	elb := elasticloadbalancingv2.LoadBalancer{
		Name:           cfg.AppName,
		Scheme:         "internet-facing",
		Type:           "application",
		Subnets:        []any{Param("SubnetIdA"), Param("SubnetIdB")},
		SecurityGroups: []any{Ref{LogicalName: elbSG.LogicalID}},
		Tags:           []any{appTag(cfg)},
	}
	node, err := g.AddResource(cfg.id("elb"), elb)
	if err != nil {
		return nil, err
	}
	if err := g.Connect(node, cluster, KindNetwork); err != nil {
		return nil, err
	}
	if err := g.Connect(node, elbSG, KindReference); err != nil {
		return nil, err
	}
	return node, nil
}

// ----------------------------------------------------------------------------
// Listener
// ----------------------------------------------------------------------------

// addListener binds the load balancer to port 80. Plain HTTP; the missing
// TLS termination on 443 is a known gap. The forward action is filled in by
// attachTargetGroup.
func addListener(g *Graph, cfg Config, elb *Node) (*Node, error) {
	listener := elasticloadbalancingv2.Listener{
		LoadBalancerArn: Ref{LogicalName: elb.LogicalID},
		Port:            listenerPort,
		Protocol:        "HTTP",
		Tags:            []any{appTag(cfg)},
	}
	node, err := g.AddResource(cfg.id("listener"), listener)
	if err != nil {
		return nil, err
	}
	if err := g.Connect(node, elb, KindReference); err != nil {
		return nil, err
	}
	return node, nil
}

// ----------------------------------------------------------------------------
// Target Group
// ----------------------------------------------------------------------------

// attachTargetGroup assembles the target group that routes listener traffic
// to the service on the container port. The attachment is realized by the
// reverse property references: the listener forwards to the target group and
// the service registers its tasks with it.
func attachTargetGroup(g *Graph, cfg Config, listener, service *Node) (*Node, error) {
	tg := elasticloadbalancingv2.TargetGroup{
		Name:                cfg.id("target"),
		Port:                containerPort,
		Protocol:            "HTTP",
		TargetType:          "ip",
		VpcId:               Param("VpcId"),
		HealthCheckPath:     healthCheckPath,
		HealthCheckProtocol: "HTTP",
		TargetGroupAttributes: []any{
			elasticloadbalancingv2.TargetGroup_TargetGroupAttribute{
				Key:   "deregistration_delay.timeout_seconds",
				Value: deregistrationDelaySecs,
			},
		},
		Tags: []any{appTag(cfg)},
	}
	node, err := g.AddResource(cfg.id("target"), tg)
	if err != nil {
		return nil, err
	}
	if err := g.Connect(node, listener, KindAttachment); err != nil {
		return nil, err
	}
	if err := g.Connect(node, service, KindAttachment); err != nil {
		return nil, err
	}

	// Reverse references: listener forwards to the target group.
	l := listener.Resource.(elasticloadbalancingv2.Listener)
	l.DefaultActions = []any{
		elasticloadbalancingv2.Listener_Action{
			Type:           "forward",
			TargetGroupArn: Ref{LogicalName: node.LogicalID},
		},
	}
	listener.Resource = l

	// Reverse references: the service registers its tasks with the target group.
	attachServiceToTargetGroup(service, node)

	return node, nil
}
