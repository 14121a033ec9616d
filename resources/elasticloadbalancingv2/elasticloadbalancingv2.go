// Package elasticloadbalancingv2 provides CloudFormation resource types for
// Application Load Balancers.
//
// Only the types rendered by the Jenkins topology are defined.
package elasticloadbalancingv2

// LoadBalancer represents an AWS::ElasticLoadBalancingV2::LoadBalancer resource.
type LoadBalancer struct {
	Name           any
	Scheme         string
	Type           string
	Subnets        []any
	SecurityGroups []any
	Tags           []any
}

// ResourceType returns the CloudFormation type for LoadBalancer.
func (LoadBalancer) ResourceType() string {
	return "AWS::ElasticLoadBalancingV2::LoadBalancer"
}

// Listener represents an AWS::ElasticLoadBalancingV2::Listener resource.
type Listener struct {
	LoadBalancerArn any
	Port            int
	Protocol        string
	DefaultActions  []any
	Tags            []any
}

// ResourceType returns the CloudFormation type for Listener.
func (Listener) ResourceType() string {
	return "AWS::ElasticLoadBalancingV2::Listener"
}

// Listener_Action routes listener traffic.
type Listener_Action struct {
	Type           string
	TargetGroupArn any
}

// TargetGroup represents an AWS::ElasticLoadBalancingV2::TargetGroup resource.
type TargetGroup struct {
	Name                       any
	Port                       int
	Protocol                   string
	TargetType                 string
	VpcId                      any
	HealthCheckPath            string
	HealthCheckProtocol        string
	HealthyThresholdCount      int
	UnhealthyThresholdCount    int
	HealthCheckIntervalSeconds int
	Matcher                    any
	TargetGroupAttributes      []any
	Tags                       []any
}

// ResourceType returns the CloudFormation type for TargetGroup.
func (TargetGroup) ResourceType() string {
	return "AWS::ElasticLoadBalancingV2::TargetGroup"
}

// TargetGroup_Matcher defines the HTTP codes counted as healthy.
type TargetGroup_Matcher struct {
	HttpCode string
}

// TargetGroup_TargetGroupAttribute is a key/value target group attribute.
type TargetGroup_TargetGroupAttribute struct {
	Key   string
	Value string
}
