// Package ec2 provides CloudFormation resource types for Amazon EC2.
//
// Only the types rendered by the Jenkins topology are defined.
package ec2

// SecurityGroup represents an AWS::EC2::SecurityGroup resource.
type SecurityGroup struct {
	GroupName            any
	GroupDescription     string
	VpcId                any
	SecurityGroupIngress []any
	SecurityGroupEgress  []any
	Tags                 []any
}

// ResourceType returns the CloudFormation type for SecurityGroup.
func (SecurityGroup) ResourceType() string { return "AWS::EC2::SecurityGroup" }

// SecurityGroup_Ingress is an inbound security group rule.
type SecurityGroup_Ingress struct {
	IpProtocol            string
	FromPort              int
	ToPort                int
	CidrIp                string
	SourceSecurityGroupId any
	Description           string
}

// SecurityGroup_Egress is an outbound security group rule.
type SecurityGroup_Egress struct {
	IpProtocol                 string
	FromPort                   int
	ToPort                     int
	CidrIp                     string
	DestinationSecurityGroupId any
	Description                string
}
