// Package iam provides CloudFormation resource types for AWS IAM.
//
// Only the types rendered by the Jenkins topology are defined.
package iam

// Role represents an AWS::IAM::Role resource.
type Role struct {
	RoleName                 any
	AssumeRolePolicyDocument any
	ManagedPolicyArns        []any
	Policies                 []any
	Tags                     []any
}

// ResourceType returns the CloudFormation type for Role.
func (Role) ResourceType() string { return "AWS::IAM::Role" }

// Role_Policy is an inline policy attached to a role.
type Role_Policy struct {
	PolicyName     string
	PolicyDocument any
}
