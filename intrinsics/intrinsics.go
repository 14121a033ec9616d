// Package intrinsics provides the CloudFormation intrinsic functions used by
// the Jenkins topology.
//
// The core intrinsic types are re-exported from cloudformation-schema-go;
// IAM policy document types live in policy.go.
//
// Core intrinsic functions:
//
//	Ref{"JenkinsFileSystem"} → {"Ref": "JenkinsFileSystem"}
//	Sub{"${AWS::Region}-jenkins"} → {"Fn::Sub": "${AWS::Region}-jenkins"}
//	Join{"-", []any{"ci", "cluster"}} → {"Fn::Join": ["-", ["ci", "cluster"]]}
package intrinsics

import (
	"github.com/lex00/cloudformation-schema-go/intrinsics"
)

// Re-export core intrinsic types from the shared schema package.
type (
	// Ref represents a CloudFormation Ref intrinsic function.
	Ref = intrinsics.Ref

	// GetAtt represents a CloudFormation Fn::GetAtt intrinsic function.
	GetAtt = intrinsics.GetAtt

	// Sub represents a CloudFormation Fn::Sub intrinsic function.
	Sub = intrinsics.Sub

	// SubWithMap is Fn::Sub with a variable map.
	SubWithMap = intrinsics.SubWithMap

	// Join represents a CloudFormation Fn::Join intrinsic function.
	Join = intrinsics.Join

	// Select represents a CloudFormation Fn::Select intrinsic function.
	Select = intrinsics.Select

	// GetAZs represents a CloudFormation Fn::GetAZs intrinsic function.
	GetAZs = intrinsics.GetAZs

	// Split represents a CloudFormation Fn::Split intrinsic function.
	Split = intrinsics.Split

	// ImportValue represents a CloudFormation Fn::ImportValue intrinsic function.
	ImportValue = intrinsics.ImportValue

	// Tag represents a CloudFormation resource tag.
	Tag = intrinsics.Tag
)

// Param creates a Ref for a CloudFormation parameter.
// Re-exported from the shared schema package.
var Param = intrinsics.Param

// Helper functions for creating pointers to primitive types,
// used for optional pointer-typed resource fields.

// IntPtr returns a pointer to the given int value.
func IntPtr(i int) *int {
	return &i
}

// Float64Ptr returns a pointer to the given float64 value.
func Float64Ptr(f float64) *float64 {
	return &f
}
