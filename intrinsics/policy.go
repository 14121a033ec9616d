// Package intrinsics provides CloudFormation intrinsic functions.
// This file contains IAM policy document types and helpers.
package intrinsics

import (
	"encoding/json"
)

// Json is a shorthand for map[string]any.
// Used for inline JSON objects like Condition blocks.
//
// Example:
//
//	Condition: Json{
//	    StringEquals: Json{"elasticfilesystem:AccessPointArn": apArn},
//	}
type Json = map[string]any

// Any creates a []any slice from the given items.
// Use for fields typed as []any that accept mixed types or intrinsics.
func Any(items ...any) []any {
	return items
}

// PolicyDocument represents an IAM policy document.
//
// Example:
//
//	var MountPolicy = PolicyDocument{
//	    Version:   "2012-10-17",
//	    Statement: []any{MountStatement},
//	}
type PolicyDocument struct {
	Version   string `json:"Version,omitempty"`
	Statement []any  `json:"Statement"`
}

// NewPolicyDocument creates a PolicyDocument with the default version.
func NewPolicyDocument() PolicyDocument {
	return PolicyDocument{Version: "2012-10-17"}
}

// PolicyStatement represents an IAM policy statement.
//
// Example:
//
//	var AssumeStatement = PolicyStatement{
//	    Effect:    "Allow",
//	    Principal: ServicePrincipal{"ecs-tasks.amazonaws.com"},
//	    Action:    "sts:AssumeRole",
//	}
type PolicyStatement struct {
	Sid       string `json:"Sid,omitempty"`
	Effect    string `json:"Effect"`
	Principal any    `json:"Principal,omitempty"`
	Action    any    `json:"Action,omitempty"`
	Resource  any    `json:"Resource,omitempty"`
	Condition Json   `json:"Condition,omitempty"`
}

// ServicePrincipal represents a service principal (e.g., ecs-tasks.amazonaws.com).
// Serializes to {"Service": ...} format.
type ServicePrincipal []any

// MarshalJSON serializes to {"Service": ...} format.
func (p ServicePrincipal) MarshalJSON() ([]byte, error) {
	if len(p) == 1 {
		return json.Marshal(map[string]any{"Service": p[0]})
	}
	return json.Marshal(map[string]any{"Service": []any(p)})
}

// IAM condition operator constants used as keys in Condition maps.
const (
	StringEquals = "StringEquals"
	StringLike   = "StringLike"
	ArnEquals    = "ArnEquals"
	Bool         = "Bool"
)
