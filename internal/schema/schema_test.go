package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jenkinswire "github.com/jenkinswire/jenkinswire"
	"github.com/jenkinswire/jenkinswire/internal/template"
	"github.com/jenkinswire/jenkinswire/topology"
)

func TestValidateTemplate_RenderedTopology(t *testing.T) {
	stack, err := topology.Assemble(topology.Config{AppName: "ci"})
	require.NoError(t, err)
	tmpl, err := template.Build(stack)
	require.NoError(t, err)

	result, err := ValidateTemplate(tmpl, Options{})
	require.NoError(t, err)
	assert.True(t, result.Valid, "rendered topology should validate cleanly: %v", result.Errors)
	assert.Empty(t, result.Errors)
}

func TestValidateTemplate_UnknownType(t *testing.T) {
	tmpl := &jenkinswire.Template{
		Resources: map[string]jenkinswire.ResourceDef{
			"Thing": {Type: "AWS::SQS::Queue"},
		},
	}

	result, err := ValidateTemplate(tmpl, Options{})
	require.NoError(t, err)
	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0].Message, "unknown resource type")
}

func TestValidateTemplate_InvalidTypeFormat(t *testing.T) {
	tmpl := &jenkinswire.Template{
		Resources: map[string]jenkinswire.ResourceDef{
			"Thing": {Type: "Custom::Thing"},
		},
	}

	result, err := ValidateTemplate(tmpl, Options{})
	require.NoError(t, err)
	assert.False(t, result.Valid)

	found := false
	for _, e := range result.Errors {
		if e.Property == "Type" && e.Message == "invalid resource type format: Custom::Thing" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestValidateTemplate_InvalidDeletionPolicy(t *testing.T) {
	tmpl := &jenkinswire.Template{
		Resources: map[string]jenkinswire.ResourceDef{
			"CiEfs": {
				Type:           "AWS::EFS::FileSystem",
				DeletionPolicy: "Destroy",
			},
		},
	}

	result, err := ValidateTemplate(tmpl, Options{})
	require.NoError(t, err)
	assert.False(t, result.Valid)

	found := false
	for _, e := range result.Errors {
		if e.Property == "DeletionPolicy" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestValidateTemplate_MissingRequiredProperty(t *testing.T) {
	tmpl := &jenkinswire.Template{
		Resources: map[string]jenkinswire.ResourceDef{
			"CiAp": {
				Type:       "AWS::EFS::AccessPoint",
				Properties: map[string]any{"PosixUser": map[string]any{}},
			},
		},
	}

	result, err := ValidateTemplate(tmpl, Options{})
	require.NoError(t, err)
	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "FileSystemId", result.Errors[0].Property)
	assert.Contains(t, result.Errors[0].Message, "missing required property")
}

func TestValidateTemplate_DisallowedValue(t *testing.T) {
	tmpl := &jenkinswire.Template{
		Resources: map[string]jenkinswire.ResourceDef{
			"CiService": {
				Type:       "AWS::ECS::Service",
				Properties: map[string]any{"LaunchType": "TURBO"},
			},
		},
	}

	result, err := ValidateTemplate(tmpl, Options{})
	require.NoError(t, err)
	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "LaunchType", result.Errors[0].Property)
	assert.Contains(t, result.Errors[0].Message, "not in allowed values")
}

func TestValidateTemplate_IntrinsicsAlwaysValid(t *testing.T) {
	tmpl := &jenkinswire.Template{
		Resources: map[string]jenkinswire.ResourceDef{
			"CiMtA": {
				Type: "AWS::EFS::MountTarget",
				Properties: map[string]any{
					"FileSystemId":   map[string]any{"Ref": "CiEfs"},
					"SubnetId":       map[string]any{"Ref": "SubnetIdA"},
					"SecurityGroups": []any{map[string]any{"Ref": "CiEfsSg"}},
				},
			},
		},
	}

	result, err := ValidateTemplate(tmpl, Options{})
	require.NoError(t, err)
	assert.True(t, result.Valid, "intrinsic references should satisfy any type: %v", result.Errors)
}

func TestValidateTemplate_StrictWarnsOnUnknownProperty(t *testing.T) {
	tmpl := &jenkinswire.Template{
		Resources: map[string]jenkinswire.ResourceDef{
			"CiCluster": {
				Type:       "AWS::ECS::Cluster",
				Properties: map[string]any{"NoSuchProperty": "x"},
			},
		},
	}

	result, err := ValidateTemplate(tmpl, Options{})
	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Empty(t, result.Warnings)

	result, err = ValidateTemplate(tmpl, Options{Strict: true})
	require.NoError(t, err)
	assert.True(t, result.Valid, "unknown properties are warnings, not errors")
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "NoSuchProperty", result.Warnings[0].Property)
}
