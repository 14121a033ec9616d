package deploy

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToParameters_SortedByKey(t *testing.T) {
	params := toParameters(map[string]string{
		"VpcId":     "vpc-123",
		"SubnetIdB": "subnet-b",
		"SubnetIdA": "subnet-a",
	})

	require.Len(t, params, 3)
	assert.Equal(t, "SubnetIdA", aws.ToString(params[0].ParameterKey))
	assert.Equal(t, "SubnetIdB", aws.ToString(params[1].ParameterKey))
	assert.Equal(t, "VpcId", aws.ToString(params[2].ParameterKey))
	assert.Equal(t, "vpc-123", aws.ToString(params[2].ParameterValue))
}

func TestToParameters_Empty(t *testing.T) {
	assert.Nil(t, toParameters(nil))
	assert.Nil(t, toParameters(map[string]string{}))
}

func TestToTags(t *testing.T) {
	tags := toTags(map[string]string{"AppName": "ci"})

	require.Len(t, tags, 1)
	assert.Equal(t, "AppName", aws.ToString(tags[0].Key))
	assert.Equal(t, "ci", aws.ToString(tags[0].Value))

	assert.Nil(t, toTags(nil))
}

func TestIsTerminalStatus(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{"CREATE_COMPLETE", true},
		{"UPDATE_COMPLETE", true},
		{"ROLLBACK_COMPLETE", true},
		{"CREATE_FAILED", true},
		{"CREATE_IN_PROGRESS", false},
		{"UPDATE_ROLLBACK_IN_PROGRESS", false},
		{"DELETE_IN_PROGRESS", false},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			assert.Equal(t, tt.want, isTerminalStatus(tt.status))
		})
	}
}

func TestIsSuccessStatus(t *testing.T) {
	assert.True(t, isSuccessStatus("CREATE_COMPLETE"))
	assert.True(t, isSuccessStatus("UPDATE_COMPLETE"))
	assert.True(t, isSuccessStatus("DELETE_COMPLETE"))
	assert.False(t, isSuccessStatus("ROLLBACK_COMPLETE"))
	assert.False(t, isSuccessStatus("CREATE_FAILED"))
	assert.False(t, isSuccessStatus("UPDATE_ROLLBACK_COMPLETE"))
}

func TestIsStackMissingErr(t *testing.T) {
	missing := &smithy.GenericAPIError{
		Code:    "ValidationError",
		Message: "Stack with id ci-jenkins does not exist",
	}
	assert.True(t, isStackMissingErr(missing))

	other := &smithy.GenericAPIError{
		Code:    "ValidationError",
		Message: "Template format error",
	}
	assert.False(t, isStackMissingErr(other))

	assert.False(t, isStackMissingErr(assert.AnError))
}

func TestIsNoChangesErr(t *testing.T) {
	noChanges := &smithy.GenericAPIError{
		Code:    "ValidationError",
		Message: "No updates are to be performed.",
	}
	assert.True(t, isNoChangesErr(noChanges))

	assert.False(t, isNoChangesErr(&smithy.GenericAPIError{
		Code:    "AccessDenied",
		Message: "No updates are to be performed.",
	}))
	assert.False(t, isNoChangesErr(assert.AnError))
}
