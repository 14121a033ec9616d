// Package logs provides CloudFormation resource types for CloudWatch Logs.
//
// Only the types rendered by the Jenkins topology are defined.
package logs

// LogGroup represents an AWS::Logs::LogGroup resource.
type LogGroup struct {
	LogGroupName    any
	RetentionInDays int
	Tags            []any
}

// ResourceType returns the CloudFormation type for LogGroup.
func (LogGroup) ResourceType() string { return "AWS::Logs::LogGroup" }
