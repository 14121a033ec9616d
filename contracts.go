// Package jenkinswire defines the CloudFormation template model shared by
// every layer of the jenkinswire CLI.
//
// The topology package assembles a typed resource graph for the Jenkins
// deployment; internal/template renders that graph into the Template type
// declared here; the deploy driver submits the rendered template to
// CloudFormation.
package jenkinswire

// Resource represents a CloudFormation resource.
// Every typed resource struct (ecs.Cluster, efs.FileSystem, etc.) implements it.
type Resource interface {
	// ResourceType returns the CloudFormation type (e.g., "AWS::ECS::Cluster")
	ResourceType() string
}

// Template represents a CloudFormation template.
type Template struct {
	AWSTemplateFormatVersion string                 `json:"AWSTemplateFormatVersion" yaml:"AWSTemplateFormatVersion"`
	Description              string                 `json:"Description,omitempty" yaml:"Description,omitempty"`
	Parameters               map[string]Parameter   `json:"Parameters,omitempty" yaml:"Parameters,omitempty"`
	Resources                map[string]ResourceDef `json:"Resources" yaml:"Resources"`
	Outputs                  map[string]Output      `json:"Outputs,omitempty" yaml:"Outputs,omitempty"`
}

// ResourceDef is a single resource in the CloudFormation template.
type ResourceDef struct {
	Type           string         `json:"Type" yaml:"Type"`
	Properties     map[string]any `json:"Properties,omitempty" yaml:"Properties,omitempty"`
	DependsOn      []string       `json:"DependsOn,omitempty" yaml:"DependsOn,omitempty"`
	DeletionPolicy string         `json:"DeletionPolicy,omitempty" yaml:"DeletionPolicy,omitempty"`
}

// Parameter is a CloudFormation template parameter.
type Parameter struct {
	Type          string   `json:"Type" yaml:"Type"`
	Description   string   `json:"Description,omitempty" yaml:"Description,omitempty"`
	Default       any      `json:"Default,omitempty" yaml:"Default,omitempty"`
	AllowedValues []string `json:"AllowedValues,omitempty" yaml:"AllowedValues,omitempty"`
}

// Output is a CloudFormation template output.
type Output struct {
	Description string `json:"Description,omitempty" yaml:"Description,omitempty"`
	Value       any    `json:"Value" yaml:"Value"`
	Export      *struct {
		Name string `json:"Name" yaml:"Name"`
	} `json:"Export,omitempty" yaml:"Export,omitempty"`
}

// BuildResult is the JSON output from `jenkinswire build`.
type BuildResult struct {
	Success   bool     `json:"success"`
	Template  Template `json:"template,omitempty"`
	Resources []string `json:"resources,omitempty"`
	Errors    []string `json:"errors,omitempty"`
}

// ValidateResult is the JSON output from `jenkinswire validate`.
type ValidateResult struct {
	Success   bool     `json:"success"`
	Resources int      `json:"resources"`
	Errors    []string `json:"errors,omitempty"`
	Warnings  []string `json:"warnings,omitempty"`
}

// ListResult is the JSON output from `jenkinswire list`.
type ListResult struct {
	Resources []ListResource `json:"resources"`
}

// ListResource is a single resource in the list output.
type ListResource struct {
	ID        string `json:"id"`
	LogicalID string `json:"logical_id"`
	Type      string `json:"type"`
}

// SchemaError is a single offline schema validation finding.
type SchemaError struct {
	Resource string `json:"resource"`
	Property string `json:"property"`
	Message  string `json:"message"`
}

// DiffResult is the JSON output from `jenkinswire diff`.
type DiffResult struct {
	Success bool         `json:"success"`
	Diff    TemplateDiff `json:"diff"`
	Summary DiffSummary  `json:"summary"`
}

// TemplateDiff holds the differences between two templates.
type TemplateDiff struct {
	Added    []DiffEntry `json:"added,omitempty"`
	Removed  []DiffEntry `json:"removed,omitempty"`
	Modified []DiffEntry `json:"modified,omitempty"`
}

// DiffEntry describes one added, removed, or modified resource.
type DiffEntry struct {
	Resource string   `json:"resource"`
	Type     string   `json:"type"`
	Changes  []string `json:"changes,omitempty"`
}

// DiffSummary counts the entries in a TemplateDiff.
type DiffSummary struct {
	Added    int `json:"added"`
	Removed  int `json:"removed"`
	Modified int `json:"modified"`
	Total    int `json:"total"`
}
