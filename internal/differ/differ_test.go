package differ

import (
	"testing"

	jenkinswire "github.com/jenkinswire/jenkinswire"
)

func TestCompare(t *testing.T) {
	t1 := &jenkinswire.Template{
		Resources: map[string]jenkinswire.ResourceDef{
			"CiCluster": {Type: "AWS::ECS::Cluster", Properties: map[string]any{"ClusterName": "ci"}},
			"CiLogs":    {Type: "AWS::Logs::LogGroup", Properties: map[string]any{"LogGroupName": "/ecs/ci"}},
		},
	}

	t2 := &jenkinswire.Template{
		Resources: map[string]jenkinswire.ResourceDef{
			"CiCluster": {Type: "AWS::ECS::Cluster", Properties: map[string]any{"ClusterName": "ci-renamed"}},
			"CiEfs":     {Type: "AWS::EFS::FileSystem", Properties: map[string]any{"Encrypted": true}},
		},
	}

	result, err := Compare(t1, t2, Options{})
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}

	// CiLogs was removed
	if len(result.Diff.Removed) != 1 {
		t.Errorf("Removed = %d, want 1", len(result.Diff.Removed))
	} else if result.Diff.Removed[0].Resource != "CiLogs" {
		t.Errorf("Removed[0].Resource = %s, want CiLogs", result.Diff.Removed[0].Resource)
	}

	// CiEfs was added
	if len(result.Diff.Added) != 1 {
		t.Errorf("Added = %d, want 1", len(result.Diff.Added))
	} else if result.Diff.Added[0].Resource != "CiEfs" {
		t.Errorf("Added[0].Resource = %s, want CiEfs", result.Diff.Added[0].Resource)
	}

	// CiCluster was modified
	if len(result.Diff.Modified) != 1 {
		t.Errorf("Modified = %d, want 1", len(result.Diff.Modified))
	} else if result.Diff.Modified[0].Resource != "CiCluster" {
		t.Errorf("Modified[0].Resource = %s, want CiCluster", result.Diff.Modified[0].Resource)
	}

	// Summary
	if result.Summary.Total != 3 {
		t.Errorf("Summary.Total = %d, want 3", result.Summary.Total)
	}
}

func TestCompareIdentical(t *testing.T) {
	template := &jenkinswire.Template{
		Resources: map[string]jenkinswire.ResourceDef{
			"CiCluster": {Type: "AWS::ECS::Cluster", Properties: map[string]any{"ClusterName": "ci"}},
		},
	}

	result, err := Compare(template, template, Options{})
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}

	if result.Summary.Total != 0 {
		t.Errorf("Summary.Total = %d, want 0 for identical templates", result.Summary.Total)
	}
}

func TestCompareEmpty(t *testing.T) {
	t1 := &jenkinswire.Template{Resources: map[string]jenkinswire.ResourceDef{}}
	t2 := &jenkinswire.Template{Resources: map[string]jenkinswire.ResourceDef{}}

	result, err := Compare(t1, t2, Options{})
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}

	if result.Summary.Total != 0 {
		t.Errorf("Summary.Total = %d, want 0", result.Summary.Total)
	}
}

func TestCompareTypeChange(t *testing.T) {
	t1 := &jenkinswire.Template{
		Resources: map[string]jenkinswire.ResourceDef{
			"Resource1": {Type: "AWS::EFS::FileSystem"},
		},
	}

	t2 := &jenkinswire.Template{
		Resources: map[string]jenkinswire.ResourceDef{
			"Resource1": {Type: "AWS::EFS::AccessPoint"},
		},
	}

	result, err := Compare(t1, t2, Options{})
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}

	if len(result.Diff.Modified) != 1 {
		t.Fatalf("Modified = %d, want 1", len(result.Diff.Modified))
	}

	found := false
	for _, change := range result.Diff.Modified[0].Changes {
		if change == "Type changed: AWS::EFS::FileSystem → AWS::EFS::AccessPoint" {
			found = true
			break
		}
	}
	if !found {
		t.Error("expected type change to be detected")
	}
}

func TestCompareDeletionPolicyChange(t *testing.T) {
	t1 := &jenkinswire.Template{
		Resources: map[string]jenkinswire.ResourceDef{
			"CiEfs": {Type: "AWS::EFS::FileSystem", DeletionPolicy: "Delete"},
		},
	}

	t2 := &jenkinswire.Template{
		Resources: map[string]jenkinswire.ResourceDef{
			"CiEfs": {Type: "AWS::EFS::FileSystem", DeletionPolicy: "Retain"},
		},
	}

	result, err := Compare(t1, t2, Options{})
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}

	if len(result.Diff.Modified) != 1 {
		t.Fatalf("Modified = %d, want 1", len(result.Diff.Modified))
	}

	found := false
	for _, change := range result.Diff.Modified[0].Changes {
		if change == `DeletionPolicy changed: "Delete" → "Retain"` {
			found = true
			break
		}
	}
	if !found {
		t.Error("expected deletion policy change to be detected")
	}
}

func TestCompareProperties(t *testing.T) {
	tests := []struct {
		name    string
		props1  map[string]any
		props2  map[string]any
		wantLen int
	}{
		{
			name:    "identical",
			props1:  map[string]any{"Key": "value"},
			props2:  map[string]any{"Key": "value"},
			wantLen: 0,
		},
		{
			name:    "added property",
			props1:  map[string]any{},
			props2:  map[string]any{"Key": "value"},
			wantLen: 1,
		},
		{
			name:    "removed property",
			props1:  map[string]any{"Key": "value"},
			props2:  map[string]any{},
			wantLen: 1,
		},
		{
			name:    "modified property",
			props1:  map[string]any{"Key": "value1"},
			props2:  map[string]any{"Key": "value2"},
			wantLen: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			changes := compareProperties("", tt.props1, tt.props2, Options{})
			if len(changes) != tt.wantLen {
				t.Errorf("compareProperties() returned %d changes, want %d", len(changes), tt.wantLen)
			}
		})
	}
}

func TestCompareIgnoreOrder(t *testing.T) {
	t1 := &jenkinswire.Template{
		Resources: map[string]jenkinswire.ResourceDef{
			"CiElbSg": {Type: "AWS::EC2::SecurityGroup", Properties: map[string]any{
				"SecurityGroupIngress": []any{
					map[string]any{"FromPort": 80, "CidrIp": "0.0.0.0/0"},
					map[string]any{"FromPort": 443, "CidrIp": "0.0.0.0/0"},
				},
			}},
		},
	}

	t2 := &jenkinswire.Template{
		Resources: map[string]jenkinswire.ResourceDef{
			"CiElbSg": {Type: "AWS::EC2::SecurityGroup", Properties: map[string]any{
				"SecurityGroupIngress": []any{
					map[string]any{"FromPort": 443, "CidrIp": "0.0.0.0/0"},
					map[string]any{"FromPort": 80, "CidrIp": "0.0.0.0/0"},
				},
			}},
		},
	}

	// Order-sensitive comparison sees a modification
	result, err := Compare(t1, t2, Options{})
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}
	if result.Summary.Total != 1 {
		t.Errorf("Summary.Total = %d, want 1 without IgnoreOrder", result.Summary.Total)
	}

	// With IgnoreOrder the reordered slice compares equal
	result, err = Compare(t1, t2, Options{IgnoreOrder: true})
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}
	if result.Summary.Total != 0 {
		t.Errorf("Summary.Total = %d, want 0 with IgnoreOrder", result.Summary.Total)
	}
}

func TestCompareIgnoreOrderStillSeesValueChange(t *testing.T) {
	t1 := &jenkinswire.Template{
		Resources: map[string]jenkinswire.ResourceDef{
			"CiTask": {Type: "AWS::ECS::TaskDefinition", Properties: map[string]any{
				"RequiresCompatibilities": []any{"FARGATE"},
			}},
		},
	}

	t2 := &jenkinswire.Template{
		Resources: map[string]jenkinswire.ResourceDef{
			"CiTask": {Type: "AWS::ECS::TaskDefinition", Properties: map[string]any{
				"RequiresCompatibilities": []any{"EC2"},
			}},
		},
	}

	result, err := Compare(t1, t2, Options{IgnoreOrder: true})
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}
	if result.Summary.Total != 1 {
		t.Errorf("Summary.Total = %d, want 1 for a genuine value change", result.Summary.Total)
	}
}

func TestParseTemplate(t *testing.T) {
	jsonData := []byte(`{"AWSTemplateFormatVersion":"2010-09-09","Resources":{"CiCluster":{"Type":"AWS::ECS::Cluster"}}}`)
	tmpl, err := ParseTemplate(jsonData)
	if err != nil {
		t.Fatalf("ParseTemplate(json) error = %v", err)
	}
	if tmpl.Resources["CiCluster"].Type != "AWS::ECS::Cluster" {
		t.Errorf("Type = %s, want AWS::ECS::Cluster", tmpl.Resources["CiCluster"].Type)
	}

	yamlData := []byte(`AWSTemplateFormatVersion: "2010-09-09"
Resources:
  CiCluster:
    Type: AWS::ECS::Cluster
`)
	tmpl, err = ParseTemplate(yamlData)
	if err != nil {
		t.Fatalf("ParseTemplate(yaml) error = %v", err)
	}
	if tmpl.Resources["CiCluster"].Type != "AWS::ECS::Cluster" {
		t.Errorf("Type = %s, want AWS::ECS::Cluster", tmpl.Resources["CiCluster"].Type)
	}
}

func TestEqualStringSlices(t *testing.T) {
	tests := []struct {
		a, b []string
		want bool
	}{
		{nil, nil, true},
		{[]string{}, []string{}, true},
		{[]string{"a", "b"}, []string{"a", "b"}, true},
		{[]string{"a"}, []string{"b"}, false},
		{[]string{"a"}, []string{"a", "b"}, false},
	}

	for _, tt := range tests {
		got := equalStringSlices(tt.a, tt.b)
		if got != tt.want {
			t.Errorf("equalStringSlices(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
