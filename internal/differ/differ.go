// Package differ provides semantic comparison of CloudFormation templates.
//
// The diff command compares a freshly assembled template against a saved
// template file or against the template CloudFormation currently holds for
// the deployed stack.
package differ

import (
	"encoding/json"
	"fmt"
	"os"
	"reflect"
	"sort"

	"gopkg.in/yaml.v3"

	jenkinswire "github.com/jenkinswire/jenkinswire"
)

// Options configures the differ.
type Options struct {
	// IgnoreOrder ignores array element order in comparisons
	IgnoreOrder bool
}

// Result contains the difference between two templates.
type Result struct {
	Diff    jenkinswire.TemplateDiff
	Summary jenkinswire.DiffSummary
}

// Compare compares two CloudFormation templates and returns differences.
// template1 is the old state, template2 the new.
func Compare(template1, template2 *jenkinswire.Template, opts Options) (*Result, error) {
	result := &Result{}

	res1 := template1.Resources
	res2 := template2.Resources

	// Added resources (in template2 but not in template1)
	for name, def := range res2 {
		if _, exists := res1[name]; !exists {
			result.Diff.Added = append(result.Diff.Added, jenkinswire.DiffEntry{
				Resource: name,
				Type:     def.Type,
			})
		}
	}

	// Removed resources (in template1 but not in template2)
	for name, def := range res1 {
		if _, exists := res2[name]; !exists {
			result.Diff.Removed = append(result.Diff.Removed, jenkinswire.DiffEntry{
				Resource: name,
				Type:     def.Type,
			})
		}
	}

	// Modified resources
	for name, def1 := range res1 {
		if def2, exists := res2[name]; exists {
			changes := compareResources(def1, def2, opts)
			if len(changes) > 0 {
				result.Diff.Modified = append(result.Diff.Modified, jenkinswire.DiffEntry{
					Resource: name,
					Type:     def1.Type,
					Changes:  changes,
				})
			}
		}
	}

	sortEntries(result.Diff.Added)
	sortEntries(result.Diff.Removed)
	sortEntries(result.Diff.Modified)

	result.Summary = jenkinswire.DiffSummary{
		Added:    len(result.Diff.Added),
		Removed:  len(result.Diff.Removed),
		Modified: len(result.Diff.Modified),
	}
	result.Summary.Total = result.Summary.Added + result.Summary.Removed + result.Summary.Modified

	return result, nil
}

// CompareFiles compares two template files.
func CompareFiles(file1, file2 string, opts Options) (*Result, error) {
	t1, err := LoadTemplate(file1)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", file1, err)
	}

	t2, err := LoadTemplate(file2)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", file2, err)
	}

	return Compare(t1, t2, opts)
}

// LoadTemplate loads a CloudFormation template from a file.
func LoadTemplate(path string) (*jenkinswire.Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseTemplate(data)
}

// ParseTemplate parses a CloudFormation template from JSON or YAML bytes.
func ParseTemplate(data []byte) (*jenkinswire.Template, error) {
	var template jenkinswire.Template

	// Try JSON first
	if err := json.Unmarshal(data, &template); err != nil {
		// Try YAML
		if err := yaml.Unmarshal(data, &template); err != nil {
			return nil, fmt.Errorf("failed to parse as JSON or YAML: %w", err)
		}
	}

	return &template, nil
}

// compareResources compares two resource definitions and returns changes.
func compareResources(def1, def2 jenkinswire.ResourceDef, opts Options) []string {
	var changes []string

	if def1.Type != def2.Type {
		changes = append(changes, fmt.Sprintf("Type changed: %s → %s", def1.Type, def2.Type))
	}

	if def1.DeletionPolicy != def2.DeletionPolicy {
		changes = append(changes, fmt.Sprintf("DeletionPolicy changed: %q → %q", def1.DeletionPolicy, def2.DeletionPolicy))
	}

	propChanges := compareProperties("", def1.Properties, def2.Properties, opts)
	changes = append(changes, propChanges...)

	if !equalStringSlices(def1.DependsOn, def2.DependsOn) {
		changes = append(changes, "DependsOn changed")
	}

	return changes
}

// compareProperties recursively compares property maps.
func compareProperties(prefix string, props1, props2 map[string]any, opts Options) []string {
	var changes []string

	// Added/modified properties
	for key, val2 := range props2 {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}

		if val1, exists := props1[key]; exists {
			if !deepEqual(val1, val2, opts) {
				changes = append(changes, fmt.Sprintf("%s modified", path))
			}
		} else {
			changes = append(changes, fmt.Sprintf("%s added", path))
		}
	}

	// Removed properties
	for key := range props1 {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}

		if _, exists := props2[key]; !exists {
			changes = append(changes, fmt.Sprintf("%s removed", path))
		}
	}

	sort.Strings(changes)
	return changes
}

// deepEqual compares two values deeply, optionally ignoring order.
func deepEqual(a, b any, opts Options) bool {
	if opts.IgnoreOrder {
		a = normalizeValue(a)
		b = normalizeValue(b)
	}
	return reflect.DeepEqual(a, b)
}

// normalizeValue normalizes a value for order-insensitive comparison: slice
// elements are normalized recursively, then sorted by their printed form.
func normalizeValue(v any) any {
	switch val := v.(type) {
	case []any:
		result := make([]any, len(val))
		for i, item := range val {
			result[i] = normalizeValue(item)
		}
		sort.Slice(result, func(i, j int) bool {
			return fmt.Sprint(result[i]) < fmt.Sprint(result[j])
		})
		return result
	case map[string]any:
		result := make(map[string]any)
		for k, v := range val {
			result[k] = normalizeValue(v)
		}
		return result
	default:
		return v
	}
}

// equalStringSlices compares two string slices for equality.
func equalStringSlices(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// sortEntries sorts diff entries by resource name.
func sortEntries(entries []jenkinswire.DiffEntry) {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Resource < entries[j].Resource
	})
}
