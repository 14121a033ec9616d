// Package schema provides offline CloudFormation schema validation.
// It validates the rendered template against hand-kept schemas for exactly
// the resource types the Jenkins topology uses.
package schema

import (
	"fmt"
	"strings"

	jenkinswire "github.com/jenkinswire/jenkinswire"
)

// Options configures schema validation.
type Options struct {
	// Strict enables strict validation mode
	Strict bool
}

// Result contains schema validation results.
type Result struct {
	Valid    bool
	Errors   []jenkinswire.SchemaError
	Warnings []jenkinswire.SchemaError
}

// ValidateTemplate validates a CloudFormation template against known schemas.
func ValidateTemplate(template *jenkinswire.Template, opts Options) (*Result, error) {
	result := &Result{Valid: true}

	for name, resource := range template.Resources {
		errors, warnings := validateResource(name, resource, opts)
		result.Errors = append(result.Errors, errors...)
		result.Warnings = append(result.Warnings, warnings...)
	}

	if len(result.Errors) > 0 {
		result.Valid = false
	}

	return result, nil
}

// validateResource validates a single resource.
func validateResource(name string, resource jenkinswire.ResourceDef, opts Options) ([]jenkinswire.SchemaError, []jenkinswire.SchemaError) {
	var errors, warnings []jenkinswire.SchemaError

	if !isValidResourceType(resource.Type) {
		errors = append(errors, jenkinswire.SchemaError{
			Resource: name,
			Property: "Type",
			Message:  fmt.Sprintf("invalid resource type format: %s", resource.Type),
		})
	}

	if resource.DeletionPolicy != "" {
		switch resource.DeletionPolicy {
		case "Delete", "Retain", "Snapshot":
		default:
			errors = append(errors, jenkinswire.SchemaError{
				Resource: name,
				Property: "DeletionPolicy",
				Message:  fmt.Sprintf("invalid deletion policy: %s", resource.DeletionPolicy),
			})
		}
	}

	schema, ok := resourceSchemas[resource.Type]
	if !ok {
		// The topology only renders known types; anything else is a defect
		// in the assembler, not a new CloudFormation type.
		errors = append(errors, jenkinswire.SchemaError{
			Resource: name,
			Property: "Type",
			Message:  fmt.Sprintf("unknown resource type: %s", resource.Type),
		})
		return errors, warnings
	}

	for _, required := range schema.Required {
		if _, exists := resource.Properties[required]; !exists {
			errors = append(errors, jenkinswire.SchemaError{
				Resource: name,
				Property: required,
				Message:  fmt.Sprintf("missing required property: %s", required),
			})
		}
	}

	for propName, propValue := range resource.Properties {
		propSchema, ok := schema.Properties[propName]
		if !ok {
			if opts.Strict {
				warnings = append(warnings, jenkinswire.SchemaError{
					Resource: name,
					Property: propName,
					Message:  fmt.Sprintf("unknown property: %s", propName),
				})
			}
			continue
		}

		propErrors := validateProperty(name, propName, propValue, propSchema)
		errors = append(errors, propErrors...)
	}

	return errors, warnings
}

// isValidResourceType checks if a resource type has valid format.
func isValidResourceType(resourceType string) bool {
	parts := strings.Split(resourceType, "::")
	if len(parts) != 3 {
		return false
	}
	return parts[0] == "AWS"
}

// validateProperty validates a property value against its schema.
func validateProperty(resource, property string, value any, schema PropertySchema) []jenkinswire.SchemaError {
	var errors []jenkinswire.SchemaError

	if !isValidType(value, schema.Type) {
		errors = append(errors, jenkinswire.SchemaError{
			Resource: resource,
			Property: property,
			Message:  fmt.Sprintf("expected type %s", schema.Type),
		})
	}

	if len(schema.AllowedValues) > 0 {
		strVal, ok := value.(string)
		if ok {
			found := false
			for _, allowed := range schema.AllowedValues {
				if strVal == allowed {
					found = true
					break
				}
			}
			if !found {
				errors = append(errors, jenkinswire.SchemaError{
					Resource: resource,
					Property: property,
					Message:  fmt.Sprintf("value %q not in allowed values: %v", strVal, schema.AllowedValues),
				})
			}
		}
	}

	return errors
}

// isValidType checks if a value matches the expected type.
func isValidType(value any, expectedType string) bool {
	// Intrinsic functions are always valid
	if m, ok := value.(map[string]any); ok {
		for key := range m {
			if strings.HasPrefix(key, "Fn::") || key == "Ref" {
				return true
			}
		}
	}

	switch expectedType {
	case "String":
		_, ok := value.(string)
		return ok
	case "Integer":
		switch value.(type) {
		case int, int32, int64, float64:
			return true
		}
		return false
	case "Boolean":
		_, ok := value.(bool)
		return ok
	case "List":
		_, ok := value.([]any)
		return ok
	case "Map":
		_, ok := value.(map[string]any)
		return ok
	case "Json":
		return true
	default:
		return true
	}
}

// ResourceSchema defines the schema for a resource type.
type ResourceSchema struct {
	Type       string
	Required   []string
	Properties map[string]PropertySchema
}

// PropertySchema defines the schema for a property.
type PropertySchema struct {
	Type          string
	Required      bool
	AllowedValues []string
}
