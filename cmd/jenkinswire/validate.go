package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	jenkinswire "github.com/jenkinswire/jenkinswire"
	"github.com/jenkinswire/jenkinswire/internal/schema"
	"github.com/jenkinswire/jenkinswire/internal/template"
	"github.com/jenkinswire/jenkinswire/internal/validation"
)

// newValidateCmd creates the "validate" subcommand for checking the rendered
// template.
func newValidateCmd() *cobra.Command {
	var (
		outputFormat string
		strict       bool
		skipLint     bool
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the rendered CloudFormation template",
		Long: `Validate assembles the topology, renders it, and checks the result.

Checks performed:
  - Offline schema validation: resource types, required properties, value sets
  - cfn-lint: the full linter rule set against the rendered template

Examples:
    jenkinswire validate --app-name ci
    jenkinswire validate --app-name ci --strict
    jenkinswire validate --app-name ci --skip-lint --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(outputFormat, strict, skipLint)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "Output format: text or json")
	cmd.Flags().BoolVar(&strict, "strict", false, "Treat schema warnings as errors")
	cmd.Flags().BoolVar(&skipLint, "skip-lint", false, "Skip the cfn-lint pass")

	return cmd
}

// runValidate renders the template and runs both validation passes.
func runValidate(format string, strict, skipLint bool) error {
	stack, err := assembleStack()
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	tmpl, err := template.Build(stack)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	validateResult := jenkinswire.ValidateResult{
		Success:   true,
		Resources: len(tmpl.Resources),
	}

	schemaResult, err := schema.ValidateTemplate(tmpl, schema.Options{Strict: strict})
	if err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	for _, e := range schemaResult.Errors {
		validateResult.Errors = append(validateResult.Errors, formatSchemaError(e))
	}
	for _, w := range schemaResult.Warnings {
		validateResult.Warnings = append(validateResult.Warnings, formatSchemaError(w))
	}

	if !skipLint {
		lintResult, err := validation.LintTemplate(tmpl)
		if err != nil {
			return fmt.Errorf("cfn-lint failed: %w", err)
		}
		validateResult.Errors = append(validateResult.Errors, lintResult.Errors...)
		validateResult.Warnings = append(validateResult.Warnings, lintResult.Warnings...)
	}

	validateResult.Success = len(validateResult.Errors) == 0

	return outputValidateResult(validateResult, format)
}

func formatSchemaError(e jenkinswire.SchemaError) string {
	if e.Property != "" {
		return fmt.Sprintf("%s.%s: %s", e.Resource, e.Property, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Resource, e.Message)
}

func outputValidateResult(result jenkinswire.ValidateResult, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))

	case "text":
		if result.Success {
			fmt.Printf("Validation passed: %d resources OK\n", result.Resources)
			for _, warnMsg := range result.Warnings {
				fmt.Printf("  WARNING: %s\n", warnMsg)
			}
			return nil
		}

		fmt.Println("Validation FAILED:")
		for _, errMsg := range result.Errors {
			fmt.Printf("  ERROR: %s\n", errMsg)
		}
		for _, warnMsg := range result.Warnings {
			fmt.Printf("  WARNING: %s\n", warnMsg)
		}

	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if !result.Success {
		os.Exit(1)
	}

	return nil
}
