// Package template renders an assembled topology graph into a CloudFormation
// template.
package template

import (
	"encoding/json"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	jenkinswire "github.com/jenkinswire/jenkinswire"
	"github.com/jenkinswire/jenkinswire/internal/serialize"
	"github.com/jenkinswire/jenkinswire/topology"
)

// Build renders the stack's graph into a CloudFormation template.
//
// Nodes are walked in topological order. Only ordering edges become explicit
// DependsOn entries: reference ordering is the provisioning engine's own job,
// and network/attachment edges are realized as property references already.
func Build(stack *topology.Stack) (*jenkinswire.Template, error) {
	g := stack.Graph

	order, err := g.TopologicalOrder()
	if err != nil {
		return nil, err
	}

	tmpl := &jenkinswire.Template{
		AWSTemplateFormatVersion: "2010-09-09",
		Description:              stack.Description(),
		Resources:                make(map[string]jenkinswire.ResourceDef),
	}

	if names := g.ParameterNames(); len(names) > 0 {
		tmpl.Parameters = make(map[string]jenkinswire.Parameter, len(names))
		for _, name := range names {
			p, _ := g.Parameter(name)
			tmpl.Parameters[name] = p
		}
	}

	for _, id := range order {
		node, ok := g.Node(id)
		if !ok {
			return nil, fmt.Errorf("unknown node in order: %s", id)
		}

		props, err := serialize.Resource(node.Resource)
		if err != nil {
			return nil, fmt.Errorf("serializing %s: %w", id, err)
		}

		def := jenkinswire.ResourceDef{
			Type:           node.Resource.ResourceType(),
			Properties:     props,
			DeletionPolicy: node.DeletionPolicy,
		}

		if deps := g.DependenciesOfKind(id, topology.KindOrdering); len(deps) > 0 {
			dependsOn := make([]string, 0, len(deps))
			for _, dep := range deps {
				depNode, ok := g.Node(dep)
				if !ok {
					return nil, fmt.Errorf("%s depends on unknown node: %s", id, dep)
				}
				dependsOn = append(dependsOn, depNode.LogicalID)
			}
			sort.Strings(dependsOn)
			def.DependsOn = dependsOn
		}

		tmpl.Resources[node.LogicalID] = def
	}

	if names := g.OutputNames(); len(names) > 0 {
		tmpl.Outputs = make(map[string]jenkinswire.Output, len(names))
		for _, name := range names {
			o, _ := g.Output(name)
			value, err := normalize(o.Value)
			if err != nil {
				return nil, fmt.Errorf("serializing output %s: %w", name, err)
			}
			o.Value = value
			tmpl.Outputs[name] = o
		}
	}

	return tmpl, nil
}

// normalize converts intrinsic values to their plain JSON form so both the
// JSON and YAML encoders render them identically.
func normalize(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var result any
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// ToJSON serializes the template to indented JSON.
func ToJSON(t *jenkinswire.Template) ([]byte, error) {
	return json.MarshalIndent(t, "", "  ")
}

// ToYAML serializes the template to YAML.
func ToYAML(t *jenkinswire.Template) ([]byte, error) {
	return yaml.Marshal(t)
}
