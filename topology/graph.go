package topology

import (
	"errors"
	"fmt"
	"strings"

	jenkinswire "github.com/jenkinswire/jenkinswire"
	"github.com/jenkinswire/jenkinswire/internal/serialize"
)

// EdgeKind classifies a dependency edge between two topology nodes.
type EdgeKind string

const (
	// KindReference is a dependency realized as a property reference
	// (Ref or Fn::GetAtt) in the rendered template.
	KindReference EdgeKind = "reference"

	// KindNetwork is a shared virtual-network association: the node uses
	// the network owned by its dependency without referencing it directly.
	KindNetwork EdgeKind = "network"

	// KindAttachment is a construct-level attachment realized by the
	// reverse property reference: the target group "depends on" the
	// listener and service even though the rendered references point the
	// other way.
	KindAttachment EdgeKind = "attachment"

	// KindOrdering is an explicit creation-order constraint, rendered as
	// DependsOn in the template.
	KindOrdering EdgeKind = "ordering"
)

// Node is a single typed resource in the topology graph.
type Node struct {
	// ID is the topology identifier, e.g. "ci-cluster".
	ID string
	// LogicalID is the CloudFormation logical ID derived from ID, e.g. "CiCluster".
	LogicalID string
	// Resource is the typed resource struct.
	Resource jenkinswire.Resource
	// DeletionPolicy, when set, is carried verbatim into the rendered template.
	DeletionPolicy string
}

// Edge is a typed dependency edge. From depends on To.
type Edge struct {
	From string
	To   string
	Kind EdgeKind
}

// Graph is an explicit directed acyclic graph of typed resource nodes.
// Insertion order is preserved and used to break ties in TopologicalOrder,
// so assembly order is reproduced wherever dependencies allow it.
type Graph struct {
	nodes       map[string]*Node
	nodeOrder   []string
	edges       []Edge
	parameters  map[string]jenkinswire.Parameter
	paramOrder  []string
	outputs     map[string]jenkinswire.Output
	outputOrder []string
}

// NewGraph creates an empty topology graph.
func NewGraph() *Graph {
	return &Graph{
		nodes:      make(map[string]*Node),
		parameters: make(map[string]jenkinswire.Parameter),
		outputs:    make(map[string]jenkinswire.Output),
	}
}

// AddResource adds a typed resource node under the given topology identifier.
func (g *Graph) AddResource(id string, res jenkinswire.Resource) (*Node, error) {
	if id == "" {
		return nil, errors.New("resource id must not be empty")
	}
	if _, exists := g.nodes[id]; exists {
		return nil, fmt.Errorf("duplicate resource id: %s", id)
	}
	node := &Node{
		ID:        id,
		LogicalID: serialize.LogicalID(id),
		Resource:  res,
	}
	g.nodes[id] = node
	g.nodeOrder = append(g.nodeOrder, id)
	return node, nil
}

// AddParameter adds a template parameter to the graph.
func (g *Graph) AddParameter(name string, p jenkinswire.Parameter) error {
	if _, exists := g.parameters[name]; exists {
		return fmt.Errorf("duplicate parameter: %s", name)
	}
	g.parameters[name] = p
	g.paramOrder = append(g.paramOrder, name)
	return nil
}

// AddOutput adds a template output to the graph.
func (g *Graph) AddOutput(name string, o jenkinswire.Output) error {
	if _, exists := g.outputs[name]; exists {
		return fmt.Errorf("duplicate output: %s", name)
	}
	g.outputs[name] = o
	g.outputOrder = append(g.outputOrder, name)
	return nil
}

// Connect records that from depends on to, with the given edge kind.
// Both nodes must already exist in the graph.
func (g *Graph) Connect(from, to *Node, kind EdgeKind) error {
	if from == nil || to == nil {
		return errors.New("connect requires two existing nodes")
	}
	if _, ok := g.nodes[from.ID]; !ok {
		return fmt.Errorf("unknown node: %s", from.ID)
	}
	if _, ok := g.nodes[to.ID]; !ok {
		return fmt.Errorf("unknown node: %s", to.ID)
	}
	g.edges = append(g.edges, Edge{From: from.ID, To: to.ID, Kind: kind})
	return nil
}

// Node returns the node with the given topology identifier.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Nodes returns all nodes in insertion order.
func (g *Graph) Nodes() []*Node {
	result := make([]*Node, 0, len(g.nodeOrder))
	for _, id := range g.nodeOrder {
		result = append(result, g.nodes[id])
	}
	return result
}

// Edges returns all dependency edges.
func (g *Graph) Edges() []Edge {
	return g.edges
}

// Dependencies returns the identifiers the given node depends on, in edge
// insertion order.
func (g *Graph) Dependencies(id string) []string {
	var deps []string
	for _, e := range g.edges {
		if e.From == id {
			deps = append(deps, e.To)
		}
	}
	return deps
}

// DependenciesOfKind returns the identifiers the given node depends on
// through edges of the given kind.
func (g *Graph) DependenciesOfKind(id string, kind EdgeKind) []string {
	var deps []string
	for _, e := range g.edges {
		if e.From == id && e.Kind == kind {
			deps = append(deps, e.To)
		}
	}
	return deps
}

// ParameterNames returns parameter names in insertion order.
func (g *Graph) ParameterNames() []string {
	return g.paramOrder
}

// Parameter returns the parameter with the given name.
func (g *Graph) Parameter(name string) (jenkinswire.Parameter, bool) {
	p, ok := g.parameters[name]
	return p, ok
}

// OutputNames returns output names in insertion order.
func (g *Graph) OutputNames() []string {
	return g.outputOrder
}

// Output returns the output with the given name.
func (g *Graph) Output(name string) (jenkinswire.Output, bool) {
	o, ok := g.outputs[name]
	return o, ok
}

// TopologicalOrder returns node identifiers with every node after all of its
// dependencies. Ties are broken by insertion order, so the rendered template
// walks resources in assembly order wherever the edges allow it.
func (g *Graph) TopologicalOrder() ([]string, error) {
	// Kahn's algorithm over the dependency edges
	inDegree := make(map[string]int, len(g.nodes))
	dependents := make(map[string][]string, len(g.nodes))
	for _, id := range g.nodeOrder {
		inDegree[id] = 0
	}
	for _, e := range g.edges {
		dependents[e.To] = append(dependents[e.To], e.From)
		inDegree[e.From]++
	}

	position := make(map[string]int, len(g.nodeOrder))
	for i, id := range g.nodeOrder {
		position[id] = i
	}

	var ready []string
	for _, id := range g.nodeOrder {
		if inDegree[id] == 0 {
			ready = append(ready, id)
		}
	}

	var result []string
	for len(ready) > 0 {
		// Pick the earliest-inserted ready node
		best := 0
		for i := 1; i < len(ready); i++ {
			if position[ready[i]] < position[ready[best]] {
				best = i
			}
		}
		node := ready[best]
		ready = append(ready[:best], ready[best+1:]...)
		result = append(result, node)

		for _, dep := range dependents[node] {
			inDegree[dep]--
			if inDegree[dep] == 0 {
				ready = append(ready, dep)
			}
		}
	}

	if len(result) != len(g.nodes) {
		return nil, g.detectCycle()
	}

	return result, nil
}

// detectCycle finds and reports a cycle in the dependency edges.
func (g *Graph) detectCycle() error {
	visited := make(map[string]bool)
	path := make(map[string]bool)

	var cycle []string
	var findCycle func(node string) bool
	findCycle = func(node string) bool {
		visited[node] = true
		path[node] = true

		for _, dep := range g.Dependencies(node) {
			if !visited[dep] {
				if findCycle(dep) {
					cycle = append([]string{node}, cycle...)
					return true
				}
			} else if path[dep] {
				cycle = append([]string{dep, node}, cycle...)
				return true
			}
		}

		path[node] = false
		return false
	}

	for _, id := range g.nodeOrder {
		if !visited[id] {
			if findCycle(id) {
				break
			}
		}
	}

	if len(cycle) > 0 {
		return fmt.Errorf("circular dependency detected: %s", strings.Join(cycle, " → "))
	}
	return errors.New("circular dependency detected")
}
