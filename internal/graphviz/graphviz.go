// Package graphviz generates DOT and Mermaid format dependency graphs from an
// assembled topology.
package graphviz

import (
	"io"
	"strings"

	"github.com/emicklei/dot"

	"github.com/jenkinswire/jenkinswire/topology"
)

// Format specifies the output format for the graph.
type Format string

const (
	// FormatDOT outputs Graphviz DOT format.
	FormatDOT Format = "dot"
	// FormatMermaid outputs Mermaid format for GitHub/markdown rendering.
	FormatMermaid Format = "mermaid"
)

// Generator creates dependency graphs from a topology graph.
type Generator struct {
	// IncludeParameters includes template parameter nodes in the graph.
	IncludeParameters bool

	// Format specifies the output format (dot or mermaid). Defaults to dot.
	Format Format

	// ClusterByService groups resources by AWS service.
	ClusterByService bool
}

// Generate creates a dependency graph and writes it to w.
func (g *Generator) Generate(topo *topology.Graph, w io.Writer) error {
	graph := g.buildGraph(topo)

	format := g.Format
	if format == "" {
		format = FormatDOT
	}

	var output string
	if format == FormatMermaid {
		output = dot.MermaidGraph(graph, dot.MermaidTopToBottom)
	} else {
		output = graph.String()
	}

	_, err := w.Write([]byte(output))
	return err
}

// GenerateString is a convenience method that returns the graph as a string.
func (g *Generator) GenerateString(topo *topology.Graph) (string, error) {
	var sb strings.Builder
	if err := g.Generate(topo, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// buildGraph creates the dot.Graph structure from the topology graph.
func (g *Generator) buildGraph(topo *topology.Graph) *dot.Graph {
	graph := dot.NewGraph(dot.Directed)
	graph.Attr("rankdir", "TB")

	graph.NodeInitializer(func(n dot.Node) {
		n.Attr("shape", "box")
		n.Attr("fontname", "Arial")
	})

	graph.EdgeInitializer(func(e dot.Edge) {
		e.Attr("fontname", "Arial")
		e.Attr("fontsize", "10")
	})

	if g.ClusterByService {
		g.addClusteredNodes(graph, topo)
	} else {
		g.addNodes(graph, topo)
	}

	if g.IncludeParameters {
		for _, name := range topo.ParameterNames() {
			n := graph.Node(name)
			n.Attr("shape", "ellipse")
			n.Attr("style", "dashed")
			n.Label(name)
		}
	}

	for _, edge := range topo.Edges() {
		from := graph.Node(edge.From)
		to := graph.Node(edge.To)
		e := graph.Edge(from, to)

		// Style by edge kind
		switch edge.Kind {
		case topology.KindOrdering:
			e.Attr("style", "dashed")
		case topology.KindNetwork:
			e.Attr("color", "gray")
		case topology.KindAttachment:
			e.Attr("color", "blue")
		}
		e.Attr("label", string(edge.Kind))
	}

	return graph
}

// addNodes adds resource nodes without clustering.
func (g *Generator) addNodes(graph *dot.Graph, topo *topology.Graph) {
	for _, node := range topo.Nodes() {
		n := graph.Node(node.ID)
		n.Label(node.ID + "\\n[" + node.Resource.ResourceType() + "]")
	}
}

// addClusteredNodes adds resource nodes grouped by AWS service.
func (g *Generator) addClusteredNodes(graph *dot.Graph, topo *topology.Graph) {
	serviceNodes := make(map[string][]*topology.Node)
	var serviceOrder []string

	for _, node := range topo.Nodes() {
		service := extractService(node.Resource.ResourceType())
		if _, seen := serviceNodes[service]; !seen {
			serviceOrder = append(serviceOrder, service)
		}
		serviceNodes[service] = append(serviceNodes[service], node)
	}

	for _, service := range serviceOrder {
		nodes := serviceNodes[service]
		if len(nodes) > 1 {
			cluster := graph.Subgraph("cluster_"+service, dot.ClusterOption{})
			cluster.Attr("label", service)
			cluster.Attr("style", "rounded")
			cluster.Attr("bgcolor", "lightyellow")

			for _, node := range nodes {
				n := cluster.Node(node.ID)
				n.Label(node.ID + "\\n[" + node.Resource.ResourceType() + "]")
			}
		} else {
			for _, node := range nodes {
				n := graph.Node(node.ID)
				n.Label(node.ID + "\\n[" + node.Resource.ResourceType() + "]")
			}
		}
	}
}

// extractService extracts the AWS service name from a CloudFormation type.
// e.g., "AWS::ECS::Cluster" -> "ECS"
func extractService(cfType string) string {
	parts := strings.Split(cfType, "::")
	if len(parts) == 3 {
		return parts[1]
	}
	return "Other"
}
