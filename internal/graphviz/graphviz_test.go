package graphviz

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jenkinswire/jenkinswire/topology"
)

func testGraph(t *testing.T) *topology.Graph {
	t.Helper()
	stack, err := topology.Assemble(topology.Config{AppName: "ci"})
	require.NoError(t, err)
	return stack.Graph
}

func TestGenerate_DOT(t *testing.T) {
	gen := &Generator{}

	output, err := gen.GenerateString(testGraph(t))
	require.NoError(t, err)

	assert.Contains(t, output, "digraph")
	assert.Contains(t, output, "ci-cluster")
	assert.Contains(t, output, "AWS::ECS::Cluster")
	assert.Contains(t, output, "ci-service")
	// Edges carry their kind as label
	assert.Contains(t, output, `label="reference"`)
	assert.Contains(t, output, `label="ordering"`)
}

func TestGenerate_Mermaid(t *testing.T) {
	gen := &Generator{Format: FormatMermaid}

	output, err := gen.GenerateString(testGraph(t))
	require.NoError(t, err)

	// Mermaid output, not DOT
	assert.NotContains(t, output, "digraph")
	assert.Contains(t, output, "graph")
	assert.Contains(t, output, "ci-cluster")
}

func TestGenerate_IncludeParameters(t *testing.T) {
	gen := &Generator{}
	without, err := gen.GenerateString(testGraph(t))
	require.NoError(t, err)
	assert.NotContains(t, without, "VpcId")

	gen = &Generator{IncludeParameters: true}
	with, err := gen.GenerateString(testGraph(t))
	require.NoError(t, err)
	assert.Contains(t, with, "VpcId")
	assert.Contains(t, with, "SubnetIdA")
}

func TestGenerate_ClusterByService(t *testing.T) {
	gen := &Generator{ClusterByService: true}

	output, err := gen.GenerateString(testGraph(t))
	require.NoError(t, err)

	// Multi-resource services are grouped into subgraph clusters
	assert.Contains(t, output, "cluster_ECS")
	assert.Contains(t, output, "cluster_EFS")
	assert.Contains(t, output, "cluster_EC2")
}

func TestGenerate_WritesToWriter(t *testing.T) {
	gen := &Generator{}

	var sb strings.Builder
	require.NoError(t, gen.Generate(testGraph(t), &sb))
	assert.NotEmpty(t, sb.String())
}

func TestExtractService(t *testing.T) {
	assert.Equal(t, "ECS", extractService("AWS::ECS::Cluster"))
	assert.Equal(t, "ElasticLoadBalancingV2", extractService("AWS::ElasticLoadBalancingV2::Listener"))
	assert.Equal(t, "Other", extractService("NotAType"))
}
