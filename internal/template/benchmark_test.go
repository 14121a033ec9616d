package template

import (
	"testing"

	"github.com/jenkinswire/jenkinswire/topology"
)

func BenchmarkBuild(b *testing.B) {
	stack, err := topology.Assemble(topology.Config{AppName: "ci"})
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Build(stack); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkAssembleAndBuild(b *testing.B) {
	for i := 0; i < b.N; i++ {
		stack, err := topology.Assemble(topology.Config{AppName: "ci"})
		if err != nil {
			b.Fatal(err)
		}
		if _, err := Build(stack); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkToJSON(b *testing.B) {
	stack, err := topology.Assemble(topology.Config{AppName: "ci"})
	if err != nil {
		b.Fatal(err)
	}
	tmpl, err := Build(stack)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := ToJSON(tmpl); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkToYAML(b *testing.B) {
	stack, err := topology.Assemble(topology.Config{AppName: "ci"})
	if err != nil {
		b.Fatal(err)
	}
	tmpl, err := Build(stack)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := ToYAML(tmpl); err != nil {
			b.Fatal(err)
		}
	}
}
