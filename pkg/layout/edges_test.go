package layout

import (
	"testing"

	"github.com/vocamap/vocamap/pkg/ontology"
)

func classes(uris ...string) []ontology.Class {
	out := make([]ontology.Class, len(uris))
	for i, u := range uris {
		out[i] = ontology.Class{URI: u, Label: u}
	}
	return out
}

func knownSet(uris ...string) map[string]bool {
	set := make(map[string]bool, len(uris))
	for _, u := range uris {
		set[u] = true
	}
	return set
}

func prop(uri, label string, domain, rng []ontology.Class) ontology.ObjectProperty {
	return ontology.ObjectProperty{URI: uri, Label: label, Domain: domain, Range: rng}
}

func TestExtractStructuralEdges(t *testing.T) {
	tests := []struct {
		name  string
		props []ontology.ObjectProperty
		known map[string]bool
		want  []StructuralEdge
	}{
		{
			name: "Simple",
			props: []ontology.ObjectProperty{
				prop("p1", "has finding", classes("A"), classes("B")),
			},
			known: knownSet("A", "B"),
			want: []StructuralEdge{
				{SourceURI: "A", TargetURI: "B", Label: "has finding", PropertyURI: "p1"},
			},
		},
		{
			name: "InverseCollapsesFirstWins",
			props: []ontology.ObjectProperty{
				prop("p1", "has finding", classes("A"), classes("B")),
				prop("p2", "part of", classes("B"), classes("A")),
			},
			known: knownSet("A", "B"),
			want: []StructuralEdge{
				{SourceURI: "A", TargetURI: "B", Label: "has finding", PropertyURI: "p1"},
			},
		},
		{
			name: "InverseDeclaredFirstWins",
			props: []ontology.ObjectProperty{
				prop("p2", "part of", classes("B"), classes("A")),
				prop("p1", "has finding", classes("A"), classes("B")),
			},
			known: knownSet("A", "B"),
			want: []StructuralEdge{
				{SourceURI: "B", TargetURI: "A", Label: "part of", PropertyURI: "p2"},
			},
		},
		{
			name: "NoSelfLoops",
			props: []ontology.ObjectProperty{
				prop("p1", "relates", classes("A", "B"), classes("A")),
			},
			known: knownSet("A", "B"),
			want: []StructuralEdge{
				{SourceURI: "B", TargetURI: "A", Label: "relates", PropertyURI: "p1"},
			},
		},
		{
			name: "UnknownClassesFiltered",
			props: []ontology.ObjectProperty{
				prop("p1", "relates", classes("A"), classes("X")),
				prop("p2", "relates", classes("Y"), classes("B")),
			},
			known: knownSet("A", "B"),
			want:  []StructuralEdge{},
		},
		{
			name: "UnionDomainRangeCrossProduct",
			props: []ontology.ObjectProperty{
				prop("p1", "relates", classes("A", "B"), classes("C", "D")),
			},
			known: knownSet("A", "B", "C", "D"),
			want: []StructuralEdge{
				{SourceURI: "A", TargetURI: "C", Label: "relates", PropertyURI: "p1"},
				{SourceURI: "A", TargetURI: "D", Label: "relates", PropertyURI: "p1"},
				{SourceURI: "B", TargetURI: "C", Label: "relates", PropertyURI: "p1"},
				{SourceURI: "B", TargetURI: "D", Label: "relates", PropertyURI: "p1"},
			},
		},
		{
			name: "DuplicatePairAcrossPropertiesDeduped",
			props: []ontology.ObjectProperty{
				prop("p1", "relates", classes("A"), classes("B")),
				prop("p2", "also relates", classes("A"), classes("B")),
			},
			known: knownSet("A", "B"),
			want: []StructuralEdge{
				{SourceURI: "A", TargetURI: "B", Label: "relates", PropertyURI: "p1"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractStructuralEdges(tt.props, tt.known)
			if len(got) != len(tt.want) {
				t.Fatalf("edges = %d, want %d: %+v", len(got), len(tt.want), got)
			}
			for i, e := range got {
				if e != tt.want[i] {
					t.Errorf("edge[%d] = %+v, want %+v", i, e, tt.want[i])
				}
			}
		})
	}
}

func TestStructuralEdgeOther(t *testing.T) {
	e := StructuralEdge{SourceURI: "A", TargetURI: "B"}
	if got := e.Other("A"); got != "B" {
		t.Errorf("Other(A) = %q, want B", got)
	}
	if got := e.Other("B"); got != "A" {
		t.Errorf("Other(B) = %q, want A", got)
	}
	if got := e.Other("C"); got != "" {
		t.Errorf("Other(C) = %q, want empty", got)
	}
}
