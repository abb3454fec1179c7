package layout

import (
	"testing"

	"github.com/vocamap/vocamap/pkg/ontology"
)

func TestFindHubClass(t *testing.T) {
	tests := []struct {
		name    string
		classes []ontology.Class
		edges   []StructuralEdge
		want    string
		wantOK  bool
	}{
		{
			name:   "Empty",
			want:   "",
			wantOK: false,
		},
		{
			name: "ReservedLabelWinsOverTopology",
			classes: []ontology.Class{
				{URI: "inv", Label: "Investigation"},
				{URI: "fin", Label: HubLabel},
				{URI: "ctx", Label: "Context"},
			},
			edges: []StructuralEdge{
				// Investigation has the highest degree, but the reserved
				// label still wins.
				{SourceURI: "inv", TargetURI: "ctx"},
				{SourceURI: "inv", TargetURI: "fin"},
			},
			want:   "fin",
			wantOK: true,
		},
		{
			name: "HighestDegreeFallback",
			classes: []ontology.Class{
				{URI: "a", Label: "A"},
				{URI: "b", Label: "B"},
				{URI: "c", Label: "C"},
			},
			edges: []StructuralEdge{
				{SourceURI: "a", TargetURI: "b"},
				{SourceURI: "b", TargetURI: "c"},
			},
			want:   "b",
			wantOK: true,
		},
		{
			name: "TieResolvesToInputOrder",
			classes: []ontology.Class{
				{URI: "a", Label: "A"},
				{URI: "b", Label: "B"},
			},
			edges: []StructuralEdge{
				{SourceURI: "a", TargetURI: "b"},
			},
			want:   "a",
			wantOK: true,
		},
		{
			name: "NoEdgesFirstClassWins",
			classes: []ontology.Class{
				{URI: "x", Label: "X"},
				{URI: "y", Label: "Y"},
			},
			want:   "x",
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FindHubClass(tt.classes, tt.edges)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("hub = %q, want %q", got, tt.want)
			}
		})
	}
}
