package layout

import (
	"strings"

	"github.com/vocamap/vocamap/pkg/ontology"
)

// ExtractStructuralEdges turns object property declarations into a
// deduplicated set of undirected class-to-class edges.
//
// Each property contributes the cross product of its domain classes with its
// range classes, both filtered to the known-class set. Pairs with
// domain == range (self-loops) are skipped. Two classes are connected by at
// most one structural edge: the canonical key is the two URIs sorted
// lexically, and the first property to produce a key wins. A property and its
// inverse therefore collapse into a single edge whose direction reflects
// whichever declaration was encountered first - an explicit tie-break, not
// true inverse resolution.
func ExtractStructuralEdges(props []ontology.ObjectProperty, known map[string]bool) []StructuralEdge {
	edges := make([]StructuralEdge, 0, len(props))
	seen := make(map[string]bool)

	for _, p := range props {
		for _, d := range p.Domain {
			if !known[d.URI] {
				continue
			}
			for _, r := range p.Range {
				if !known[r.URI] || r.URI == d.URI {
					continue
				}
				key := pairKey(d.URI, r.URI)
				if seen[key] {
					continue
				}
				seen[key] = true
				edges = append(edges, StructuralEdge{
					SourceURI:   d.URI,
					TargetURI:   r.URI,
					Label:       p.Label,
					PropertyURI: p.URI,
				})
			}
		}
	}

	return edges
}

// pairKey returns the canonical key for an unordered class pair:
// the two URIs sorted lexically and joined.
func pairKey(a, b string) string {
	if strings.Compare(a, b) > 0 {
		a, b = b, a
	}
	return a + "|" + b
}
