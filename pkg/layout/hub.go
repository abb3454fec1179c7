package layout

import "github.com/vocamap/vocamap/pkg/ontology"

// FindHubClass picks the class that anchors the layout.
//
// A class labeled HubLabel wins immediately - the preference is fixed, not
// configurable. Otherwise the class touching the most structural edges wins;
// ties resolve to the earliest class in input order. Returns ("", false) for
// an empty class list.
func FindHubClass(classes []ontology.Class, edges []StructuralEdge) (string, bool) {
	if len(classes) == 0 {
		return "", false
	}

	for _, c := range classes {
		if c.Label == HubLabel {
			return c.URI, true
		}
	}

	degree := make(map[string]int, len(classes))
	for _, e := range edges {
		degree[e.SourceURI]++
		degree[e.TargetURI]++
	}

	best := classes[0].URI
	bestDegree := degree[best]
	for _, c := range classes[1:] {
		if degree[c.URI] > bestDegree {
			best = c.URI
			bestDegree = degree[c.URI]
		}
	}
	return best, true
}
