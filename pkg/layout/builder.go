// Package layout computes deterministic 2-D relationship diagrams for a
// controlled-vocabulary data model: classes connected by object properties,
// plus project properties fanning out from the selected class to concept
// schemes.
//
// The engine is purely functional: Build allocates a fresh Record on every
// call, performs no I/O, and never fails - missing or unknown selections
// degrade to a record without selection-related nodes. Re-run Build whenever
// the selection, the ontology, or the project data changes; there is no
// incremental update path.
package layout

import "github.com/vocamap/vocamap/pkg/ontology"

// Input is the full read-only input of one layout pass.
type Input struct {
	SelectedClass     string
	Classes           []ontology.Class
	Properties        []ontology.ObjectProperty
	ProjectProperties []ontology.ProjectProperty
	Schemes           []ontology.Scheme
}

// FromSnapshot builds a layout input from a snapshot and a selected class.
func FromSnapshot(s ontology.Snapshot, selected string) Input {
	return Input{
		SelectedClass:     selected,
		Classes:           s.Classes,
		Properties:        s.Properties,
		ProjectProperties: s.ProjectProperties,
		Schemes:           s.Schemes,
	}
}

// Build computes one complete layout record.
//
// The pass runs leaves-first: structural edge extraction, hub selection, zone
// classification, fan geometry, then band-by-band positioning. Vertical bands
// stack top to bottom in fixed order - fan, selected, hub, spoke row,
// disconnected row - each band's height reserved from its content. The canvas
// height is the maximum node bottom plus padding; the width is the maximum of
// the row widths, the fan width, and a floor.
//
// Given identical inputs the output is identical: no randomness, no time
// dependency, no retained state between passes.
func Build(in Input, cfg Config) Record {
	known := make(map[string]bool, len(in.Classes))
	for _, c := range in.Classes {
		known[c.URI] = true
	}

	structural := ExtractStructuralEdges(in.Properties, known)
	hub, hasHub := FindHubClass(in.Classes, structural)

	selected := in.SelectedClass
	if !known[selected] {
		selected = ""
	}

	// The radial center is the hub when one exists; when the hub is the
	// selection itself the selection acts as the center and the hub zone
	// stays empty for this pass.
	center := hub
	hubDistinct := hasHub && hub != selected

	zones := classify(in.Classes, structural, selected, hub, hasHub, center)

	var f fan
	if selected != "" {
		f = buildFan(selected, in.ProjectProperties, in.Schemes, cfg)
	}

	var spokes, disconnected []ontology.Class
	for _, c := range in.Classes {
		switch zones[c.URI] {
		case ZoneSpoke:
			spokes = append(spokes, c)
		case ZoneDisconnected:
			disconnected = append(disconnected, c)
		}
	}

	width := canvasWidth(cfg, f.width, rowWidth(len(spokes), cfg), rowWidth(len(disconnected), cfg))
	centerX := width / 2

	rec := Record{FanCards: f.cards, Width: width}
	y := cfg.CanvasPadding

	// Fan band.
	if len(f.nodes) > 0 {
		for _, n := range f.nodes {
			n.X += centerX
			n.Y += y
			rec.Nodes = append(rec.Nodes, n)
		}
		y += f.height + cfg.BandGap
	}

	// Selected band.
	if selected != "" {
		c, _ := classByURI(in.Classes, selected)
		rec.Nodes = append(rec.Nodes, classNode(c, ZoneSelected, centerX-cfg.ClassWidth/2, y, cfg))
		y += cfg.ClassHeight + cfg.BandGap
	}

	// Hub band.
	if hubDistinct {
		c, _ := classByURI(in.Classes, hub)
		rec.Nodes = append(rec.Nodes, classNode(c, ZoneHub, centerX-cfg.ClassWidth/2, y, cfg))
		y += cfg.ClassHeight + cfg.BandGap
	}

	// Spoke row.
	if len(spokes) > 0 {
		placeRow(&rec, spokes, ZoneSpoke, centerX, y, cfg)
		y += cfg.ClassHeight + cfg.BandGap
	}

	// Disconnected row.
	if len(disconnected) > 0 {
		placeRow(&rec, disconnected, ZoneDisconnected, centerX, y, cfg)
		y += cfg.ClassHeight + cfg.BandGap
	}

	rec.Edges = buildEdges(&rec, structural, f, selected, center, zones, cfg)

	rec.Height = cfg.CanvasPadding
	for _, n := range rec.Nodes {
		if bottom := n.Y + n.Height; bottom+cfg.CanvasPadding > rec.Height {
			rec.Height = bottom + cfg.CanvasPadding
		}
	}

	return rec
}

// classify partitions every known class into exactly one zone. The partition
// precedence is selected, hub, spoke, disconnected.
func classify(classes []ontology.Class, edges []StructuralEdge, selected, hub string, hasHub bool, center string) map[string]string {
	neighbors := make(map[string]bool)
	if center != "" {
		for _, e := range edges {
			if other := e.Other(center); other != "" {
				neighbors[other] = true
			}
		}
	}

	zones := make(map[string]string, len(classes))
	for _, c := range classes {
		switch {
		case c.URI == selected && selected != "":
			zones[c.URI] = ZoneSelected
		case hasHub && c.URI == hub && hub != selected:
			zones[c.URI] = ZoneHub
		case neighbors[c.URI]:
			zones[c.URI] = ZoneSpoke
		default:
			zones[c.URI] = ZoneDisconnected
		}
	}
	return zones
}

// buildEdges produces the positioned edge list: structural edges between the
// placed classes (center-to-spoke connections downgraded to spoke kind),
// and one property edge per contributing project property in the fan.
// Edges sharing an endpoint pair receive symmetric parallel offsets.
func buildEdges(rec *Record, structural []StructuralEdge, f fan, selected, center string, zones map[string]string, cfg Config) []Edge {
	edges := make([]Edge, 0, len(structural))

	for _, s := range structural {
		kind := KindStructural
		if isSpokeEdge(s, center, zones) {
			kind = KindSpoke
		}
		edges = append(edges, Edge{
			ID:       pairKey(s.SourceURI, s.TargetURI),
			SourceID: s.SourceURI,
			TargetID: s.TargetURI,
			Label:    s.Label,
			Kind:     kind,
		})
	}

	if selected != "" {
		for _, it := range f.items {
			for _, p := range it.props {
				edges = append(edges, Edge{
					ID:          p.ID,
					SourceID:    selected,
					TargetID:    it.scheme.ID,
					Label:       p.Label,
					Kind:        KindProperty,
					Description: p.Description,
					Required:    p.Required,
					Cardinality: p.Cardinality,
				})
			}
		}
	}

	applyParallelOffsets(edges, cfg.ParallelOffsetStep)
	return edges
}

func isSpokeEdge(s StructuralEdge, center string, zones map[string]string) bool {
	if center == "" {
		return false
	}
	other := s.Other(center)
	return other != "" && zones[other] == ZoneSpoke
}

// applyParallelOffsets spreads edges that share the same unordered endpoint
// pair symmetrically around the direct path.
func applyParallelOffsets(edges []Edge, step float64) {
	groups := make(map[string][]int)
	for i, e := range edges {
		key := pairKey(e.SourceID, e.TargetID)
		groups[key] = append(groups[key], i)
	}
	for _, idx := range groups {
		if len(idx) < 2 {
			continue
		}
		mid := float64(len(idx)-1) / 2
		for pos, i := range idx {
			edges[i].ParallelOffset = (float64(pos) - mid) * step
		}
	}
}

func classByURI(classes []ontology.Class, uri string) (ontology.Class, bool) {
	for _, c := range classes {
		if c.URI == uri {
			return c, true
		}
	}
	return ontology.Class{}, false
}

func classNode(c ontology.Class, zone string, x, y float64, cfg Config) Node {
	return Node{
		ID:      c.URI,
		Label:   c.DisplayLabel(),
		Type:    TypeClass,
		Zone:    zone,
		Shape:   ShapeRect,
		X:       x,
		Y:       y,
		Width:   cfg.ClassWidth,
		Height:  cfg.ClassHeight,
		Comment: c.Comment,
	}
}

// placeRow lays classes out left to right at the given y, horizontally
// centered as a group around centerX.
func placeRow(rec *Record, classes []ontology.Class, zone string, centerX, y float64, cfg Config) {
	total := rowWidth(len(classes), cfg)
	x := centerX - total/2
	for _, c := range classes {
		rec.Nodes = append(rec.Nodes, classNode(c, zone, x, y, cfg))
		x += cfg.ClassWidth + cfg.RowSpacing
	}
}

func rowWidth(n int, cfg Config) float64 {
	if n == 0 {
		return 0
	}
	return float64(n)*cfg.ClassWidth + float64(n-1)*cfg.RowSpacing
}

func canvasWidth(cfg Config, widths ...float64) float64 {
	w := cfg.MinCanvasWidth
	for _, candidate := range widths {
		if candidate+2*cfg.CanvasPadding > w {
			w = candidate + 2*cfg.CanvasPadding
		}
	}
	return w
}
