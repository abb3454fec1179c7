package layout

import (
	"math"
	"testing"

	"github.com/vocamap/vocamap/pkg/ontology"
)

func schemeProp(id, label, domain, schemeID string) ontology.ProjectProperty {
	return ontology.ProjectProperty{
		ID:            id,
		Label:         label,
		DomainClass:   domain,
		RangeSchemeID: schemeID,
		Cardinality:   ontology.CardinalitySingle,
	}
}

func TestBuildFanAggregation(t *testing.T) {
	schemes := []ontology.Scheme{
		{ID: "s1", Title: "Topics"},
		{ID: "s2", Title: "Regions"},
	}
	props := []ontology.ProjectProperty{
		schemeProp("p1", "has topic", "inv", "s1"),
		schemeProp("p2", "main topic", "inv", "s1"),
		schemeProp("p3", "located in", "inv", "s2"),
		schemeProp("p4", "other domain", "fin", "s1"),
		{ID: "p5", Label: "title", DomainClass: "inv", RangeDatatype: "string"},
		schemeProp("p6", "dangling scheme", "inv", "missing"),
	}

	f := buildFan("inv", props, schemes, DefaultConfig())

	if len(f.items) != 2 {
		t.Fatalf("items = %d, want 2", len(f.items))
	}
	if len(f.nodes) != 2 {
		t.Fatalf("nodes = %d, want 2", len(f.nodes))
	}
	if len(f.cards) != 2 {
		t.Fatalf("cards = %d, want 2", len(f.cards))
	}

	// Two properties to the same scheme aggregate into one card with both
	// labels, in encounter order.
	card := f.cards[0]
	if card.SchemeID != "s1" {
		t.Fatalf("card scheme = %q, want s1", card.SchemeID)
	}
	if len(card.PropertyLabels) != 2 || card.PropertyLabels[0] != "has topic" || card.PropertyLabels[1] != "main topic" {
		t.Errorf("property labels = %v, want [has topic, main topic]", card.PropertyLabels)
	}
	if f.cards[1].SchemeID != "s2" {
		t.Errorf("second card scheme = %q, want s2", f.cards[1].SchemeID)
	}
}

func TestBuildFanEmpty(t *testing.T) {
	f := buildFan("inv", nil, nil, DefaultConfig())
	if len(f.nodes) != 0 || f.width != 0 || f.height != 0 {
		t.Errorf("empty fan should have no geometry, got %+v", f)
	}
}

func TestHexWidth(t *testing.T) {
	cfg := DefaultConfig()

	if got := cfg.hexWidth("ab"); got != cfg.HexMinWidth {
		t.Errorf("short label width = %v, want clamp to %v", got, cfg.HexMinWidth)
	}

	long := "a very long scheme title indeed"
	want := float64(len(long))*cfg.HexCharWidth + cfg.HexPadding
	if got := cfg.hexWidth(long); got != want {
		t.Errorf("long label width = %v, want %v", got, want)
	}
}

func TestFanGridPlacement(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GridMaxColumns = 4

	schemes := make([]ontology.Scheme, 0, 5)
	props := make([]ontology.ProjectProperty, 0, 5)
	for _, id := range []string{"s1", "s2", "s3", "s4", "s5"} {
		schemes = append(schemes, ontology.Scheme{ID: id, Title: id})
		props = append(props, schemeProp("p-"+id, "to "+id, "inv", id))
	}

	f := buildFan("inv", props, schemes, cfg)
	if len(f.nodes) != 5 {
		t.Fatalf("nodes = %d, want 5", len(f.nodes))
	}

	// First four share the top row, the fifth starts a second row.
	rowY := f.nodes[0].Y
	for i := 1; i < 4; i++ {
		if f.nodes[i].Y != rowY {
			t.Errorf("node %d not in first row: y = %v, want %v", i, f.nodes[i].Y, rowY)
		}
	}
	wantY := rowY + cfg.HexHeight + cfg.GridVSpacing
	if f.nodes[4].Y != wantY {
		t.Errorf("second row y = %v, want %v", f.nodes[4].Y, wantY)
	}

	// The shorter final row is centered, not left-aligned: the single
	// hexagon straddles x = 0.
	last := f.nodes[4]
	if center := last.X + last.Width/2; math.Abs(center) > 1e-9 {
		t.Errorf("final row not centered: center = %v", center)
	}

	// Each full row is centered as well.
	left, right := f.nodes[0].X, f.nodes[3].X+f.nodes[3].Width
	if math.Abs(left+right) > 1e-9 {
		t.Errorf("first row not centered: extents [%v, %v]", left, right)
	}

	if want := 2*cfg.HexHeight + cfg.GridVSpacing; f.height != want {
		t.Errorf("height = %v, want %v", f.height, want)
	}
}

func TestFanArcPlacement(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ArcThreshold = 10 // force the arc branch

	schemes := []ontology.Scheme{
		{ID: "s1", Title: "Topics"},
		{ID: "s2", Title: "Regions"},
		{ID: "s3", Title: "Funders"},
	}
	props := []ontology.ProjectProperty{
		schemeProp("p1", "a", "inv", "s1"),
		schemeProp("p2", "b", "inv", "s2"),
		schemeProp("p3", "c", "inv", "s3"),
	}

	f := buildFan("inv", props, schemes, cfg)
	if len(f.nodes) != 3 {
		t.Fatalf("nodes = %d, want 3", len(f.nodes))
	}

	// Adjacent hexagon centers must stay at least (wA+wB)/2 + gap apart.
	for i := 0; i < len(f.nodes)-1; i++ {
		a, b := f.nodes[i], f.nodes[i+1]
		ax, ay := a.X+a.Width/2, a.Y+a.Height/2
		bx, by := b.X+b.Width/2, b.Y+b.Height/2
		dist := math.Hypot(bx-ax, by-ay)
		need := (a.Width+b.Width)/2 + cfg.ArcGap
		if dist < need-1e-6 {
			t.Errorf("adjacent pair %d-%d too close: %v < %v", i, i+1, dist, need)
		}
	}

	// The middle item of an odd arc sits at the apex.
	if f.nodes[1].Y != 0 {
		t.Errorf("apex y = %v, want 0", f.nodes[1].Y)
	}

	// All hexagons stay inside the reported band.
	for i, n := range f.nodes {
		if n.Y < 0 || n.Y+n.Height > f.height+1e-9 {
			t.Errorf("node %d outside band: y = %v, height = %v, band = %v", i, n.Y, n.Height, f.height)
		}
	}
}

func TestFanArcSingleItem(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ArcThreshold = 10

	f := buildFan("inv",
		[]ontology.ProjectProperty{schemeProp("p1", "a", "inv", "s1")},
		[]ontology.Scheme{{ID: "s1", Title: "Topics"}},
		cfg)

	if len(f.nodes) != 1 {
		t.Fatalf("nodes = %d, want 1", len(f.nodes))
	}
	n := f.nodes[0]
	if center := n.X + n.Width/2; math.Abs(center) > 1e-9 {
		t.Errorf("single item not centered: center = %v", center)
	}
	if n.Y != 0 {
		t.Errorf("single item y = %v, want 0", n.Y)
	}
}
