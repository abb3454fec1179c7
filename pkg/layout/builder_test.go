package layout

import (
	"math"
	"reflect"
	"testing"

	"github.com/vocamap/vocamap/pkg/ontology"
)

// researchModel builds the canonical test ontology: an investigation model
// where Finding is the natural hub and two classes float free.
func researchModel() ontology.Snapshot {
	return ontology.Snapshot{
		Classes: []ontology.Class{
			{URI: "inv", Label: "Investigation"},
			{URI: "fin", Label: "Finding"},
			{URI: "int", Label: "Intervention"},
			{URI: "out", Label: "Outcome"},
			{URI: "ctx", Label: "Context"},
			{URI: "fun", Label: "Funder"},
			{URI: "imp", Label: "Implementer"},
		},
		Properties: []ontology.ObjectProperty{
			prop("hasFinding", "has finding", classes("inv"), classes("fin")),
			prop("partOfInvestigation", "part of investigation", classes("fin"), classes("inv")),
			prop("hasIntervention", "has intervention", classes("fin"), classes("int")),
			prop("hasOutcome", "has outcome", classes("fin"), classes("out")),
			prop("inContext", "in context", classes("fin"), classes("ctx")),
		},
		ProjectProperties: []ontology.ProjectProperty{
			schemeProp("pp1", "has topic", "inv", "topics"),
			schemeProp("pp2", "main topic", "inv", "topics"),
			schemeProp("pp3", "located in", "inv", "regions"),
		},
		Schemes: []ontology.Scheme{
			{ID: "topics", Title: "Topics"},
			{ID: "regions", Title: "Regions"},
		},
	}
}

func zoneOf(t *testing.T, r Record, id string) string {
	t.Helper()
	n, ok := r.Node(id)
	if !ok {
		t.Fatalf("node %q not in layout", id)
	}
	return n.Zone
}

func TestBuildZonesSelectingNonHub(t *testing.T) {
	r := Build(FromSnapshot(researchModel(), "inv"), DefaultConfig())

	wantZones := map[string]string{
		"inv": ZoneSelected,
		"fin": ZoneHub,
		"int": ZoneSpoke,
		"out": ZoneSpoke,
		"ctx": ZoneSpoke,
		"fun": ZoneDisconnected,
		"imp": ZoneDisconnected,
	}
	for id, want := range wantZones {
		if got := zoneOf(t, r, id); got != want {
			t.Errorf("zone(%s) = %q, want %q", id, got, want)
		}
	}
}

func TestBuildZonesSelectingHub(t *testing.T) {
	r := Build(FromSnapshot(researchModel(), "fin"), DefaultConfig())

	if nodes := r.NodesInZone(ZoneHub); len(nodes) != 0 {
		t.Errorf("hub zone should be empty when selection is the hub, got %d nodes", len(nodes))
	}
	if got := zoneOf(t, r, "fin"); got != ZoneSelected {
		t.Errorf("zone(fin) = %q, want selected", got)
	}
	for _, id := range []string{"inv", "int", "out", "ctx"} {
		if got := zoneOf(t, r, id); got != ZoneSpoke {
			t.Errorf("zone(%s) = %q, want spoke", id, got)
		}
	}
	for _, id := range []string{"fun", "imp"} {
		if got := zoneOf(t, r, id); got != ZoneDisconnected {
			t.Errorf("zone(%s) = %q, want disconnected", id, got)
		}
	}
}

func TestBuildZonePartition(t *testing.T) {
	snap := researchModel()
	for _, selected := range []string{"inv", "fin", "fun", ""} {
		r := Build(FromSnapshot(snap, selected), DefaultConfig())

		seen := make(map[string]string)
		for _, n := range r.Nodes {
			if n.Type != TypeClass {
				continue
			}
			if prev, dup := seen[n.ID]; dup {
				t.Errorf("selected=%q: class %s in zones %q and %q", selected, n.ID, prev, n.Zone)
			}
			seen[n.ID] = n.Zone
		}
		if len(seen) != len(snap.Classes) {
			t.Errorf("selected=%q: %d classes placed, want %d", selected, len(seen), len(snap.Classes))
		}
	}
}

func TestBuildDeterminism(t *testing.T) {
	in := FromSnapshot(researchModel(), "inv")
	cfg := DefaultConfig()

	a := Build(in, cfg)
	b := Build(in, cfg)
	if !reflect.DeepEqual(a, b) {
		t.Error("two builds with identical inputs differ")
	}
}

func TestBuildBoundingBox(t *testing.T) {
	for _, selected := range []string{"inv", "fin", ""} {
		r := Build(FromSnapshot(researchModel(), selected), DefaultConfig())

		for _, n := range r.Nodes {
			if n.X < 0 || n.Y < 0 {
				t.Errorf("selected=%q: node %s at negative position (%v, %v)", selected, n.ID, n.X, n.Y)
			}
			if n.Y+n.Height > r.Height+1e-9 {
				t.Errorf("selected=%q: node %s bottom %v exceeds canvas height %v", selected, n.ID, n.Y+n.Height, r.Height)
			}
			if n.X+n.Width > r.Width+1e-9 {
				t.Errorf("selected=%q: node %s right %v exceeds canvas width %v", selected, n.ID, n.X+n.Width, r.Width)
			}
		}
	}
}

func TestBuildFanEdgesAndCards(t *testing.T) {
	r := Build(FromSnapshot(researchModel(), "inv"), DefaultConfig())

	var propertyEdges []Edge
	for _, e := range r.Edges {
		if e.Kind == KindProperty {
			propertyEdges = append(propertyEdges, e)
		}
	}
	// Two properties to the same scheme keep their own edges.
	if len(propertyEdges) != 3 {
		t.Fatalf("property edges = %d, want 3", len(propertyEdges))
	}

	// But aggregate into a single card per scheme.
	if len(r.FanCards) != 2 {
		t.Fatalf("fan cards = %d, want 2", len(r.FanCards))
	}
	if got := r.FanCards[0].PropertyLabels; len(got) != 2 {
		t.Errorf("topics card labels = %v, want 2 entries", got)
	}

	// The two parallel edges to "topics" spread symmetrically.
	var offsets []float64
	for _, e := range propertyEdges {
		if e.TargetID == "topics" {
			offsets = append(offsets, e.ParallelOffset)
		}
	}
	if len(offsets) != 2 {
		t.Fatalf("edges to topics = %d, want 2", len(offsets))
	}
	if math.Abs(offsets[0]+offsets[1]) > 1e-9 || offsets[0] == offsets[1] {
		t.Errorf("parallel offsets not symmetric: %v", offsets)
	}
}

func TestBuildEdgeKinds(t *testing.T) {
	r := Build(FromSnapshot(researchModel(), "inv"), DefaultConfig())

	kinds := make(map[string]string)
	for _, e := range r.Edges {
		kinds[e.ID] = e.Kind
	}

	// Hub-to-spoke connections downgrade to spoke edges.
	for _, id := range []string{pairKey("fin", "int"), pairKey("fin", "out"), pairKey("fin", "ctx")} {
		if kinds[id] != KindSpoke {
			t.Errorf("edge %s kind = %q, want spoke", id, kinds[id])
		}
	}
	// The selection-to-hub edge stays structural.
	if got := kinds[pairKey("inv", "fin")]; got != KindStructural {
		t.Errorf("inv-fin kind = %q, want structural", got)
	}
}

func TestBuildWithoutSelection(t *testing.T) {
	tests := []struct {
		name     string
		selected string
	}{
		{name: "Absent", selected: ""},
		{name: "Unknown", selected: "nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Build(FromSnapshot(researchModel(), tt.selected), DefaultConfig())

			if nodes := r.NodesInZone(ZoneSelected); len(nodes) != 0 {
				t.Errorf("selected zone should be empty, got %d nodes", len(nodes))
			}
			if nodes := r.NodesInZone(ZoneFan); len(nodes) != 0 {
				t.Errorf("fan zone should be empty, got %d nodes", len(nodes))
			}
			if len(r.FanCards) != 0 {
				t.Errorf("fan cards = %d, want 0", len(r.FanCards))
			}
			// The hub still anchors the layout.
			if got := zoneOf(t, r, "fin"); got != ZoneHub {
				t.Errorf("zone(fin) = %q, want hub", got)
			}
		})
	}
}

func TestBuildEmptyModel(t *testing.T) {
	r := Build(Input{}, DefaultConfig())

	if len(r.Nodes) != 0 || len(r.Edges) != 0 {
		t.Errorf("empty model should produce no nodes or edges, got %d/%d", len(r.Nodes), len(r.Edges))
	}
	if r.Width != DefaultConfig().MinCanvasWidth {
		t.Errorf("width = %v, want floor %v", r.Width, DefaultConfig().MinCanvasWidth)
	}
}

func TestBuildBandOrder(t *testing.T) {
	r := Build(FromSnapshot(researchModel(), "inv"), DefaultConfig())

	maxFanBottom := 0.0
	for _, n := range r.NodesInZone(ZoneFan) {
		if n.Y+n.Height > maxFanBottom {
			maxFanBottom = n.Y + n.Height
		}
	}
	sel, _ := r.Node("inv")
	hub, _ := r.Node("fin")
	spoke, _ := r.Node("int")
	disc, _ := r.Node("fun")

	if !(maxFanBottom <= sel.Y && sel.Y < hub.Y && hub.Y < spoke.Y && spoke.Y < disc.Y) {
		t.Errorf("band order violated: fan %v, selected %v, hub %v, spoke %v, disconnected %v",
			maxFanBottom, sel.Y, hub.Y, spoke.Y, disc.Y)
	}
}

func TestRecordSerializationRoundTrip(t *testing.T) {
	r := Build(FromSnapshot(researchModel(), "inv"), DefaultConfig())

	data, err := MarshalRecord(r)
	if err != nil {
		t.Fatalf("MarshalRecord: %v", err)
	}
	back, err := UnmarshalRecord(data)
	if err != nil {
		t.Fatalf("UnmarshalRecord: %v", err)
	}
	if !reflect.DeepEqual(r, back) {
		t.Error("record changed across serialization round trip")
	}
}
