package layout

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Zone classifications assigned to each node during a layout pass.
const (
	ZoneSelected     = "selected"
	ZoneHub          = "hub"
	ZoneSpoke        = "spoke"
	ZoneDisconnected = "disconnected"
	ZoneFan          = "fan"
)

// Node types.
const (
	TypeClass  = "class"
	TypeScheme = "scheme"
)

// Node shapes.
const (
	ShapeRect    = "rect"
	ShapeHexagon = "hexagon"
)

// Edge kinds.
const (
	KindStructural = "structural"
	KindSpoke      = "spoke"
	KindProperty   = "property"
)

// =============================================================================
// StructuralEdge - Derived Class Connection
// =============================================================================

// StructuralEdge is a derived undirected class-to-class connection inferred
// from an object property. SourceURI/TargetURI record the direction of the
// first property that produced the edge; direction carries no semantics.
type StructuralEdge struct {
	SourceURI   string `json:"source_uri" bson:"source_uri"`
	TargetURI   string `json:"target_uri" bson:"target_uri"`
	Label       string `json:"label" bson:"label"`
	PropertyURI string `json:"property_uri" bson:"property_uri"`
}

// Touches reports whether the edge has the given class as either endpoint.
func (e StructuralEdge) Touches(uri string) bool {
	return e.SourceURI == uri || e.TargetURI == uri
}

// Other returns the opposite endpoint of uri, or "" if uri is not an endpoint.
func (e StructuralEdge) Other(uri string) string {
	switch uri {
	case e.SourceURI:
		return e.TargetURI
	case e.TargetURI:
		return e.SourceURI
	}
	return ""
}

// =============================================================================
// Record - Positioned Layout Output
// =============================================================================

// Node is a positioned element of the diagram. Nodes are recomputed on every
// layout pass and never mutated in place.
type Node struct {
	ID          string  `json:"id" bson:"id"`
	Label       string  `json:"label" bson:"label"`
	Type        string  `json:"type" bson:"type"`
	Zone        string  `json:"zone" bson:"zone"`
	Shape       string  `json:"shape" bson:"shape"`
	X           float64 `json:"x" bson:"x"`
	Y           float64 `json:"y" bson:"y"`
	Width       float64 `json:"width" bson:"width"`
	Height      float64 `json:"height" bson:"height"`
	Comment     string  `json:"comment,omitempty" bson:"comment,omitempty"`
	Description string  `json:"description,omitempty" bson:"description,omitempty"`
}

// Edge is a positioned connection between two layout nodes.
type Edge struct {
	ID          string  `json:"id" bson:"id"`
	SourceID    string  `json:"source_id" bson:"source_id"`
	TargetID    string  `json:"target_id" bson:"target_id"`
	Label       string  `json:"label" bson:"label"`
	Kind        string  `json:"kind" bson:"kind"`
	Description string  `json:"description,omitempty" bson:"description,omitempty"`
	Required    bool    `json:"required,omitempty" bson:"required,omitempty"`
	Cardinality string  `json:"cardinality,omitempty" bson:"cardinality,omitempty"`

	// ParallelOffset is the lateral pixel offset applied when several edges
	// share the same visual path between two endpoints.
	ParallelOffset float64 `json:"parallel_offset,omitempty" bson:"parallel_offset,omitempty"`
}

// FanCard summarizes one target scheme reachable from the selected class,
// aggregating the labels of every project property that points at it.
type FanCard struct {
	SchemeID       string   `json:"scheme_id" bson:"scheme_id"`
	Title          string   `json:"title" bson:"title"`
	Description    string   `json:"description,omitempty" bson:"description,omitempty"`
	PropertyLabels []string `json:"property_labels" bson:"property_labels"`
}

// Record is the full output of one layout pass: positioned nodes and edges,
// fan-card summaries, and the canvas bounding box. A Record is treated as
// immutable once produced; concurrent reads are safe.
type Record struct {
	Nodes    []Node    `json:"nodes" bson:"nodes"`
	Edges    []Edge    `json:"edges" bson:"edges"`
	FanCards []FanCard `json:"fan_cards,omitempty" bson:"fan_cards,omitempty"`
	Width    float64   `json:"width" bson:"width"`
	Height   float64   `json:"height" bson:"height"`
}

// Node returns the node with the given ID and true, or a zero Node and false.
func (r *Record) Node(id string) (Node, bool) {
	for _, n := range r.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// NodesInZone returns the nodes assigned to the given zone, in layout order.
func (r *Record) NodesInZone(zone string) []Node {
	var out []Node
	for _, n := range r.Nodes {
		if n.Zone == zone {
			out = append(out, n)
		}
	}
	return out
}
