package layout

import "math"

// HubLabel is the reserved class label that always wins hub selection.
// A class carrying this label becomes the layout's structural center
// regardless of edge topology.
const HubLabel = "Finding"

// Config holds every geometry constant the engine uses. All values are in
// user units (pixels when rendered to SVG). Use DefaultConfig and override
// individual fields, or load a tuned set from a TOML file.
//
// The constants are deliberately gathered here instead of being spread
// through the algorithm so geometry can be tuned without touching it.
type Config struct {
	// Class node dimensions (rectangles).
	ClassWidth  float64 `toml:"class_width"`
	ClassHeight float64 `toml:"class_height"`

	// Hexagon sizing for fan scheme nodes. A hexagon's width is
	// max(HexMinWidth, len(label)*HexCharWidth + HexPadding); height is fixed.
	HexHeight   float64 `toml:"hex_height"`
	HexMinWidth float64 `toml:"hex_min_width"`
	HexCharWidth float64 `toml:"hex_char_width"`
	HexPadding  float64 `toml:"hex_padding"`

	// ArcThreshold selects the fan strategy: item counts up to and including
	// the threshold use the arc strategy, larger counts use the grid. The
	// default of 0 means the grid strategy always applies.
	ArcThreshold int `toml:"arc_threshold"`

	// Arc strategy: hexagons sit on a semicircular arc spanning ArcSpan
	// radians centered above the selected node. ArcMinRadius floors the
	// computed radius; ArcGap is the minimum pixel gap between neighbors.
	ArcSpan      float64 `toml:"arc_span"`
	ArcMinRadius float64 `toml:"arc_min_radius"`
	ArcGap       float64 `toml:"arc_gap"`

	// Grid strategy: hexagons tile in rows of at most GridMaxColumns,
	// each row horizontally centered on its own.
	GridMaxColumns int     `toml:"grid_max_columns"`
	GridHSpacing   float64 `toml:"grid_h_spacing"`
	GridVSpacing   float64 `toml:"grid_v_spacing"`

	// Horizontal spacing between class nodes in the spoke and
	// disconnected rows.
	RowSpacing float64 `toml:"row_spacing"`

	// Vertical gap between bands (fan, selected, hub, spoke row,
	// disconnected row).
	BandGap float64 `toml:"band_gap"`

	// Canvas padding added around the content, and the minimum canvas width.
	CanvasPadding  float64 `toml:"canvas_padding"`
	MinCanvasWidth float64 `toml:"min_canvas_width"`

	// Lateral displacement between edges that share the same visual path.
	ParallelOffsetStep float64 `toml:"parallel_offset_step"`
}

// DefaultConfig returns the tuned geometry constants.
func DefaultConfig() Config {
	return Config{
		ClassWidth:  160,
		ClassHeight: 56,

		HexHeight:    48,
		HexMinWidth:  96,
		HexCharWidth: 8,
		HexPadding:   24,

		ArcThreshold: 0, // grid always applies at the current tuning
		ArcSpan:      math.Pi * 5 / 6,
		ArcMinRadius: 140,
		ArcGap:       16,

		GridMaxColumns: 4,
		GridHSpacing:   20,
		GridVSpacing:   16,

		RowSpacing: 32,

		BandGap: 64,

		CanvasPadding:  40,
		MinCanvasWidth: 640,

		ParallelOffsetStep: 14,
	}
}

// hexWidth returns the width of a fan hexagon for the given label.
func (c Config) hexWidth(label string) float64 {
	w := float64(len(label))*c.HexCharWidth + c.HexPadding
	if w < c.HexMinWidth {
		return c.HexMinWidth
	}
	return w
}
