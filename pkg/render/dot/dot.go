// Package dot renders a computed layout record as a Graphviz diagram.
//
// The layout engine already decides every position, so the DOT output pins
// nodes with pos="x,y!" coordinates and renders through the neato engine,
// which honors pinned positions instead of computing its own. Zone and edge
// kind map to visual treatments: hexagon shapes for fan schemes, dashed
// strokes for spoke edges, dotted strokes for fan property edges.
package dot

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/vocamap/vocamap/pkg/layout"
	"github.com/vocamap/vocamap/pkg/render"
)

// Options configures diagram rendering.
type Options struct {
	// ShowZones appends the zone name to each node label.
	// Useful when debugging the classifier.
	ShowZones bool
}

// zoneFills maps zones to fill colors. The selected class is visually
// dominant, the hub secondary, everything else neutral.
var zoneFills = map[string]string{
	layout.ZoneSelected:     "#d4e7fa",
	layout.ZoneHub:          "#fae8d4",
	layout.ZoneSpoke:        "white",
	layout.ZoneDisconnected: "#f0f0f0",
	layout.ZoneFan:          "#e8f5e9",
}

// ToDOT converts a layout record to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG], [RenderPDF],
// or [RenderPNG].
func ToDOT(rec layout.Record, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph vocamap {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [style=\"filled\", fontsize=12, fixedsize=true];\n")
	buf.WriteString("  edge [fontsize=10, color=\"#666666\"];\n")
	buf.WriteString("\n")

	for _, n := range rec.Nodes {
		attrs := nodeAttrs(n, rec.Height, opts)
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range rec.Edges {
		attrs := edgeAttrs(e)
		fmt.Fprintf(&buf, "  %q -- %q [%s];\n", e.SourceID, e.TargetID, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

// nodeAttrs builds the DOT attribute list for one node. Layout coordinates
// have the origin at the top-left with y growing downward; Graphviz points
// grow upward, so y is flipped against the canvas height. The pinned
// position is the node center.
func nodeAttrs(n layout.Node, canvasHeight float64, opts Options) []string {
	label := n.Label
	if opts.ShowZones {
		label = fmt.Sprintf("%s\n(%s)", n.Label, n.Zone)
	}

	cx := n.X + n.Width/2
	cy := canvasHeight - (n.Y + n.Height/2)

	attrs := []string{
		fmt.Sprintf("label=%q", label),
		fmt.Sprintf("pos=\"%.1f,%.1f!\"", cx, cy),
		fmt.Sprintf("width=%.3f", n.Width/72),
		fmt.Sprintf("height=%.3f", n.Height/72),
	}

	if n.Shape == layout.ShapeHexagon {
		attrs = append(attrs, "shape=hexagon")
	} else {
		attrs = append(attrs, "shape=box", "style=\"rounded,filled\"")
	}

	if fill, ok := zoneFills[n.Zone]; ok {
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", fill))
	} else {
		attrs = append(attrs, "fillcolor=white")
	}

	return attrs
}

// edgeAttrs builds the DOT attribute list for one edge.
func edgeAttrs(e layout.Edge) []string {
	attrs := []string{fmt.Sprintf("label=%q", e.Label)}

	switch e.Kind {
	case layout.KindSpoke:
		attrs = append(attrs, "style=dashed")
	case layout.KindProperty:
		attrs = append(attrs, "style=dotted", "color=\"#2e7d32\"")
	}

	return attrs
}

// RenderSVG renders a layout record to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with
// [render.ToPDF] or [render.ToPNG].
func RenderSVG(rec layout.Record, opts Options) ([]byte, error) {
	return renderDOT(ToDOT(rec, opts))
}

// renderDOT renders a DOT string to SVG bytes.
func renderDOT(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

// RenderPDF renders a layout record as PDF via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPDF].
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(rec layout.Record, opts Options) ([]byte, error) {
	svg, err := RenderSVG(rec, opts)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders a layout record as PNG via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPNG].
//
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(rec layout.Record, opts Options, scale float64) ([]byte, error) {
	svg, err := RenderSVG(rec, opts)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
