package layout

import (
	"math"

	"github.com/vocamap/vocamap/pkg/ontology"
)

// fanItem is one distinct target scheme reachable from the selected class,
// with every project property that points at it in encounter order.
type fanItem struct {
	scheme ontology.Scheme
	props  []ontology.ProjectProperty
	width  float64
}

// fan holds the computed fan zone: hexagon nodes in band-local coordinates
// (X centered around 0, Y measured from the band top), the aggregated cards,
// and the band extents.
type fan struct {
	items  []fanItem
	nodes  []Node
	cards  []FanCard
	width  float64
	height float64
}

// buildFan computes the fan of scheme hexagons for the selected class.
//
// Properties whose domain is not the selected class, whose range is not a
// scheme, or whose scheme lookup fails contribute nothing. Distinct schemes
// appear in first-encounter order; each yields one hexagon and one card, but
// every contributing property yields its own edge (built by the caller).
func buildFan(selected string, props []ontology.ProjectProperty, schemes []ontology.Scheme, cfg Config) fan {
	var f fan
	index := make(map[string]int)

	for _, p := range props {
		if p.DomainClass != selected || !p.IsSchemeValued() {
			continue
		}
		scheme, ok := lookupScheme(schemes, p.RangeSchemeID)
		if !ok {
			continue
		}
		i, ok := index[scheme.ID]
		if !ok {
			i = len(f.items)
			index[scheme.ID] = i
			f.items = append(f.items, fanItem{
				scheme: scheme,
				width:  cfg.hexWidth(scheme.Title),
			})
		}
		f.items[i].props = append(f.items[i].props, p)
	}

	if len(f.items) == 0 {
		return f
	}

	for _, it := range f.items {
		card := FanCard{
			SchemeID:    it.scheme.ID,
			Title:       it.scheme.Title,
			Description: it.scheme.Description,
		}
		for _, p := range it.props {
			card.PropertyLabels = append(card.PropertyLabels, p.Label)
		}
		f.cards = append(f.cards, card)
	}

	if len(f.items) <= cfg.ArcThreshold {
		f.placeArc(cfg)
	} else {
		f.placeGrid(cfg)
	}
	return f
}

func lookupScheme(schemes []ontology.Scheme, id string) (ontology.Scheme, bool) {
	for _, s := range schemes {
		if s.ID == id {
			return s, true
		}
	}
	return ontology.Scheme{}, false
}

// placeGrid tiles hexagons in rows of at most GridMaxColumns. Every row is
// horizontally centered on its own, so a shorter final row stays centered
// rather than left-aligned.
func (f *fan) placeGrid(cfg Config) {
	cols := cfg.GridMaxColumns
	if cols < 1 {
		cols = 1
	}

	for start := 0; start < len(f.items); start += cols {
		end := start + cols
		if end > len(f.items) {
			end = len(f.items)
		}
		row := f.items[start:end]

		rowWidth := 0.0
		for i, it := range row {
			if i > 0 {
				rowWidth += cfg.GridHSpacing
			}
			rowWidth += it.width
		}
		if rowWidth > f.width {
			f.width = rowWidth
		}

		y := float64(start/cols) * (cfg.HexHeight + cfg.GridVSpacing)
		x := -rowWidth / 2
		for _, it := range row {
			f.nodes = append(f.nodes, f.hexNode(it, x, y, cfg))
			x += it.width + cfg.GridHSpacing
		}
		f.height = y + cfg.HexHeight
	}
}

// placeArc distributes hexagons along a semicircular arc spanning ArcSpan
// radians centered above the anchor point. The radius is the smallest value
// keeping every adjacent pair at least ArcGap apart, derived from the
// chord-length relation radius = need/(2*sin(halfSep)), floored at
// ArcMinRadius.
func (f *fan) placeArc(cfg Config) {
	n := len(f.items)
	radius := cfg.ArcMinRadius

	if n > 1 {
		sep := cfg.ArcSpan / float64(n-1)
		halfSin := math.Sin(sep / 2)
		if halfSin > 1e-9 {
			for i := 0; i < n-1; i++ {
				need := (f.items[i].width+f.items[i+1].width)/2 + cfg.ArcGap
				if r := need / (2 * halfSin); r > radius {
					radius = r
				}
			}
		}
	}

	// Angles run left to right across the span, centered on straight-up.
	start := math.Pi/2 + cfg.ArcSpan/2
	step := 0.0
	if n > 1 {
		step = cfg.ArcSpan / float64(n-1)
	} else {
		start = math.Pi / 2
	}

	maxUp := 0.0
	type polar struct{ x, up float64 }
	centers := make([]polar, n)
	for i := range f.items {
		angle := start - float64(i)*step
		centers[i] = polar{x: radius * math.Cos(angle), up: radius * math.Sin(angle)}
		if centers[i].up > maxUp {
			maxUp = centers[i].up
		}
	}

	extent := 0.0
	for i, it := range f.items {
		y := maxUp - centers[i].up
		f.nodes = append(f.nodes, f.hexNode(it, centers[i].x-it.width/2, y, cfg))
		if y+cfg.HexHeight > f.height {
			f.height = y + cfg.HexHeight
		}
		if e := math.Abs(centers[i].x) + it.width/2; e > extent {
			extent = e
		}
	}
	f.width = 2 * extent
}

func (f *fan) hexNode(it fanItem, x, y float64, cfg Config) Node {
	return Node{
		ID:          it.scheme.ID,
		Label:       it.scheme.Title,
		Type:        TypeScheme,
		Zone:        ZoneFan,
		Shape:       ShapeHexagon,
		X:           x,
		Y:           y,
		Width:       it.width,
		Height:      cfg.HexHeight,
		Description: it.scheme.Description,
	}
}
