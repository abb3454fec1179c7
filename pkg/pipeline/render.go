package pipeline

import (
	"fmt"

	"github.com/vocamap/vocamap/pkg/layout"
	"github.com/vocamap/vocamap/pkg/render/dot"
)

// Render generates output artifacts in the requested formats.
func Render(rec layout.Record, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	dotOpts := dot.Options{ShowZones: opts.ShowZones()}
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatJSON:
			data, err = layout.MarshalRecord(rec)
		case FormatDOT:
			data = []byte(dot.ToDOT(rec, dotOpts))
		case FormatSVG:
			data, err = dot.RenderSVG(rec, dotOpts)
		case FormatPNG:
			data, err = dot.RenderPNG(rec, dotOpts, DefaultPNGScale)
		case FormatPDF:
			data, err = dot.RenderPDF(rec, dotOpts)
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}
