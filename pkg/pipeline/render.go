package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/circuitgen/pkg/route"
	"github.com/matzehuels/circuitgen/pkg/schematic"
)

// Render generates output artifacts in the requested formats.
func Render(ctx context.Context, res *route.Result, job *route.Job, report *Report, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))

	var schem *schematic.Schematic
	var dot string

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSchem, FormatNBT:
			if schem == nil {
				schem = schematic.Encode(res.Grid, schematic.Options{Offset: opts.OffsetPos()})
			}
			if format == FormatSchem {
				data, err = schem.Marshal()
			} else {
				data, err = schem.MarshalRaw()
			}
		case FormatJSON:
			data, err = report.EncodeJSON()
		case FormatCBOR:
			data, err = report.EncodeCBOR()
		case FormatDOT, FormatSVG:
			if dot == "" {
				dot = route.ToDOT(job, route.PlanOptions{Constants: opts.Constants})
			}
			if format == FormatDOT {
				data = []byte(dot)
			} else {
				data, err = route.RenderSVG(ctx, dot)
			}
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
