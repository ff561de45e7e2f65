package route

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"
)

// PlanOptions configures lane plan diagrams.
type PlanOptions struct {
	// Constants adds a source node for every const and level op.
	Constants bool
}

// ToDOT renders the job's lane plan as a Graphviz digraph: input bits on
// the left, output bits on the right, one edge per connection labelled
// with its lane. Extend edges are dashed.
func ToDOT(j *Job, opts PlanOptions) string {
	conns, _ := j.Plan()

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "digraph %q {\n", j.Name)
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14];\n")
	buf.WriteString("  ranksep=1.2;\n")
	buf.WriteString("\n")

	ins := map[int]bool{}
	outs := map[int]bool{}
	for _, c := range conns {
		ins[c.From] = true
		outs[c.To] = true
	}
	if opts.Constants {
		for _, op := range j.Ops {
			switch op.Kind {
			case OpConst:
				for i := 0; i < Bits; i++ {
					if op.Value&(1<<i) != 0 {
						outs[op.Start+i] = true
					}
				}
			case OpLevel:
				outs[op.Bit] = true
			}
		}
	}

	buf.WriteString("  { rank=same;\n")
	for b := 0; b < InputBits; b++ {
		if ins[b] {
			fmt.Fprintf(&buf, "    \"in%d\" [label=\"c[%d]\"];\n", b, b)
		}
	}
	buf.WriteString("  }\n  { rank=same;\n")
	for b := 0; b < Bits; b++ {
		if outs[b] {
			fmt.Fprintf(&buf, "    \"out%d\" [label=\"i[%d]\"];\n", b, b)
		}
	}
	buf.WriteString("  }\n\n")

	for _, c := range conns {
		style := ""
		if c.Kind == ConnExtend {
			style = ", style=dashed"
		}
		fmt.Fprintf(&buf, "  \"in%d\" -> \"out%d\" [label=\"lane %d\"%s];\n", c.From, c.To, c.Lane, style)
	}

	if opts.Constants {
		for i, op := range j.Ops {
			switch op.Kind {
			case OpConst:
				fmt.Fprintf(&buf, "  \"k%d\" [label=\"0b%b\", shape=ellipse, fillcolor=lightgrey];\n", i, op.Value)
				for b := 0; b < Bits; b++ {
					if op.Value&(1<<b) != 0 {
						fmt.Fprintf(&buf, "  \"k%d\" -> \"out%d\" [color=grey];\n", i, op.Start+b)
					}
				}
			case OpLevel:
				fmt.Fprintf(&buf, "  \"k%d\" [label=\"ss %d\", shape=ellipse, fillcolor=lightgrey];\n", i, op.Level)
				fmt.Fprintf(&buf, "  \"k%d\" -> \"out%d\" [color=grey];\n", i, op.Bit)
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
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
	return buf.Bytes(), nil
}
