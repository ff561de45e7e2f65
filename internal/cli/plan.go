package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/circuitgen/pkg/pipeline"
	"github.com/matzehuels/circuitgen/pkg/route"
)

// planCommand creates the plan command that draws a decoder's lane plan.
func (c *CLI) planCommand() *cobra.Command {
	var (
		tablePath string
		format    string
		output    string
		opts      route.PlanOptions
	)

	cmd := &cobra.Command{
		Use:   "plan [decoder]",
		Short: "Draw the lane plan of a decoder",
		Long: `Draw the lane plan of a decoder as a Graphviz diagram.

Each edge is one routed bit, labelled with the lane it was given. Without
--output the diagram is written to stdout.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeDecoders,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(cmd.Context(), cmd.OutOrStdout(), tablePath, args[0], format, output, opts)
		},
	}

	addTableFlag(cmd.Flags(), &tablePath)
	cmd.Flags().StringVarP(&format, "format", "f", pipeline.FormatDOT, "output format: dot (default), svg")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&opts.Constants, "constants", false, "show constant sources")

	return cmd
}

func runPlan(ctx context.Context, w io.Writer, tablePath, name, format, output string, opts route.PlanOptions) error {
	t, err := loadTable(tablePath)
	if err != nil {
		return err
	}
	d, err := t.Lookup(name)
	if err != nil {
		return err
	}

	dot := route.ToDOT(d.Job(), opts)
	var data []byte
	switch format {
	case pipeline.FormatDOT:
		data = []byte(dot)
	case pipeline.FormatSVG:
		if data, err = route.RenderSVG(ctx, dot); err != nil {
			return err
		}
	default:
		return fmt.Errorf("invalid format: %s (must be 'dot' or 'svg')", format)
	}

	if output == "" {
		_, err = w.Write(data)
		return err
	}
	if err := os.WriteFile(output, data, 0644); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}
	printSuccess("Plan for %s", d.Name)
	printFile(output)
	return nil
}
