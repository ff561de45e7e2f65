package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/circuitgen/pkg/decoders"
	"github.com/matzehuels/circuitgen/pkg/route"
)

// listCommand creates the list command that shows the decoder table.
func (c *CLI) listCommand() *cobra.Command {
	var (
		tablePath string
		plain     bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the decoders in a table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := loadTable(tablePath)
			if err != nil {
				return err
			}
			if plain {
				for _, name := range t.Names() {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderDecoderTable(t))
			return nil
		},
	}

	addTableFlag(cmd.Flags(), &tablePath)
	cmd.Flags().BoolVar(&plain, "plain", false, "print names only, one per line")

	return cmd
}

// decoderRow is one line of the decoder table.
type decoderRow struct {
	name, ops, size, lanes, description string
}

func newDecoderRow(d *decoders.Decoder) decoderRow {
	job := d.Job()
	conns, _ := job.Plan()
	size := job.Size()
	return decoderRow{
		name:        d.Name,
		ops:         strconv.Itoa(len(d.Ops)),
		size:        fmt.Sprintf("%d×%d×%d", size.X, size.Y, size.Z),
		lanes:       strconv.Itoa(route.MaxLane(conns)),
		description: d.Description,
	}
}

// renderDecoderTable renders a table of decoders with their planned size.
func renderDecoderTable(t *decoders.Table) string {
	rows := make([][]string, 0, len(t.Decoders))
	for i := range t.Decoders {
		r := newDecoderRow(&t.Decoders[i])
		rows = append(rows, []string{r.name, r.ops, r.size, r.lanes, r.description})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Decoder", "Ops", "Size", "Lanes", "Description").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col == 0:
				return StyleHighlight
			case col == 4:
				return StyleDim
			}
			return StyleValue
		}).
		Render()
}

// decoderNames returns the names of the built-in decoders.
func decoderNames() []string {
	return decoders.RVC().Names()
}
