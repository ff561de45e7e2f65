package cli

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/circuitgen/pkg/schematic"
	"github.com/matzehuels/circuitgen/pkg/voxel"
)

// inspectCommand creates the inspect command that summarizes a schematic.
func (c *CLI) inspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [file.schem]",
		Short: "Summarize a schematic file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(args[0])
		},
	}
}

// paletteCount is one palette entry with the number of cells using it.
type paletteCount struct {
	name  string
	count int
}

// summarize counts the cells of each palette entry, most used first.
func summarize(g *voxel.Grid) []paletteCount {
	names := g.Palette().Names()
	out := make([]paletteCount, 0, len(names))
	for id, name := range names {
		out = append(out, paletteCount{name: name, count: g.Count(voxel.ID(id))})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].count > out[j].count })
	return out
}

func runInspect(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	s, err := schematic.Read(f)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	g, err := s.Grid()
	if err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	size := s.Size()
	printSuccess("%s", path)
	printKeyValue("Size", fmt.Sprintf("%d × %d × %d", size.X, size.Y, size.Z))
	printKeyValue("Offset", fmt.Sprintf("%d, %d, %d", s.Metadata.OffsetX, s.Metadata.OffsetY, s.Metadata.OffsetZ))
	printKeyValue("Version", fmt.Sprintf("%d (data %d)", s.Version, s.DataVersion))
	printKeyValue("Palette", strconv.Itoa(len(s.Palette)))
	printKeyValue("Containers", strconv.Itoa(len(s.BlockEntities)))
	printNewline()

	rows := [][]string{}
	for _, pc := range summarize(g) {
		rows = append(rows, []string{pc.name, strconv.Itoa(pc.count)})
	}
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Block", "Cells").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 1 {
				return StyleNumber
			}
			return StyleValue
		})
	fmt.Println(t.Render())
	return nil
}
