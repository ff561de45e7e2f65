package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/circuitgen/pkg/decoders"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listCheckedStyle  = lipgloss.NewStyle().Foreground(colorGreen)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// DecoderPickerModel - Interactive decoder selection
// =============================================================================

// DecoderPickerModel is the bubbletea model for picking decoders to build.
type DecoderPickerModel struct {
	Rows      []decoderRow
	Cursor    int
	Checked   map[int]bool
	Height    int
	Offset    int
	Confirmed bool
}

// NewDecoderPickerModel creates a picker over every decoder in t.
func NewDecoderPickerModel(t *decoders.Table) DecoderPickerModel {
	rows := make([]decoderRow, len(t.Decoders))
	for i := range t.Decoders {
		rows[i] = newDecoderRow(&t.Decoders[i])
	}
	return DecoderPickerModel{
		Rows:    rows,
		Checked: make(map[int]bool),
		Height:  15,
	}
}

func (m DecoderPickerModel) Init() tea.Cmd {
	return nil
}

func (m DecoderPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.Confirmed = false
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Rows)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case " ", "x":
			m.toggle(m.Cursor)
		case "a":
			all := len(m.Selected()) == len(m.Rows)
			for i := range m.Rows {
				m.Checked[i] = !all
			}
		case "enter":
			if len(m.Selected()) == 0 {
				m.Checked[m.Cursor] = true
			}
			m.Confirmed = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m DecoderPickerModel) toggle(i int) {
	m.Checked[i] = !m.Checked[i]
}

// Selected returns the checked decoder names in table order.
func (m DecoderPickerModel) Selected() []string {
	var names []string
	for i, r := range m.Rows {
		if m.Checked[i] {
			names = append(names, r.name)
		}
	}
	return names
}

func (m DecoderPickerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Decoders"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  space toggle  a all  ⏎ build  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Rows))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		r := m.Rows[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		mark := "[ ]"
		if m.Checked[i] {
			mark = "[x]"
		}
		rows = append(rows, []string{cursor + mark, r.name, r.size, r.lanes, r.description})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Decoder", "Size", "Lanes", "Description").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			idx := m.Offset + row
			switch {
			case idx == m.Cursor:
				return listSelectedStyle
			case m.Checked[idx]:
				return listCheckedStyle
			case col == 4:
				return listDimStyle
			}
			return StyleValue
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]  %d selected", m.Cursor+1, len(m.Rows), len(m.Selected()))))

	return b.String()
}

// pickDecoders runs the picker and returns the chosen names. Quitting
// without confirming returns no names.
func pickDecoders(t *decoders.Table) ([]string, error) {
	final, err := tea.NewProgram(NewDecoderPickerModel(t)).Run()
	if err != nil {
		return nil, err
	}
	m, ok := final.(DecoderPickerModel)
	if !ok || !m.Confirmed {
		return nil, nil
	}
	return m.Selected(), nil
}
