package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/crawlviz/pkg/layout"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

var kindDescriptions = map[layout.Kind]string{
	layout.Hierarchical: "one row per depth, each row centered",
	layout.Circular:     "concentric rings by depth around the seed",
	layout.Force:        "spiral by input order, radius grows with depth",
	layout.Grid:         "row-major cells in discovery order",
}

// =============================================================================
// KindPickerModel - Interactive layout kind selection
// =============================================================================

// KindPickerModel is the bubbletea model for choosing a layout kind.
type KindPickerModel struct {
	Kinds    []layout.Kind
	Cursor   int
	Selected layout.Kind // empty until enter is pressed
}

// NewKindPickerModel creates a picker with the cursor on current, if it is
// a known kind.
func NewKindPickerModel(current string) KindPickerModel {
	m := KindPickerModel{Kinds: layout.Kinds()}
	if k, ok := layout.ParseKind(current); ok {
		for i, known := range m.Kinds {
			if known == k {
				m.Cursor = i
			}
		}
	}
	return m
}

func (m KindPickerModel) Init() tea.Cmd {
	return nil
}

func (m KindPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Kinds)-1 {
			m.Cursor++
		}
	case "enter":
		m.Selected = m.Kinds[m.Cursor]
		return m, tea.Quit
	}
	return m, nil
}

func (m KindPickerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Layout"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	for i, k := range m.Kinds {
		cursor := "  "
		style := listNormalStyle
		if i == m.Cursor {
			cursor = "▸ "
			style = listSelectedStyle
		}
		b.WriteString(style.Render(fmt.Sprintf("%s%-13s", cursor, k)))
		b.WriteString(listDimStyle.Render(kindDescriptions[k]))
		b.WriteString("\n")
	}
	return b.String()
}

// pickKind runs the picker and returns the chosen kind, or "" when the
// user quit without choosing.
func pickKind(current string) (string, error) {
	final, err := tea.NewProgram(NewKindPickerModel(current)).Run()
	if err != nil {
		return "", fmt.Errorf("kind picker: %w", err)
	}
	return string(final.(KindPickerModel).Selected), nil
}
