package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vocamap/vocamap/pkg/layout"
	"github.com/vocamap/vocamap/pkg/ontology"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// pickCommand creates the pick command for interactive class selection.
func (c *CLI) pickCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "pick [snapshot.json]",
		Short: "Interactively pick a class to center the map on",
		Long: `Interactively pick a class to center the relationship map on.

The pick command lists the classes of a project snapshot together with
their connection counts and lets you choose one. It then prints the
layout command for the chosen class.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPick(cmd.Context(), args[0])
		},
	}
}

// runPick loads the snapshot, runs the interactive class list, and
// computes the layout for the chosen class.
func (c *CLI) runPick(ctx context.Context, input string) error {
	snap, err := ontology.ReadSnapshotFile(input)
	if err != nil {
		return fmt.Errorf("load snapshot %s: %w", input, err)
	}
	if len(snap.Classes) == 0 {
		printInfo("Snapshot has no classes")
		return nil
	}

	model := NewClassListModel(snap)
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return fmt.Errorf("class picker: %w", err)
	}

	result, ok := final.(ClassListModel)
	if !ok || result.Selected == nil {
		printInfo("No class selected")
		return nil
	}

	printSuccess("Selected %s", result.Selected.DisplayLabel())
	printDetail("%s", result.Selected.URI)
	printNewline()

	return c.runLayout(ctx, input, layoutParams{selected: result.Selected.URI})
}

// =============================================================================
// ClassListModel - Interactive class selection
// =============================================================================

// ClassListModel is the bubbletea model for interactive class selection.
type ClassListModel struct {
	Classes  []ontology.Class
	Degrees  map[string]int
	Hub      string
	Cursor   int
	Selected *ontology.Class
	Height   int
	Offset   int
}

// NewClassListModel creates a class list model for the snapshot. Connection
// counts come from the derived structural edges, and the hub class is
// marked the same way the layout pass would pick it.
func NewClassListModel(snap ontology.Snapshot) ClassListModel {
	edges := layout.ExtractStructuralEdges(snap.Properties, snap.ClassSet())

	degrees := make(map[string]int, len(snap.Classes))
	for _, e := range edges {
		degrees[e.SourceURI]++
		degrees[e.TargetURI]++
	}

	hub, _ := layout.FindHubClass(snap.Classes, edges)

	return ClassListModel{
		Classes: snap.Classes,
		Degrees: degrees,
		Hub:     hub,
		Height:  15,
	}
}

func (m ClassListModel) Init() tea.Cmd {
	return nil
}

func (m ClassListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Classes)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			cls := m.Classes[m.Cursor]
			m.Selected = &cls
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

func (m ClassListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Class"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Classes) {
		end = len(m.Classes)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		cls := m.Classes[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		hub := ""
		if cls.URI == m.Hub {
			hub = "hub"
		}

		degree := "—"
		if d := m.Degrees[cls.URI]; d > 0 {
			degree = fmt.Sprintf("%d", d)
		}

		rows = append(rows, []string{cursor, cls.DisplayLabel(), degree, hub, cls.URI})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Class", "Links", "", "URI").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}

			actualIdx := m.Offset + row
			if actualIdx >= len(m.Classes) {
				return lipgloss.NewStyle()
			}
			cls := m.Classes[actualIdx]
			connected := m.Degrees[cls.URI] > 0

			if actualIdx == m.Cursor {
				return listSelectedStyle
			}
			if col == 4 {
				return listDimStyle
			}
			if !connected {
				return listDimStyle
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Classes))))

	return b.String()
}
