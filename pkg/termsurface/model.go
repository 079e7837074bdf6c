package termsurface

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/go-drift/carbon/pkg/errors"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
)

// chromeLines is the number of lines Model draws around the table.
const chromeLines = 2

// Model is a bubbletea model showing a Table between a title and a status
// line.
//
//	up/k, down/j   move the cursor
//	pgup, pgdown   move the cursor by a page
//	enter, space   toggle the selection of the item under the cursor
//	q, ctrl+c      quit
type Model struct {
	table    *Table
	title    string
	quitting bool
}

// NewModel returns a model driving table.
func NewModel(table *Table, title string) Model {
	return Model{table: table, title: title}
}

// Table returns the driven table.
func (m Model) Table() *Table { return m.table }

// Quitting reports whether the model received a quit key.
func (m Model) Quitting() bool { return m.quitting }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model. A panic raised by a delegate or handler while
// handling msg is reported and the model is kept.
func (m Model) Update(msg tea.Msg) (next tea.Model, cmd tea.Cmd) {
	next = m
	defer errors.Recover("termsurface.Model.Update")

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.table.Resize(msg.Width, msg.Height-chromeLines)
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "up", "k":
			m.table.MoveCursor(-1)
		case "down", "j":
			m.table.MoveCursor(1)
		case "pgup":
			m.table.MoveCursor(-max(m.table.height-1, 1))
		case "pgdown":
			m.table.MoveCursor(max(m.table.height-1, 1))
		case "enter", " ":
			m.table.ToggleSelection()
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")
	b.WriteString(m.table.View())
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(m.status()))
	return b.String()
}

func (m Model) status() string {
	n := len(m.table.SelectedItems())
	return fmt.Sprintf("%d selected · ↑/↓ move · enter select · q quit", n)
}
