package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	exprStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// visibleHistory bounds how many past lines the view shows.
const visibleHistory = 20

type historyEntry struct {
	err    error
	input  string
	output string
}

type calcModel struct {
	calc    *calculator
	input   textinput.Model
	history []historyEntry
	recall  int
}

func newCalcModel(calc *calculator) *calcModel {
	ti := textinput.New()
	ti.Placeholder = "8'hff + 1"
	ti.Prompt = "> "
	ti.Width = 60
	ti.Focus()
	return &calcModel{calc: calc, input: ti}
}

func (m *calcModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *calcModel) submit() {
	line := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")
	m.recall = len(m.history)
	if skip(line) {
		return
	}
	out, err := m.calc.eval(line)
	m.history = append(m.history, historyEntry{input: line, output: out, err: err})
	m.recall = len(m.history)
}

// recallEntry moves through earlier inputs; delta is -1 for older.
func (m *calcModel) recallEntry(delta int) {
	next := m.recall + delta
	if next < 0 || next > len(m.history) {
		return
	}
	m.recall = next
	if next == len(m.history) {
		m.input.SetValue("")
		return
	}
	m.input.SetValue(m.history[next].input)
	m.input.CursorEnd()
}

func (m *calcModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc, tea.KeyCtrlD:
			return m, tea.Quit
		case tea.KeyEnter:
			m.submit()
			return m, nil
		case tea.KeyUp:
			m.recallEntry(-1)
			return m, nil
		case tea.KeyDown:
			m.recallEntry(1)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *calcModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("vlcalc"))
	if m.calc.base != 0 {
		fmt.Fprintf(&b, " base %d", m.calc.base)
	}
	b.WriteString("\n\n")

	start := max(0, len(m.history)-visibleHistory)
	for _, e := range m.history[start:] {
		b.WriteString(exprStyle.Render(e.input))
		b.WriteString(" = ")
		if e.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", e.err)))
		} else {
			b.WriteString(resultStyle.Render(e.output))
		}
		b.WriteString("\n")
	}
	if len(m.history) > 0 {
		b.WriteString("\n")
	}

	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("enter evaluate • ↑/↓ history • esc quit"))
	return b.String()
}

func runInteractive(calc *calculator) error {
	p := tea.NewProgram(newCalcModel(calc))
	_, err := p.Run()
	return err
}
