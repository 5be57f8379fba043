package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/wippyai/wasm-core/runtime"
	"github.com/wippyai/wasm-core/types"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	indexStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// listWindow is how many table entries the types view shows at once.
const listWindow = 20

type inspectModel struct {
	err      error
	table    *types.Table
	mod      *runtime.ModuleInstance
	memTypes []types.MemoryType
	filename string
	verdict  string
	growNote string
	limit    uint64
	input    textinput.Model
	selected int
	memSel   int
	matchOK  bool
	state    modelState
}

type modelState int

const (
	stateTypes modelState = iota
	stateMatch
	stateMemory
)

func newInspectModel(filename string, limit uint64) *inspectModel {
	ti := textinput.New()
	ti.Placeholder = "exp,got"
	ti.Prompt = "match: "
	ti.Width = 20
	return &inspectModel{
		filename: filename,
		limit:    limit,
		input:    ti,
		state:    stateTypes,
	}
}

type loadedMsg struct {
	err      error
	table    *types.Table
	mod      *runtime.ModuleInstance
	memTypes []types.MemoryType
}

func (m *inspectModel) Init() tea.Cmd {
	return m.loadModule
}

func (m *inspectModel) loadModule() tea.Msg {
	data, err := os.ReadFile(m.filename)
	if err != nil {
		return loadedMsg{err: err}
	}

	table, memTypes, err := types.DecodeModuleTypes(data)
	if err != nil {
		return loadedMsg{err: err}
	}

	rt := runtime.New(runtime.Config{HardPageLimit: m.limit})
	mod, err := rt.NewModuleInstance(m.filename, table, memTypes, nil, nil)
	if err != nil {
		return loadedMsg{err: err}
	}

	return loadedMsg{table: table, mod: mod, memTypes: memTypes}
}

func (m *inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.mod != nil {
				m.mod.Close()
			}
			return m, tea.Quit

		case "up", "k":
			switch m.state {
			case stateTypes:
				if m.selected > 0 {
					m.selected--
				}
			case stateMemory:
				if m.memSel > 0 {
					m.memSel--
				}
			}

		case "down", "j":
			switch m.state {
			case stateTypes:
				if m.table != nil && m.selected < m.table.Len()-1 {
					m.selected++
				}
			case stateMemory:
				if m.memSel < len(m.memTypes)-1 {
					m.memSel++
				}
			}

		case "tab":
			switch m.state {
			case stateTypes:
				if len(m.memTypes) > 0 {
					m.state = stateMemory
				}
			case stateMemory:
				m.state = stateTypes
			}

		case "m":
			if m.state == stateTypes {
				m.state = stateMatch
				m.verdict = ""
				m.input.SetValue("")
				m.input.Focus()
			}

		case "g":
			if m.state == stateMemory && m.mod != nil {
				mem := m.mod.Memory(m.memSel)
				before := mem.Pages()
				if mem.GrowPage(1) {
					m.growNote = fmt.Sprintf("grow 1: %d -> %d pages", before, mem.Pages())
				} else {
					m.growNote = fmt.Sprintf("grow 1: refused at %d pages", before)
				}
			}

		case "enter":
			if m.state == stateMatch {
				m.evaluate()
			}

		case "esc":
			if m.state == stateMatch {
				m.state = stateTypes
				m.verdict = ""
				m.input.Blur()
			}
		}

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.table = msg.table
		m.mod = msg.mod
		m.memTypes = msg.memTypes
	}

	if m.state == stateMatch {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *inspectModel) evaluate() {
	exp, got, err := parseMatchPair(m.input.Value(), m.table.Len())
	if err != nil {
		m.verdict = err.Error()
		m.matchOK = false
		return
	}
	if types.Match(m.table, exp, m.table, got) {
		m.verdict = fmt.Sprintf("%d matches %d: %s <- %s", exp, got, m.table.Get(exp), m.table.Get(got))
		m.matchOK = true
	} else {
		m.verdict = fmt.Sprintf("%d does not match %d", exp, got)
		m.matchOK = false
	}
}

func (m *inspectModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}

	if m.table == nil {
		return "Loading module..."
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("WASM Inspector"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString("\n\n")

	switch m.state {
	case stateTypes, stateMatch:
		b.WriteString(fmt.Sprintf("Type table (%d entries):\n\n", m.table.Len()))
		start := 0
		if m.selected >= listWindow {
			start = m.selected - listWindow + 1
		}
		end := start + listWindow
		if end > m.table.Len() {
			end = m.table.Len()
		}
		for i := start; i < end; i++ {
			line := indexStyle.Render(fmt.Sprintf("%3d", i)) + ": " + typeStyle.Render(m.table.Get(uint32(i)).String())
			if i == m.selected && m.state == stateTypes {
				line = selectedStyle.Render(fmt.Sprintf("> %3d: %s", i, m.table.Get(uint32(i))))
			} else {
				line = "  " + line
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")

		if m.state == stateMatch {
			b.WriteString(m.input.View())
			b.WriteString("\n")
			if m.verdict != "" {
				if m.matchOK {
					b.WriteString(resultStyle.Render(m.verdict))
				} else {
					b.WriteString(errorStyle.Render(m.verdict))
				}
				b.WriteString("\n")
			}
			b.WriteString("\n")
			b.WriteString(helpStyle.Render("enter evaluate • esc back"))
		} else {
			b.WriteString(helpStyle.Render("↑/↓ select • m match • tab memory • q quit"))
		}

	case stateMemory:
		b.WriteString(fmt.Sprintf("Memories (%d):\n\n", len(m.memTypes)))
		for i := range m.memTypes {
			mem := m.mod.Memory(i)
			line := fmt.Sprintf("%d: pages=%d bound=%d limit=%d", i, mem.Pages(), mem.BoundIdx(), mem.PageLimit())
			if i == m.memSel {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		if m.growNote != "" {
			b.WriteString(resultStyle.Render(m.growNote))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • g grow • tab types • q quit"))
	}

	return b.String()
}

func runInteractive(filename string, limit uint64) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("interactive mode requires a terminal")
	}
	p := tea.NewProgram(newInspectModel(filename, limit), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
