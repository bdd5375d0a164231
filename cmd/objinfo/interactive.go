package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/go-llvm/ffi"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	pathStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	formatStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	detailStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type modelState int

const (
	stateBrowse modelState = iota
	stateAddPath
	stateShowIR
)

type interactiveModel struct {
	lib      ffi.Library
	ir       string
	irErr    error
	files    []fileInfo
	input    textinput.Model
	selected int
	state    modelState
}

type inspectedMsg struct {
	info fileInfo
}

type parsedMsg struct {
	err error
	ir  string
}

func newInteractiveModel(lib ffi.Library, files []string) *interactiveModel {
	ti := textinput.New()
	ti.Placeholder = "path/to/object.o"
	ti.Prompt = "file: "
	ti.Width = 60

	m := &interactiveModel{lib: lib, input: ti, state: stateBrowse}
	for _, f := range files {
		m.files = append(m.files, fileInfo{path: f})
	}
	return m
}

func (m *interactiveModel) Init() tea.Cmd {
	cmds := make([]tea.Cmd, len(m.files))
	for i, f := range m.files {
		cmds[i] = m.inspectCmd(f.path)
	}
	return tea.Batch(cmds...)
}

func (m *interactiveModel) inspectCmd(path string) tea.Cmd {
	return func() tea.Msg {
		return inspectedMsg{info: inspect(m.lib, path)}
	}
}

func (m *interactiveModel) parseCmd(path string) tea.Cmd {
	return func() tea.Msg {
		ir, err := parseModule(m.lib, path)
		return parsedMsg{ir: ir, err: err}
	}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.state == stateAddPath {
			return m.updateInput(msg)
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "up", "k":
			if m.state == stateBrowse && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateBrowse && m.selected < len(m.files)-1 {
				m.selected++
			}

		case "a":
			if m.state == stateBrowse {
				m.state = stateAddPath
				m.input.SetValue("")
				m.input.Focus()
				return m, textinput.Blink
			}

		case "r":
			if m.state == stateBrowse && len(m.files) > 0 {
				return m, m.inspectCmd(m.files[m.selected].path)
			}

		case "enter":
			if m.state == stateBrowse && len(m.files) > 0 {
				m.state = stateShowIR
				m.ir, m.irErr = "", nil
				return m, m.parseCmd(m.files[m.selected].path)
			}

		case "esc":
			if m.state == stateShowIR {
				m.state = stateBrowse
			}
		}

	case inspectedMsg:
		for i := range m.files {
			if m.files[i].path == msg.info.path {
				m.files[i] = msg.info
			}
		}

	case parsedMsg:
		m.ir, m.irErr = msg.ir, msg.err
	}

	return m, nil
}

func (m *interactiveModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		m.input.Blur()
		m.state = stateBrowse
		return m, nil

	case "enter":
		path := strings.TrimSpace(m.input.Value())
		m.input.Blur()
		m.state = stateBrowse
		if path == "" {
			return m, nil
		}
		m.files = append(m.files, fileInfo{path: path})
		m.selected = len(m.files) - 1
		return m, m.inspectCmd(path)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Object Inspector"))
	b.WriteString("\n\n")

	switch m.state {
	case stateBrowse, stateAddPath:
		if len(m.files) == 0 {
			b.WriteString("No files. Press a to add one.\n")
		}
		for i, f := range m.files {
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + f.path))
			} else {
				b.WriteString("  " + pathStyle.Render(f.path))
			}
			b.WriteString(" ")
			b.WriteString(status(f))
			b.WriteString("\n")
		}

		if len(m.files) > 0 {
			b.WriteString("\n")
			b.WriteString(detailStyle.Render(m.detail(m.files[m.selected])))
			b.WriteString("\n")
		}

		b.WriteString("\n")
		if m.state == stateAddPath {
			b.WriteString(m.input.View())
			b.WriteString("\n\n")
			b.WriteString(helpStyle.Render("enter add • esc cancel"))
		} else {
			b.WriteString(helpStyle.Render("↑/↓ select • enter IR • a add • r reload • q quit"))
		}

	case stateShowIR:
		f := m.files[m.selected]
		b.WriteString(fmt.Sprintf("Module of %s:\n\n", pathStyle.Render(f.path)))
		switch {
		case m.irErr != nil:
			b.WriteString(errorStyle.Render("Error: " + describe(m.irErr)))
		case m.ir == "":
			b.WriteString("Parsing...")
		default:
			b.WriteString(m.ir)
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("esc back • q quit"))
	}

	return b.String()
}

func status(f fileInfo) string {
	switch {
	case f.err != nil:
		return errorStyle.Render("error")
	case f.format == "":
		return "..."
	default:
		return formatStyle.Render(f.format)
	}
}

func (m *interactiveModel) detail(f fileInfo) string {
	switch {
	case f.err != nil:
		return errorStyle.Render(describe(f.err))
	case f.format == "":
		return "Inspecting..."
	default:
		return fmt.Sprintf("Format: %s\nSize:   %d bytes", formatStyle.Render(f.format), f.size)
	}
}

func runInteractive(lib ffi.Library, files []string) error {
	p := tea.NewProgram(newInteractiveModel(lib, files), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
