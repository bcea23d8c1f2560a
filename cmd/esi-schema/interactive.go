package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/teqdruid/circt/esi/codec"
	"github.com/teqdruid/circt/hwtype"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#005F87")).
			Padding(0, 1)

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#005F87"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	faultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFB86C"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type modelState int

const (
	stateSelectType modelState = iota
	stateInspect
	stateInputValue
	stateShowResult
)

type interactiveModel struct {
	err      error
	session  *codec.Session
	types    map[string]hwtype.Type
	order    []string
	selected int
	state    modelState
	schema   string
	input    textinput.Model
	result   string
	faults   []codec.Fault
}

func newInteractiveModel(types map[string]hwtype.Type, order []string) *interactiveModel {
	return &interactiveModel{
		session: codec.NewWithDefaults(),
		types:   types,
		order:   order,
		state:   stateSelectType,
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	return nil
}

func (m *interactiveModel) currentType() hwtype.Type {
	return m.types[m.order[m.selected]]
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.state == stateSelectType || msg.String() == "ctrl+c" {
				return m, tea.Quit
			}

		case "up", "k":
			if m.state == stateSelectType && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateSelectType && m.selected < len(m.order)-1 {
				m.selected++
			}

		case "enter":
			switch m.state {
			case stateSelectType:
				m.inspect()
				m.state = stateInspect

			case stateInspect:
				m.prepareInput()
				m.state = stateInputValue

			case stateInputValue:
				m.encode()
				m.state = stateShowResult

			case stateShowResult:
				m.state = stateSelectType
				m.result = ""
				m.faults = nil
				m.err = nil
			}

		case "esc":
			switch m.state {
			case stateInspect:
				m.state = stateSelectType
			case stateInputValue:
				m.state = stateInspect
			case stateShowResult:
				m.state = stateSelectType
				m.result = ""
				m.faults = nil
				m.err = nil
			}
		}
	}

	if m.state == stateInputValue {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *interactiveModel) inspect() {
	typ := m.currentType()
	enc, err := m.session.Encoder(typ)
	if err != nil {
		m.err = err
		m.schema = ""
		return
	}
	var b strings.Builder
	if err := enc.Schema().Write(&b); err != nil {
		m.err = err
		return
	}
	size, err := enc.Schema().Size()
	if err != nil {
		m.err = err
		return
	}
	fmt.Fprintf(&b, "size: %d bits\n", size)
	m.err = nil
	m.schema = b.String()
}

func (m *interactiveModel) prepareInput() {
	ti := textinput.New()
	ti.Placeholder = valuePlaceholder(m.currentType())
	ti.Prompt = "value: "
	ti.Width = 60
	ti.Focus()
	m.input = ti
}

func (m *interactiveModel) encode() {
	typ := m.currentType()
	value, err := parseValue(m.input.Value(), typ)
	if err != nil {
		m.err = err
		return
	}
	enc, err := m.session.Encoder(typ)
	if err != nil {
		m.err = err
		return
	}
	vec, err := enc.Encode(value)
	if err != nil {
		m.err = err
		return
	}
	dec, err := m.session.Decoder(typ)
	if err != nil {
		m.err = err
		return
	}
	out, err := dec.Decode(vec)
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.result = hex.EncodeToString(vec.Bytes()) + "\ndecoded: " + formatValue(out.Value, typ)
	m.faults = out.Faults
}

func (m *interactiveModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("ESI Schema Explorer"))
	b.WriteString("\n\n")

	switch m.state {
	case stateSelectType:
		b.WriteString("Select a type:\n\n")
		for i, name := range m.order {
			line := name + "  " + typeStyle.Render(m.types[name].String())
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter inspect • q quit"))

	case stateInspect:
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			b.WriteString(m.schema)
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("enter encode a value • esc back"))

	case stateInputValue:
		b.WriteString(fmt.Sprintf("Encoding %s\n\n", typeStyle.Render(m.currentType().String())))
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter encode • esc back"))

	case stateShowResult:
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			b.WriteString(resultStyle.Render(m.result))
			for _, f := range m.faults {
				b.WriteString("\n")
				b.WriteString(faultStyle.Render(f.String()))
			}
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter continue • esc back"))
	}

	return b.String()
}

// valuePlaceholder shows the expected input shape for a type.
func valuePlaceholder(t hwtype.Type) string {
	switch ct := hwtype.Canonical(t).(type) {
	case hwtype.Int:
		return "integer"
	case hwtype.Array:
		parts := make([]string, ct.Size)
		for i := range parts {
			parts[i] = "e"
		}
		return strings.Join(parts, ",")
	case hwtype.Struct:
		parts := make([]string, len(ct.Fields))
		for i, f := range ct.Fields {
			parts[i] = f.Name
		}
		return strings.Join(parts, ";")
	}
	return ""
}

func runInteractive(types map[string]hwtype.Type, order []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("interactive mode needs a terminal")
	}
	if len(order) == 0 {
		return fmt.Errorf("no types declared")
	}
	p := tea.NewProgram(newInteractiveModel(types, order), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
