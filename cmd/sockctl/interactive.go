//go:build unix

package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/wippyai/socketlib/errors"
	"github.com/wippyai/socketlib/internal/config"
	"github.com/wippyai/socketlib/resource"
	"github.com/wippyai/socketlib/socket"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	addrStyle = lipgloss.NewStyle().
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

const (
	fieldFamily = iota
	fieldProtocol
	fieldAddress
	fieldPort
	numFields
)

// focusList is the focus index of the bound socket list.
const focusList = numFields

type boundEntry struct {
	desc   string
	handle resource.Handle
}

type interactiveModel struct {
	err      error
	sockets  *resource.Table[*socket.Socket]
	result   string
	inputs   []textinput.Model
	bound    []boundEntry
	selected int
	focusIdx int
}

func newInteractiveModel() *interactiveModel {
	m := &interactiveModel{
		sockets: resource.NewTable[*socket.Socket](),
		inputs:  make([]textinput.Model, numFields),
	}
	fields := []struct {
		prompt, value, placeholder string
	}{
		{"family:   ", config.DefaultFamily, "inet | inet6 | unix"},
		{"protocol: ", config.DefaultProtocol, "tcp | udp"},
		{"address:  ", "127.0.0.1", "a.b.c.d"},
		{"port:     ", "0", "0-65535"},
	}
	for i, f := range fields {
		ti := textinput.New()
		ti.Prompt = f.prompt
		ti.Placeholder = f.placeholder
		ti.SetValue(f.value)
		ti.Width = 24
		m.inputs[i] = ti
	}
	m.inputs[fieldFamily].Focus()
	return m
}

type bindResultMsg struct {
	err   error
	bound *boundEntry
}

func (m *interactiveModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.sockets.Close()
			return m, tea.Quit

		case "q":
			if m.focusIdx == focusList {
				m.sockets.Close()
				return m, tea.Quit
			}

		case "tab", "shift+tab":
			delta := 1
			if msg.String() == "shift+tab" {
				delta = numFields
			}
			m.setFocus((m.focusIdx + delta) % (numFields + 1))
			return m, nil

		case "up", "k":
			if m.focusIdx == focusList && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.focusIdx == focusList && m.selected < len(m.bound)-1 {
				m.selected++
			}

		case "d":
			if m.focusIdx == focusList {
				m.closeSelected()
				return m, nil
			}

		case "enter":
			if m.focusIdx != focusList {
				entry, err := m.formEntry()
				if err != nil {
					m.err, m.result = err, ""
					return m, nil
				}
				return m, m.bind(entry)
			}
		}

	case bindResultMsg:
		m.err, m.result = msg.err, ""
		if msg.bound != nil {
			m.bound = append(m.bound, *msg.bound)
			m.result = "bound " + msg.bound.desc
		}
		return m, nil
	}

	if m.focusIdx < numFields {
		var cmd tea.Cmd
		m.inputs[m.focusIdx], cmd = m.inputs[m.focusIdx].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *interactiveModel) setFocus(idx int) {
	if m.focusIdx < numFields {
		m.inputs[m.focusIdx].Blur()
	}
	m.focusIdx = idx
	if idx < numFields {
		m.inputs[idx].Focus()
	}
}

func (m *interactiveModel) formEntry() (config.BindEntry, error) {
	port, err := strconv.ParseUint(strings.TrimSpace(m.inputs[fieldPort].Value()), 10, 16)
	if err != nil {
		return config.BindEntry{}, errors.Wrap("port", errors.KindInvalidInput, err, "must be a number in 0-65535")
	}
	entry := config.BindEntry{
		Name:     fmt.Sprintf("bind[%d]", len(m.bound)),
		Family:   m.inputs[fieldFamily].Value(),
		Protocol: m.inputs[fieldProtocol].Value(),
		Address:  m.inputs[fieldAddress].Value(),
		Port:     int(port),
	}
	return entry, config.ValidateEntry(entry)
}

func (m *interactiveModel) bind(entry config.BindEntry) tea.Cmd {
	sockets := m.sockets
	return func() tea.Msg {
		s, local, err := openAndBind(entry)
		if err != nil {
			return bindResultMsg{err: err}
		}
		h, err := sockets.Insert(s)
		if err != nil {
			_ = s.Close()
			return bindResultMsg{err: err}
		}
		return bindResultMsg{bound: &boundEntry{
			handle: h,
			desc:   fmt.Sprintf("#%d %s/%s %s", h, s.Family(), s.Protocol(), local),
		}}
	}
}

func (m *interactiveModel) closeSelected() {
	if len(m.bound) == 0 {
		return
	}
	entry := m.bound[m.selected]
	if err := m.sockets.Remove(entry.handle); err != nil {
		m.err, m.result = err, ""
	} else {
		m.err, m.result = nil, "closed "+entry.desc
	}
	m.bound = append(m.bound[:m.selected], m.bound[m.selected+1:]...)
	if m.selected >= len(m.bound) && m.selected > 0 {
		m.selected--
	}
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("sockctl"))
	b.WriteString("\n\n")

	for i, input := range m.inputs {
		b.WriteString(input.View())
		if i == fieldFamily || i == fieldProtocol {
			b.WriteString(" ")
			b.WriteString(typeStyle.Render(input.Placeholder))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(fmt.Sprintf("Bound sockets (%d):\n", len(m.bound)))
	for i, e := range m.bound {
		line := "  " + e.desc
		if m.focusIdx == focusList && i == m.selected {
			b.WriteString(selectedStyle.Render("> " + e.desc))
		} else {
			b.WriteString(addrStyle.Render(line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n\n")
	case m.result != "":
		b.WriteString(resultStyle.Render(m.result))
		b.WriteString("\n\n")
	}

	if m.focusIdx == focusList {
		b.WriteString(helpStyle.Render("↑/↓ select • d close • tab form • q quit"))
	} else {
		b.WriteString(helpStyle.Render("tab next field • enter bind • esc quit"))
	}
	return b.String()
}

func runInteractive() error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("interactive mode needs a terminal")
	}
	m := newInteractiveModel()
	defer m.sockets.Close()
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
