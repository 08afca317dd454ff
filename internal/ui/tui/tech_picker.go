// Package tui provides interactive terminal components using BubbleTea.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// TechPickerAction represents the outcome of the technology picker.
type TechPickerAction int

const (
	// TechPickerActionNone means the user quit without confirming.
	TechPickerActionNone TechPickerAction = iota
	// TechPickerActionConfirm means the user confirmed a selection.
	TechPickerActionConfirm
)

// TechChoice is one selectable technology.
type TechChoice struct {
	ID          string
	Description string
}

// TechPickerResult contains the confirmed selection, in display order.
type TechPickerResult struct {
	Action       TechPickerAction
	Technologies []string
}

type techPickerKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Toggle  key.Binding
	Confirm key.Binding
	Quit    key.Binding
}

func defaultTechPickerKeyMap() techPickerKeyMap {
	return techPickerKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "x"),
			key.WithHelp("space", "toggle"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// TechPickerModel is the BubbleTea model for technology selection.
type TechPickerModel struct {
	choices  []TechChoice
	selected map[int]bool
	cursor   int
	keys     techPickerKeyMap
	result   TechPickerResult
	quitting bool
}

var techPickerStyles = struct {
	Title       lipgloss.Style
	Item        lipgloss.Style
	Cursor      lipgloss.Style
	Description lipgloss.Style
	Marked      lipgloss.Style
	Help        lipgloss.Style
}{
	Title:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")).Padding(0, 1),
	Item:        lipgloss.NewStyle().Padding(0, 2),
	Cursor:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 2),
	Description: lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 4),
	Marked:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2")),
	Help:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
}

// NewTechPickerModel creates a picker over the available technologies.
func NewTechPickerModel(choices []TechChoice) TechPickerModel {
	return TechPickerModel{
		choices:  choices,
		selected: make(map[int]bool),
		keys:     defaultTechPickerKeyMap(),
	}
}

// Init implements tea.Model.
func (m TechPickerModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m TechPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < len(m.choices)-1 {
			m.cursor++
		}

	case key.Matches(keyMsg, m.keys.Toggle):
		m.selected[m.cursor] = !m.selected[m.cursor]

	case key.Matches(keyMsg, m.keys.Confirm):
		var picked []string
		for i, choice := range m.choices {
			if m.selected[i] {
				picked = append(picked, choice.ID)
			}
		}
		if len(picked) == 0 {
			// Confirming nothing makes no sense; ignore.
			return m, nil
		}
		m.result = TechPickerResult{
			Action:       TechPickerActionConfirm,
			Technologies: picked,
		}
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// View implements tea.Model.
func (m TechPickerModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(techPickerStyles.Title.Render("Select technologies to install"))
	b.WriteString("\n\n")

	for i, choice := range m.choices {
		mark := "[ ]"
		if m.selected[i] {
			mark = techPickerStyles.Marked.Render("[x]")
		}
		line := mark + " " + choice.ID
		if i == m.cursor {
			b.WriteString(techPickerStyles.Cursor.Render("> " + line))
		} else {
			b.WriteString(techPickerStyles.Item.Render("  " + line))
		}
		b.WriteString("\n")
		if choice.Description != "" {
			b.WriteString(techPickerStyles.Description.Render(choice.Description))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(techPickerStyles.Help.Render("↑/↓ navigate • space toggle • enter confirm • q quit"))
	return b.String()
}

// Result returns the result of the user interaction.
func (m TechPickerModel) Result() TechPickerResult {
	return m.result
}

// RunTechPicker runs the interactive technology picker.
func RunTechPicker(choices []TechChoice) (TechPickerResult, error) {
	finalModel, err := tea.NewProgram(NewTechPickerModel(choices), tea.WithAltScreen()).Run()
	if err != nil {
		return TechPickerResult{}, err
	}
	if m, ok := finalModel.(TechPickerModel); ok {
		return m.Result(), nil
	}
	return TechPickerResult{}, nil
}
