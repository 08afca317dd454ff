package tui

import (
	"reflect"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func choices() []TechChoice {
	return []TechChoice{
		{ID: "react", Description: "React front-end rules"},
		{ID: "go", Description: "Go backend rules"},
		{ID: "python"},
	}
}

func press(m TechPickerModel, keys ...string) TechPickerModel {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "space":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(TechPickerModel)
	}
	return m
}

func TestTechPickerSelection(t *testing.T) {
	m := NewTechPickerModel(choices())

	m = press(m, "space", "down", "down", "space", "enter")

	result := m.Result()
	if result.Action != TechPickerActionConfirm {
		t.Fatalf("Action = %v, want confirm", result.Action)
	}
	if !reflect.DeepEqual(result.Technologies, []string{"react", "python"}) {
		t.Errorf("Technologies = %v, want [react python]", result.Technologies)
	}
}

func TestTechPickerToggleOff(t *testing.T) {
	m := NewTechPickerModel(choices())

	m = press(m, "space", "space", "down", "space", "enter")

	result := m.Result()
	if !reflect.DeepEqual(result.Technologies, []string{"go"}) {
		t.Errorf("Technologies = %v, want [go]", result.Technologies)
	}
}

func TestTechPickerConfirmRequiresSelection(t *testing.T) {
	m := NewTechPickerModel(choices())

	m = press(m, "enter")
	if m.Result().Action != TechPickerActionNone {
		t.Error("confirming with nothing selected must not finish the picker")
	}
}

func TestTechPickerQuit(t *testing.T) {
	m := NewTechPickerModel(choices())

	m = press(m, "space", "q")
	if m.Result().Action != TechPickerActionNone {
		t.Error("quit must not produce a selection")
	}
}

func TestTechPickerCursorBounds(t *testing.T) {
	m := NewTechPickerModel(choices())

	m = press(m, "up", "up")
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want 0", m.cursor)
	}

	m = press(m, "down", "down", "down", "down")
	if m.cursor != 2 {
		t.Errorf("cursor = %d, want 2", m.cursor)
	}
}
