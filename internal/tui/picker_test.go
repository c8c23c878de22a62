package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(p *Picker, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = p.Update(key(k))
	}
	return cmd
}

func TestPickerChoosesPreset(t *testing.T) {
	p := NewPicker()
	if !strings.Contains(p.View(), "collide") {
		t.Fatal("menu should list presets")
	}

	// presets are sorted: collide, honey, ink, smoke, still
	send(p, "down", "enter")
	if p.stage != stageConfig || p.selected != "honey" {
		t.Fatalf("stage = %v, selected = %q", p.stage, p.selected)
	}

	send(p, "down", "enter")
	for range p.editBuf {
		send(p, "backspace")
	}
	send(p, "0", ".", "0", "5", "enter")
	if p.err != nil {
		t.Fatalf("edit failed: %v", p.err)
	}

	if cmd := send(p, "s"); cmd == nil {
		t.Fatal("start should quit the picker")
	}
	name, cfg := p.Result()
	if name != "honey" || cfg == nil || cfg.Params.Dt != 0.05 {
		t.Errorf("result = %q, %+v", name, cfg)
	}
}

func TestPickerRejectsInvalidValue(t *testing.T) {
	p := NewPicker()
	send(p, "enter", "enter")
	if !p.editing {
		t.Fatal("second enter should open the size field")
	}
	for range p.editBuf {
		send(p, "backspace")
	}
	send(p, "0", "enter")
	if p.err == nil {
		t.Fatal("size 0 should be rejected")
	}
	if cmd := send(p, "s"); cmd != nil {
		t.Error("start with an invalid config should not quit")
	}
	if !strings.Contains(p.View(), "size") {
		t.Error("config view should list fields")
	}
}

func TestPickerCancel(t *testing.T) {
	p := NewPicker()
	send(p, "enter", "esc")
	if p.stage != stageMenu {
		t.Fatal("esc should return to the menu")
	}
	send(p, "q")
	if name, cfg := p.Result(); name != "" || cfg != nil {
		t.Errorf("canceled picker returned %q, %v", name, cfg)
	}
}
