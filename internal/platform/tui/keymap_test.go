package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/blocks/internal/core"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestGameKeyMapMapKey(t *testing.T) {
	keys := DefaultGameKeyMap()
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want core.Action
	}{
		{"p pauses", runeKey("p"), core.ActionPause},
		{"esc pauses", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionPause},
		{"r restarts", runeKey("r"), core.ActionRestart},
		{"q quits", runeKey("q"), core.ActionQuit},
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{"other keys ignored", runeKey("x"), core.ActionNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := keys.MapKey(tt.msg); got != tt.want {
				t.Errorf("MapKey() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMapMouse(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.MouseMsg
		want bool
	}{
		{"left press", tea.MouseMsg{X: 3, Y: 4, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}, true},
		{"left release", tea.MouseMsg{X: 3, Y: 4, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}, false},
		{"right press", tea.MouseMsg{X: 3, Y: 4, Action: tea.MouseActionPress, Button: tea.MouseButtonRight}, false},
		{"motion", tea.MouseMsg{X: 3, Y: 4, Action: tea.MouseActionMotion, Button: tea.MouseButtonNone}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame := core.NewInputFrame()
			if got := MapMouse(tt.msg, &frame); got != tt.want {
				t.Errorf("MapMouse() = %v, want %v", got, tt.want)
			}
			if tt.want && (len(frame.Clicks) != 1 || frame.Clicks[0] != (core.Point{X: 3, Y: 4})) {
				t.Errorf("clicks = %v, want [{3 4}]", frame.Clicks)
			}
			if !tt.want && len(frame.Clicks) != 0 {
				t.Errorf("clicks = %v, want none", frame.Clicks)
			}
		})
	}
}

func TestHelpBindingsHaveText(t *testing.T) {
	for _, b := range DefaultGameKeyMap().ShortHelp() {
		if b.Help().Key == "" || b.Help().Desc == "" {
			t.Errorf("binding %v has no help text", b.Keys())
		}
	}
	for _, b := range DefaultMenuKeyMap().ShortHelp() {
		if b.Help().Key == "" || b.Help().Desc == "" {
			t.Errorf("binding %v has no help text", b.Keys())
		}
	}
}
