package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/coin-catcher/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	keys := DefaultKeyMap()

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want core.Action
	}{
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft},
		{"a", runeKey('a'), core.ActionLeft},
		{"h", runeKey('h'), core.ActionLeft},
		{"right arrow", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight},
		{"d", runeKey('d'), core.ActionRight},
		{"l", runeKey('l'), core.ActionRight},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionStart},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionStart},
		{"p", runeKey('p'), core.ActionPause},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack},
		{"r", runeKey('r'), core.ActionRestart},
		{"q", runeKey('q'), core.ActionQuit},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{"m is host-level", runeKey('m'), core.ActionNone},
		{"ctrl+s is host-level", tea.KeyMsg{Type: tea.KeyCtrlS}, core.ActionNone},
		{"unbound", runeKey('z'), core.ActionNone},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := keys.MapKey(tc.msg); got != tc.want {
				t.Errorf("MapKey(%q) = %v, expected %v", tc.msg.String(), got, tc.want)
			}
		})
	}
}

func TestMapMouse(t *testing.T) {
	tests := []struct {
		name    string
		msg     tea.MouseMsg
		want    bool
		wantCol int
	}{
		{"press", tea.MouseMsg{X: 12, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress}, true, 12},
		{"drag", tea.MouseMsg{X: 30, Button: tea.MouseButtonLeft, Action: tea.MouseActionMotion}, true, 30},
		{"release", tea.MouseMsg{X: 5, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease}, false, 0},
		{"right button", tea.MouseMsg{X: 5, Button: tea.MouseButtonRight, Action: tea.MouseActionPress}, false, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			frame := core.NewInputFrame()
			if got := MapMouse(tc.msg, &frame); got != tc.want {
				t.Fatalf("MapMouse() = %v, expected %v", got, tc.want)
			}
			if frame.HasPointer != tc.want || frame.PointerX != tc.wantCol {
				t.Errorf("frame pointer = %v/%d", frame.HasPointer, frame.PointerX)
			}
		})
	}
}
