package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/blocks/internal/core"
)

func TestRenderScreenPlain(t *testing.T) {
	s := core.NewScreen(4, 2)
	s.DrawText(0, 0, "ab")
	s.DrawText(1, 1, "cd")

	got := RenderScreen(s)
	lines := strings.Split(got, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if !strings.Contains(lines[0], "ab") || !strings.Contains(lines[1], "cd") {
		t.Errorf("RenderScreen() = %q", got)
	}
}

func TestRenderScreenKeepsColoredText(t *testing.T) {
	s := core.NewScreen(6, 1)
	s.DrawTextColored(0, 0, "RR", core.ColorRed)
	s.DrawTextColored(2, 0, "GG", core.ColorGreen)
	s.DrawText(4, 0, "..")

	got := RenderScreen(s)
	for _, want := range []string{"RR", "GG", ".."} {
		if !strings.Contains(got, want) {
			t.Errorf("RenderScreen() = %q, missing %q", got, want)
		}
	}
}

func TestStyleForUnknownColor(t *testing.T) {
	if got := styleFor(core.Color(200)).Render("x"); got != "x" {
		t.Errorf("unknown color rendered as %q, want plain text", got)
	}
}
