package registry

import (
	"testing"
	"time"

	"github.com/vovakirdan/blocks/internal/core"
)

type stubGame struct {
	id    string
	steps int
}

func (g *stubGame) ID() string { return g.id }
func (g *stubGame) Title() string { return "Stub " + g.id }
func (g *stubGame) Reset(_ core.RuntimeConfig) { g.steps = 0 }
func (g *stubGame) Render(_ *core.Screen) {}
func (g *stubGame) State() core.GameState { return core.GameState{Score: g.steps} }

func (g *stubGame) Step(_ core.InputFrame, _ time.Duration) core.StepResult {
	g.steps++
	return core.StepResult{State: g.State()}
}

func TestRegisterAndCreate(t *testing.T) {
	Register("stub_create", func() Game { return &stubGame{id: "stub_create"} })

	if !Exists("stub_create") {
		t.Fatal("Exists() = false after Register")
	}

	g, err := Create("stub_create")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if g.ID() != "stub_create" {
		t.Errorf("ID() = %q, want stub_create", g.ID())
	}

	// Each Create returns a fresh instance.
	g.Step(core.NewInputFrame(), time.Millisecond)
	g2, _ := Create("stub_create")
	if g2.State().Score != 0 {
		t.Error("Create returned a shared instance")
	}
}

func TestCreateUnknown(t *testing.T) {
	if _, err := Create("no_such_game"); err == nil {
		t.Error("Create(unknown) = nil error, want error")
	}
	if Exists("no_such_game") {
		t.Error("Exists(unknown) = true")
	}
}

func TestListSortedWithTitles(t *testing.T) {
	Register("stub_list_b", func() Game { return &stubGame{id: "stub_list_b"} })
	Register("stub_list_a", func() Game { return &stubGame{id: "stub_list_a"} })

	var ids []string
	for _, info := range List() {
		if info.ID == "stub_list_a" && info.Title != "Stub stub_list_a" {
			t.Errorf("Title = %q, want %q", info.Title, "Stub stub_list_a")
		}
		ids = append(ids, info.ID)
	}

	posA, posB := -1, -1
	for i, id := range ids {
		switch id {
		case "stub_list_a":
			posA = i
		case "stub_list_b":
			posB = i
		}
	}
	if posA < 0 || posB < 0 || posA > posB {
		t.Errorf("List() = %v, want stub_list_a before stub_list_b", ids)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("stub_dup", func() Game { return &stubGame{id: "stub_dup"} })

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register did not panic")
		}
	}()
	Register("stub_dup", func() Game { return &stubGame{id: "stub_dup"} })
}
