package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/samroche/recyco/pkg/domain"
)

// keyMsg builds the tea.KeyMsg for a key the way the terminal would
// deliver it.
func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
}

func newTestApp() App {
	a := NewApp(nil)
	model, _ := a.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return model.(App)
}

func TestAppTabSwitching(t *testing.T) {
	a := newTestApp()
	if a.view != viewPlay {
		t.Fatalf("expected initial view to be play, got %d", a.view)
	}

	model, _ := a.Update(keyMsg("tab"))
	a = model.(App)
	if a.view != viewGuide {
		t.Errorf("expected view guide after tab, got %d", a.view)
	}

	model, _ = a.Update(keyMsg("tab"))
	a = model.(App)
	if a.view != viewYou {
		t.Errorf("expected view you after second tab, got %d", a.view)
	}

	model, _ = a.Update(keyMsg("tab"))
	a = model.(App)
	if a.view != viewPlay {
		t.Errorf("expected tab to wrap back to play, got %d", a.view)
	}

	model, _ = a.Update(keyMsg("shift+tab"))
	a = model.(App)
	if a.view != viewYou {
		t.Errorf("expected shift+tab to cycle backwards, got %d", a.view)
	}
}

func TestAppForwardsDigitsToPlay(t *testing.T) {
	// Digit keys belong to the play view's card picks; they must reach
	// it through the root model without switching tabs.
	a := newTestApp()
	model, _ := a.Update(rulesLoadedMsg{rules: testPlayRules()})
	a = model.(App)

	model, _ = a.Update(keyMsg("2"))
	a = model.(App)
	if a.view != viewPlay {
		t.Fatalf("pressing 2 on the play tab must not switch views, got %d", a.view)
	}
	if a.play.selected != 1 {
		t.Errorf("expected card 2 picked up, got selected=%d", a.play.selected)
	}

	target := a.play.engine.Hand()[1]
	model, _ = a.Update(keyMsg(binKey(target.Bin)))
	a = model.(App)
	if a.play.engine.Attempts() != 1 {
		t.Errorf("expected the pick to resolve through the root model, got %d attempts", a.play.engine.Attempts())
	}
}

func TestAppHeaderAdoptsSavedTotal(t *testing.T) {
	a := newTestApp()
	model, _ := a.Update(authCheckedMsg{user: &domain.User{Username: "sam", TotalScore: 50}})
	a = model.(App)
	model, _ = a.Update(rulesLoadedMsg{rules: testPlayRules()})
	a = model.(App)

	model, _ = a.Update(scoreSavedMsg{result: &domain.ScoreResult{TotalScore: 51}})
	a = model.(App)

	view := a.View()
	if !strings.Contains(view, "51 pts") {
		t.Errorf("expected header to adopt the server total 51, got:\n%s", view)
	}
	if strings.Contains(view, "50 pts") {
		t.Errorf("expected the stale total gone from the header, got:\n%s", view)
	}
}

func TestAppHeaderLoggedOut(t *testing.T) {
	a := newTestApp()
	model, _ := a.Update(authCheckedMsg{user: nil})
	a = model.(App)

	view := a.View()
	if !strings.Contains(view, "recyco login") {
		t.Errorf("expected login hint in header, got:\n%s", view)
	}
}

func TestAppHeaderLoggedIn(t *testing.T) {
	a := newTestApp()
	model, _ := a.Update(authCheckedMsg{user: &domain.User{Username: "alice", TotalScore: 42}})
	a = model.(App)

	view := a.View()
	if !strings.Contains(view, "@alice") {
		t.Errorf("expected username in header, got:\n%s", view)
	}
	if !strings.Contains(view, "42 pts") {
		t.Errorf("expected total score in header, got:\n%s", view)
	}
}

func TestAppQuitKey(t *testing.T) {
	a := newTestApp()
	_, cmd := a.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatal("expected a command from pressing q")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("expected quit message, got %T", cmd())
	}
}

func TestAppQuitSuppressedWhileEditing(t *testing.T) {
	a := newTestApp()
	a.view = viewGuide
	a.guide.editing = true

	_, cmd := a.Update(keyMsg("q"))
	if cmd != nil {
		if _, ok := cmd().(tea.QuitMsg); ok {
			t.Error("q while editing the search box must not quit")
		}
	}
}
