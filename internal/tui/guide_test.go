package tui

import (
	"errors"
	"strings"
	"testing"

	"github.com/samroche/recyco/pkg/domain"
)

func testGuideRules() domain.RuleSet {
	return domain.RuleSet{
		"jaune": {
			{Name: "Bouteille en plastique", Icon: "🍾", Bin: "jaune",
				Description: "Videz-la avant de la jeter.",
				Tip:         "Inutile de la rincer.",
				Keywords:    []string{"bouteille", "plastique"}},
		},
		"verte": {
			{Name: "Bocal en verre", Icon: "🫙", Bin: "verte",
				Keywords: []string{"bocal", "verre"}},
		},
		"compost": {
			{Name: "Épluchures", Icon: "🥔", Bin: "compost",
				Keywords: []string{"epluchures"}},
		},
	}
}

func newTestGuideModel() guideModel {
	m := newGuideModel(nil)
	m, _ = m.Update(guideLoadedMsg{rules: testGuideRules()})
	m.width = 80
	m.height = 24
	return m
}

func typeString(m guideModel, s string) guideModel {
	for _, r := range s {
		m, _ = m.Update(keyMsg(string(r)))
	}
	return m
}

func TestGuideLoadError(t *testing.T) {
	m := newGuideModel(nil)
	m, _ = m.Update(guideLoadedMsg{err: errors.New("connection refused")})
	if !strings.Contains(m.View(), "connection refused") {
		t.Errorf("expected load error in view, got:\n%s", m.View())
	}
}

func TestGuideSearchRendersResults(t *testing.T) {
	m := newTestGuideModel()
	m, _ = m.Update(keyMsg("/"))
	if !m.editing {
		t.Fatal("expected editing mode after /")
	}
	m = typeString(m, "bouteille")
	m, _ = m.Update(keyMsg("enter"))

	if m.editing {
		t.Error("expected editing to end on enter")
	}
	view := m.View()
	if !strings.Contains(view, "Bouteille en plastique") {
		t.Errorf("expected the matching item in view, got:\n%s", view)
	}
	if !strings.Contains(view, "jaune") {
		t.Errorf("expected the item's bin in view, got:\n%s", view)
	}
}

func TestGuideSearchNoResults(t *testing.T) {
	m := newTestGuideModel()
	m, _ = m.Update(keyMsg("/"))
	m = typeString(m, "licorne")
	m, _ = m.Update(keyMsg("enter"))

	if !strings.Contains(m.View(), "no results") {
		t.Errorf("expected explicit no-results state, got:\n%s", m.View())
	}
}

func TestGuideSearchIsExactKeyword(t *testing.T) {
	m := newTestGuideModel()
	m, _ = m.Update(keyMsg("/"))
	m = typeString(m, "bout")
	m, _ = m.Update(keyMsg("enter"))

	if !strings.Contains(m.View(), "no results") {
		t.Errorf("a keyword prefix must not match, got:\n%s", m.View())
	}
}

func TestGuideEscClearsSearch(t *testing.T) {
	m := newTestGuideModel()
	m, _ = m.Update(keyMsg("/"))
	m = typeString(m, "verre")
	m, _ = m.Update(keyMsg("enter"))
	m, _ = m.Update(keyMsg("esc"))

	if m.query != "" || m.searched {
		t.Errorf("expected search cleared, got query=%q searched=%v", m.query, m.searched)
	}
}

func TestGuideBrowseBins(t *testing.T) {
	m := newTestGuideModel()
	m, _ = m.Update(keyMsg("b"))
	if m.mode != guideBins {
		t.Fatalf("expected bin browse mode, got %d", m.mode)
	}
	view := m.View()
	// Playable bins first, informational bins after
	for _, bin := range []string{"jaune", "verte", "compost"} {
		if !strings.Contains(view, bin) {
			t.Errorf("expected bin %q listed, got:\n%s", bin, view)
		}
	}

	m, _ = m.Update(keyMsg("enter"))
	if m.mode != guideItems {
		t.Fatalf("expected items mode after enter, got %d", m.mode)
	}
	if !strings.Contains(m.View(), "Bouteille en plastique") {
		t.Errorf("expected the bin's items, got:\n%s", m.View())
	}
}

func TestGuideDetailShowsTip(t *testing.T) {
	m := newTestGuideModel()
	m, _ = m.Update(keyMsg("/"))
	m = typeString(m, "bouteille")
	m, _ = m.Update(keyMsg("enter"))
	m, _ = m.Update(keyMsg("enter"))

	if m.mode != guideDetail {
		t.Fatalf("expected detail mode, got %d", m.mode)
	}
	view := m.View()
	if !strings.Contains(view, "Videz-la avant de la jeter.") {
		t.Errorf("expected description in detail, got:\n%s", view)
	}
	if !strings.Contains(view, "Inutile de la rincer.") {
		t.Errorf("expected tip in detail, got:\n%s", view)
	}

	m, _ = m.Update(keyMsg("esc"))
	if m.mode != guideSearch {
		t.Errorf("expected esc to return to search, got %d", m.mode)
	}
}

func TestGuideCopyResult(t *testing.T) {
	m := newTestGuideModel()
	m, _ = m.Update(copyResultMsg{})
	if !strings.Contains(m.View(), "copied") {
		t.Errorf("expected copy confirmation, got:\n%s", m.View())
	}

	m, _ = m.Update(copyResultMsg{err: errors.New("no clipboard")})
	if !strings.Contains(m.View(), "copy failed") {
		t.Errorf("expected copy failure notice, got:\n%s", m.View())
	}
}
