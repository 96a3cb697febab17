package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/samroche/recyco/internal/game"
	"github.com/samroche/recyco/pkg/client"
	"github.com/samroche/recyco/pkg/domain"
)

// rulesLoadedMsg carries the sorting-rules dataset the play view boots on.
type rulesLoadedMsg struct {
	rules domain.RuleSet
	err   error
}

// scoreSavedMsg is the result of a save. skipped means the session had no
// points and no request was made.
type scoreSavedMsg struct {
	result  *domain.ScoreResult
	skipped bool
	err     error
}

// playModel is the sorting game: a seven-card hand, a cursor, and the
// tap-tap flow where a card is selected first and a bin key resolves it.
type playModel struct {
	client *client.Client
	engine *game.Engine

	user       *domain.User
	totalScore int

	cursor   int
	selected int // index of the picked-up card, -1 when none
	feedback string
	status   string
	loading  bool
	saving   bool
	err      error

	width  int
	height int
}

func newPlayModel(c *client.Client) playModel {
	return playModel{client: c, selected: -1, loading: true}
}

func (m playModel) Init() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		rules, err := c.Rules(context.Background())
		return rulesLoadedMsg{rules: rules, err: err}
	}
}

// sessionPoints exposes the unsaved tally so the header can show a live
// total without reaching into the engine.
func (m playModel) sessionPoints() int {
	if m.engine == nil {
		return 0
	}
	return m.engine.Points()
}

func (m playModel) helpKeys() string {
	if m.selected >= 0 {
		return helpEntry("j/v/b", "bin") + "  " + helpEntry("esc", "put back")
	}
	return helpEntry("h/l", "move") + "  " +
		helpEntry("enter", "pick up") + "  " +
		helpEntry("1-7", "pick") + "  " +
		helpEntry("s", "save")
}

func (m playModel) Update(msg tea.Msg) (playModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case authCheckedMsg:
		m.user = msg.user
		if msg.user != nil {
			m.totalScore = msg.user.TotalScore
		}
		return m, nil

	case rulesLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.engine = game.New(game.PlayablePool(msg.rules))
		return m, nil

	case scoreSavedMsg:
		m.saving = false
		switch {
		case msg.skipped:
			m.status = infoStyle.Render("nothing to save yet — sort some items first")
		case msg.err != nil:
			if sessionExpired(msg.err) {
				m.status = errorStyle.Render(loginHint)
			} else {
				m.status = errorStyle.Render("save failed: " + msg.err.Error())
			}
		default:
			m.totalScore = msg.result.TotalScore
			m.engine.ResetSession()
			m.status = successStyle.Render(fmt.Sprintf("saved! total score: %d pts", msg.result.TotalScore))
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg.String())
	}
	return m, nil
}

func (m playModel) handleKey(key string) (playModel, tea.Cmd) {
	if m.engine == nil {
		return m, nil
	}
	hand := m.engine.Hand()

	// A card is picked up: bin keys drop it, esc puts it back, and
	// picking another card moves the selection (single slot).
	if m.selected >= 0 {
		switch key {
		case "j":
			return m.resolveSelected(domain.BinJaune)
		case "v":
			return m.resolveSelected(domain.BinVerte)
		case "b":
			return m.resolveSelected(domain.BinBleue)
		case "esc":
			m.selected = -1
		case "s":
			m.status = infoStyle.Render("put the card down first (esc), then save")
		case "1", "2", "3", "4", "5", "6", "7":
			idx := int(key[0] - '1')
			if idx < len(hand) {
				m.cursor = idx
				m.selected = idx
			}
		}
		return m, nil
	}

	switch key {
	case "h", "left":
		if m.cursor > 0 {
			m.cursor--
		}
	case "l", "right":
		if m.cursor < len(hand)-1 {
			m.cursor++
		}
	case "enter", " ":
		if m.cursor < len(hand) {
			m.selected = m.cursor
		}
	case "1", "2", "3", "4", "5", "6", "7":
		idx := int(key[0] - '1')
		if idx < len(hand) {
			m.cursor = idx
			m.selected = idx
		}
	case "s":
		return m.save()
	}
	return m, nil
}

// resolveSelected drops the picked-up card into a bin. Both selection
// paths (cursor+enter and the digit shortcut) land here, so they cannot
// diverge in how the tally moves.
func (m playModel) resolveSelected(bin string) (playModel, tea.Cmd) {
	hand := m.engine.Hand()
	if m.selected >= len(hand) {
		m.selected = -1
		return m, nil
	}
	item := hand[m.selected]
	out := m.engine.Resolve(item.Bin, bin, item.Name)
	m.selected = -1
	if m.cursor >= len(m.engine.Hand()) {
		m.cursor = max(len(m.engine.Hand())-1, 0)
	}

	if out.Correct {
		m.feedback = successStyle.Render(fmt.Sprintf("✓ %s → poubelle %s (+1)", out.Item, out.CorrectBin))
	} else {
		m.feedback = errorStyle.Render(fmt.Sprintf("✗ %s → poubelle %s", out.Item, out.CorrectBin))
	}
	return m, nil
}

// save submits the session tally. A zero-point session never hits the
// network, and a save already in flight swallows the keypress.
func (m playModel) save() (playModel, tea.Cmd) {
	if m.saving {
		return m, nil
	}
	if m.engine.Points() == 0 {
		return m, func() tea.Msg { return scoreSavedMsg{skipped: true} }
	}
	m.saving = true
	m.status = dimStyle.Render("saving…")
	c := m.client
	report := m.engine.Report()
	return m, func() tea.Msg {
		result, err := c.SubmitScore(context.Background(), report)
		return scoreSavedMsg{result: result, err: err}
	}
}

func (m playModel) View() string {
	var b strings.Builder
	b.WriteString("\n")

	if m.loading {
		b.WriteString(dimStyle.Render(" loading sorting rules…"))
		return b.String()
	}
	if m.err != nil {
		b.WriteString(errorStyle.Render(" could not load sorting rules: " + m.err.Error()))
		return b.String()
	}

	hand := m.engine.Hand()
	b.WriteString(sectionHeaderStyle.Render(" Sort each item into its bin"))
	b.WriteString("\n\n")

	for i, item := range hand {
		label := fmt.Sprintf(" %d  %s %s", i+1, item.Icon, truncStr(item.Name, 40))
		switch {
		case i == m.selected:
			b.WriteString(selectedRowBg.Render(selectedStyle.Render("▸" + label)))
		case i == m.cursor:
			b.WriteString(selectedStyle.Render(">" + label))
		default:
			b.WriteString(normalStyle.Render(" " + label))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n ")
	for i, bin := range domain.PlayableBins {
		if i > 0 {
			b.WriteString("   ")
		}
		b.WriteString(binStyle(bin).Render(fmt.Sprintf("[%s] %s", strings.ToUpper(bin[:1]), bin)))
	}
	b.WriteString("\n")

	if m.feedback != "" {
		b.WriteString("\n " + m.feedback + "\n")
	}

	b.WriteString("\n" + metaStyle.Render(fmt.Sprintf(" session: %d pts · %d/%d sorted",
		m.engine.Points(), m.engine.CorrectCount(), m.engine.Attempts())))
	if m.user != nil {
		b.WriteString(metaStyle.Render(fmt.Sprintf(" · total: %d pts", m.totalScore+m.engine.Points())))
	}
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString("\n " + m.status + "\n")
	}
	return b.String()
}
