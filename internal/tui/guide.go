package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/samroche/recyco/internal/rules"
	"github.com/samroche/recyco/pkg/client"
	"github.com/samroche/recyco/pkg/domain"
)

type guideLoadedMsg struct {
	rules domain.RuleSet
	err   error
}

type copyResultMsg struct {
	err error
}

type guideMode int

const (
	guideSearch guideMode = iota
	guideBins
	guideItems
	guideDetail
)

// guideModel is the sorting-rules reference: a keyword search over the
// whole dataset plus a browse-by-bin drilldown.
type guideModel struct {
	client *client.Client
	index  *rules.Index
	mode   guideMode

	editing  bool
	query    string
	searched bool
	results  []domain.Item

	cursor    int
	binCursor int
	bin       string

	detail     domain.Item
	detailFrom guideMode

	status  string
	loading bool
	err     error

	width  int
	height int
}

func newGuideModel(c *client.Client) guideModel {
	return guideModel{client: c}
}

func (m guideModel) Init() tea.Cmd {
	if m.index != nil {
		return nil
	}
	c := m.client
	return func() tea.Msg {
		rules, err := c.Rules(context.Background())
		return guideLoadedMsg{rules: rules, err: err}
	}
}

func (m guideModel) helpKeys() string {
	switch m.mode {
	case guideDetail:
		return helpEntry("c", "copy tip") + "  " + helpEntry("esc", "back")
	case guideBins, guideItems:
		return helpEntry("j/k", "move") + "  " +
			helpEntry("enter", "open") + "  " +
			helpEntry("b", "search mode") + "  " +
			helpEntry("esc", "back")
	default:
		if m.editing {
			return helpEntry("enter", "search") + "  " + helpEntry("esc", "cancel")
		}
		return helpEntry("/", "search") + "  " +
			helpEntry("j/k", "move") + "  " +
			helpEntry("enter", "open") + "  " +
			helpEntry("b", "browse bins")
	}
}

func (m guideModel) Update(msg tea.Msg) (guideModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case guideLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.index = rules.NewIndex(msg.rules)
		return m, nil

	case copyResultMsg:
		if msg.err != nil {
			m.status = errorStyle.Render("copy failed: " + msg.err.Error())
		} else {
			m.status = successStyle.Render("tip copied to clipboard")
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg.String())
	}
	return m, nil
}

func (m guideModel) handleKey(key string) (guideModel, tea.Cmd) {
	if m.index == nil {
		return m, nil
	}

	if m.editing {
		switch key {
		case "enter":
			m.editing = false
			m.results = m.index.Search(m.query)
			m.searched = strings.TrimSpace(m.query) != ""
			m.cursor = 0
		case "esc":
			m.editing = false
		default:
			m.query = editRune(m.query, key)
		}
		return m, nil
	}

	switch m.mode {
	case guideDetail:
		switch key {
		case "esc", "backspace":
			m.mode = m.detailFrom
			m.status = ""
		case "c":
			tip := m.detail.Tip
			if tip == "" {
				m.status = infoStyle.Render("nothing to copy for this item")
				return m, nil
			}
			return m, func() tea.Msg {
				return copyResultMsg{err: clipboard.WriteAll(tip)}
			}
		}
		return m, nil

	case guideBins:
		bins := m.index.Bins()
		switch key {
		case "j", "down":
			if m.binCursor < len(bins)-1 {
				m.binCursor++
			}
		case "k", "up":
			if m.binCursor > 0 {
				m.binCursor--
			}
		case "enter":
			if m.binCursor < len(bins) {
				m.bin = bins[m.binCursor]
				m.mode = guideItems
				m.cursor = 0
			}
		case "b", "esc":
			m.mode = guideSearch
		}
		return m, nil

	case guideItems:
		items := m.index.ItemsFor(m.bin)
		switch key {
		case "j", "down":
			if m.cursor < len(items)-1 {
				m.cursor++
			}
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "enter":
			if m.cursor < len(items) {
				m.detail = items[m.cursor]
				m.detailFrom = guideItems
				m.mode = guideDetail
			}
		case "esc":
			m.mode = guideBins
		case "b":
			m.mode = guideSearch
		}
		return m, nil

	default: // guideSearch
		switch key {
		case "/":
			m.editing = true
			m.status = ""
		case "b":
			m.mode = guideBins
			m.binCursor = 0
		case "j", "down":
			if m.cursor < len(m.results)-1 {
				m.cursor++
			}
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "enter":
			if m.cursor < len(m.results) {
				m.detail = m.results[m.cursor]
				m.detailFrom = guideSearch
				m.mode = guideDetail
			}
		case "esc":
			m.query = ""
			m.results = nil
			m.searched = false
			m.cursor = 0
		}
		return m, nil
	}
}

func (m guideModel) View() string {
	var b strings.Builder
	b.WriteString("\n")

	if m.loading || (m.index == nil && m.err == nil) {
		b.WriteString(dimStyle.Render(" loading the sorting guide…"))
		return b.String()
	}
	if m.err != nil {
		b.WriteString(errorStyle.Render(" could not load the sorting guide: " + m.err.Error()))
		return b.String()
	}

	switch m.mode {
	case guideDetail:
		m.renderDetail(&b)
	case guideBins:
		m.renderBins(&b)
	case guideItems:
		m.renderItems(&b)
	default:
		m.renderSearch(&b)
	}

	if m.status != "" {
		b.WriteString("\n " + m.status + "\n")
	}
	return b.String()
}

func (m guideModel) renderSearch(b *strings.Builder) {
	b.WriteString(sectionHeaderStyle.Render(" Guide du tri"))
	b.WriteString(metaStyle.Render(fmt.Sprintf("  %d items", m.index.Len())))
	b.WriteString("\n\n ")

	if m.editing {
		b.WriteString(searchStyle.Render("/" + m.query + "▌"))
	} else if m.query != "" {
		b.WriteString(searchStyle.Render("/" + m.query))
	} else {
		b.WriteString(inputPlaceholderStyle.Render("/ to search by keyword"))
	}
	b.WriteString("\n\n")

	if !m.searched {
		b.WriteString(dimStyle.Render(" type a keyword (bouteille, verre, carton…) or press b to browse by bin"))
		b.WriteString("\n")
		return
	}
	if len(m.results) == 0 {
		b.WriteString(dimStyle.Render(" no results for ") + normalStyle.Render("“"+strings.TrimSpace(m.query)+"”"))
		b.WriteString("\n")
		return
	}
	for i, item := range m.results {
		line := fmt.Sprintf(" %s %s  ", item.Icon, truncStr(item.Name, 36))
		line += binStyle(item.Bin).Render("● "+item.Bin) + "  "
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString(normalStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}
}

func (m guideModel) renderBins(b *strings.Builder) {
	b.WriteString(sectionHeaderStyle.Render(" Browse by bin"))
	b.WriteString("\n\n")
	for i, bin := range m.index.Bins() {
		line := binStyle(bin).Render("● "+bin) +
			metaStyle.Render(fmt.Sprintf("  %d items", len(m.index.ItemsFor(bin))))
		if i == m.binCursor {
			b.WriteString(selectedStyle.Render(" > ") + line)
		} else {
			b.WriteString("   " + line)
		}
		b.WriteString("\n")
	}
}

func (m guideModel) renderItems(b *strings.Builder) {
	b.WriteString(sectionHeaderStyle.Render(" Poubelle "))
	b.WriteString(binStyle(m.bin).Render(m.bin))
	b.WriteString("\n\n")
	for i, item := range m.index.ItemsFor(m.bin) {
		line := fmt.Sprintf("%s %s", item.Icon, truncStr(item.Name, 44))
		if i == m.cursor {
			b.WriteString(selectedStyle.Render(" > " + line))
		} else {
			b.WriteString(normalStyle.Render("   " + line))
		}
		b.WriteString("\n")
	}
}

func (m guideModel) renderDetail(b *strings.Builder) {
	b.WriteString(" " + selectedStyle.Render(m.detail.Icon+" "+m.detail.Name))
	b.WriteString("\n\n ")
	b.WriteString(metaStyle.Render("poubelle: "))
	b.WriteString(binStyle(m.detail.Bin).Render(m.detail.Bin))
	b.WriteString("\n\n")
	if m.detail.Description != "" {
		b.WriteString(" " + normalStyle.Render(m.detail.Description) + "\n\n")
	}
	if m.detail.Tip != "" {
		b.WriteString(" " + accentStyle.Render("Bon à savoir: ") + normalStyle.Render(m.detail.Tip) + "\n")
	}
}
