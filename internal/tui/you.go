package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/samroche/recyco/pkg/client"
	"github.com/samroche/recyco/pkg/domain"
)

type profileLoadedMsg struct {
	user *domain.User
	err  error
}

type statsLoadedMsg struct {
	stats *domain.Stats
	err   error
}

type badgesLoadedMsg struct {
	badges []domain.Badge
	err    error
}

// youModel is the profile page: identity, lifetime stats, and badges.
// The three sections load independently so one failing endpoint never
// blanks the others.
type youModel struct {
	client *client.Client

	user      *domain.User
	userErr   error
	stats     *domain.Stats
	statsErr  error
	badges    []domain.Badge
	badgesErr error

	loaded bool

	width  int
	height int
}

func newYouModel(c *client.Client) youModel {
	return youModel{client: c}
}

func (m youModel) Init() tea.Cmd {
	if m.loaded {
		return nil
	}
	return m.fetchAll()
}

func (m youModel) fetchAll() tea.Cmd {
	c := m.client
	return tea.Batch(
		func() tea.Msg {
			user, err := c.Me(context.Background())
			return profileLoadedMsg{user: user, err: err}
		},
		func() tea.Msg {
			stats, err := c.MyStats(context.Background())
			return statsLoadedMsg{stats: stats, err: err}
		},
		func() tea.Msg {
			badges, err := c.MyBadges(context.Background())
			return badgesLoadedMsg{badges: badges, err: err}
		},
	)
}

func (m youModel) Update(msg tea.Msg) (youModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case authCheckedMsg:
		// Startup probe seeds the identity section cheaply; the full
		// fetch on first open replaces it.
		if m.user == nil && msg.user != nil {
			m.user = msg.user
		}
		return m, nil

	case profileLoadedMsg:
		m.loaded = true
		m.user, m.userErr = msg.user, msg.err
		return m, nil

	case statsLoadedMsg:
		m.loaded = true
		m.stats, m.statsErr = msg.stats, msg.err
		return m, nil

	case badgesLoadedMsg:
		m.loaded = true
		m.badges, m.badgesErr = msg.badges, msg.err
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "r" {
			m.userErr, m.statsErr, m.badgesErr = nil, nil, nil
			return m, m.fetchAll()
		}
	}
	return m, nil
}

// slotError renders a section's failure in place, expired sessions with
// the login hint.
func slotError(err error) string {
	if sessionExpired(err) {
		return errorStyle.Render(loginHint)
	}
	return errorStyle.Render("unavailable: " + err.Error())
}

func (m youModel) View() string {
	var b strings.Builder
	b.WriteString("\n")

	b.WriteString(sectionHeaderStyle.Render(" Profile"))
	b.WriteString("\n")
	switch {
	case m.userErr != nil:
		b.WriteString(" " + slotError(m.userErr) + "\n")
	case m.user == nil:
		b.WriteString(dimStyle.Render(" loading…") + "\n")
	default:
		b.WriteString(" " + selectedStyle.Render("@"+m.user.Username) + "\n")
		b.WriteString(metaStyle.Render(" email        ") + normalStyle.Render(m.user.Email) + "\n")
		b.WriteString(metaStyle.Render(" total score  ") + accentStyle.Render(fmt.Sprintf("%d pts", m.user.TotalScore)) + "\n")
		b.WriteString(metaStyle.Render(" member since ") + normalStyle.Render(formatDate(m.user.CreatedAt.Time)) + "\n")
	}

	b.WriteString("\n" + sectionHeaderStyle.Render(" Stats"))
	b.WriteString("\n")
	switch {
	case m.statsErr != nil:
		b.WriteString(" " + slotError(m.statsErr) + "\n")
	case m.stats == nil:
		b.WriteString(dimStyle.Render(" loading…") + "\n")
	default:
		b.WriteString(metaStyle.Render(" games played ") + normalStyle.Render(fmt.Sprintf("%d", m.stats.GamesPlayed)) + "\n")
		b.WriteString(metaStyle.Render(" points       ") + normalStyle.Render(fmt.Sprintf("%d", m.stats.Points)) + "\n")
		b.WriteString(metaStyle.Render(" items sorted ") + normalStyle.Render(fmt.Sprintf("%d", m.stats.CorrectItems)) + "\n")
	}

	b.WriteString("\n" + sectionHeaderStyle.Render(" Badges"))
	b.WriteString("\n")
	switch {
	case m.badgesErr != nil:
		b.WriteString(" " + slotError(m.badgesErr) + "\n")
	case len(m.badges) == 0:
		b.WriteString(dimStyle.Render(" no badges yet — keep sorting!") + "\n")
	default:
		for _, badge := range m.badges {
			b.WriteString(" " + normalStyle.Render(badge.Icon+" "+badge.Label))
			b.WriteString(metaStyle.Render("  " + formatDate(badge.AwardedAt.Time)))
			b.WriteString("\n")
			if badge.Description != "" {
				b.WriteString(metaStyle.Render("    "+truncStr(badge.Description, 60)) + "\n")
			}
		}
	}

	return b.String()
}
