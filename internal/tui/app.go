package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/samroche/recyco/pkg/client"
	"github.com/samroche/recyco/pkg/domain"
)

type view int

const (
	viewPlay view = iota
	viewGuide
	viewYou

	viewCount = 3
)

// authCheckedMsg carries the result of the session-identity probe.
// A nil user means logged out (or unreachable) — the probe never
// distinguishes, by contract.
type authCheckedMsg struct {
	user *domain.User
}

// App is the root Bubbletea model.
type App struct {
	client *client.Client
	view   view
	play   playModel
	guide  guideModel
	you    youModel
	user   *domain.User
	width  int
	height int
	frame  int // logo shimmer animation frame
}

// NewApp creates the TUI application.
func NewApp(c *client.Client) App {
	return App{
		client: c,
		play:   newPlayModel(c),
		guide:  newGuideModel(c),
		you:    newYouModel(c),
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(a.play.Init(), shimmerTickCmd(), a.checkAuth())
}

// checkAuth runs the one-shot identity probe at startup; the header
// toggles between its logged-in and logged-out affordances on the answer.
func (a App) checkAuth() tea.Cmd {
	c := a.client
	return func() tea.Msg {
		return authCheckedMsg{user: c.CheckAuth(context.Background())}
	}
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Chrome: header(2) + tabs(1) + help(1) = 4 lines
		bodyMsg := tea.WindowSizeMsg{Width: msg.Width, Height: msg.Height - 4}
		a.play, _ = a.play.Update(bodyMsg)
		a.guide, _ = a.guide.Update(bodyMsg)
		a.you, _ = a.you.Update(bodyMsg)
		return a, nil

	case shimmerTickMsg:
		a.frame++
		return a, shimmerTickCmd()

	case authCheckedMsg:
		a.user = msg.user
		// Propagate to sub-models that mirror identity state
		a.play, _ = a.play.Update(msg)
		a.you, _ = a.you.Update(msg)
		return a, nil

	case scoreSavedMsg:
		// The header mirrors the cumulative total; a successful save
		// replaces it with the server's answer before the play view
		// zeroes the session tally.
		if msg.err == nil && !msg.skipped && msg.result != nil && a.user != nil {
			a.user.TotalScore = msg.result.TotalScore
		}
		var cmd tea.Cmd
		a.play, cmd = a.play.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		// Tab switching stays off the digit keys: the play view owns
		// 1-7 for card picks.
		switch msg.String() {
		case "ctrl+c":
			return a, tea.Quit
		case "tab":
			if !a.isEditing() {
				return a.switchView((a.view + 1) % viewCount)
			}
		case "shift+tab":
			if !a.isEditing() {
				return a.switchView((a.view + viewCount - 1) % viewCount)
			}
		case "q":
			if !a.isEditing() {
				return a, tea.Quit
			}
		}
	}

	var cmd tea.Cmd
	switch a.view {
	case viewPlay:
		a.play, cmd = a.play.Update(msg)
	case viewGuide:
		a.guide, cmd = a.guide.Update(msg)
	case viewYou:
		a.you, cmd = a.you.Update(msg)
	}
	return a, cmd
}

// switchView activates a tab, firing its Init on first entry.
func (a App) switchView(v view) (App, tea.Cmd) {
	if a.view == v {
		return a, nil
	}
	a.view = v
	switch v {
	case viewGuide:
		return a, a.guide.Init()
	case viewYou:
		return a, a.you.Init()
	}
	return a, nil
}

func (a App) isEditing() bool {
	return a.view == viewGuide && a.guide.editing
}

// renderAuthStatus is the header's logged-in / logged-out toggle, a pure
// function of the probe result plus the live score shown during play.
func renderAuthStatus(user *domain.User, sessionPoints int) string {
	if user == nil {
		return metaStyle.Render("not signed in -- run: recyco login")
	}
	score := user.TotalScore + sessionPoints
	return metaStyle.Render(fmt.Sprintf("@%s · %d pts", user.Username, score))
}

func (a App) View() string {
	// Header: centered shimmer logo + identity line
	logo := renderShimmerLogo(a.frame)
	logoWidth := lipgloss.Width(logo)
	logoPad := max((a.width-logoWidth)/2, 0)
	header := strings.Repeat(" ", logoPad) + logo

	status := renderAuthStatus(a.user, a.play.sessionPoints())
	statusPad := max((a.width-lipgloss.Width(status))/2, 0)
	header += "\n" + strings.Repeat(" ", statusPad) + status

	// Tab bar: 3 equal-width columns spread across the terminal
	type tabEntry struct {
		name string
		v    view
	}
	tabs := []tabEntry{
		{"Play", viewPlay},
		{"Guide", viewGuide},
		{"You", viewYou},
	}
	colWidth := 0
	if a.width > 0 {
		colWidth = a.width / len(tabs)
	}
	var tabBar strings.Builder
	for _, t := range tabs {
		var label string
		if t.v == a.view {
			label = accentStyle.Render("●") + " " + selectedStyle.Underline(true).Render(t.name)
		} else {
			label = metaStyle.Render("○") + " " + dimStyle.Render(t.name)
		}
		labelWidth := lipgloss.Width(label)
		leftPad := max((colWidth-labelWidth)/2, 0)
		rightPad := max(colWidth-labelWidth-leftPad, 0)
		tabBar.WriteString(strings.Repeat(" ", leftPad) + label + strings.Repeat(" ", rightPad))
	}

	var body, help string
	switch a.view {
	case viewPlay:
		body = a.play.View()
		help = " " + helpEntry("tab", "switch") + "  " + a.play.helpKeys() + "  " + helpEntry("q", "quit")
	case viewGuide:
		body = a.guide.View()
		help = " " + helpEntry("tab", "switch") + "  " + a.guide.helpKeys() + "  " + helpEntry("q", "quit")
	case viewYou:
		body = a.you.View()
		help = " " + helpEntry("tab", "switch") + "  " + helpEntry("r", "reload") + "  " + helpEntry("q", "quit")
	}

	// Chrome budget: header(2) + tabs(1) + help(1) = 4 lines + body
	body = strings.TrimRight(truncateToHeight(body, a.height-4), "\n")

	return fmt.Sprintf("%s\n%s\n%s\n%s", header, tabBar.String(), body, help)
}
