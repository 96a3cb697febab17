package tui

import (
	"fmt"
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/samroche/recyco/pkg/domain"
)

// Shimmer animation for the RECYCO logo.
type shimmerTickMsg time.Time

func shimmerTickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return shimmerTickMsg(t)
	})
}

// renderShimmerLogo renders "R E C Y C O" as a flowing wave of recycled
// green: deep moss (#1f3d1f) -> fresh leaf (#7bd85c).
func renderShimmerLogo(frame int) string {
	const text = "RECYCO"
	n := len(text)

	var out string
	t := float64(frame)

	for i := 0; i < n; i++ {
		x := float64(i) / float64(n-1)

		// One smooth wave advancing through the text
		phase := t*0.1 - x*3.0
		phase += math.Sin(t*0.023) * 2.0

		b := math.Sin(phase)*0.5 + 0.5
		b = math.Pow(b, 1.3)

		// Slow breathing tide
		tide := math.Sin(t*0.035) * 0.12
		b = b*0.75 + tide + 0.18

		if b > 1.0 {
			b = 1.0
		} else if b < 0.05 {
			b = 0.05
		}

		// Deep moss (31, 61, 31) -> fresh leaf (123, 216, 92)
		r := clampByte(31 + b*(123-31))
		g := clampByte(61 + b*(216-61))
		bl := clampByte(31 + b*(92-31))

		color := fmt.Sprintf("#%02X%02X%02X", r, g, bl)

		s := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(color))
		out += s.Render(string(text[i]))

		if i < n-1 {
			out += "  "
		}
	}

	return out
}

func clampByte(v float64) int {
	if v > 255 {
		return 255
	}
	if v < 0 {
		return 0
	}
	return int(v)
}

var (
	// Base styles
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e4ece4")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c0d0c4"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#506058"))

	// Help bar
	helpKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	helpLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#506058"))

	// Search / accent
	searchStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7bd85c")).
			Bold(true)

	accentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ade80"))

	// Action feedback
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ade80"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e06060"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#60a0e0"))

	sectionHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#607868")).
				Bold(true)

	inputPlaceholderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#343c3a"))

	// Selected card background
	selectedRowBg = lipgloss.NewStyle().Background(lipgloss.Color("#1e2a1e"))

	// Bin colors — jaune/verte/bleue match the physical lids
	binColors = map[string]lipgloss.Color{
		domain.BinJaune: lipgloss.Color("#d4a844"),
		domain.BinVerte: lipgloss.Color("#34d474"),
		domain.BinBleue: lipgloss.Color("#60a0e0"),
	}
)

// binStyle returns the lid color style for a bin, dim for unknown colors.
func binStyle(bin string) lipgloss.Style {
	if c, ok := binColors[bin]; ok {
		return lipgloss.NewStyle().Foreground(c)
	}
	return dimStyle
}

func helpEntry(key, label string) string {
	return helpKeyStyle.Render(key) + " " + helpLabelStyle.Render(label)
}
