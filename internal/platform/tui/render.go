package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/coin-catcher/internal/core"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = func() map[core.Color]lipgloss.Style {
	styles := make(map[core.Color]lipgloss.Style)
	for _, c := range core.Colors() {
		style := lipgloss.NewStyle()
		if code := c.ANSI(); code != "" {
			style = style.Foreground(lipgloss.Color(code))
		}
		styles[c] = style
	}
	return styles
}()

// Start screen styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("11")).
			MarginBottom(1)

	taglineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("7"))

	promptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			MarginTop(1)

	infoStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Foreground(lipgloss.Color("245")).
			Padding(0, 1).
			MarginTop(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)
)

// Hints drawn on the bottom row of the play field.
const (
	pausedHint   = "P: resume   Esc: leave"
	gameOverHint = "Space/R: play again   Esc/Q: quit"
)

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// renderStartScreen draws the title panel centered in the terminal.
func renderStartScreen(width, height int, title, helpView, info string) string {
	parts := []string{
		titleStyle.Render(strings.ToUpper(title)),
		taglineStyle.Render("Catch the coins and grab the hearts. Every missed coin costs a life."),
		promptStyle.Render("Press Space to start"),
	}
	if info != "" {
		parts = append(parts, infoStyle.Render(info))
	}
	parts = append(parts, helpStyle.Render(helpView))

	panel := lipgloss.JoinVertical(lipgloss.Center, parts...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, panel)
}

// drawHint writes the key hint for paused and finished rounds on the last row.
func drawHint(s *core.Screen, state core.GameState) {
	var hint string
	switch state.Phase {
	case core.PhasePaused:
		hint = pausedHint
	case core.PhaseGameOver:
		hint = gameOverHint
	default:
		return
	}

	row := s.Height() - 1
	col := (s.Width() - len([]rune(hint))) / 2
	s.DrawTextColored(max(col, 0), row, hint, core.ColorGray)
}
