package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/tatianab/word-forest/internal/game"
	"github.com/tatianab/word-forest/internal/models"
)

var (
	colorBorder  = lipgloss.Color("#3C3C3C")
	colorMuted   = lipgloss.Color("#636B78")
	colorText    = lipgloss.Color("#EEEEEE")
	colorGreen   = lipgloss.Color("#98C379")
	colorRed     = lipgloss.Color("#E06C75")
	colorYellow  = lipgloss.Color("#E5C07B")
	colorBlue    = lipgloss.Color("#61AFEF")
	colorMagenta = lipgloss.Color("#C678DD")
	colorOrange  = lipgloss.Color("#FFA500")
	colorStone   = lipgloss.Color("#ABB2BF")
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(colorOrange).
			Bold(true).
			Underline(true)

	statStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Background(lipgloss.Color("#5F5F87")).
			Bold(true).
			Padding(0, 1)

	forestStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorGreen)

	sideStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(colorBorder).
			PaddingLeft(2).
			Foreground(lipgloss.Color("#AAAAAA"))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(1, 4)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	mutedStyle    = lipgloss.NewStyle().Foreground(colorMuted)
	selectedStyle = lipgloss.NewStyle().Foreground(colorYellow).Bold(true)
	revealedStyle = lipgloss.NewStyle().Foreground(colorText).Background(colorBlue).Bold(true)
	hintedStyle   = lipgloss.NewStyle().Foreground(colorMagenta).Bold(true)
	cursorStyle   = lipgloss.NewStyle().Underline(true).Bold(true)
)

var categoryStyles = map[models.Category]lipgloss.Style{
	models.Tree:   lipgloss.NewStyle().Foreground(colorGreen),
	models.Rock:   lipgloss.NewStyle().Foreground(colorStone),
	models.Animal: lipgloss.NewStyle().Foreground(colorOrange),
}

var glyphs = map[models.Category]string{
	models.Tree:   "♣",
	models.Rock:   "◆",
	models.Animal: "@",
}

// messageStyle colours the status line after a feedback event.
func messageStyle(kind game.FeedbackKind) lipgloss.Style {
	s := lipgloss.NewStyle().Bold(true)
	switch kind {
	case game.FeedbackCorrect:
		return s.Foreground(colorGreen)
	case game.FeedbackIncorrect, game.FeedbackGameOver:
		return s.Foreground(colorRed)
	case game.FeedbackReveal:
		return s.Foreground(colorBlue)
	case game.FeedbackHint:
		return s.Foreground(colorMagenta)
	case game.FeedbackLevelUp:
		return s.Foreground(colorYellow)
	}
	return s.Foreground(colorMuted)
}
