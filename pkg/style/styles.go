package style

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/fedwiki/wikikit/pkg/linker"
)

// Base styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(HeadingColor).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(InfoColor)

	PathStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			Italic(true)

	SpecStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor)
)

// Site listing styles
var (
	SiteStyle = lipgloss.NewStyle().
			Foreground(SiteColor).
			Bold(true)

	EntryStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			PaddingLeft(4)

	RuntimeStyle = lipgloss.NewStyle().
			Foreground(RuntimeColor)
)

// Step indicators
var (
	DoneIndicator    = SuccessStyle.Render("✓")
	FailedIndicator  = ErrorStyle.Render("✗")
	RunningIndicator = InfoStyle.Render("⟳")
	PendingIndicator = MutedStyle.Render("○")
)

// StepIndicator renders the marker for a linker step status
func StepIndicator(status linker.Status) string {
	switch status {
	case linker.StatusDone:
		return DoneIndicator
	case linker.StatusFailed:
		return FailedIndicator
	case linker.StatusRunning:
		return RunningIndicator
	default:
		return PendingIndicator
	}
}

// Indent pads s by level steps of two spaces
func Indent(s string, level int) string {
	return lipgloss.NewStyle().PaddingLeft(level * 2).Render(s)
}

func Bold(s string) string {
	return lipgloss.NewStyle().Bold(true).Render(s)
}
