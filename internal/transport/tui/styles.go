package tui

import (
	"unicode"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6F4E37")).Bold(true).Padding(0, 1)
	userStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#4B2E2E"))
	assistantStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6F4E37")).Bold(true)
	labelStyle     = lipgloss.NewStyle().Bold(true)
	inputStyle     = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4C312A")).
			Padding(0, 1)
	hintStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// paragraph renders one transcript entry. Text that opens with a non-ASCII
// letter (Arabic replies) is right aligned, everything else left aligned.
func paragraph(style lipgloss.Style, label, text string, width int) string {
	align := lipgloss.Left
	if startsNonASCII(text) {
		align = lipgloss.Right
	}

	s := style.Align(align)
	if width > 0 {
		s = s.Width(width)
	}
	return s.Render(labelStyle.Render(label+":") + " " + text)
}

func startsNonASCII(text string) bool {
	for _, r := range text {
		if unicode.IsSpace(r) {
			continue
		}
		return r > unicode.MaxASCII
	}
	return false
}
