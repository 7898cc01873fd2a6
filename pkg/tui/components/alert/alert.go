package alert

import (
	"strings"

	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/zenday/pkg/tui/theme"
)

// Render centers a blocking message in a width x height area. It returns ""
// when msg is empty.
func Render(th theme.ModalTheme, msg string, width, height int) string {
	if msg == "" {
		return ""
	}
	if width <= 0 {
		width = 80
	}
	if height <= 0 {
		height = 24
	}
	content := strings.Join([]string{
		th.Title.Render("提示"),
		"",
		th.Body.Render(msg),
		"",
		th.Body.Render("Enter / Esc 确定"),
	}, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, th.Frame.Render(content))
}
