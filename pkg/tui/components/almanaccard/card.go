package almanaccard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/zenday/pkg/almanac"
	"tableflip.dev/zenday/pkg/tui/theme"
)

const topItems = 3

// Render draws the almanac card for data. A nil data while loading shows a
// placeholder.
func Render(th theme.AlmanacTheme, data *almanac.Data, loading bool, width int) string {
	inner := width - 6
	if inner < 20 {
		inner = 20
	}
	frame := th.Frame.Width(inner + 4)

	if data == nil {
		msg := "黄历加载中..."
		if !loading {
			msg = "暂无黄历"
		}
		return frame.Render(th.Description.Render(msg))
	}

	year, month, day := data.Pillars()
	pillars := strings.TrimSpace(strings.Join([]string{year, month, day}, " "))
	if pillars == "" {
		pillars = "—"
	}

	lines := []string{
		lipgloss.JoinHorizontal(lipgloss.Top,
			th.Pillar.Render(pillars),
			"  ",
			th.SolarTerm.Render(data.SolarTermLabel()),
		),
		"",
		fmt.Sprintf("%s %s", th.Yi.Render("宜"), strings.Join(almanac.Top(data.Yi, topItems), " · ")),
		fmt.Sprintf("%s %s", th.Ji.Render("忌"), strings.Join(almanac.Top(data.Ji, topItems), " · ")),
		"",
		th.Description.Render(wordwrap.String(data.Description, inner)),
	}
	return frame.Render(strings.Join(lines, "\n"))
}
