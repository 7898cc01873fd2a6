package analysisview

import (
	"fmt"
	"strings"

	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/zenday/pkg/app"
	"tableflip.dev/zenday/pkg/tui/theme"
)

const (
	lockedText   = "请先在设置中填写出生信息"
	noNotesText  = "请先填写今日记录"
	triggerText  = "生成今日解读 (Enter)"
	loadingText  = "正在推演命盘..."
	noAlmanac    = "等待黄历加载..."
	emptyText    = "尚未生成今日解读"
	advicePrefix = "生活建议"
)

// Render draws the analysis screen for st.
func Render(th theme.Theme, st app.State, width int) string {
	inner := width - 6
	if inner < 20 {
		inner = 20
	}
	if !st.Profile.IsSetup {
		return th.Panel.Frame.Width(inner + 4).Render(strings.Join([]string{
			th.Panel.Title.Render("🔒 八字解读"),
			"",
			th.Panel.Muted.Render(lockedText),
			th.Panel.Muted.Render("按 s 打开设置"),
		}, "\n"))
	}

	var lines []string
	lines = append(lines, th.Panel.Title.Render("🔮 八字解读"), "")

	switch {
	case st.LoadingAnalysis:
		lines = append(lines, th.Panel.Muted.Render(loadingText))
	case st.Almanac == nil:
		lines = append(lines, th.Analysis.Disabled.Render(noAlmanac))
	case !st.Journal.HasJournalData():
		lines = append(lines, th.Analysis.Disabled.Render(noNotesText))
	default:
		lines = append(lines, th.Analysis.Button.Render(triggerText))
	}

	if st.Analysis != nil {
		r := *st.Analysis
		score := th.Analysis.ScoreLow
		switch g := r.Gauge(); {
		case g >= 80:
			score = th.Analysis.ScoreHigh
		case g >= 50:
			score = th.Analysis.ScoreMid
		}
		lines = append(lines,
			"",
			score.Render(fmt.Sprintf("%d", r.Gauge()))+th.Panel.Muted.Render(" / 100"),
			"",
			th.Analysis.Heading.Render("命理分析"),
			wordwrap.String(r.BaziAnalysis, inner),
			"",
			th.Analysis.Heading.Render(advicePrefix),
			wordwrap.String(r.Advice, inner),
		)
	} else if !st.LoadingAnalysis {
		lines = append(lines, "", th.Panel.Muted.Render(emptyText))
	}

	return th.Panel.Frame.Width(inner + 4).Render(strings.Join(lines, "\n"))
}
