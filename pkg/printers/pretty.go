package printers

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/zenday/pkg/almanac"
	"tableflip.dev/zenday/pkg/analysis"
	"tableflip.dev/zenday/pkg/app"
	"tableflip.dev/zenday/pkg/entry"
	"tableflip.dev/zenday/pkg/profile"
)

type PrettyPrint struct {
	// Out defaults to color.Output.
	Out io.Writer
	// Width wraps long text; 0 means 72.
	Width int
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) width() int {
	if pp.Width <= 0 {
		return 72
	}
	return pp.Width
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) Subtitle(s string) {
	f := color.New(color.Faint, color.Italic)
	_, _ = f.Fprintln(pp.out(), s)
}

func (pp *PrettyPrint) wrap(s string) string {
	return wordwrap.String(s, pp.width())
}

func (pp *PrettyPrint) Greeting(p profile.Profile) {
	f := color.New(color.Faint, color.Italic)
	_, _ = f.Fprintf(pp.out(), "你好, %s。\n", p.DisplayName())
}

func (pp *PrettyPrint) Almanac(d almanac.Data, src almanac.Source) {
	pp.Title(fmt.Sprintf("%s  %s", d.Date, d.SolarTermLabel()))

	red := color.New(color.FgRed, color.Bold)
	green := color.New(color.FgGreen, color.Bold)
	faint := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.Wrap = true
	tbl.MaxColWidth = uint(pp.width())
	ganZhi := d.GanZhi
	if ganZhi == "" {
		ganZhi = faint.Sprint("未知")
	}
	tbl.AddRow(bold("干支"), ganZhi)
	tbl.AddRow(green.Sprint("宜"), strings.Join(d.Yi, " "))
	tbl.AddRow(red.Sprint("忌"), strings.Join(d.Ji, " "))
	_, _ = fmt.Fprintln(pp.out(), tbl)

	_, _ = color.New(color.Italic).Fprintln(pp.out(), pp.wrap(d.Description))
	if src == almanac.SourceFallback {
		pp.Subtitle("(offline fallback, not cached)")
	}
}

func (pp *PrettyPrint) Journal(e entry.Entry) {
	pp.Title(fmt.Sprintf("Journal %s", e.Date))

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.Wrap = true
	tbl.MaxColWidth = uint(pp.width())
	for _, f := range entry.Fields() {
		value := e.Value(f)
		switch f {
		case entry.FieldMood:
			value = fmt.Sprintf("%s %d", entry.MoodGlyph(e.Mood), e.Mood)
		case entry.FieldHealthStatus:
			value = fmt.Sprintf("%s (%s)", e.HealthStatus.Label(), e.HealthStatus)
		}
		if value == "" {
			value = color.New(color.Faint).Sprint("-")
		}
		tbl.AddRow(bold(entry.FieldLabel(f)), value)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	if !e.HasJournalData() {
		pp.Subtitle("请先填写今日记录 (moodNote, otherEvents or financeNote)")
	}
}

func (pp *PrettyPrint) Profile(p profile.Profile) {
	pp.Greeting(p)
	if !p.IsSetup {
		pp.Subtitle("profile not set up; run `zenday profile set`")
		return
	}
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold("Name"), p.Name)
	tbl.AddRow(bold("Birth date"), p.BirthDate)
	tbl.AddRow(bold("Birth time"), p.BirthTime)
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

func (pp *PrettyPrint) Analysis(day entry.Day, r analysis.Result) {
	pp.Title(fmt.Sprintf("Analysis %s", day))

	score := color.New(color.Bold, scoreColor(r.Gauge()))
	_, _ = score.Fprintf(pp.out(), "%d", r.Gauge())
	_, _ = color.New(color.Faint).Fprintln(pp.out(), " / 100")
	pp.NewLine()

	_, _ = color.New(color.Bold).Fprintln(pp.out(), "命理分析")
	_, _ = fmt.Fprintln(pp.out(), pp.wrap(r.BaziAnalysis))
	pp.NewLine()
	_, _ = color.New(color.Bold).Fprintln(pp.out(), "生活建议")
	_, _ = fmt.Fprintln(pp.out(), pp.wrap(r.Advice))
}

func (pp *PrettyPrint) History(items []app.HistoryItem) {
	if len(items) == 0 {
		pp.Subtitle(" none")
		return
	}
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold("Date"), bold("Mood"), bold("Notes"), bold("Score"))
	for _, it := range items {
		notes := "-"
		if it.HasNotes {
			notes = "✓"
		}
		score := "-"
		if it.Score != nil {
			score = color.New(scoreColor(*it.Score)).Sprintf("%d", *it.Score)
		}
		tbl.AddRow(it.Day, entry.MoodGlyph(it.Mood), notes, score)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

func scoreColor(score int) color.Attribute {
	switch {
	case score >= 80:
		return color.FgGreen
	case score >= 50:
		return color.FgYellow
	}
	return color.FgRed
}

func bold(s string) string {
	return color.New(color.Bold).Sprint(s)
}
