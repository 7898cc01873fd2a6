// Package analysis asks the generative service for a personal reading of a
// day, blending the profile's birth data with that day's journal.
package analysis

import (
	"bytes"
	"context"
	"text/template"

	"go.uber.org/zap"

	"tableflip.dev/zenday/pkg/almanac"
	"tableflip.dev/zenday/pkg/entry"
	"tableflip.dev/zenday/pkg/llm"
	"tableflip.dev/zenday/pkg/metrics"
	"tableflip.dev/zenday/pkg/profile"
)

// Result is one generated reading. OverallScore is kept exactly as the
// service returned it; use Gauge for display.
type Result struct {
	BaziAnalysis string `json:"baziAnalysis"`
	Advice       string `json:"advice"`
	OverallScore int    `json:"overallScore"`
}

// Gauge is the score clamped to 0..100.
func (r Result) Gauge() int {
	switch {
	case r.OverallScore < 0:
		return 0
	case r.OverallScore > 100:
		return 100
	}
	return r.OverallScore
}

// Fallback is returned whenever generation fails.
func Fallback() Result {
	return Result{
		BaziAnalysis: "星象云雾缭绕，暂无法解读详细命盘。",
		Advice:       "今日只需跟随内心，保持平和即可。",
		OverallScore: 60,
	}
}

var schema = llm.Schema{Fields: []llm.Field{
	{Name: "baziAnalysis", Type: llm.TypeString, Required: true,
		Description: "Detailed analysis of the interaction (Clash/Harm/Combine) between user birth chart and today."},
	{Name: "advice", Type: llm.TypeString, Required: true,
		Description: "Actionable advice based on the user's journal and the bazi analysis."},
	{Name: "overallScore", Type: llm.TypeInteger, Required: true,
		Description: "An overall luck score for the day from 0-100."},
}}

const temperature = 0.7

// Provider generates readings. It holds no cache: every call reaches the
// generator, and persisting the result is the caller's job.
type Provider struct {
	Generator llm.Generator
	Log       *zap.Logger
}

// Generate never fails; errors are logged and replaced by Fallback().
func (p *Provider) Generate(ctx context.Context, who profile.Profile, day entry.Day, journal entry.Entry, alm almanac.Data) Result {
	log := p.Log
	if log == nil {
		log = zap.NewNop()
	}
	log = log.With(zap.String("date", day.String()))

	res, err := p.generate(ctx, who, day, journal, alm)
	if err != nil {
		metrics.GenerationFallbacks.WithLabelValues(metrics.KindAnalysis).Inc()
		log.Warn("analysis generation failed, using fallback", zap.Error(err))
		return Fallback()
	}
	return res
}

func (p *Provider) generate(ctx context.Context, who profile.Profile, day entry.Day, journal entry.Entry, alm almanac.Data) (Result, error) {
	if p.Generator == nil {
		return Result{}, llm.ErrUnavailable
	}
	prompt, err := Prompt(who, day, journal, alm)
	if err != nil {
		return Result{}, err
	}
	metrics.GenerationRequests.WithLabelValues(metrics.KindAnalysis).Inc()
	raw, err := p.Generator.Generate(ctx, llm.Request{
		Prompt:      prompt,
		Schema:      schema,
		Temperature: temperature,
	})
	if err != nil {
		return Result{}, err
	}
	var res Result
	if err := llm.Decode(raw, &res, schema); err != nil {
		return Result{}, err
	}
	return res, nil
}

var promptTemplate = template.Must(template.New("analysis").Parse(`
Role: Professional Bazi (Four Pillars of Destiny) Master and Psychologist.
Task: Analyze the daily fortune for the user based on their birth data vs. today's date, and combine this with their daily journal entry to provide advice.

User Birth Data:
Date: {{.Profile.BirthDate}}
Time: {{.Profile.BirthTime}}

Current Date Context:
Date: {{.Day}}
Day GanZhi: {{.Almanac.GanZhi}}
Day Pillar: {{.DayPillar}}
Solar Term: {{.Almanac.SolarTerm}}

User's Daily Journal Entry (What actually happened/felt today):
Mood (1-5): {{.Journal.Mood}}
Mood Notes: {{.Journal.MoodNote}}
Relationships: {{.Journal.Relationships}}
Financial: Income {{.Journal.FinanceIncome}}, Expense {{.Journal.FinanceExpense}}, Notes: {{.Journal.FinanceNote}}
Health: {{.Journal.HealthStatus}}, Notes: {{.Journal.HealthNote}}
Other Events: {{.Journal.OtherEvents}}

Analysis Requirements:
1. Bazi Analysis: compare the user's Day Pillar with today's Day Pillar. Look for Heavenly Stem clashes or combinations and Earthly Branch clashes, harms or combinations (e.g. 辰戌冲, 子午冲). Explain it simply.
2. Advice: combine the metaphysical analysis with the actual journal entry. If the day went badly and the chart shows a clash, explain that it is temporary. If they overspent and a Rob Wealth (Jie Cai) star is present, point it out.
3. Tone: empathetic, wise, calming. Reply in Simplified Chinese.
`))

// Prompt renders the instruction for one reading.
func Prompt(who profile.Profile, day entry.Day, journal entry.Entry, alm almanac.Data) (string, error) {
	_, _, dayPillar := alm.Pillars()
	var buf bytes.Buffer
	err := promptTemplate.Execute(&buf, struct {
		Profile   profile.Profile
		Day       entry.Day
		Journal   entry.Entry
		Almanac   almanac.Data
		DayPillar string
	}{who, day, journal, alm, dayPillar})
	return buf.String(), err
}
