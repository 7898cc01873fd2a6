package almanac

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"tableflip.dev/zenday/pkg/entry"
	"tableflip.dev/zenday/pkg/llm"
	"tableflip.dev/zenday/pkg/metrics"
	"tableflip.dev/zenday/pkg/store"
)

// Source reports where a record came from.
type Source int

const (
	SourceCache Source = iota
	SourceService
	SourceFallback
)

func (s Source) String() string {
	switch s {
	case SourceCache:
		return "cache"
	case SourceService:
		return "service"
	case SourceFallback:
		return "fallback"
	}
	return "unknown"
}

var schema = llm.Schema{Fields: []llm.Field{
	{Name: "ganZhi", Type: llm.TypeString, Required: true,
		Description: "The Year, Month, and Day pillars (e.g. 甲辰年 丙寅月 戊午日)"},
	{Name: "solarTerm", Type: llm.TypeString,
		Description: "Current or nearest solar term"},
	{Name: "yi", Type: llm.TypeStringList, Required: true,
		Description: "List of auspicious activities (Yi)"},
	{Name: "ji", Type: llm.TypeStringList, Required: true,
		Description: "List of inauspicious activities (Ji)"},
	{Name: "description", Type: llm.TypeString, Required: true,
		Description: "A poetic, short description of the day's energy in Chinese."},
}}

const temperature = 0.2

// Provider returns a day's almanac, calling the generator at most once per
// day: successful replies are persisted and served from the store afterwards.
type Provider struct {
	Persistence store.Persistence
	Generator   llm.Generator
	Log         *zap.Logger
}

// Fetch never fails: service or decode errors yield Fallback(day), which is
// not persisted so a later call can still succeed.
func (p *Provider) Fetch(ctx context.Context, day entry.Day) (Data, Source) {
	log := p.logger().With(zap.String("date", day.String()))

	var cached Data
	found, err := p.Persistence.Load(store.AlmanacKey(day.String()), &cached)
	if err != nil {
		log.Warn("almanac cache read failed", zap.Error(err))
	}
	if found {
		metrics.AlmanacCacheHits.Inc()
		return cached, SourceCache
	}

	data, err := p.generate(ctx, day)
	if err != nil {
		metrics.GenerationFallbacks.WithLabelValues(metrics.KindAlmanac).Inc()
		log.Warn("almanac generation failed, using fallback", zap.Error(err))
		return Fallback(day), SourceFallback
	}

	if err := p.Persistence.Save(store.AlmanacKey(day.String()), data); err != nil {
		log.Error("almanac cache write failed", zap.Error(err))
	}
	return data, SourceService
}

func (p *Provider) generate(ctx context.Context, day entry.Day) (Data, error) {
	if p.Generator == nil {
		return Data{}, llm.ErrUnavailable
	}
	metrics.GenerationRequests.WithLabelValues(metrics.KindAlmanac).Inc()
	raw, err := p.Generator.Generate(ctx, llm.Request{
		Prompt:      Prompt(day),
		Schema:      schema,
		Temperature: temperature,
	})
	if err != nil {
		return Data{}, err
	}
	var data Data
	if err := llm.Decode(raw, &data, schema); err != nil {
		return Data{}, err
	}
	data.Date = day
	return data, nil
}

func (p *Provider) logger() *zap.Logger {
	if p.Log == nil {
		return zap.NewNop()
	}
	return p.Log
}

// Prompt is the instruction sent for day.
func Prompt(day entry.Day) string {
	return fmt.Sprintf(`Generate the traditional Chinese Almanac (Huangli) data for the date: %s.
Ensure the GanZhi (干支) is astronomically accurate for this specific day.
Output in Simplified Chinese.`, day)
}
