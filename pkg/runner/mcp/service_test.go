package mcp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"tableflip.dev/zenday/pkg/app"
	"tableflip.dev/zenday/pkg/entry"
	"tableflip.dev/zenday/pkg/llm"
	"tableflip.dev/zenday/pkg/profile"
	"tableflip.dev/zenday/pkg/store"
	"tableflip.dev/zenday/pkg/store/storetest"
)

const almanacReply = `{"ganZhi":"甲辰年 丙寅月 戊午日","solarTerm":"雨水","yi":["出行"],"ji":["动土"],"description":"春水初生。"}`

type routed struct{}

func (routed) Generate(ctx context.Context, req llm.Request) ([]byte, error) {
	for _, name := range req.Schema.Required() {
		if name == "overallScore" {
			return []byte(`{"baziAnalysis":"午火","advice":"早睡","overallScore":75}`), nil
		}
	}
	return []byte(almanacReply), nil
}

func newTestService() (*Service, *storetest.Memory) {
	mem := storetest.New()
	return NewService(app.New(mem, routed{}, nil)), mem
}

func TestServiceJournalRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc, mem := newTestService()

	e, err := svc.Journal(ctx, "2024-02-19")
	if err != nil {
		t.Fatalf("Journal: %v", err)
	}
	if e.Date != "2024-02-19" || e.Mood != entry.DefaultMood {
		t.Fatalf("expected default entry, got %+v", e)
	}

	updated, err := svc.UpdateJournalField(ctx, "2024-02-19", "moodNote", "安稳")
	if err != nil {
		t.Fatalf("UpdateJournalField: %v", err)
	}
	if updated.MoodNote != "安稳" || updated.ID != e.ID {
		t.Fatalf("unexpected entry %+v", updated)
	}
	if !mem.Has(store.JournalKey("2024-02-19")) {
		t.Fatalf("expected entry persisted")
	}

	if _, err := svc.UpdateJournalField(ctx, "2024-02-19", "nope", "x"); err == nil {
		t.Fatalf("expected unknown field error")
	}
	if _, err := svc.UpdateJournalField(ctx, "2024-02-19", "mood", "7"); err == nil {
		t.Fatalf("expected mood range error")
	}
}

func TestServiceAlmanac(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	if _, err := svc.CachedAlmanac(ctx, "2024-02-19"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound before fetch, got %v", err)
	}
	dto := svc.FetchAlmanac(ctx, "2024-02-19")
	if dto.Source != "service" || dto.SolarTerm != "雨水" {
		t.Fatalf("unexpected almanac %+v", dto)
	}
	cached, err := svc.CachedAlmanac(ctx, "2024-02-19")
	if err != nil || cached.Source != "cache" {
		t.Fatalf("expected cached almanac, got %+v %v", cached, err)
	}
}

func TestServiceAnalyze(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	if _, err := svc.Analyze(ctx, "2024-02-19"); !errors.Is(err, app.ErrNotSetUp) {
		t.Fatalf("expected ErrNotSetUp, got %v", err)
	}
	if _, err := svc.SaveProfile(ctx, profile.Profile{Name: "Alex", BirthDate: "1990-01-01", BirthTime: "08:30"}); err != nil {
		t.Fatalf("SaveProfile: %v", err)
	}
	if _, err := svc.Analyze(ctx, "2024-02-19"); !errors.Is(err, app.ErrNoJournalData) {
		t.Fatalf("expected ErrNoJournalData, got %v", err)
	}
	if _, err := svc.UpdateJournalField(ctx, "2024-02-19", "otherEvents", "下雨"); err != nil {
		t.Fatalf("UpdateJournalField: %v", err)
	}
	dto, err := svc.Analyze(ctx, "2024-02-19")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if dto.OverallScore != 75 || dto.Date != "2024-02-19" {
		t.Fatalf("unexpected analysis %+v", dto)
	}
	stored, err := svc.StoredAnalysis(ctx, "2024-02-19")
	if err != nil || stored.Advice != "早睡" {
		t.Fatalf("expected stored analysis, got %+v %v", stored, err)
	}

	items, err := svc.History(ctx)
	if err != nil || len(items) != 1 || !items[0].HasAnalysis {
		t.Fatalf("unexpected history %+v %v", items, err)
	}
}

func TestSaveProfileRejectsIncomplete(t *testing.T) {
	svc, mem := newTestService()
	if _, err := svc.SaveProfile(context.Background(), profile.Profile{Name: "Alex"}); err == nil {
		t.Fatalf("expected validation error")
	}
	if mem.Has(store.ProfileKey()) {
		t.Fatalf("incomplete profile must not be stored")
	}
}

func TestParseDay(t *testing.T) {
	today := entry.Day("2024-02-19")
	for raw, want := range map[string]entry.Day{
		"":           today,
		"today":      today,
		"2023-12-31": "2023-12-31",
	} {
		got, err := ParseDay(raw, today)
		if err != nil || got != want {
			t.Fatalf("ParseDay(%q) = %q, %v", raw, got, err)
		}
	}
	if _, err := ParseDay("19/02/2024", today); err == nil {
		t.Fatalf("expected error for bad date")
	}
}

func TestDayArgument(t *testing.T) {
	now := func() time.Time { return time.Date(2024, 2, 19, 10, 0, 0, 0, time.UTC) }
	for name, arg := range map[string]any{
		"string": "today",
		"list":   []string{"2024-02-19"},
	} {
		t.Run(name, func(t *testing.T) {
			var req mcp.ReadResourceRequest
			req.Params.Arguments = map[string]any{"date": arg}
			day, err := dayArgument(req, now)
			if err != nil || day != "2024-02-19" {
				t.Fatalf("dayArgument = %q, %v", day, err)
			}
		})
	}
	var empty mcp.ReadResourceRequest
	if _, err := dayArgument(empty, now); err == nil {
		t.Fatalf("expected error without date")
	}
}
