package almanac

import (
	"context"
	"errors"
	"strings"
	"testing"

	"tableflip.dev/zenday/pkg/llm"
	"tableflip.dev/zenday/pkg/store"
	"tableflip.dev/zenday/pkg/store/storetest"
)

const reply = `{"ganZhi":"甲辰年 丙寅月 戊午日","solarTerm":"雨水","yi":["出行","会友","读书","纳财"],"ji":["动土"],"description":"春水初生。"}`

func TestFetchCachesPerDay(t *testing.T) {
	ctx := context.Background()
	mem := storetest.New()
	gen := llm.Succeed(reply)
	p := &Provider{Persistence: mem, Generator: gen}

	data, src := p.Fetch(ctx, "2024-02-19")
	if src != SourceService {
		t.Fatalf("expected service source, got %s", src)
	}
	if data.Date != "2024-02-19" {
		t.Fatalf("expected record stamped with requested date, got %q", data.Date)
	}
	if data.GanZhi != "甲辰年 丙寅月 戊午日" || data.SolarTerm != "雨水" {
		t.Fatalf("unexpected data %+v", data)
	}
	if !mem.Has(store.AlmanacKey("2024-02-19")) {
		t.Fatalf("expected almanac to be persisted")
	}

	again, src := p.Fetch(ctx, "2024-02-19")
	if src != SourceCache {
		t.Fatalf("expected cache source on second fetch, got %s", src)
	}
	if gen.Calls() != 1 {
		t.Fatalf("expected exactly one external call, got %d", gen.Calls())
	}
	if again.Description != data.Description || len(again.Yi) != len(data.Yi) {
		t.Fatalf("cached record differs: %+v vs %+v", again, data)
	}

	if _, src := p.Fetch(ctx, "2024-02-20"); src != SourceService {
		t.Fatalf("a new day should call the service, got %s", src)
	}
	if gen.Calls() != 2 {
		t.Fatalf("expected a second call for a new day, got %d", gen.Calls())
	}
}

func TestFetchFallbackIsNotCached(t *testing.T) {
	ctx := context.Background()
	mem := storetest.New()
	p := &Provider{Persistence: mem, Generator: llm.Fail(errors.New("network down"))}

	data, src := p.Fetch(ctx, "2024-02-19")
	if src != SourceFallback {
		t.Fatalf("expected fallback, got %s", src)
	}
	want := Fallback("2024-02-19")
	if data.GanZhi != "" || data.Description != want.Description || data.Yi[0] != "静心" || data.Ji[1] != "大额投资" {
		t.Fatalf("unexpected fallback %+v", data)
	}
	if mem.Len() != 0 {
		t.Fatalf("fallback must not be persisted, store has %v", mem.Keys(ctx, ""))
	}

	p.Generator = llm.Succeed(reply)
	if _, src := p.Fetch(ctx, "2024-02-19"); src != SourceService {
		t.Fatalf("expected later retry to reach the service, got %s", src)
	}
	if !mem.Has(store.AlmanacKey("2024-02-19")) {
		t.Fatalf("expected successful retry to populate the cache")
	}
}

func TestFetchTreatsMalformedRepliesAsFailures(t *testing.T) {
	for name, raw := range map[string]string{
		"empty":            "",
		"prose":            "今天是个好日子",
		"missing required": `{"ganZhi":"甲辰年 丙寅月 戊午日","yi":["出行"]}`,
	} {
		t.Run(name, func(t *testing.T) {
			mem := storetest.New()
			p := &Provider{Persistence: mem, Generator: llm.Succeed(raw)}
			if _, src := p.Fetch(context.Background(), "2024-02-19"); src != SourceFallback {
				t.Fatalf("expected fallback for %s reply, got %s", name, src)
			}
			if mem.Len() != 0 {
				t.Fatalf("malformed reply must not be cached")
			}
		})
	}
}

func TestFetchWithoutGeneratorFallsBack(t *testing.T) {
	p := &Provider{Persistence: storetest.New()}
	if _, src := p.Fetch(context.Background(), "2024-02-19"); src != SourceFallback {
		t.Fatalf("expected fallback without generator, got %s", src)
	}
}

func TestFetchReturnsRecordWhenCacheWriteFails(t *testing.T) {
	mem := storetest.New()
	mem.FailSave = errors.New("disk full")
	p := &Provider{Persistence: mem, Generator: llm.Succeed(reply)}
	data, src := p.Fetch(context.Background(), "2024-02-19")
	if src != SourceService || data.SolarTerm != "雨水" {
		t.Fatalf("expected generated record despite write failure, got %s %+v", src, data)
	}
}

func TestPromptMentionsDate(t *testing.T) {
	gen := llm.Succeed(reply)
	p := &Provider{Persistence: storetest.New(), Generator: gen}
	p.Fetch(context.Background(), "2024-02-19")
	req, ok := gen.LastRequest()
	if !ok {
		t.Fatalf("expected a request")
	}
	if !strings.Contains(req.Prompt, "2024-02-19") {
		t.Fatalf("prompt should name the date: %q", req.Prompt)
	}
	if req.Temperature != 0.2 {
		t.Fatalf("expected temperature 0.2, got %v", req.Temperature)
	}
}

func TestPillarsAndLabels(t *testing.T) {
	d := Data{GanZhi: "甲辰年 丙寅月 戊午日"}
	y, m, day := d.Pillars()
	if y != "甲辰年" || m != "丙寅月" || day != "戊午日" {
		t.Fatalf("unexpected pillars %q %q %q", y, m, day)
	}
	if _, _, day := (Data{}).Pillars(); day != "" {
		t.Fatalf("expected empty day pillar")
	}
	if d.SolarTermLabel() != "平日" {
		t.Fatalf("expected 平日 for missing solar term")
	}
	if got := Top([]string{"a", "b", "c", "d"}, 3); len(got) != 3 {
		t.Fatalf("expected top 3, got %v", got)
	}
}
