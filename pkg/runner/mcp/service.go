// Package mcp provides the Model Context Protocol server integration for zenday.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"tableflip.dev/zenday/pkg/almanac"
	"tableflip.dev/zenday/pkg/analysis"
	"tableflip.dev/zenday/pkg/app"
	"tableflip.dev/zenday/pkg/entry"
	"tableflip.dev/zenday/pkg/profile"
	"tableflip.dev/zenday/pkg/store"
)

// Service runs controller operations for arbitrary days. The controller holds
// one mounted day at a time, so calls are serialized.
type Service struct {
	mu   sync.Mutex
	ctrl *app.Controller
}

// ErrNotFound is returned when no record is stored for the requested day.
var ErrNotFound = errors.New("record not found")

// AlmanacDTO is an almanac plus where it came from.
type AlmanacDTO struct {
	almanac.Data
	Source string `json:"source"`
}

// AnalysisDTO is a stored or freshly generated analysis.
type AnalysisDTO struct {
	Date entry.Day `json:"date"`
	analysis.Result
}

// NewService wraps ctrl.
func NewService(ctrl *app.Controller) *Service {
	return &Service{ctrl: ctrl}
}

func (s *Service) Profile(ctx context.Context) (profile.Profile, error) {
	return s.ctrl.Profile()
}

// SaveProfile validates and stores a new profile.
func (s *Service) SaveProfile(ctx context.Context, draft profile.Profile) (profile.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, err := s.ctrl.SaveSettings(ctx, draft)
	if err != nil {
		return profile.Profile{}, err
	}
	return st.Profile, nil
}

// Journal returns the stored entry for day, or the default one.
func (s *Service) Journal(ctx context.Context, day entry.Day) (entry.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, err := s.ctrl.Open(day)
	if err != nil {
		return entry.Entry{}, err
	}
	return st.Journal, nil
}

// UpdateJournalField sets one field of day's entry and stores it.
func (s *Service) UpdateJournalField(ctx context.Context, day entry.Day, field, value string) (entry.Entry, error) {
	f, err := entry.ParseField(field)
	if err != nil {
		return entry.Entry{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.ctrl.Open(day); err != nil {
		return entry.Entry{}, err
	}
	st, err := s.ctrl.ChangeJournalField(ctx, f, value)
	if err != nil {
		return entry.Entry{}, err
	}
	return st.Journal, nil
}

// FetchAlmanac returns day's almanac, generating it when not cached.
func (s *Service) FetchAlmanac(ctx context.Context, day entry.Day) AlmanacDTO {
	data, src := s.ctrl.Almanacs.Fetch(ctx, day)
	return AlmanacDTO{Data: data, Source: src.String()}
}

// CachedAlmanac returns day's almanac only if it is already stored.
func (s *Service) CachedAlmanac(ctx context.Context, day entry.Day) (AlmanacDTO, error) {
	var data almanac.Data
	found, err := s.ctrl.Persistence.Load(store.AlmanacKey(day.String()), &data)
	if err != nil {
		return AlmanacDTO{}, err
	}
	if !found {
		return AlmanacDTO{}, fmt.Errorf("almanac for %s: %w", day, ErrNotFound)
	}
	return AlmanacDTO{Data: data, Source: almanac.SourceCache.String()}, nil
}

// StoredAnalysis returns the persisted analysis for day.
func (s *Service) StoredAnalysis(ctx context.Context, day entry.Day) (AnalysisDTO, error) {
	res, err := s.ctrl.StoredAnalysis(day)
	if err != nil {
		return AnalysisDTO{}, err
	}
	if res == nil {
		return AnalysisDTO{}, fmt.Errorf("analysis for %s: %w", day, ErrNotFound)
	}
	return AnalysisDTO{Date: day, Result: *res}, nil
}

// Analyze mounts day, fetching its almanac if needed, and runs an analysis.
func (s *Service) Analyze(ctx context.Context, day entry.Day) (AnalysisDTO, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.ctrl.Mount(ctx, day); err != nil {
		return AnalysisDTO{}, err
	}
	st, err := s.ctrl.TriggerAnalysis(ctx)
	if err != nil {
		return AnalysisDTO{}, err
	}
	if st.Analysis == nil {
		return AnalysisDTO{}, app.ErrAnalysisFailed
	}
	return AnalysisDTO{Date: day, Result: *st.Analysis}, nil
}

func (s *Service) History(ctx context.Context) ([]app.HistoryItem, error) {
	return s.ctrl.History(ctx)
}

// ParseDay accepts YYYY-MM-DD or "today"; empty falls back to today.
func ParseDay(raw string, today entry.Day) (entry.Day, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, "today") {
		return today, nil
	}
	return entry.ParseDay(raw)
}
