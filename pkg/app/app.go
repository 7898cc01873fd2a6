// Package app owns the application state and carries out the side effects
// the reducer asks for. The CLI, the TUI and the MCP server all share it.
package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"tableflip.dev/zenday/pkg/almanac"
	"tableflip.dev/zenday/pkg/analysis"
	"tableflip.dev/zenday/pkg/entry"
	"tableflip.dev/zenday/pkg/llm"
	"tableflip.dev/zenday/pkg/profile"
	"tableflip.dev/zenday/pkg/store"
)

var errNoPersistence = errors.New("app: no persistence configured")

// Controller holds the current State and runs effects against the store and
// the providers.
type Controller struct {
	Persistence store.Persistence
	Almanacs    *almanac.Provider
	Analyses    *analysis.Provider
	Log         *zap.Logger

	mu    sync.Mutex
	state State
}

// New wires a controller whose providers share gen.
func New(p store.Persistence, gen llm.Generator, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{
		Persistence: p,
		Almanacs:    &almanac.Provider{Persistence: p, Generator: gen, Log: log},
		Analyses:    &analysis.Provider{Generator: gen, Log: log},
		Log:         log,
		state:       Initial(""),
	}
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Apply reduces ev into the current state and returns the new state with the
// effects still to be run. It does no I/O.
func (c *Controller) Apply(ev Event) (State, []Effect) {
	c.mu.Lock()
	defer c.mu.Unlock()
	next, effects := Reduce(c.state, ev)
	c.state = next
	return next, effects
}

// Run carries out one effect and returns the event that reports its outcome,
// if any. Profile and journal write failures are returned as errors, and a
// failed journal write also comes back as JournalSaveFailed so the state can
// drop the unsaved change. A failed analysis write comes back as
// AnalysisFailed.
func (c *Controller) Run(ctx context.Context, eff Effect) (Event, error) {
	if c.Persistence == nil {
		return nil, errNoPersistence
	}
	switch eff := eff.(type) {
	case SaveProfile:
		if err := c.Persistence.Save(store.ProfileKey(), eff.Profile); err != nil {
			return nil, fmt.Errorf("app: save profile: %w", err)
		}
		return nil, nil

	case SaveJournal:
		if err := c.Persistence.Save(store.JournalKey(eff.Entry.Date.String()), eff.Entry); err != nil {
			err = fmt.Errorf("app: save journal %s: %w", eff.Entry.Date, err)
			return JournalSaveFailed{Entry: eff.Entry, Previous: eff.Previous, Err: err}, err
		}
		return nil, nil

	case SaveAnalysis:
		if err := c.Persistence.Save(store.AnalysisKey(eff.Day.String()), eff.Result); err != nil {
			c.Log.Error("storing analysis failed", zap.String("date", eff.Day.String()), zap.Error(err))
			return AnalysisFailed{Err: fmt.Errorf("app: save analysis %s: %w", eff.Day, err)}, nil
		}
		return nil, nil

	case FetchAlmanac:
		data, src := c.Almanacs.Fetch(ctx, eff.Day)
		return AlmanacLoaded{Data: data, Source: src}, nil

	case RunAnalysis:
		res := c.Analyses.Generate(ctx, eff.Profile, eff.Day, eff.Journal, eff.Almanac)
		return AnalysisCompleted{Day: eff.Day, Result: res}, nil
	}
	return nil, fmt.Errorf("app: unknown effect %T", eff)
}

// Dispatch applies ev and runs every resulting effect, and the effects of
// their outcome events, until nothing is left. It returns the final state and
// the first error met; an AnalysisFailed outcome is reported as
// ErrAnalysisFailed.
func (c *Controller) Dispatch(ctx context.Context, ev Event) (State, error) {
	var firstErr error
	queue := []Event{ev}
	for len(queue) > 0 {
		ev := queue[0]
		queue = queue[1:]
		if failed, ok := ev.(AnalysisFailed); ok && firstErr == nil {
			firstErr = fmt.Errorf("%w: %v", ErrAnalysisFailed, failed.Err)
		}
		_, effects := c.Apply(ev)
		for _, eff := range effects {
			next, err := c.Run(ctx, eff)
			if err != nil && firstErr == nil {
				firstErr = err
			}
			if next != nil {
				queue = append(queue, next)
			}
		}
	}
	return c.State(), firstErr
}

// Load reads the stored records for day without touching the network.
func (c *Controller) Load(day entry.Day) (Mounted, error) {
	if c.Persistence == nil {
		return Mounted{}, errNoPersistence
	}
	m := Mounted{Day: day}

	var err error
	if m.Profile, err = c.Profile(); err != nil {
		return Mounted{}, err
	}

	var journal entry.Entry
	found, err := c.Persistence.Load(store.JournalKey(day.String()), &journal)
	if err != nil {
		return Mounted{}, fmt.Errorf("app: load journal %s: %w", day, err)
	}
	if found {
		m.Journal = &journal
	}

	var res analysis.Result
	found, err = c.Persistence.Load(store.AnalysisKey(day.String()), &res)
	if err != nil {
		return Mounted{}, fmt.Errorf("app: load analysis %s: %w", day, err)
	}
	if found {
		m.Analysis = &res
	}
	return m, nil
}

// Mount loads day's records and fetches (or reuses) its almanac.
func (c *Controller) Mount(ctx context.Context, day entry.Day) (State, error) {
	m, err := c.Load(day)
	if err != nil {
		return c.State(), err
	}
	return c.Dispatch(ctx, m)
}

// Open mounts day from the store alone. The almanac stays unloaded, so
// analysis is gated until Mount is used instead.
func (c *Controller) Open(day entry.Day) (State, error) {
	m, err := c.Load(day)
	if err != nil {
		return c.State(), err
	}
	st, _ := c.Apply(m)
	return st, nil
}

// Profile returns the stored profile, or an empty one.
func (c *Controller) Profile() (profile.Profile, error) {
	if c.Persistence == nil {
		return profile.Profile{}, errNoPersistence
	}
	var p profile.Profile
	if _, err := c.Persistence.Load(store.ProfileKey(), &p); err != nil {
		return profile.Profile{}, fmt.Errorf("app: load profile: %w", err)
	}
	return p, nil
}

// SaveSettings validates draft, marks it set up and persists it.
func (c *Controller) SaveSettings(ctx context.Context, draft profile.Profile) (State, error) {
	p, err := profile.Complete(draft)
	if err != nil {
		return c.State(), err
	}
	return c.Dispatch(ctx, SettingsSaved{Profile: p})
}

// ChangeJournalField sets one field of the mounted journal and persists the
// whole entry.
func (c *Controller) ChangeJournalField(ctx context.Context, field entry.Field, value string) (State, error) {
	st := c.State()
	if _, err := st.Journal.With(field, value); err != nil {
		return st, err
	}
	return c.Dispatch(ctx, JournalFieldChanged{Field: field, Value: value})
}

// TriggerAnalysis runs an analysis for the mounted day. It returns the
// unmet precondition when the gate is closed.
func (c *Controller) TriggerAnalysis(ctx context.Context) (State, error) {
	st := c.State()
	if err := AnalysisBlocker(st); err != nil {
		return st, err
	}
	return c.Dispatch(ctx, AnalysisRequested{})
}

// StoredAnalysis returns the persisted analysis for day, if any.
func (c *Controller) StoredAnalysis(day entry.Day) (*analysis.Result, error) {
	if c.Persistence == nil {
		return nil, errNoPersistence
	}
	var res analysis.Result
	found, err := c.Persistence.Load(store.AnalysisKey(day.String()), &res)
	if err != nil {
		return nil, fmt.Errorf("app: load analysis %s: %w", day, err)
	}
	if !found {
		return nil, nil
	}
	return &res, nil
}

// Watch subscribes to persistence change events.
func (c *Controller) Watch(ctx context.Context) (<-chan store.Event, error) {
	if c.Persistence == nil {
		return nil, errNoPersistence
	}
	return c.Persistence.Watch(ctx)
}
