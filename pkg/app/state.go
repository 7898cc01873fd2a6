package app

import (
	"errors"
	"fmt"
	"strings"

	"tableflip.dev/zenday/pkg/almanac"
	"tableflip.dev/zenday/pkg/analysis"
	"tableflip.dev/zenday/pkg/entry"
	"tableflip.dev/zenday/pkg/profile"
)

// View is one of the top-level screens. Settings is an overlay, not a view.
type View int

const (
	ViewHome View = iota
	ViewJournal
	ViewAnalysis
)

func (v View) String() string {
	switch v {
	case ViewHome:
		return "HOME"
	case ViewJournal:
		return "JOURNAL"
	case ViewAnalysis:
		return "ANALYSIS"
	}
	return fmt.Sprintf("View(%d)", int(v))
}

// Views lists the screens in navigation order.
func Views() []View {
	return []View{ViewHome, ViewJournal, ViewAnalysis}
}

func ParseView(s string) (View, error) {
	for _, v := range Views() {
		if strings.EqualFold(v.String(), s) {
			return v, nil
		}
	}
	return ViewHome, fmt.Errorf("app: unknown view %q", s)
}

// AlertAnalysisFailed is shown when the analysis flow fails outside the
// provider, e.g. when the result cannot be stored.
const AlertAnalysisFailed = "无法生成分析，请稍后再试。"

var (
	ErrNotSetUp       = errors.New("app: profile is not set up")
	ErrNoJournalData  = errors.New("app: journal has no notes for the day")
	ErrNoAlmanac      = errors.New("app: almanac is not loaded")
	ErrAnalysisFailed = errors.New("app: analysis failed")
)

// State is everything the presentation layer renders. It is a value: the
// controller hands out copies and mutates it only through Reduce.
type State struct {
	// Day is the calendar day the controller is mounted on.
	Day          entry.Day
	View         View
	SettingsOpen bool

	Profile  profile.Profile
	Journal  entry.Entry
	Almanac  *almanac.Data
	Analysis *analysis.Result

	AlmanacSource   almanac.Source
	LoadingAlmanac  bool
	LoadingAnalysis bool

	// Alert is a blocking message; empty means none.
	Alert string
}

// Initial is the state before anything has been loaded for day.
func Initial(day entry.Day) State {
	return State{
		Day:     day,
		View:    ViewHome,
		Journal: entry.New(day),
	}
}

// CanAnalyze is the gate for triggering an analysis.
func CanAnalyze(s State) bool {
	return AnalysisBlocker(s) == nil
}

// AnalysisBlocker names the first unmet precondition for an analysis, or nil.
func AnalysisBlocker(s State) error {
	switch {
	case s.Almanac == nil:
		return ErrNoAlmanac
	case !s.Profile.IsSetup:
		return ErrNotSetUp
	case !s.Journal.HasJournalData():
		return ErrNoJournalData
	}
	return nil
}
