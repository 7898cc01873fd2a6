package app

import (
	"tableflip.dev/zenday/pkg/almanac"
	"tableflip.dev/zenday/pkg/analysis"
	"tableflip.dev/zenday/pkg/entry"
	"tableflip.dev/zenday/pkg/profile"
)

// Event is an input to Reduce.
type Event interface {
	isEvent()
}

// Mounted carries the records read from the store for Day. A nil Journal
// means no entry exists yet and a default one is used.
type Mounted struct {
	Day      entry.Day
	Profile  profile.Profile
	Journal  *entry.Entry
	Analysis *analysis.Result
}

type AlmanacLoaded struct {
	Data   almanac.Data
	Source almanac.Source
}

type Navigate struct {
	View View
}

type OpenSettings struct{}

type CloseSettings struct{}

// SettingsSaved carries a profile that already passed profile.Complete.
type SettingsSaved struct {
	Profile profile.Profile
}

type JournalFieldChanged struct {
	Field entry.Field
	Value string
}

type AnalysisRequested struct{}

type AnalysisCompleted struct {
	Day    entry.Day
	Result analysis.Result
}

type AnalysisFailed struct {
	Err error
}

type AlertDismissed struct{}

// JournalSaveFailed reports that Entry could not be written. Previous is the
// entry the change was applied to.
type JournalSaveFailed struct {
	Entry    entry.Entry
	Previous entry.Entry
	Err      error
}

// JournalReloaded replaces the journal after another process wrote it.
type JournalReloaded struct {
	Entry entry.Entry
}

// ProfileReloaded replaces the profile after another process wrote it.
type ProfileReloaded struct {
	Profile profile.Profile
}

func (Mounted) isEvent()             {}
func (AlmanacLoaded) isEvent()       {}
func (Navigate) isEvent()            {}
func (OpenSettings) isEvent()        {}
func (CloseSettings) isEvent()       {}
func (SettingsSaved) isEvent()       {}
func (JournalFieldChanged) isEvent() {}
func (AnalysisRequested) isEvent()   {}
func (AnalysisCompleted) isEvent()   {}
func (AnalysisFailed) isEvent()      {}
func (AlertDismissed) isEvent()      {}
func (JournalReloaded) isEvent()     {}
func (ProfileReloaded) isEvent()     {}

// Effect is a side effect requested by Reduce and carried out by the
// Controller.
type Effect interface {
	isEffect()
}

type SaveProfile struct {
	Profile profile.Profile
}

type SaveJournal struct {
	Entry    entry.Entry
	Previous entry.Entry
}

type SaveAnalysis struct {
	Day    entry.Day
	Result analysis.Result
}

type FetchAlmanac struct {
	Day entry.Day
}

// RunAnalysis snapshots everything the provider needs at trigger time.
type RunAnalysis struct {
	Day     entry.Day
	Profile profile.Profile
	Journal entry.Entry
	Almanac almanac.Data
}

func (SaveProfile) isEffect()  {}
func (SaveJournal) isEffect()  {}
func (SaveAnalysis) isEffect() {}
func (FetchAlmanac) isEffect() {}
func (RunAnalysis) isEffect()  {}
