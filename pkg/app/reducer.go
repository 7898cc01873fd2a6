package app

import (
	"tableflip.dev/zenday/pkg/entry"
)

// Reduce applies ev to s. It performs no I/O: persistence and provider calls
// come back as effects for the caller to run.
func Reduce(s State, ev Event) (State, []Effect) {
	switch ev := ev.(type) {
	case Mounted:
		s.Day = ev.Day
		s.Profile = ev.Profile
		if ev.Journal != nil {
			s.Journal = *ev.Journal
		} else {
			s.Journal = entry.New(ev.Day)
		}
		s.Analysis = ev.Analysis
		s.Almanac = nil
		s.LoadingAlmanac = true
		return s, []Effect{FetchAlmanac{Day: ev.Day}}

	case AlmanacLoaded:
		if ev.Data.Date != s.Day {
			return s, nil
		}
		data := ev.Data
		s.Almanac = &data
		s.AlmanacSource = ev.Source
		s.LoadingAlmanac = false
		return s, nil

	case Navigate:
		s.View = ev.View
		return s, nil

	case OpenSettings:
		s.SettingsOpen = true
		return s, nil

	case CloseSettings:
		s.SettingsOpen = false
		return s, nil

	case SettingsSaved:
		if !ev.Profile.IsSetup {
			return s, nil
		}
		s.Profile = ev.Profile
		s.SettingsOpen = false
		return s, []Effect{SaveProfile{Profile: ev.Profile}}

	case JournalFieldChanged:
		next, err := s.Journal.With(ev.Field, ev.Value)
		if err != nil {
			return s, nil
		}
		prev := s.Journal
		s.Journal = next
		return s, []Effect{SaveJournal{Entry: next, Previous: prev}}

	case AnalysisRequested:
		if !CanAnalyze(s) {
			return s, nil
		}
		s.LoadingAnalysis = true
		return s, []Effect{RunAnalysis{
			Day:     s.Day,
			Profile: s.Profile,
			Journal: s.Journal,
			Almanac: *s.Almanac,
		}}

	case AnalysisCompleted:
		s.LoadingAnalysis = false
		if ev.Day == s.Day {
			res := ev.Result
			s.Analysis = &res
		}
		return s, []Effect{SaveAnalysis{Day: ev.Day, Result: ev.Result}}

	case AnalysisFailed:
		s.LoadingAnalysis = false
		s.Alert = AlertAnalysisFailed
		return s, nil

	case JournalSaveFailed:
		// Later edits were applied on top of the failed one; keep them.
		if s.Journal == ev.Entry {
			s.Journal = ev.Previous
		}
		return s, nil

	case AlertDismissed:
		s.Alert = ""
		return s, nil

	case JournalReloaded:
		if ev.Entry.Date != s.Journal.Date {
			return s, nil
		}
		s.Journal = ev.Entry
		return s, nil

	case ProfileReloaded:
		s.Profile = ev.Profile
		return s, nil
	}
	return s, nil
}
