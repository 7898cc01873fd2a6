package theme

import "github.com/charmbracelet/lipgloss/v2"

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Nav      NavTheme
	Panel    PanelTheme
	Almanac  AlmanacTheme
	Form     FormTheme
	Analysis AnalysisTheme
	Modal    ModalTheme
	Alert    ModalTheme
}

// NavTheme groups styles used by the bottom navigation bar.
type NavTheme struct {
	Tab         lipgloss.Style
	ActiveTab   lipgloss.Style
	Help        lipgloss.Style
	Status      lipgloss.Style
	StatusError lipgloss.Style
}

// PanelTheme styles framed panels and headings.
type PanelTheme struct {
	Frame    lipgloss.Style
	Title    lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style
	Greeting lipgloss.Style
}

// AlmanacTheme styles the daily almanac card.
type AlmanacTheme struct {
	Frame       lipgloss.Style
	Pillar      lipgloss.Style
	SolarTerm   lipgloss.Style
	Yi          lipgloss.Style
	Ji          lipgloss.Style
	Description lipgloss.Style
}

// FormTheme styles the journal form rows.
type FormTheme struct {
	Label        lipgloss.Style
	FocusedLabel lipgloss.Style
	Value        lipgloss.Style
	Placeholder  lipgloss.Style
	Selected     lipgloss.Style
}

// AnalysisTheme styles the analysis panel.
type AnalysisTheme struct {
	ScoreHigh lipgloss.Style
	ScoreMid  lipgloss.Style
	ScoreLow  lipgloss.Style
	Heading   lipgloss.Style
	Button    lipgloss.Style
	Disabled  lipgloss.Style
}

// ModalTheme styles centered modal overlays (settings, alerts).
type ModalTheme struct {
	Frame lipgloss.Style
	Title lipgloss.Style
	Body  lipgloss.Style
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	ink := lipgloss.Color("252")
	muted := lipgloss.Color("244")
	cinnabar := lipgloss.Color("160")
	jade := lipgloss.Color("35")
	gold := lipgloss.Color("178")

	tab := lipgloss.NewStyle().Foreground(muted).Padding(0, 1)

	return Theme{
		Nav: NavTheme{
			Tab:         tab,
			ActiveTab:   tab.Foreground(ink).Bold(true).Reverse(true),
			Help:        lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status:      lipgloss.NewStyle().Foreground(muted),
			StatusError: lipgloss.NewStyle().Foreground(cinnabar),
		},
		Panel: PanelTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				Padding(1, 2),
			Title:    lipgloss.NewStyle().Bold(true),
			Body:     lipgloss.NewStyle(),
			Muted:    lipgloss.NewStyle().Foreground(muted),
			Greeting: lipgloss.NewStyle().Foreground(muted).Italic(true),
		},
		Almanac: AlmanacTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.DoubleBorder()).
				BorderForeground(cinnabar).
				Padding(1, 2),
			Pillar:      lipgloss.NewStyle().Bold(true).Foreground(ink),
			SolarTerm:   lipgloss.NewStyle().Foreground(gold),
			Yi:          lipgloss.NewStyle().Foreground(jade).Bold(true),
			Ji:          lipgloss.NewStyle().Foreground(cinnabar).Bold(true),
			Description: lipgloss.NewStyle().Italic(true).Foreground(muted),
		},
		Form: FormTheme{
			Label:        lipgloss.NewStyle().Foreground(muted).Width(14),
			FocusedLabel: lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true).Width(14),
			Value:        lipgloss.NewStyle().Foreground(ink),
			Placeholder:  lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
			Selected:     lipgloss.NewStyle().Reverse(true),
		},
		Analysis: AnalysisTheme{
			ScoreHigh: lipgloss.NewStyle().Bold(true).Foreground(jade),
			ScoreMid:  lipgloss.NewStyle().Bold(true).Foreground(gold),
			ScoreLow:  lipgloss.NewStyle().Bold(true).Foreground(cinnabar),
			Heading:   lipgloss.NewStyle().Bold(true).Underline(true),
			Button:    lipgloss.NewStyle().Bold(true).Padding(0, 2).Reverse(true),
			Disabled:  lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Padding(0, 2),
		},
		Modal: ModalTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				Padding(1, 2),
			Title: lipgloss.NewStyle().Bold(true),
			Body:  lipgloss.NewStyle(),
		},
		Alert: ModalTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.ThickBorder()).
				BorderForeground(cinnabar).
				Padding(1, 3),
			Title: lipgloss.NewStyle().Bold(true).Foreground(cinnabar),
			Body:  lipgloss.NewStyle(),
		},
	}
}
