package journal

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/zenday/pkg/app"
	"tableflip.dev/zenday/pkg/entry"
	"tableflip.dev/zenday/pkg/printers"
)

var errNoController = errors.New("can not use journal, no persistence")

// Show prints the journal entry for one day. A day without an entry shows
// the defaults.
type Show struct {
	Controller *app.Controller
	Day        entry.Day
	Format     printers.Format
	Out        io.Writer
}

func (n *Show) Do(ctx context.Context) error {
	if n.Controller == nil {
		return errNoController
	}
	st, err := n.Controller.Open(n.Day)
	if err != nil {
		return err
	}
	return printEntry(n.Out, n.Format, st.Journal)
}

// Set changes one field of a day's entry and stores the whole entry.
type Set struct {
	Controller *app.Controller
	Day        entry.Day
	Field      string
	Value      string
	Format     printers.Format
	Out        io.Writer
}

func (n *Set) Do(ctx context.Context) error {
	if n.Controller == nil {
		return errNoController
	}
	field, err := entry.ParseField(n.Field)
	if err != nil {
		return err
	}
	if _, err := n.Controller.Open(n.Day); err != nil {
		return err
	}
	st, err := n.Controller.ChangeJournalField(ctx, field, n.Value)
	if err != nil {
		return err
	}
	return printEntry(n.Out, n.Format, st.Journal)
}

func printEntry(out io.Writer, f printers.Format, e entry.Entry) error {
	pp := printers.PrettyPrint{Out: out}
	if f != printers.FormatPretty {
		return pp.Encode(f, e)
	}
	pp.Journal(e)
	return nil
}

// History lists every journaled day, newest first.
type History struct {
	Controller *app.Controller
	// Calendar prints month grids colored by mood instead of a table.
	Calendar bool
	Format   printers.Format
	Out      io.Writer
}

func (n *History) Do(ctx context.Context) error {
	if n.Controller == nil {
		return errNoController
	}
	items, err := n.Controller.History(ctx)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{Out: n.Out}
	if n.Format != printers.FormatPretty {
		if items == nil {
			items = []app.HistoryItem{}
		}
		return pp.Encode(n.Format, items)
	}
	if n.Calendar {
		pp.Calendars(items)
		return nil
	}
	pp.Title("History")
	pp.History(items)
	return nil
}
