package profile

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/zenday/pkg/app"
	"tableflip.dev/zenday/pkg/printers"
	zp "tableflip.dev/zenday/pkg/profile"
)

var errNoController = errors.New("can not use profile, no persistence")

// Show prints the stored profile.
type Show struct {
	Controller *app.Controller
	Format     printers.Format
	Out        io.Writer
}

func (n *Show) Do(ctx context.Context) error {
	if n.Controller == nil {
		return errNoController
	}
	p, err := n.Controller.Profile()
	if err != nil {
		return err
	}
	return printProfile(n.Out, n.Format, p)
}

// Set stores a new profile. Merge receives the stored profile and returns the
// draft to save, so flags left unset keep their stored value. Prompt, when
// set, replaces Merge.
type Set struct {
	Controller *app.Controller
	Merge      func(zp.Profile) zp.Profile
	Prompt     func(zp.Profile) (zp.Profile, error)
	Format     printers.Format
	Out        io.Writer
}

func (n *Set) Do(ctx context.Context) error {
	if n.Controller == nil {
		return errNoController
	}
	draft, err := n.Controller.Profile()
	if err != nil {
		return err
	}
	switch {
	case n.Prompt != nil:
		if draft, err = n.Prompt(draft); err != nil {
			return err
		}
	case n.Merge != nil:
		draft = n.Merge(draft)
	}
	st, err := n.Controller.SaveSettings(ctx, draft)
	if err != nil {
		return err
	}
	return printProfile(n.Out, n.Format, st.Profile)
}

func printProfile(out io.Writer, f printers.Format, p zp.Profile) error {
	pp := printers.PrettyPrint{Out: out}
	if f != printers.FormatPretty {
		return pp.Encode(f, p)
	}
	pp.Profile(p)
	return nil
}
