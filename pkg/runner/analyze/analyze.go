package analyze

import (
	"context"
	"errors"
	"fmt"
	"io"

	"tableflip.dev/zenday/pkg/analysis"
	"tableflip.dev/zenday/pkg/app"
	"tableflip.dev/zenday/pkg/entry"
	"tableflip.dev/zenday/pkg/printers"
)

// Analyze requests a reading for one day, or shows the stored one.
type Analyze struct {
	Controller *app.Controller
	Day        entry.Day
	// Stored prints the persisted analysis without calling the service.
	Stored bool
	Format printers.Format
	Out    io.Writer
}

type record struct {
	Date entry.Day `json:"date"`
	analysis.Result
}

func (n *Analyze) Do(ctx context.Context) error {
	if n.Controller == nil {
		return errors.New("can not analyze, no persistence")
	}

	var res analysis.Result
	if n.Stored {
		stored, err := n.Controller.StoredAnalysis(n.Day)
		if err != nil {
			return err
		}
		if stored == nil {
			return fmt.Errorf("no analysis stored for %s", n.Day)
		}
		res = *stored
	} else {
		if _, err := n.Controller.Mount(ctx, n.Day); err != nil {
			return err
		}
		st, err := n.Controller.TriggerAnalysis(ctx)
		if err != nil {
			return err
		}
		if st.Analysis == nil {
			return app.ErrAnalysisFailed
		}
		res = *st.Analysis
	}

	pp := printers.PrettyPrint{Out: n.Out}
	if n.Format != printers.FormatPretty {
		return pp.Encode(n.Format, record{Date: n.Day, Result: res})
	}
	pp.Analysis(n.Day, res)
	return nil
}
