package almanac

import (
	"context"
	"errors"
	"fmt"
	"io"

	zal "tableflip.dev/zenday/pkg/almanac"
	"tableflip.dev/zenday/pkg/app"
	"tableflip.dev/zenday/pkg/entry"
	"tableflip.dev/zenday/pkg/printers"
	"tableflip.dev/zenday/pkg/store"
)

// Almanac prints the almanac for one day.
type Almanac struct {
	Controller *app.Controller
	Day        entry.Day
	// Cached only reads the cache and never calls the service.
	Cached bool
	Format printers.Format
	Out    io.Writer
}

type record struct {
	zal.Data
	Source string `json:"source"`
}

func (n *Almanac) Do(ctx context.Context) error {
	if n.Controller == nil || n.Controller.Persistence == nil {
		return errors.New("can not fetch almanac, no persistence")
	}

	var (
		data zal.Data
		src  zal.Source
	)
	if n.Cached {
		found, err := n.Controller.Persistence.Load(store.AlmanacKey(n.Day.String()), &data)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("no cached almanac for %s", n.Day)
		}
		src = zal.SourceCache
	} else {
		data, src = n.Controller.Almanacs.Fetch(ctx, n.Day)
	}

	pp := printers.PrettyPrint{Out: n.Out}
	if n.Format != printers.FormatPretty {
		return pp.Encode(n.Format, record{Data: data, Source: src.String()})
	}
	pp.Almanac(data, src)
	return nil
}
