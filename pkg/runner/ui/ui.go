package ui

import (
	"context"
	"errors"

	"tableflip.dev/zenday/pkg/app"
	tui "tableflip.dev/zenday/pkg/tui/app"
)

// UI runs the full-screen interface for today.
type UI struct {
	Controller *app.Controller
}

func (d *UI) Do(ctx context.Context) error {
	if d.Controller == nil {
		return errors.New("can not start ui, no persistence")
	}
	return tui.Run(ctx, d.Controller)
}
