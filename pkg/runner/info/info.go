package info

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"tableflip.dev/zenday/pkg/store"
)

// Info prints where records live and how many of each kind are stored.
type Info struct {
	Config      *store.FileConfig
	Persistence store.Persistence
	Out         io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	out := n.Out
	if out == nil {
		out = color.Output
	}

	if override := os.Getenv("ZENDAY_CONFIG_PATH"); override != "" {
		fmt.Fprintln(out, "ZENDAY_CONFIG_PATH found on env, using ", override)
	} else {
		fmt.Fprintln(out, "ZENDAY_CONFIG_PATH env var not set")
	}

	if n.Config == nil {
		var err error
		n.Config, err = store.LoadConfig()
		if err != nil {
			return err
		}
	}

	fmt.Fprintln(out, "Config.path:    ", n.Config.BasePath())
	fmt.Fprintln(out, "Config.backend: ", n.Config.BackendName())
	fmt.Fprintln(out, "Config.model:   ", n.Config.Model)
	fmt.Fprintln(out, "Config.log_file:", n.Config.LogFile)
	if n.Config.APIKey == "" {
		fmt.Fprintln(out, "API key not set, readings use offline fallbacks")
	} else {
		fmt.Fprintln(out, "API key set")
	}

	if n.Persistence == nil {
		return errors.New("failed to create persistence object")
	}

	fmt.Fprintf(out, "Records:\n")
	for _, ns := range []store.Namespace{store.NamespaceProfile, store.NamespaceJournal, store.NamespaceAlmanac, store.NamespaceAnalysis} {
		fmt.Fprintf(out, "  %-9s %d\n", ns, len(n.Persistence.Keys(ctx, string(ns))))
	}
	return nil
}
