package commands

import (
	"context"

	"go.uber.org/zap"

	"tableflip.dev/zenday/pkg/app"
	"tableflip.dev/zenday/pkg/llm"
	"tableflip.dev/zenday/pkg/logging"
	"tableflip.dev/zenday/pkg/store"
)

// logTarget picks where a command's diagnostics go.
type logTarget int

const (
	// logStderr is for one-shot commands: warnings only, on stderr.
	logStderr logTarget = iota
	// logFile is for commands that own stdout or the terminal.
	logFile
)

// environment is everything a command needs to run controller operations.
type environment struct {
	Config      *store.FileConfig
	Log         *zap.Logger
	Persistence store.Persistence
	Controller  *app.Controller
}

func setup(ctx context.Context, target logTarget) (*environment, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}

	var log *zap.Logger
	switch target {
	case logFile:
		log, err = logging.New(cfg.LogLevel, cfg.LogFile)
	default:
		log, err = logging.New("warn", "")
	}
	if err != nil {
		return nil, err
	}

	p, err := store.Load(cfg)
	if err != nil {
		_ = log.Sync()
		return nil, err
	}

	return &environment{
		Config:      cfg,
		Log:         log,
		Persistence: p,
		Controller:  app.New(p, newGenerator(ctx, cfg, log), log),
	}, nil
}

// newGenerator returns the Gemini client behind a circuit breaker, or a
// generator that always fails when no API key is configured so every reading
// falls back.
func newGenerator(ctx context.Context, cfg *store.FileConfig, log *zap.Logger) llm.Generator {
	var gen llm.Generator = llm.Unavailable{}
	if cfg.APIKey != "" {
		g, err := llm.NewGemini(ctx, cfg.APIKey, cfg.Model)
		if err != nil {
			log.Warn("gemini client unavailable, using fallbacks", zap.Error(err))
		} else {
			gen = g
		}
	}
	return llm.NewBreaker(gen, llm.DefaultBreakerConfig("gemini"), log)
}

func (e *environment) Close() {
	if e.Persistence != nil {
		if err := e.Persistence.Close(); err != nil {
			e.Log.Warn("closing store", zap.Error(err))
		}
	}
	_ = e.Log.Sync()
}
