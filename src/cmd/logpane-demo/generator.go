// FILE: logpane/src/cmd/logpane-demo/generator.go
package main

import (
	"context"
	"fmt"
	stdlog "log"
	"math/rand/v2"
	"sync"
	"time"

	"logpane/src/internal/config"
	"logpane/src/logpane"

	"github.com/lixenwraith/log"
)

var demoTargets = []string{"app", "app::db", "app::http", "cache", "scheduler"}

var demoMessages = []struct {
	level logpane.Level
	text  string
}{
	{logpane.LevelInfo, "request served"},
	{logpane.LevelDebug, "cache lookup"},
	{logpane.LevelTrace, "entering handler"},
	{logpane.LevelWarn, "slow query"},
	{logpane.LevelError, "connection refused"},
	{logpane.LevelInfo, "job scheduled"},
	{logpane.LevelDebug, "pool stats"},
}

// emitBurst writes n records up front, so the viewer opens on a full store
func emitBurst(n int) {
	for i := range n {
		m := demoMessages[i%len(demoMessages)]
		logpane.Logf(m.level, demoTargets[i%len(demoTargets)], "%s #%d", m.text, i)
	}
	stdlog.Printf("initial burst of %d records written", n)
}

// generator runs writer goroutines logging through slog at a fixed rate
type generator struct {
	cfg    *config.DemoOptions
	logger *log.Logger
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func newGenerator(cfg *config.DemoOptions, logger *log.Logger) *generator {
	return &generator{cfg: cfg, logger: logger}
}

func (g *generator) Start(ctx context.Context) {
	if g.cfg.Writers == 0 || g.cfg.RatePerWriter <= 0 {
		return
	}
	ctx, g.cancel = context.WithCancel(ctx)

	interval := time.Duration(float64(time.Second) / g.cfg.RatePerWriter)
	for w := range g.cfg.Writers {
		g.wg.Add(1)
		go g.write(ctx, w, interval)
	}

	g.logger.Info("msg", "Demo writers started",
		"writers", g.cfg.Writers,
		"interval", interval)
}

func (g *generator) write(ctx context.Context, id int, interval time.Duration) {
	defer g.wg.Done()

	target := demoTargets[id%len(demoTargets)]
	l := logpane.Logger(target).With("writer", id)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for n := 0; ; n++ {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		m := demoMessages[rand.IntN(len(demoMessages))]
		switch m.level {
		case logpane.LevelError:
			l.Error(m.text, "attempt", n)
		case logpane.LevelWarn:
			l.Warn(m.text, "elapsed", fmt.Sprintf("%dms", rand.IntN(900)+100))
		case logpane.LevelInfo:
			l.Info(m.text, "n", n)
		case logpane.LevelDebug:
			l.Debug(m.text, "n", n)
		default:
			l.Log(ctx, logpane.SlogLevelTrace, m.text)
		}
	}
}

func (g *generator) Stop() {
	if g.cancel == nil {
		return
	}
	g.cancel()
	g.wg.Wait()
	g.logger.Info("msg", "Demo writers stopped")
}
