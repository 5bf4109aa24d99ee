package scraper

import (
	"context"

	"go-jobdemand-scraper/internal/browser"
	"go-jobdemand-scraper/internal/logging"

	"golang.org/x/sync/errgroup"
)

// Orchestrator runs one Pipeline per portal concurrently.
type Orchestrator struct {
	portals     []Portal
	launcher    browser.Launcher
	synth       *Synthesizer
	maxSessions int
	log         *logging.Logger
}

type Option func(*Orchestrator)

// WithMaxSessions caps how many browser sessions run at once. Zero or less
// means one per portal.
func WithMaxSessions(n int) Option {
	return func(o *Orchestrator) { o.maxSessions = n }
}

func NewOrchestrator(portals []Portal, launcher browser.Launcher, log *logging.Logger, opts ...Option) *Orchestrator {
	if log == nil {
		log = logging.Nop()
	}
	o := &Orchestrator{
		portals:  portals,
		launcher: launcher,
		synth:    NewSynthesizer(portals),
		log:      log,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *Orchestrator) Portals() []Portal {
	return o.portals
}

// ScrapeAll waits for every pipeline and returns the live outcomes. When none
// are live it returns synthesized estimates instead. The only error is a
// synthesis failure.
func (o *Orchestrator) ScrapeAll(ctx context.Context, skills []string) ([]Outcome, error) {
	q := NewQuery(skills)
	log := logging.FromContext(ctx, o.log)
	log.Info("scraping portals", "skills", skills, "query", q.Term, "portals", len(o.portals))

	// each goroutine owns exactly one slot
	outcomes := make([]Outcome, len(o.portals))

	var g errgroup.Group
	if o.maxSessions > 0 {
		g.SetLimit(o.maxSessions)
	}
	for i, portal := range o.portals {
		pipe := NewPipeline(portal, o.launcher, o.log)
		g.Go(func() error {
			outcomes[i] = pipe.Run(ctx, q)
			return nil // best-effort: don't cancel siblings
		})
	}
	_ = g.Wait()

	live := make([]Outcome, 0, len(outcomes))
	var failed []string
	for _, out := range outcomes {
		if out.Status == StatusLive {
			live = append(live, out)
			continue
		}
		failed = append(failed, out.Name)
	}
	log.Info("scrape finished", "live", len(live), "failed", len(failed))

	if len(live) > 0 {
		return live, nil
	}

	log.Warn("every portal failed, returning estimates", "failed", failed)
	return o.synth.Synthesize(skills)
}
