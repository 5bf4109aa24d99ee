package scraper

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-jobdemand-scraper/internal/browser"
	"go-jobdemand-scraper/internal/extract"
	"go-jobdemand-scraper/internal/logging"
)

const defaultNavigationTimeout = 45 * time.Second

// Pipeline scrapes one portal: launch, navigate, settle, extract, release.
// Run never returns an error; every failure becomes a StatusFailed outcome.
type Pipeline struct {
	portal   Portal
	launcher browser.Launcher
	log      *logging.Logger
}

func NewPipeline(portal Portal, launcher browser.Launcher, log *logging.Logger) *Pipeline {
	if log == nil {
		log = logging.Nop()
	}
	return &Pipeline{portal: portal, launcher: launcher, log: log}
}

func (p *Pipeline) Run(ctx context.Context, q Query) (out Outcome) {
	url := p.portal.URL(q)
	log := logging.FromContext(ctx, p.log).With("portal", p.portal.Name)
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			out = p.failed(url, &Error{Kind: KindUnknown, Portal: p.portal.Name, Op: "run", Err: fmt.Errorf("panic: %v", r)})
		}
		if out.Status == StatusFailed {
			log.Warn("portal scrape failed", "url", url, "kind", KindOf(out.Err).String(), "err", out.Err, "elapsed", time.Since(start))
			return
		}
		log.Info("portal scraped", "url", url, "jobs", out.Jobs, "elapsed", time.Since(start))
	}()

	sess, err := p.launcher.Acquire(ctx)
	if err != nil {
		return p.failed(url, p.wrap(KindBrowserLaunch, "launch", err))
	}
	defer func() {
		if err := sess.Release(); err != nil {
			log.Warn("browser session release failed", "err", err)
		}
	}()

	log.Debug("navigating", "url", url)
	if err := p.navigate(ctx, sess, url); err != nil {
		// a page still loading past its deadline is not worth waiting on
		if k := KindOf(err); k != KindNavigationTimeout && k != KindCanceled {
			p.capture(sess, log, "navigation")
		}
		return p.failed(url, err)
	}

	if err := settle(ctx, p.portal.SettleDelay); err != nil {
		return p.failed(url, p.wrap(KindCanceled, "settle", err))
	}

	res, err := p.extract(sess)
	if err != nil {
		return p.failed(url, err)
	}
	if res.Tier != extract.TierRule {
		log.Debug("no count element matched, using listing count", "items", res.Count)
		if res.Count == 0 {
			p.capture(sess, log, "empty")
		}
	}

	return Outcome{
		Name:        p.portal.Name,
		Jobs:        res.Count,
		URL:         url,
		Description: p.portal.Description,
		Status:      StatusLive,
	}
}

func (p *Pipeline) navigate(ctx context.Context, sess browser.Session, url string) error {
	timeout := p.portal.NavigationTimeout
	if timeout <= 0 {
		timeout = defaultNavigationTimeout
	}
	navCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	err := sess.Navigate(navCtx, url, browser.NavigateOptions{
		WaitUntil: p.portal.WaitUntil,
		Timeout:   timeout,
	})
	switch {
	case err == nil:
		return nil
	case errors.Is(err, browser.ErrNavigationTimeout), errors.Is(err, context.DeadlineExceeded):
		return p.wrap(KindNavigationTimeout, "navigate", err)
	case errors.Is(err, context.Canceled):
		return p.wrap(KindCanceled, "navigate", err)
	default:
		return p.wrap(KindNavigation, "navigate", err)
	}
}

func (p *Pipeline) extract(sess browser.Session) (extract.Result, error) {
	html, err := sess.Content()
	if err != nil {
		return extract.Result{}, p.wrap(KindExtraction, "snapshot", err)
	}
	doc, err := extract.NewHTMLDocument(html)
	if err != nil {
		return extract.Result{}, p.wrap(KindExtraction, "parse", err)
	}
	return p.portal.Cascade.Extract(doc), nil
}

func (p *Pipeline) capture(sess browser.Session, log *logging.Logger, reason string) {
	if _, err := sess.Capture(p.portal.Name + " " + reason); err != nil {
		log.Debug("debug screenshot failed", "err", err)
	}
}

func (p *Pipeline) wrap(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Portal: p.portal.Name, Op: op, Err: err}
}

func (p *Pipeline) failed(url string, err error) Outcome {
	return Outcome{
		Name:        p.portal.Name,
		URL:         url,
		Description: p.portal.Description,
		Status:      StatusFailed,
		Error:       err.Error(),
		Err:         err,
	}
}

// settle waits d, returning early with ctx's error if it ends first.
func settle(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
