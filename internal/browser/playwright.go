package browser

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go-jobdemand-scraper/internal/logging"

	"github.com/playwright-community/playwright-go"
)

// ErrNavigationTimeout marks a navigation that did not finish in time.
var ErrNavigationTimeout = errors.New("navigation timeout")

type NavigateOptions struct {
	WaitUntil WaitUntil
	Timeout   time.Duration
}

// Session is one isolated browser process and page, owned by a single caller.
type Session interface {
	Navigate(ctx context.Context, url string, opts NavigateOptions) error
	// Content returns the rendered HTML of the current page.
	Content() (string, error)
	// Capture saves a debug screenshot and returns its path ("" when disabled).
	Capture(name string) (string, error)
	// Release tears the session down. Safe to call more than once.
	Release() error
}

type Launcher interface {
	Acquire(ctx context.Context) (Session, error)
}

// PlaywrightLauncher starts a fresh playwright driver and Chromium per session.
type PlaywrightLauncher struct {
	opts  Options
	shots *ScreenshotDebugger
	log   *logging.Logger
}

func NewPlaywrightLauncher(opts Options, log *logging.Logger) *PlaywrightLauncher {
	if log == nil {
		log = logging.Nop()
	}
	l := &PlaywrightLauncher{opts: opts.clone(), log: log}
	if opts.ScreenshotDir != "" {
		l.shots = NewScreenshotDebugger(opts.ScreenshotDir, log)
	}
	return l
}

// Install downloads the playwright driver and Chromium.
func Install() error {
	return playwright.Install(&playwright.RunOptions{Browsers: []string{"chromium"}})
}

func (l *PlaywrightLauncher) Acquire(ctx context.Context) (Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("start playwright: %w", err)
	}
	s := &playwrightSession{pw: pw, shots: l.shots}

	launch := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(l.opts.Headless),
		Args:     l.opts.Args,
	}
	if l.opts.ExecutablePath != "" {
		launch.ExecutablePath = playwright.String(l.opts.ExecutablePath)
	}
	if s.browser, err = pw.Chromium.Launch(launch); err != nil {
		_ = s.Release()
		return nil, fmt.Errorf("launch chromium: %w", err)
	}

	ctxOpts := playwright.BrowserNewContextOptions{}
	if l.opts.UserAgent != "" {
		ctxOpts.UserAgent = playwright.String(l.opts.UserAgent)
	}
	if l.opts.ViewportWidth > 0 && l.opts.ViewportHeight > 0 {
		ctxOpts.Viewport = &playwright.Size{Width: l.opts.ViewportWidth, Height: l.opts.ViewportHeight}
	}
	if s.context, err = s.browser.NewContext(ctxOpts); err != nil {
		_ = s.Release()
		return nil, fmt.Errorf("new browser context: %w", err)
	}

	if l.opts.Stealth {
		if err := applyStealth(s.context); err != nil {
			_ = s.Release()
			return nil, fmt.Errorf("install stealth script: %w", err)
		}
	}

	if blocked := l.opts.blockedSet(); len(blocked) > 0 {
		err = s.context.Route("**/*", func(route playwright.Route) {
			if blocked[route.Request().ResourceType()] {
				_ = route.Abort()
				return
			}
			_ = route.Continue()
		})
		if err != nil {
			_ = s.Release()
			return nil, fmt.Errorf("install resource filter: %w", err)
		}
	}

	if s.page, err = s.context.NewPage(); err != nil {
		_ = s.Release()
		return nil, fmt.Errorf("new page: %w", err)
	}

	l.log.Debug("browser session started", "headless", l.opts.Headless, "stealth", l.opts.Stealth)
	return s, nil
}

type playwrightSession struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
	page    playwright.Page
	shots   *ScreenshotDebugger

	once       sync.Once
	releaseErr error
}

func (s *playwrightSession) Navigate(ctx context.Context, url string, opts NavigateOptions) error {
	timeout := opts.Timeout
	if dl, ok := ctx.Deadline(); ok {
		if rem := time.Until(dl); timeout <= 0 || rem < timeout {
			timeout = rem
		}
	}
	if timeout <= 0 {
		return fmt.Errorf("%w: %s", ErrNavigationTimeout, url)
	}

	// Goto is not context aware; if ctx ends first the goroutine is unblocked
	// by its own timeout or by Release closing the page.
	done := make(chan error, 1)
	go func() {
		_, err := s.page.Goto(url, playwright.PageGotoOptions{
			WaitUntil: opts.WaitUntil.state(),
			Timeout:   playwright.Float(float64(timeout.Milliseconds())),
		})
		done <- err
	}()

	select {
	case err := <-done:
		switch {
		case err == nil:
			return nil
		case errors.Is(err, playwright.ErrTimeout):
			return fmt.Errorf("%w: %s: %v", ErrNavigationTimeout, url, err)
		default:
			return fmt.Errorf("goto %s: %w", url, err)
		}
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("%w: %s", ErrNavigationTimeout, url)
		}
		return ctx.Err()
	}
}

func (s *playwrightSession) Content() (string, error) {
	return s.page.Content()
}

func (s *playwrightSession) Capture(name string) (string, error) {
	if s.shots == nil || s.page == nil {
		return "", nil
	}
	return s.shots.Capture(s.page, name)
}

func (s *playwrightSession) Release() error {
	s.once.Do(func() {
		var errs []error
		if s.context != nil {
			errs = append(errs, s.context.Close())
		}
		if s.browser != nil {
			errs = append(errs, s.browser.Close())
		}
		if s.pw != nil {
			errs = append(errs, s.pw.Stop())
		}
		s.releaseErr = errors.Join(errs...)
	})
	return s.releaseErr
}
