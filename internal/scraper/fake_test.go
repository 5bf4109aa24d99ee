package scraper

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"go-jobdemand-scraper/internal/browser"
	"go-jobdemand-scraper/internal/extract"
)

// fakePage scripts what a host does when navigated to.
type fakePage struct {
	html       string
	delay      time.Duration // simulated network time
	hang       bool          // never finishes on its own
	navErr     error
	contentErr error
	panics     bool
}

type fakeLauncher struct {
	pages     map[string]fakePage
	launchErr error
	// captureDelay makes every debug screenshot take this long
	captureDelay time.Duration

	mu       sync.Mutex
	sessions []*fakeSession

	active    atomic.Int32
	maxActive atomic.Int32
}

func newFakeLauncher(pages map[string]fakePage) *fakeLauncher {
	return &fakeLauncher{pages: pages}
}

func (l *fakeLauncher) Acquire(ctx context.Context) (browser.Session, error) {
	if l.launchErr != nil {
		return nil, l.launchErr
	}
	n := l.active.Add(1)
	for {
		m := l.maxActive.Load()
		if n <= m || l.maxActive.CompareAndSwap(m, n) {
			break
		}
	}
	s := &fakeSession{l: l}
	l.mu.Lock()
	l.sessions = append(l.sessions, s)
	l.mu.Unlock()
	return s, nil
}

func (l *fakeLauncher) allSessions() []*fakeSession {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]*fakeSession(nil), l.sessions...)
}

type fakeSession struct {
	l        *fakeLauncher
	page     fakePage
	released atomic.Int32
	captures atomic.Int32
}

func (s *fakeSession) Navigate(ctx context.Context, rawURL string, _ browser.NavigateOptions) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return err
	}
	page, ok := s.l.pages[u.Host]
	if !ok {
		return fmt.Errorf("net::ERR_NAME_NOT_RESOLVED at %s", rawURL)
	}
	s.page = page
	if page.panics {
		panic("driver crashed")
	}

	var wait <-chan time.Time // nil blocks forever
	if !page.hang {
		wait = time.After(page.delay)
	}
	select {
	case <-wait:
		return page.navErr
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("%w: %s", browser.ErrNavigationTimeout, rawURL)
		}
		return ctx.Err()
	}
}

func (s *fakeSession) Content() (string, error) {
	return s.page.html, s.page.contentErr
}

func (s *fakeSession) Capture(string) (string, error) {
	s.captures.Add(1)
	time.Sleep(s.l.captureDelay)
	return "", nil
}

func (s *fakeSession) Release() error {
	if s.released.Add(1) == 1 {
		s.l.active.Add(-1)
	}
	return nil
}

func countPage(n string) string {
	return `<html><body><h1 class="count">` + n + ` jobs</h1></body></html>`
}

func testPortal(name, host string) Portal {
	return Portal{
		Name:        name,
		Description: name + " listings",
		SearchURL:   "https://" + host + "/jobs?q={query}",
		Cascade: extract.Cascade{
			Rules:   []extract.Rule{{Selector: ".count"}},
			Listing: []string{".card"},
		},
		NavigationTimeout: time.Second,
		WaitUntil:         browser.WaitLoad,
		Estimate:          Range{Min: 10000, Max: 15000},
	}
}
