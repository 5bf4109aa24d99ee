package browser

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()

	assert.True(t, opts.Headless)
	assert.Equal(t, 1366, opts.ViewportWidth)
	assert.Equal(t, 768, opts.ViewportHeight)
	assert.Contains(t, opts.Args, "--no-sandbox")
	assert.True(t, opts.Stealth)
	assert.Equal(t, map[string]bool{"image": true, "stylesheet": true, "font": true, "media": true}, opts.blockedSet())
}

func TestOptionsClone_IsIndependent(t *testing.T) {
	opts := DefaultOptions()
	l := NewPlaywrightLauncher(opts, nil)

	opts.Args[0] = "--changed"
	opts.BlockResources[0] = "script"

	assert.Equal(t, "--no-sandbox", l.opts.Args[0])
	assert.Equal(t, "image", l.opts.BlockResources[0])
	assert.Nil(t, l.shots)
}

func TestParseWaitUntil(t *testing.T) {
	assert.Equal(t, WaitNetworkIdle, ParseWaitUntil("networkidle"))
	assert.Equal(t, WaitDOMContentLoaded, ParseWaitUntil("domcontentloaded"))
	assert.Equal(t, WaitCommit, ParseWaitUntil("commit"))
	assert.Equal(t, WaitLoad, ParseWaitUntil("load"))
	assert.Equal(t, WaitLoad, ParseWaitUntil("networkidle2"))

	assert.Equal(t, playwright.WaitUntilStateNetworkidle, WaitNetworkIdle.state())
	assert.Equal(t, playwright.WaitUntilStateLoad, WaitUntil("").state())
}

func TestRelease_ZeroSessionIsIdempotent(t *testing.T) {
	s := &playwrightSession{}
	assert.NoError(t, s.Release())
	assert.NoError(t, s.Release())

	path, err := s.Capture("anything")
	assert.NoError(t, err)
	assert.Empty(t, path)
}

func TestAcquire_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewPlaywrightLauncher(DefaultOptions(), nil).Acquire(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestScreenshotPath(t *testing.T) {
	at := time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)

	assert.Equal(t, filepath.Join("shots", "get-on-board-timeout_2026-01-02_15-04-05.png"),
		screenshotPath("shots", "Get on Board timeout", at))
	assert.Equal(t, filepath.Join("shots", "page_2026-01-02_15-04-05.png"),
		screenshotPath("shots", "  ", at))
}

// integration test: needs the playwright driver and chromium installed
func TestPlaywrightSession_Fixture(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping browser integration test in short mode")
	}

	sess, err := NewPlaywrightLauncher(DefaultOptions(), nil).Acquire(context.Background())
	if err != nil {
		t.Skipf("playwright not available: %v", err)
	}
	defer sess.Release()

	ps := sess.(*playwrightSession)
	mockHTML := `<html><body><h1 class="results-context-header__job-count">15,234</h1></body></html>`
	require.NoError(t, ps.page.Route("**/*", func(route playwright.Route) {
		_ = route.Fulfill(playwright.RouteFulfillOptions{
			Status:      playwright.Int(200),
			ContentType: playwright.String("text/html"),
			Body:        mockHTML,
		})
	}))

	err = sess.Navigate(context.Background(), "https://portal.test/jobs?q=go", NavigateOptions{
		WaitUntil: WaitLoad,
		Timeout:   10 * time.Second,
	})
	require.NoError(t, err)

	html, err := sess.Content()
	require.NoError(t, err)
	assert.Contains(t, html, "15,234")

	webdriver, err := ps.page.Evaluate("() => navigator.webdriver")
	require.NoError(t, err)
	assert.Nil(t, webdriver, "stealth script hides navigator.webdriver")

	assert.NoError(t, sess.Release())
	assert.NoError(t, sess.Release())
}

func TestPlaywrightSession_NavigateExpiredContext(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), -time.Second)
	defer cancel()

	s := &playwrightSession{}
	err := s.Navigate(ctx, "https://portal.test", NavigateOptions{Timeout: time.Second})
	assert.ErrorIs(t, err, ErrNavigationTimeout)
}
