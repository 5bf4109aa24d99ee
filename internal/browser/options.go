package browser

import (
	"slices"

	"github.com/playwright-community/playwright-go"
)

const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Options is the process-wide launch policy. Build it once at startup and hand
// it to NewPlaywrightLauncher; sessions never modify it.
type Options struct {
	Headless       bool
	ExecutablePath string
	Args           []string
	UserAgent      string
	ViewportWidth  int
	ViewportHeight int
	// BlockResources lists playwright resource types aborted before they load
	// (image, stylesheet, font, media, ...).
	BlockResources []string
	// ScreenshotDir enables debug screenshots when non-empty.
	ScreenshotDir string
	// Stealth hides navigator.webdriver and similar automation markers.
	Stealth bool
}

func DefaultOptions() Options {
	return Options{
		Headless: true,
		Args: []string{
			"--no-sandbox",
			"--disable-setuid-sandbox",
			"--disable-dev-shm-usage",
			"--disable-accelerated-2d-canvas",
			"--no-first-run",
			"--no-zygote",
			"--disable-gpu",
		},
		UserAgent:      DefaultUserAgent,
		ViewportWidth:  1366,
		ViewportHeight: 768,
		BlockResources: []string{"image", "stylesheet", "font", "media"},
		Stealth:        true,
	}
}

func (o Options) clone() Options {
	o.Args = slices.Clone(o.Args)
	o.BlockResources = slices.Clone(o.BlockResources)
	return o
}

func (o Options) blockedSet() map[string]bool {
	set := make(map[string]bool, len(o.BlockResources))
	for _, r := range o.BlockResources {
		set[r] = true
	}
	return set
}

// WaitUntil is the navigation completion condition.
type WaitUntil string

const (
	WaitLoad             WaitUntil = "load"
	WaitDOMContentLoaded WaitUntil = "domcontentloaded"
	WaitNetworkIdle      WaitUntil = "networkidle"
	WaitCommit           WaitUntil = "commit"
)

func (w WaitUntil) state() *playwright.WaitUntilState {
	switch w {
	case WaitDOMContentLoaded:
		return playwright.WaitUntilStateDomcontentloaded
	case WaitNetworkIdle:
		return playwright.WaitUntilStateNetworkidle
	case WaitCommit:
		return playwright.WaitUntilStateCommit
	default:
		return playwright.WaitUntilStateLoad
	}
}

// ParseWaitUntil accepts the playwright names; anything else means "load".
func ParseWaitUntil(s string) WaitUntil {
	switch w := WaitUntil(s); w {
	case WaitDOMContentLoaded, WaitNetworkIdle, WaitCommit:
		return w
	default:
		return WaitLoad
	}
}
