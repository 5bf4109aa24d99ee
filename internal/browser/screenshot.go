package browser

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go-jobdemand-scraper/internal/logging"

	"github.com/playwright-community/playwright-go"
)

// screenshotTimeout bounds a debug capture so it never holds up a pipeline.
const screenshotTimeout = 2 * time.Second

// ScreenshotDebugger writes full-page screenshots for failed extractions.
type ScreenshotDebugger struct {
	outputDir string
	log       *logging.Logger
}

func NewScreenshotDebugger(dir string, log *logging.Logger) *ScreenshotDebugger {
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Warn("could not create screenshot dir", "dir", dir, "err", err)
	}
	return &ScreenshotDebugger{outputDir: dir, log: log}
}

func (s *ScreenshotDebugger) Capture(page playwright.Page, name string) (string, error) {
	path := screenshotPath(s.outputDir, name, time.Now())

	_, err := page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
		Timeout:  playwright.Float(float64(screenshotTimeout.Milliseconds())),
	})
	if err != nil {
		s.log.Warn("failed to capture screenshot", "name", name, "err", err)
		return "", err
	}

	s.log.Info("screenshot saved", "path", path)
	return path, nil
}

// screenshotPath builds <dir>/<slug>_<timestamp>.png, e.g. "get-on-board-timeout_2026-01-02_15-04-05.png".
func screenshotPath(dir, name string, at time.Time) string {
	slug := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return '-'
		}
	}, strings.TrimSpace(name))
	if slug == "" {
		slug = "page"
	}
	return filepath.Join(dir, fmt.Sprintf("%s_%s.png", slug, at.Format("2006-01-02_15-04-05")))
}
