package browser

import (
	"github.com/playwright-community/playwright-go"
)

// stealthScript runs in every frame before page scripts. It masks the headless
// markers job portals probe before deciding to serve a challenge page instead
// of results.
const stealthScript = `
Object.defineProperty(navigator, 'webdriver', { get: () => undefined });
Object.defineProperty(navigator, 'languages', { get: () => ['en-US', 'en', 'es'] });
Object.defineProperty(navigator, 'plugins', { get: () => [1, 2, 3, 4, 5] });
window.chrome = window.chrome || { runtime: {} };
`

func applyStealth(bc playwright.BrowserContext) error {
	return bc.AddInitScript(playwright.Script{Content: playwright.String(stealthScript)})
}
