// Package portal assembles the configured set of job portals.
package portal

import (
	"strings"

	"go-jobdemand-scraper/internal/browser"
	"go-jobdemand-scraper/internal/config"
	"go-jobdemand-scraper/internal/scraper"
	"go-jobdemand-scraper/internal/scraper/getonboard"
	"go-jobdemand-scraper/internal/scraper/glassdoor"
	"go-jobdemand-scraper/internal/scraper/indeed"
	"go-jobdemand-scraper/internal/scraper/linkedin"
)

// Builtin returns the known portals in their default order.
func Builtin() []scraper.Portal {
	return []scraper.Portal{
		linkedin.New(),
		indeed.New(),
		glassdoor.New(),
		getonboard.New(),
	}
}

// Registry applies overrides (matched by case-insensitive name) to the
// built-ins and drops disabled portals. Overrides for unknown names are
// ignored.
func Registry(overrides []config.PortalConfig) []scraper.Portal {
	byName := make(map[string]config.PortalConfig, len(overrides))
	for _, o := range overrides {
		byName[strings.ToLower(o.Name)] = o
	}

	portals := make([]scraper.Portal, 0, 4)
	for _, p := range Builtin() {
		o, ok := byName[strings.ToLower(p.Name)]
		if !ok {
			portals = append(portals, p)
			continue
		}
		if o.Disabled {
			continue
		}
		portals = append(portals, apply(p, o))
	}
	return portals
}

func apply(p scraper.Portal, o config.PortalConfig) scraper.Portal {
	if o.SettleDelay > 0 {
		p.SettleDelay = o.SettleDelay
	}
	if o.NavigationTimeout > 0 {
		p.NavigationTimeout = o.NavigationTimeout
	}
	if o.WaitUntil != "" {
		p.WaitUntil = browser.ParseWaitUntil(o.WaitUntil)
	}
	if o.Estimate != nil {
		p.Estimate = *o.Estimate
	}
	return p
}

// Names lists portal names, for logs.
func Names(portals []scraper.Portal) []string {
	names := make([]string, len(portals))
	for i, p := range portals {
		names[i] = p.Name
	}
	return names
}
