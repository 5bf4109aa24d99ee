// Package getonboard describes Get on Board, a Spanish-language tech job board
// that files searches under a path slug (/empleos-python) instead of a query
// parameter.
package getonboard

import (
	"regexp"
	"time"

	"go-jobdemand-scraper/internal/browser"
	"go-jobdemand-scraper/internal/extract"
	"go-jobdemand-scraper/internal/scraper"
)

const Name = "Get on Board"

// "42 resultados" / "1 resultado". A bare number in an h1 is not a count.
var resultados = regexp.MustCompile(`(\d+)\s+resultados?`)

func New() scraper.Portal {
	return scraper.Portal{
		Name:        Name,
		Description: "Tecnología y startups",
		SearchURL:   "https://www.getonbrd.com/empleos-{slug}",
		Cascade: extract.Cascade{
			Rules: []extract.Rule{
				{Selector: ".gb-results-list-header", Pattern: resultados},
				{Selector: ".search-results-count", Pattern: resultados},
				{Selector: "h1", Pattern: resultados},
			},
			Listing: []string{
				".gb-results-list > div",
				".job-item",
				".job-card",
			},
		},
		SettleDelay:       4 * time.Second,
		NavigationTimeout: 45 * time.Second,
		WaitUntil:         browser.WaitNetworkIdle,
		Estimate:          scraper.Range{Min: 100, Max: 600},
	}
}
