package linkedin

import (
	"time"

	"go-jobdemand-scraper/internal/browser"
	"go-jobdemand-scraper/internal/extract"
	"go-jobdemand-scraper/internal/scraper"
)

const Name = "LinkedIn"

// Public guest search, no login. The header reads "15,234 Python Django
// Jobs in Worldwide"; older markup only keeps the list title.
func New() scraper.Portal {
	return scraper.Portal{
		Name:        Name,
		Description: "Red profesional más grande del mundo",
		SearchURL:   "https://www.linkedin.com/jobs/search/?keywords={query}",
		Cascade: extract.Cascade{
			Rules: []extract.Rule{
				{Selector: ".results-context-header__job-count"},
				{Selector: ".jobs-search-results-list__title"},
				{Selector: ".results-context-header__query"},
				{Selector: ".search-results-container"},
			},
			Listing: []string{
				".jobs-search__results-list li",
				".job-search-card",
				".occludable-update",
			},
		},
		SettleDelay:       6 * time.Second,
		NavigationTimeout: 45 * time.Second,
		WaitUntil:         browser.WaitNetworkIdle,
		Estimate:          scraper.Range{Min: 10000, Max: 15000},
	}
}
