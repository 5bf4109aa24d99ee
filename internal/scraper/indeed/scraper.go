package indeed

import (
	"regexp"
	"time"

	"go-jobdemand-scraper/internal/browser"
	"go-jobdemand-scraper/internal/extract"
	"go-jobdemand-scraper/internal/scraper"
)

const Name = "Indeed"

// jobsSuffix prefers the number right before "jobs" ("Page 1 of 8,123 jobs").
var jobsSuffix = regexp.MustCompile(`(?i)(\d[\d,]*)\s+jobs?`)

func New() scraper.Portal {
	var rules []extract.Rule
	for _, sel := range []string{
		".jobsearch-JobCountAndSortPane-jobCount",
		".searchCount",
		"#searchCountPages",
	} {
		rules = append(rules,
			extract.Rule{Selector: sel, Pattern: jobsSuffix},
			extract.Rule{Selector: sel},
		)
	}

	return scraper.Portal{
		Name:        Name,
		Description: "Motor de búsqueda de empleo global",
		SearchURL:   "https://www.indeed.com/jobs?q={query}",
		Cascade: extract.Cascade{
			Rules: rules,
			Listing: []string{
				".jobsearch-SerpJobCard",
				`[data-tn-component="organicJob"]`,
				".result",
			},
		},
		SettleDelay:       5 * time.Second,
		NavigationTimeout: 45 * time.Second,
		WaitUntil:         browser.WaitNetworkIdle,
		Estimate:          scraper.Range{Min: 8000, Max: 12000},
	}
}
