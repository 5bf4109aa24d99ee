package glassdoor

import (
	"time"

	"go-jobdemand-scraper/internal/browser"
	"go-jobdemand-scraper/internal/extract"
	"go-jobdemand-scraper/internal/scraper"
)

const Name = "Glassdoor"

func New() scraper.Portal {
	return scraper.Portal{
		Name:        Name,
		Description: "Información de empresas y salarios",
		SearchURL:   "https://www.glassdoor.com/Job/jobs.htm?sc.keyword={query}",
		Cascade: extract.Cascade{
			Rules: []extract.Rule{
				{Selector: `[data-test="jobs-count"]`},
				{Selector: ".jobsCount"},
				{Selector: ".searchResults"},
			},
			Listing: []string{
				".react-job-listing",
				".jobListItem",
				`[data-test="job-listing"]`,
			},
		},
		SettleDelay:       5 * time.Second,
		NavigationTimeout: 45 * time.Second,
		WaitUntil:         browser.WaitNetworkIdle,
		Estimate:          scraper.Range{Min: 5000, Max: 9000},
	}
}
