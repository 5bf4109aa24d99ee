// Command probe runs one portal pipeline with debug screenshots on, to check a
// portal's selectors against the live site.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"go-jobdemand-scraper/internal/browser"
	"go-jobdemand-scraper/internal/config"
	"go-jobdemand-scraper/internal/logging"
	"go-jobdemand-scraper/internal/portal"
	"go-jobdemand-scraper/internal/scraper"
)

func main() {
	name := flag.String("portal", "LinkedIn", "portal name")
	skills := flag.String("skills", "golang", "comma separated skills")
	shots := flag.String("shots", "screenshots", "screenshot directory")
	headful := flag.Bool("headful", false, "show the browser window")
	flag.Parse()

	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1)
	}
	log := logging.New("debug")
	defer func() { _ = log.Sync() }()

	var target *scraper.Portal
	for _, p := range portal.Registry(cfg.Portals) {
		if strings.EqualFold(p.Name, *name) {
			target = &p
			break
		}
	}
	if target == nil {
		fmt.Fprintf(os.Stderr, "unknown portal %q, have %v\n", *name, portal.Names(portal.Registry(cfg.Portals)))
		os.Exit(2)
	}

	opts := cfg.BrowserOptions()
	opts.ScreenshotDir = *shots
	opts.Headless = !*headful

	q := scraper.NewQuery(scraper.SplitSkills(*skills))
	log.Info("probing portal", "portal", target.Name, "url", target.URL(q))

	out := scraper.NewPipeline(*target, browser.NewPlaywrightLauncher(opts, log), log).Run(context.Background(), q)

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		fmt.Fprintln(os.Stderr, "marshal outcome:", err)
		os.Exit(1)
	}
	fmt.Println(string(data))
	if out.Status != scraper.StatusLive {
		os.Exit(1)
	}
}
