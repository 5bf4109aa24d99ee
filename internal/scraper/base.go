// Package scraper estimates job demand per portal: one pipeline per portal
// scrapes a count with an isolated browser session, and the orchestrator runs
// them side by side and falls back to estimates when none succeed.
package scraper

import (
	"strings"
	"time"

	"go-jobdemand-scraper/internal/browser"
	"go-jobdemand-scraper/internal/extract"
)

type Status string

const (
	StatusLive      Status = "live"
	StatusFailed    Status = "failed"
	StatusEstimated Status = "estimated"
)

// Outcome is one portal's answer for one request.
type Outcome struct {
	Name        string `json:"name"`
	Jobs        int    `json:"jobs"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Status      Status `json:"status"`
	// Estimated is set on synthesized records only.
	Estimated bool   `json:"estimated,omitempty"`
	Error     string `json:"error,omitempty"`

	Err error `json:"-"`
}

// Range is a half-open interval [Min, Max) used for fallback estimates.
type Range struct {
	Min int `json:"min" yaml:"min"`
	Max int `json:"max" yaml:"max"`
}

func (r Range) Valid() bool {
	return r.Min >= 0 && r.Max > r.Min
}

func (r Range) Contains(n int) bool {
	return n >= r.Min && n < r.Max
}

// Portal is the static description of one job site.
type Portal struct {
	Name        string
	Description string
	// SearchURL may contain {query} (shared encoded term) and {slug}
	// (normalized first skill) placeholders.
	SearchURL         string
	Cascade           extract.Cascade
	SettleDelay       time.Duration
	NavigationTimeout time.Duration
	WaitUntil         browser.WaitUntil
	Estimate          Range
}

func (p Portal) URL(q Query) string {
	return strings.NewReplacer("{query}", q.Term, "{slug}", q.Slug).Replace(p.SearchURL)
}
