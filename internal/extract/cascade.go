// Package extract turns a rendered search results page into a job count.
//
// A Cascade holds an ordered list of Rules. Each rule names a CSS selector for
// an element that usually carries an explicit result count ("15,234 jobs") and
// a pattern that pulls the number out of its text. Rules are tried in order and
// the first positive count wins. When no rule produces one, the cascade counts
// listing cards instead, since portals drop the count header depending on
// markup version.
package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// DefaultPattern matches the first integer-like token, allowing thousands
// separators (comma, dot, no-break spaces) between groups of three digits.
var DefaultPattern = regexp.MustCompile(`\d{1,3}(?:[,.\x{00A0}\x{202F}]\d{3})+|\d+`)

// Document is a read-only view of a rendered page.
type Document interface {
	// Text returns the text content of the first element matching selector.
	Text(selector string) (string, bool)
	// Count returns how many elements match selector.
	Count(selector string) int
}

type Rule struct {
	Selector string
	// Pattern extracts the number. Capture group 1 is used when present,
	// otherwise the whole match. Nil means DefaultPattern.
	Pattern *regexp.Regexp
}

type Cascade struct {
	Rules []Rule
	// Listing selectors are combined into one union query.
	Listing []string
}

type Tier int

const (
	TierNone Tier = iota
	TierRule
	TierListing
)

func (t Tier) String() string {
	switch t {
	case TierRule:
		return "rule"
	case TierListing:
		return "listing"
	default:
		return "none"
	}
}

type Result struct {
	Count int
	Tier  Tier
	// Rule is the index of the winning rule, -1 when the listing count was used.
	Rule int
}

// Extract runs the cascade against doc. It never fails: the listing count is
// the answer of last resort and may be zero.
func (c Cascade) Extract(doc Document) Result {
	for i, rule := range c.Rules {
		text, ok := doc.Text(rule.Selector)
		if !ok {
			continue
		}
		if n, ok := ParseCount(text, rule.Pattern); ok && n > 0 {
			return Result{Count: n, Tier: TierRule, Rule: i}
		}
	}

	if len(c.Listing) == 0 {
		return Result{Tier: TierNone, Rule: -1}
	}
	return Result{
		Count: doc.Count(strings.Join(c.Listing, ", ")),
		Tier:  TierListing,
		Rule:  -1,
	}
}

// ParseCount extracts a non-negative integer from text using pattern
// (DefaultPattern when nil). Separators inside the number are dropped.
func ParseCount(text string, pattern *regexp.Regexp) (int, bool) {
	if pattern == nil {
		pattern = DefaultPattern
	}
	m := pattern.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	raw := m[0]
	if len(m) > 1 && m[1] != "" {
		raw = m[1]
	}

	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, raw)
	if digits == "" {
		return 0, false
	}

	n, err := strconv.Atoi(digits)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
