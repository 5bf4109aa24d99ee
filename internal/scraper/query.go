package scraper

import (
	"net/url"
	"slices"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	querySkills = 2
	defaultSlug = "programacion"
)

// Query is derived once per request and shared by every pipeline.
type Query struct {
	Skills []string
	// Term is the first two skills, space-joined and percent-encoded.
	Term string
	// Slug is the first skill as a path segment ("Node JS" -> "node-js").
	Slug string
}

func NewQuery(skills []string) Query {
	n := min(querySkills, len(skills))
	q := Query{
		Skills: slices.Clone(skills),
		Term:   EncodeComponent(strings.Join(skills[:n], " ")),
		Slug:   defaultSlug,
	}
	if len(skills) > 0 {
		if slug := slugify(skills[0]); slug != "" {
			q.Slug = slug
		}
	}
	return q
}

// componentUnescaper undoes QueryEscape where encodeURIComponent leaves
// characters alone. QueryEscape turns a literal '+' into %2B, so any '+' left
// is a space.
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EncodeComponent percent-encodes s for use inside a query value, leaving
// A-Z a-z 0-9 - _ . ! ~ * ' ( ) as they are.
func EncodeComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}

// SplitSkills turns "python, django," into [python django].
func SplitSkills(s string) []string {
	skills := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			skills = append(skills, part)
		}
	}
	return skills
}

func normalizeText(str string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, str)
	if err != nil {
		result = str
	}
	return strings.ToLower(result)
}

func slugify(skill string) string {
	fields := strings.Fields(normalizeText(skill))
	if len(fields) == 0 {
		return ""
	}
	return url.PathEscape(strings.Join(fields, "-"))
}
