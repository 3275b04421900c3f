// ABOUTME: Handlebars contract template compilation and helpers
// ABOUTME: French date/time helpers and output filename generation
package contract

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/aymerick/raymond"
	"github.com/goodsign/monday"

	"github.com/lecanape/canape/models"
)

const dateLayout = "2006-01-02"

var timestampLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// CompileTemplate parses a Handlebars contract template and registers
// the helpers contract templates rely on.
func CompileTemplate(source string) (*raymond.Template, error) {
	tpl, err := raymond.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse contract template: %w", err)
	}

	tpl.RegisterHelpers(map[string]interface{}{
		"formatDate": formatDate,
		"formatTime": formatTime,
		"uniqTitles": uniqTitles,
	})

	return tpl, nil
}

// formatDate renders a gig timestamp as a French long date, e.g.
// "14 juillet 2026".
func formatDate(timestamp string) string {
	t, ok := parseTimestamp(timestamp)
	if !ok {
		return timestamp
	}
	return monday.Format(t, "2 January 2006", monday.LocaleFrFR)
}

// formatTime renders a gig timestamp's time portion as "20h30".
func formatTime(timestamp string) string {
	t, ok := parseTimestamp(timestamp)
	if !ok {
		return ""
	}
	return t.Format("15h04")
}

// uniqTitles returns each distinct show title once, in first-seen order.
func uniqTitles(gigs []models.Gig) []string {
	seen := make(map[string]bool)
	var titles []string
	for _, gig := range gigs {
		if gig.ShowTitle == "" || seen[gig.ShowTitle] {
			continue
		}
		seen[gig.ShowTitle] = true
		titles = append(titles, gig.ShowTitle)
	}
	return titles
}

func parseTimestamp(value string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// OutputFileName derives the contract file stem from the deal: the deal
// date compacted, the organization name in camelCase, and a fixed
// suffix, e.g. "20260714-villeDeNantes-contract".
func OutputFileName(deal models.Deal) string {
	datePart := strings.ReplaceAll(deal.Date, "-", "")
	if t, err := time.Parse(dateLayout, deal.Date); err == nil {
		datePart = t.Format("20060102")
	}
	return fmt.Sprintf("%s-%s-contract", datePart, camelCase(deal.Organization.Name))
}

// camelCase lowercases the first word and capitalizes the rest, keeping
// only letters and digits. Matches the original filenames so existing
// contracts keep sorting next to their reruns.
func camelCase(s string) string {
	var words []string
	var current strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			current.WriteRune(unicode.ToLower(r))
			continue
		}
		if current.Len() > 0 {
			words = append(words, current.String())
			current.Reset()
		}
	}
	if current.Len() > 0 {
		words = append(words, current.String())
	}

	var out strings.Builder
	for i, word := range words {
		if i == 0 {
			out.WriteString(word)
			continue
		}
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		out.WriteString(string(runes))
	}
	return out.String()
}
