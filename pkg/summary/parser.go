// Package summary splits news summary markup into a lead image and body HTML.
//
// Only image tags are removed from the body. Everything else in the summary,
// including scripts, styles and frames, is passed through and rendered as raw
// markup, so the summary source is trusted. Stricter handling belongs to a
// Sanitizer applied after Parse, see NewPolicySanitizer.
package summary

import (
	"regexp"

	"github.com/umputun/gamegraf/pkg/domain"
)

var (
	// leadImageRe matches the first img tag carrying a quoted src attribute
	leadImageRe = regexp.MustCompile(`(?i)<img[^>]*src=["']([^"']+)["'][^>]*>`)
	// imgTagRe matches any img tag
	imgTagRe = regexp.MustCompile(`(?i)<img[^>]*>`)
)

// Parse extracts the lead image URL from html and returns the markup with all img tags removed.
// Malformed or image-less input comes back unchanged with no image. Parse is pure and idempotent.
func Parse(html string) domain.ParsedSummary {
	res := domain.ParsedSummary{BodyHTML: html}

	if m := leadImageRe.FindStringSubmatch(html); m != nil {
		res.ImageURL = m[1]
		res.HasImage = true
	}

	if imgTagRe.MatchString(html) {
		res.BodyHTML = imgTagRe.ReplaceAllLiteralString(html, "")
	}

	return res
}
