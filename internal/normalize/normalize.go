// Package normalize reduces raw scraped snippets to a canonical form used
// both for keyword filtering and for deduplication against the usage ledger.
package normalize

import (
	"regexp"
	"strings"
)

var (
	urlPattern     = regexp.MustCompile(`http\S+`)
	mentionPattern = regexp.MustCompile(`@\w+`)
	nonTextPattern = regexp.MustCompile(`[^a-zA-Z\s]`)
)

// Clean strips URLs and @-mentions from the given text, removes all
// remaining non-letter characters (which takes the '#' off hashtags while
// keeping the tag word itself), then collapses runs of whitespace to single
// spaces. Clean is total and idempotent.
func Clean(text string) string {
	text = urlPattern.ReplaceAllString(text, "")
	text = mentionPattern.ReplaceAllString(text, "")
	text = nonTextPattern.ReplaceAllString(text, "")
	return strings.Join(strings.Fields(text), " ")
}
