// Package collect filters raw scraped candidates into the per-keyword
// snippet sets that feed article generation.
package collect

import (
	"strings"

	"github.com/google/uuid"

	"blogsmith/internal/core"
	"blogsmith/internal/logger"
	"blogsmith/internal/normalize"
)

const (
	// MaxPerKeyword caps the number of accepted snippets per keyword.
	MaxPerKeyword = 5
	// MaxScrollAttempts bounds how often the source is asked for more
	// candidates while a keyword's quota is unfilled.
	MaxScrollAttempts = 10
)

// SnippetSource yields raw candidate texts and can be asked to load more.
// The scraping collaborator implements it; tests substitute fakes.
type SnippetSource interface {
	// Candidates returns the raw texts currently available from the source.
	Candidates() ([]string, error)
	// LoadMore asks the source to surface additional candidates (scrolling).
	LoadMore() error
}

// Collector accepts snippets keyword by keyword, consulting the known set
// loaded from the usage ledger.
type Collector struct {
	source SnippetSource
	known  map[string]struct{}
}

// NewCollector returns a Collector reading from source and rejecting any raw
// text already present in known.
func NewCollector(source SnippetSource, known map[string]struct{}) *Collector {
	if known == nil {
		known = make(map[string]struct{})
	}
	return &Collector{source: source, known: known}
}

// CollectAll gathers snippets for each keyword in order and returns the
// combined mapping. Keywords that yield nothing are present with an empty
// slice so callers can report them.
func (c *Collector) CollectAll(keywords []string) core.KeywordSnippets {
	all := make(core.KeywordSnippets, len(keywords))
	for _, keyword := range keywords {
		all[keyword] = c.Collect(keyword)
	}
	return all
}

// Collect gathers up to MaxPerKeyword snippets for one keyword. A candidate
// is accepted when, in order: its raw text is not in the known set, the
// keyword appears case-insensitively in the raw text, and its normalized
// form has not already been accepted for this keyword in this run. The
// source is scrolled while the quota is unfilled and scroll attempts remain;
// running out of attempts with fewer snippets is a valid partial result.
func (c *Collector) Collect(keyword string) []core.Snippet {
	var accepted []core.Snippet
	seen := make(map[string]struct{})

	attempts := MaxScrollAttempts
	for len(accepted) < MaxPerKeyword && attempts > 0 {
		candidates, err := c.source.Candidates()
		if err != nil {
			logger.Warn("Failed to read candidates", "keyword", keyword, "error", err.Error())
		}

		for _, raw := range candidates {
			if _, used := c.known[raw]; used {
				continue
			}
			if !strings.Contains(strings.ToLower(raw), strings.ToLower(keyword)) {
				continue
			}
			cleaned := normalize.Clean(raw)
			if _, dup := seen[cleaned]; dup {
				continue
			}
			seen[cleaned] = struct{}{}
			snippet := core.Snippet{
				ID:      uuid.NewString(),
				RawText: raw,
				Keyword: keyword,
			}
			accepted = append(accepted, snippet)
			logger.Debug("Accepted snippet", "snippet_id", snippet.ID, "keyword", keyword)
			if len(accepted) >= MaxPerKeyword {
				break
			}
		}

		if len(accepted) < MaxPerKeyword {
			if err := c.source.LoadMore(); err != nil {
				logger.Warn("Failed to load more candidates", "keyword", keyword, "error", err.Error())
			}
			attempts--
		}
	}

	logger.Info("Collected snippets", "keyword", keyword, "count", len(accepted))
	return accepted
}
