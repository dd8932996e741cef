// Package pipeline sequences snippet collection, article generation,
// illustration and document assembly for one batch run.
package pipeline

import (
	"context"
	"fmt"

	"blogsmith/internal/collect"
	"blogsmith/internal/core"
	"blogsmith/internal/document"
	"blogsmith/internal/illustrate"
	"blogsmith/internal/ledger"
	"blogsmith/internal/logger"
)

// ArticleGenerator is the text generation step of the pipeline.
type ArticleGenerator interface {
	Generate(ctx context.Context, keyword string, snippets []core.Snippet) (core.Article, error)
}

// IllustrationGenerator fills in image paths for planned illustrations.
type IllustrationGenerator interface {
	GenerateAll(ctx context.Context, planned []core.Illustration) []core.Illustration
}

// Pipeline wires the run's collaborators together. All dependencies are
// injected; the pipeline holds no service clients of its own.
type Pipeline struct {
	Source        collect.SnippetSource
	Ledger        *ledger.Ledger
	Articles      ArticleGenerator
	Illustrations IllustrationGenerator // nil when the image service is unavailable
	NewWriter     func() document.Writer
	OutputDir     string
}

// Run processes the keywords in order. Prior output is cleared once, before
// any new document is written. One keyword's failure never aborts the rest
// of the batch; only a failure to clear the output directory stops the run,
// since proceeding would mix old and new documents.
func (p *Pipeline) Run(ctx context.Context, keywords []string) error {
	known := p.Ledger.LoadKnown()
	logger.Info("Loaded usage ledger", "known_snippets", len(known))

	collector := collect.NewCollector(p.Source, known)
	collected := collector.CollectAll(keywords)

	total := 0
	for _, snippets := range collected {
		total += len(snippets)
	}
	if total == 0 {
		logger.Info("No new relevant snippets found for any keyword")
		return nil
	}

	// Ledger writes are best-effort bookkeeping: a snippet already accepted
	// into this run proceeds even if recording it fails.
	for _, keyword := range keywords {
		for _, snippet := range collected[keyword] {
			if err := p.Ledger.Record(snippet.RawText); err != nil {
				logger.Warn("Failed to record snippet in ledger",
					"keyword", keyword, "error", err.Error())
			}
		}
	}

	if err := document.Clear(p.OutputDir); err != nil {
		return fmt.Errorf("failed to clear prior output: %w", err)
	}

	for _, keyword := range keywords {
		snippets := collected[keyword]
		if len(snippets) == 0 {
			logger.Info("Skipping keyword with no new snippets", "keyword", keyword)
			continue
		}
		p.processKeyword(ctx, keyword, snippets)
	}
	return nil
}

// processKeyword runs generation, illustration and assembly for one
// keyword. Failures are logged and contained here.
func (p *Pipeline) processKeyword(ctx context.Context, keyword string, snippets []core.Snippet) {
	article, err := p.Articles.Generate(ctx, keyword, snippets)
	if err != nil {
		logger.Error("Skipping keyword after article generation failure", err, "keyword", keyword)
		return
	}

	illustrations := illustrate.Plan(keyword)
	if p.Illustrations != nil {
		illustrations = p.Illustrations.GenerateAll(ctx, illustrations)
	} else {
		logger.Warn("Image service unavailable, proceeding without illustrations", "keyword", keyword)
	}

	doc := document.Assemble(article, illustrations)
	path, err := document.Write(doc, p.NewWriter(), p.OutputDir)
	if err != nil {
		logger.Error("Failed to write document", err, "keyword", keyword)
		return
	}
	logger.Info("Document written", "keyword", keyword, "article_id", article.ID, "path", path)
}
