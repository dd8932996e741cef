package pipeline

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"blogsmith/internal/core"
	"blogsmith/internal/document"
	"blogsmith/internal/ledger"
	"blogsmith/internal/logger"
)

type stubSource struct {
	texts []string
}

func (s *stubSource) Candidates() ([]string, error) { return s.texts, nil }
func (s *stubSource) LoadMore() error               { return nil }

type stubArticles struct {
	failFor map[string]bool
	calls   []string
}

func (s *stubArticles) Generate(ctx context.Context, keyword string, snippets []core.Snippet) (core.Article, error) {
	s.calls = append(s.calls, keyword)
	if s.failFor[keyword] {
		return core.Article{}, errors.New("generation failed")
	}
	return core.Article{
		ID:       "article-" + keyword,
		Keyword:  keyword,
		BodyText: "# Title for " + keyword + "\n\nIntro paragraph.\n\n## Conclusion\n\nClosing paragraph.",
	}, nil
}

type stubIllustrations struct {
	path string
}

func (s *stubIllustrations) GenerateAll(ctx context.Context, planned []core.Illustration) []core.Illustration {
	out := make([]core.Illustration, len(planned))
	for i, ill := range planned {
		ill.ImagePath = s.path
		out[i] = ill
	}
	return out
}

func newTestPipeline(t *testing.T, source *stubSource, articles *stubArticles, images IllustrationGenerator) (*Pipeline, string, string) {
	t.Helper()
	dir := t.TempDir()
	outputDir := filepath.Join(dir, "blogs")
	ledgerPath := filepath.Join(dir, "used_tweets.csv")
	return &Pipeline{
		Source:        source,
		Ledger:        ledger.New(ledgerPath),
		Articles:      articles,
		Illustrations: images,
		NewWriter:     func() document.Writer { return document.NewMarkdownWriter() },
		OutputDir:     outputDir,
	}, outputDir, ledgerPath
}

func writtenDocs(t *testing.T, outputDir string) []string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(outputDir, "blog_*.md"))
	if err != nil {
		t.Fatalf("glob failed: %v", err)
	}
	return matches
}

func TestRun_WritesOneDocumentPerKeyword(t *testing.T) {
	source := &stubSource{texts: []string{"AI news today", "robots doing chores"}}
	articles := &stubArticles{}
	p, outputDir, _ := newTestPipeline(t, source, articles, &stubIllustrations{path: "/img/x.png"})

	if err := p.Run(context.Background(), []string{"AI", "robots"}); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	docs := writtenDocs(t, outputDir)
	if len(docs) != 2 {
		t.Errorf("wrote %d documents, want 2: %v", len(docs), docs)
	}
}

func TestRun_KeywordFailureIsIsolated(t *testing.T) {
	source := &stubSource{texts: []string{"AI news today", "robots doing chores"}}
	articles := &stubArticles{failFor: map[string]bool{"AI": true}}
	p, outputDir, _ := newTestPipeline(t, source, articles, nil)

	if err := p.Run(context.Background(), []string{"AI", "robots"}); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	docs := writtenDocs(t, outputDir)
	if len(docs) != 1 {
		t.Fatalf("wrote %d documents, want 1: %v", len(docs), docs)
	}
	if !strings.Contains(filepath.Base(docs[0]), "robots") {
		t.Errorf("surviving document should be for robots, got %s", docs[0])
	}
	if len(articles.calls) != 2 {
		t.Errorf("both keywords should be attempted, got %v", articles.calls)
	}
}

func TestRun_RecordsAcceptedSnippets(t *testing.T) {
	source := &stubSource{texts: []string{"AI news today"}}
	p, _, ledgerPath := newTestPipeline(t, source, &stubArticles{}, nil)

	if err := p.Run(context.Background(), []string{"AI"}); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	known := ledger.New(ledgerPath).LoadKnown()
	if _, ok := known["AI news today"]; !ok {
		t.Errorf("accepted snippet was not recorded, ledger: %v", known)
	}
}

func TestRun_SecondRunSkipsRecordedSnippets(t *testing.T) {
	source := &stubSource{texts: []string{"AI news today"}}
	articles := &stubArticles{}
	p, outputDir, ledgerPath := newTestPipeline(t, source, articles, nil)

	if err := p.Run(context.Background(), []string{"AI"}); err != nil {
		t.Fatalf("first run failed: %v", err)
	}

	// Second run sees the same candidates; the ledger must reject them all.
	p2 := &Pipeline{
		Source:    source,
		Ledger:    ledger.New(ledgerPath),
		Articles:  articles,
		NewWriter: func() document.Writer { return document.NewMarkdownWriter() },
		OutputDir: outputDir,
	}
	if err := p2.Run(context.Background(), []string{"AI"}); err != nil {
		t.Fatalf("second run failed: %v", err)
	}

	if got := len(articles.calls); got != 1 {
		t.Errorf("second run should not re-generate from known snippets, generate calls = %d", got)
	}
}

func TestRun_ClearsPriorOutputBeforeWriting(t *testing.T) {
	source := &stubSource{texts: []string{"AI news today"}}
	p, outputDir, _ := newTestPipeline(t, source, &stubArticles{}, nil)

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	stale := filepath.Join(outputDir, "blog_old_20240101_000000.md")
	if err := os.WriteFile(stale, []byte("stale"), 0644); err != nil {
		t.Fatalf("fixture write failed: %v", err)
	}

	if err := p.Run(context.Background(), []string{"AI"}); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Error("prior run's document should have been cleared")
	}
	if len(writtenDocs(t, outputDir)) != 1 {
		t.Error("new document should have been written after clearing")
	}
}

func TestRun_LogsArticleID(t *testing.T) {
	var buf bytes.Buffer
	prev := logger.Set(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { logger.Set(prev) })

	source := &stubSource{texts: []string{"AI news today"}}
	p, _, _ := newTestPipeline(t, source, &stubArticles{}, nil)

	if err := p.Run(context.Background(), []string{"AI"}); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !strings.Contains(buf.String(), `"article_id":"article-AI"`) {
		t.Errorf("written document should be logged with its article ID:\n%s", buf.String())
	}
}

func TestRun_NoImageServiceOmitsIllustrations(t *testing.T) {
	source := &stubSource{texts: []string{"AI news today"}}
	p, outputDir, _ := newTestPipeline(t, source, &stubArticles{}, nil)

	if err := p.Run(context.Background(), []string{"AI"}); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	docs := writtenDocs(t, outputDir)
	if len(docs) != 1 {
		t.Fatalf("wrote %d documents, want 1", len(docs))
	}
	data, err := os.ReadFile(docs[0])
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if strings.Contains(string(data), "<img") {
		t.Error("document should contain no images when the image service is unavailable")
	}
}

func TestRun_NoSnippetsAnywhereIsCleanNoOp(t *testing.T) {
	source := &stubSource{texts: nil}
	articles := &stubArticles{}
	p, outputDir, _ := newTestPipeline(t, source, articles, nil)

	if err := p.Run(context.Background(), []string{"AI"}); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(articles.calls) != 0 {
		t.Error("no articles should be generated without snippets")
	}
	if len(writtenDocs(t, outputDir)) != 0 {
		t.Error("no documents should be written without snippets")
	}
}
