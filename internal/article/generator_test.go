package article

import (
	"context"
	"errors"
	"strings"
	"testing"

	"blogsmith/internal/core"
)

// fakeTextGenerator counts calls and fails a configurable number of times
// before succeeding.
type fakeTextGenerator struct {
	failures int
	calls    int
	system   string
	prompt   string
}

func (f *fakeTextGenerator) GenerateText(ctx context.Context, system string, prompt string) (string, error) {
	f.calls++
	f.system = system
	f.prompt = prompt
	if f.calls <= f.failures {
		return "", errors.New("service unavailable")
	}
	return "# Title\n\n## Introduction\n\nBody.", nil
}

func newTestGenerator(client TextGenerator) *Generator {
	g := NewGenerator(client, "test-model")
	g.delay = 0
	return g
}

func TestGenerate_Success(t *testing.T) {
	fake := &fakeTextGenerator{}
	g := newTestGenerator(fake)

	snippets := []core.Snippet{
		{RawText: "AI is everywhere", Keyword: "AI"},
		{RawText: "AI models keep growing", Keyword: "AI"},
	}
	art, err := g.Generate(context.Background(), "AI", snippets)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if art.Keyword != "AI" {
		t.Errorf("article keyword = %q, want AI", art.Keyword)
	}
	if art.BodyText == "" {
		t.Error("article body should not be empty")
	}
	if art.ModelUsed != "test-model" {
		t.Errorf("model used = %q", art.ModelUsed)
	}
	if fake.calls != 1 {
		t.Errorf("text service called %d times, want 1", fake.calls)
	}
}

func TestGenerate_RetriesThenSucceeds(t *testing.T) {
	fake := &fakeTextGenerator{failures: 2}
	g := newTestGenerator(fake)

	_, err := g.Generate(context.Background(), "AI", nil)
	if err != nil {
		t.Fatalf("Generate should succeed on the third attempt: %v", err)
	}
	if fake.calls != 3 {
		t.Errorf("text service called %d times, want 3", fake.calls)
	}
}

func TestGenerate_ExhaustsRetries(t *testing.T) {
	fake := &fakeTextGenerator{failures: 10}
	g := newTestGenerator(fake)

	_, err := g.Generate(context.Background(), "AI", nil)
	if err == nil {
		t.Fatal("Generate should fail after exhausting retries")
	}
	if fake.calls != 3 {
		t.Errorf("text service called %d times, want exactly 3", fake.calls)
	}
}

func TestGenerate_PromptEmbedsKeywordAndSnippets(t *testing.T) {
	fake := &fakeTextGenerator{}
	g := newTestGenerator(fake)

	snippets := []core.Snippet{
		{RawText: "quantum chips ship next year", Keyword: "quantum computing"},
	}
	if _, err := g.Generate(context.Background(), "quantum computing", snippets); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if !strings.Contains(fake.prompt, "quantum computing") {
		t.Error("prompt should embed the keyword")
	}
	if !strings.Contains(fake.prompt, "- quantum chips ship next year") {
		t.Error("prompt should embed snippets as a bulleted list")
	}
	if !strings.Contains(fake.prompt, "## Conclusion") {
		t.Error("prompt should request the fixed section structure")
	}
	if fake.system != WriterPersona {
		t.Error("system instruction should carry the fixed persona")
	}
}
