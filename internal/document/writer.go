package document

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"blogsmith/internal/core"
)

// Writer is the document-writing capability a rendered document is emitted
// through. Implementations accumulate blocks and persist the result once.
type Writer interface {
	AddHeading(text string, level int)
	AddParagraph(text string)
	AddCenteredImage(path string)
	// Ext returns the file extension (without dot) the writer produces.
	Ext() string
	// Save persists the accumulated document to the given path.
	Save(path string) error
}

// Render walks a document once and emits each block through the writer.
func Render(doc core.Document, w Writer) {
	for _, block := range doc.Blocks {
		switch block.Kind {
		case core.BlockHeading:
			w.AddHeading(block.Text, block.Level)
		case core.BlockParagraph:
			w.AddParagraph(block.Text)
		case core.BlockImage:
			w.AddCenteredImage(block.Path)
		}
	}
}

// Filename builds the collision-avoiding output name for one document.
func Filename(keyword string, ext string, at time.Time) string {
	return fmt.Sprintf("blog_%s_%s.%s", keyword, at.Format("20060102_150405"), ext)
}

// Write renders the document through w and persists it under outputDir,
// creating the directory first if absent.
func Write(doc core.Document, w Writer, outputDir string) (string, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
	}

	Render(doc, w)

	path := filepath.Join(outputDir, Filename(doc.Keyword, w.Ext(), time.Now()))
	if err := w.Save(path); err != nil {
		return "", err
	}
	return path, nil
}

// outputExtensions lists every extension a Writer can produce. Clear covers
// them all so a format switch between runs cannot leave stale documents.
var outputExtensions = []string{"md", "html"}

// Clear deletes documents left over from prior runs, in any format, so old
// and new output never mix. It must complete before any new document is
// written.
func Clear(outputDir string) error {
	for _, ext := range outputExtensions {
		matches, err := filepath.Glob(filepath.Join(outputDir, "blog_*."+ext))
		if err != nil {
			return fmt.Errorf("failed to list prior documents: %w", err)
		}
		for _, path := range matches {
			if err := os.Remove(path); err != nil {
				return fmt.Errorf("failed to delete %s: %w", path, err)
			}
		}
	}
	return nil
}

// MarkdownWriter renders document blocks as a markdown file.
type MarkdownWriter struct {
	content strings.Builder
}

// NewMarkdownWriter returns an empty markdown writer.
func NewMarkdownWriter() *MarkdownWriter {
	return &MarkdownWriter{}
}

// AddHeading writes a heading. Level 0 (the title) renders as a top-level
// heading.
func (w *MarkdownWriter) AddHeading(text string, level int) {
	markers := level
	if markers < 1 {
		markers = 1
	}
	w.content.WriteString(strings.Repeat("#", markers) + " " + text + "\n\n")
}

// AddParagraph writes a plain paragraph block.
func (w *MarkdownWriter) AddParagraph(text string) {
	w.content.WriteString(text + "\n\n")
}

// AddCenteredImage writes a centered image reference.
func (w *MarkdownWriter) AddCenteredImage(path string) {
	w.content.WriteString(fmt.Sprintf("<p align=\"center\"><img src=\"%s\" width=\"600\"></p>\n\n", path))
}

// Ext returns "md".
func (w *MarkdownWriter) Ext() string { return "md" }

// Markdown returns the accumulated markdown source.
func (w *MarkdownWriter) Markdown() string {
	return w.content.String()
}

// Save writes the accumulated markdown to disk.
func (w *MarkdownWriter) Save(path string) error {
	if err := os.WriteFile(path, []byte(w.content.String()), 0644); err != nil {
		return fmt.Errorf("failed to write document %s: %w", path, err)
	}
	return nil
}
