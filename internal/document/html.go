package document

import (
	"bytes"
	"fmt"
	"os"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"
)

// converter keeps raw HTML, which the centered image blocks rely on.
var converter = goldmark.New(
	goldmark.WithRendererOptions(html.WithUnsafe()),
)

// HTMLWriter renders document blocks as standalone HTML by accumulating
// markdown and converting it on save.
type HTMLWriter struct {
	md *MarkdownWriter
}

// NewHTMLWriter returns an empty HTML writer.
func NewHTMLWriter() *HTMLWriter {
	return &HTMLWriter{md: NewMarkdownWriter()}
}

func (w *HTMLWriter) AddHeading(text string, level int) { w.md.AddHeading(text, level) }
func (w *HTMLWriter) AddParagraph(text string)          { w.md.AddParagraph(text) }
func (w *HTMLWriter) AddCenteredImage(path string)      { w.md.AddCenteredImage(path) }

// Ext returns "html".
func (w *HTMLWriter) Ext() string { return "html" }

// Save converts the accumulated markdown to HTML and writes it to disk.
func (w *HTMLWriter) Save(path string) error {
	var buf bytes.Buffer
	if err := converter.Convert([]byte(w.md.Markdown()), &buf); err != nil {
		return fmt.Errorf("failed to convert document to HTML: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write document %s: %w", path, err)
	}
	return nil
}
