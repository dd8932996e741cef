package core

import "time"

// Snippet represents a short text unit discovered for a keyword, candidate
// source material for an article.
type Snippet struct {
	ID      string `json:"id"`       // Unique identifier for the snippet
	RawText string `json:"raw_text"` // Text as scraped, before cleaning
	Keyword string `json:"keyword"`  // Search keyword the snippet was found under
}

// LedgerEntry represents one row of the usage ledger: a snippet text that has
// already been consumed in a prior run.
type LedgerEntry struct {
	Text   string    `json:"text"`    // Raw snippet text
	SeenAt time.Time `json:"seen_at"` // Timestamp when the snippet was recorded
}

// KeywordSnippets maps a keyword to its accepted snippets in discovery order.
type KeywordSnippets map[string][]Snippet

// Article represents generated long-form text for one keyword, prior to
// document formatting. BodyText is one title line followed by blank-line
// separated sections, each a heading or a paragraph.
type Article struct {
	ID            string    `json:"id"`             // Unique identifier for the article
	Keyword       string    `json:"keyword"`        // Keyword the article was generated for
	BodyText      string    `json:"body_text"`      // Raw structured text from the model
	ModelUsed     string    `json:"model_used"`     // Model that produced the text
	DateGenerated time.Time `json:"date_generated"` // Timestamp when the article was generated
}

// IllustrationRole denotes a fixed narrative position within a document.
type IllustrationRole string

const (
	RoleIntro      IllustrationRole = "intro"
	RoleMiddle     IllustrationRole = "middle"
	RoleConclusion IllustrationRole = "conclusion"
)

// Illustration represents one planned or generated image for an article.
// ImagePath is empty when generation failed after retries; that is a valid
// terminal state, not an error.
type Illustration struct {
	Role      IllustrationRole `json:"role"`       // Narrative placement
	Prompt    string           `json:"prompt"`     // Prompt sent to the image service
	ImagePath string           `json:"image_path"` // Local path of the saved image, empty if absent
}

// BlockKind discriminates the element types of an assembled document.
type BlockKind int

const (
	BlockHeading BlockKind = iota
	BlockParagraph
	BlockImage
)

// Block is one element of an assembled document. Level is meaningful for
// headings only (0 is the title); Path is meaningful for images only.
type Block struct {
	Kind  BlockKind `json:"kind"`
	Text  string    `json:"text,omitempty"`
	Level int       `json:"level,omitempty"`
	Path  string    `json:"path,omitempty"`
}

// Document is the ordered sequence of blocks assembled from an article and
// its illustrations, ready to be rendered and persisted.
type Document struct {
	Keyword string  `json:"keyword"`
	Blocks  []Block `json:"blocks"`
}
