// Package document parses generated article text into a structured document
// and renders it through a pluggable writer, inserting illustrations at
// their narrative positions.
package document

import (
	"strings"

	"blogsmith/internal/core"
)

// maxHeadingLevel caps heading depth regardless of how many markers the
// model emitted.
const maxHeadingLevel = 9

// Assemble splits an article body into blank-line separated blocks and walks
// them once, producing the ordered block sequence of the final document.
//
// The first block is the title (level 0), stripped of heading markers. The
// intro illustration follows the title. The conclusion illustration is
// inserted before the first heading whose text contains "conclusion"; the
// middle illustration after the first heading emitted at or past the block
// midpoint. Each role is placed at most once, and a role whose image is
// absent is skipped silently.
func Assemble(article core.Article, illustrations []core.Illustration) core.Document {
	doc := core.Document{Keyword: article.Keyword}

	images := make(map[core.IllustrationRole]string, len(illustrations))
	for _, ill := range illustrations {
		if ill.ImagePath != "" {
			images[ill.Role] = ill.ImagePath
		}
	}
	placed := make(map[core.IllustrationRole]bool, 3)

	place := func(role core.IllustrationRole) {
		if placed[role] {
			return
		}
		path, ok := images[role]
		if !ok {
			return
		}
		doc.Blocks = append(doc.Blocks, core.Block{Kind: core.BlockImage, Path: path})
		placed[role] = true
	}

	blocks := strings.Split(article.BodyText, "\n\n")
	if len(blocks) == 0 {
		return doc
	}

	title := strings.TrimSpace(strings.ReplaceAll(blocks[0], "#", ""))
	doc.Blocks = append(doc.Blocks, core.Block{Kind: core.BlockHeading, Text: title, Level: 0})
	place(core.RoleIntro)

	middleIndex := len(blocks) / 2

	for current := 1; current < len(blocks); current++ {
		text := strings.TrimSpace(blocks[current])
		if text == "" {
			continue
		}

		if strings.HasPrefix(text, "#") {
			level := headingLevel(text)
			headingText := strings.TrimSpace(strings.TrimLeft(text, "#"))

			if strings.Contains(strings.ToLower(headingText), "conclusion") {
				place(core.RoleConclusion)
			}
			doc.Blocks = append(doc.Blocks, core.Block{Kind: core.BlockHeading, Text: headingText, Level: level})

			if current >= middleIndex {
				place(core.RoleMiddle)
			}
			continue
		}

		doc.Blocks = append(doc.Blocks, core.Block{Kind: core.BlockParagraph, Text: text})
	}

	return doc
}

// headingLevel counts the leading run of '#' markers, capped at
// maxHeadingLevel.
func headingLevel(text string) int {
	run := 0
	for _, r := range text {
		if r != '#' {
			break
		}
		run++
	}
	if run > maxHeadingLevel {
		return maxHeadingLevel
	}
	return run
}
