package article

import (
	"fmt"
	"strings"

	"blogsmith/internal/core"
)

// WriterPersona is the fixed system instruction for article generation.
const WriterPersona = "You are an expert technology analyst and writer specializing in AI and emerging technologies. " +
	"You excel at creating comprehensive, well-researched blog posts that blend technical depth with " +
	"accessibility. Your writing is known for being data-driven, insightful, and engaging while maintaining " +
	"professional standards and technical accuracy."

const promptTemplate = `Create an in-depth, professional blog post about %[1]s based on these insights:

%[2]s

Structure your response following this exact format:

# [Write an SEO-optimized, attention-grabbing title]

## Introduction
[Write a compelling 150-word introduction that:
- Starts with a powerful hook or surprising statistic
- Introduces %[1]s and its significance
- Outlines the key themes from the collected insights
- Sets up the main points to be discussed]

## Current State of %[1]s
[Write 250 words analyzing:
- Latest developments and breakthroughs
- Key players and their contributions
- Current challenges and opportunities
- Market trends and adoption rates]

## Technical Deep Dive
[Write 300 words covering:
- Core technologies and methodologies
- Technical specifications and requirements
- Implementation considerations
- Best practices and standards]

## Impact Analysis
[Write 200 words examining:
- Industry implications
- Business transformations
- Economic effects
- Societal changes]

## Future Outlook
[Write 200 words discussing:
- Predicted developments
- Upcoming challenges
- Potential breakthroughs
- Industry predictions]

## Conclusion
[Write a 150-word conclusion that:
- Summarizes key points
- Provides actionable insights
- Ends with a thought-provoking statement
- Encourages further exploration]

Style Requirements:
1. Use clear, authoritative language
2. Include specific examples and data points
3. Break down complex concepts
4. Use industry-standard terminology
5. Maintain a professional tone
6. Format with proper Markdown headings
7. Include relevant statistics when possible
8. Use short paragraphs for readability

Focus on providing actionable insights and practical implications while maintaining technical accuracy.`

// BuildPrompt embeds the keyword and a bulleted list of the collected
// snippets into the fixed six-section article prompt.
func BuildPrompt(keyword string, snippets []core.Snippet) string {
	lines := make([]string, 0, len(snippets))
	for _, s := range snippets {
		lines = append(lines, "- "+s.RawText)
	}
	return fmt.Sprintf(promptTemplate, keyword, strings.Join(lines, "\n"))
}
