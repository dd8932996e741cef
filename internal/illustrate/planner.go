// Package illustrate plans and generates the three images placed at fixed
// narrative points of a document: introduction, midpoint and conclusion.
package illustrate

import (
	"fmt"

	"blogsmith/internal/core"
)

// Plan derives the three captioned prompts for a keyword. It is pure and
// deterministic; article content is not inspected.
func Plan(keyword string) []core.Illustration {
	intro := fmt.Sprintf(
		"Photorealistic image of %s in a modern setting. "+
			"Style: High-quality photography, 4K, detailed. "+
			"Include: Real environment and natural lighting. "+
			"Theme: Professional and sophisticated. "+
			"Mood: Premium and polished. "+
			"Photography style: Commercial product photography.", keyword)

	middle := fmt.Sprintf(
		"Documentary-style photograph of %[1]s in use. "+
			"Style: Candid photography, natural lighting. "+
			"Include: Real people interacting with %[1]s. "+
			"Theme: Everyday life and practical applications. "+
			"Mood: Authentic and relatable. "+
			"Photography style: Photojournalistic.", keyword)

	conclusion := fmt.Sprintf(
		"Professional photograph showcasing %s in action. "+
			"Style: High-end editorial photography. "+
			"Include: Dynamic composition and dramatic real lighting. "+
			"Theme: Innovation in real settings. "+
			"Mood: Impactful and inspiring. "+
			"Photography style: Magazine cover quality.", keyword)

	return []core.Illustration{
		{Role: core.RoleIntro, Prompt: intro},
		{Role: core.RoleMiddle, Prompt: middle},
		{Role: core.RoleConclusion, Prompt: conclusion},
	}
}
