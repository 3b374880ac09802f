// Package composer renders a research result into a copy-paste-ready
// prompt for an AI site-building tool. Composition is pure: same result
// and target always produce the same string.
package composer

import (
	"fmt"
	"strings"

	"github.com/avolkov/briefgen/internal/domain"
)

// Compose maps a research result onto the fixed template for the given
// target. Every field slot is always rendered; empty fields render as
// empty sections rather than being dropped, so composition never fails
// once a result exists.
func Compose(result *domain.ResearchResult, target domain.Target) (string, error) {
	if result == nil {
		return "", domain.ErrMissingResult
	}

	switch target {
	case domain.TargetV0:
		return composeV0(result), nil
	case domain.TargetFigma:
		return composeFigma(result), nil
	default:
		return "", fmt.Errorf("%w: unknown target %q", domain.ErrInvalidInput, target)
	}
}

func composeV0(r *domain.ResearchResult) string {
	var b strings.Builder

	b.WriteString("Create a landing page for the following business.\n\n")
	b.WriteString("## Business\n")
	b.WriteString(r.Summary)
	b.WriteString("\n\n## Target Audience\n")
	b.WriteString(r.TargetAudience)
	b.WriteString("\n\n## Required Sections & Features\n")
	b.WriteString(r.KeyFeatures)
	b.WriteString("\n\n## Design Direction\n")
	b.WriteString(r.DesignDirection)
	b.WriteString("\n\n## Tech Stack\n")
	b.WriteString("- React with Next.js (App Router)\n")
	b.WriteString("- Tailwind CSS for styling\n")
	b.WriteString("- shadcn/ui components where they fit\n")
	b.WriteString("\n## Requirements\n")
	b.WriteString("- Fully responsive: multi-column layouts on desktop, stacked on mobile\n")
	b.WriteString("- Sticky header with navigation and a primary call-to-action button\n")
	b.WriteString("- Semantic HTML and accessible form labels\n")
	b.WriteString("- Use real copy derived from the business description above, not lorem ipsum\n")
	b.WriteString("- Do not leave layout decisions generic; follow the design direction\n")

	return b.String()
}

func composeFigma(r *domain.ResearchResult) string {
	var b strings.Builder

	b.WriteString("Design a landing page in Figma Make for the following business.\n\n")
	b.WriteString("## Business\n")
	b.WriteString(r.Summary)
	b.WriteString("\n\n## Target Audience\n")
	b.WriteString(r.TargetAudience)
	b.WriteString("\n\n## Page Structure\n")
	b.WriteString(r.KeyFeatures)
	b.WriteString("\n\n## Visual Direction\n")
	b.WriteString(r.DesignDirection)
	b.WriteString("\n\n## Design System\n")
	b.WriteString("- Define color styles from the visual direction above (primary, secondary, neutral scale)\n")
	b.WriteString("- Typography scale: display, heading, body, caption\n")
	b.WriteString("- 8px spacing grid; consistent corner radii across components\n")
	b.WriteString("\n## Layout\n")
	b.WriteString("- Desktop frame at 1440px and mobile frame at 375px\n")
	b.WriteString("- Component hierarchy: header, hero, content sections in the order listed, footer\n")
	b.WriteString("- Auto layout throughout so sections reflow when copy changes\n")
	b.WriteString("- Use real copy derived from the business description, not placeholder text\n")

	return b.String()
}
