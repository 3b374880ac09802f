package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/avolkov/briefgen/internal/domain"
)

// MaxChunkRunes is the largest piece ChunkMessage produces. Chat-style
// transports cap message size around 4096 characters; staying under
// 4000 leaves room for part labels.
const MaxChunkRunes = 4000

// FormatWelcome renders the greeting shown when the chat starts.
func FormatWelcome() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(StylePurple.Render("  briefgen") + "\n")
	b.WriteString(StyleDim.Render("  ─────────────────────────────") + "\n")
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("  Describe your business in plain text; I collect everything you send.") + "\n")
	b.WriteString(StyleDim.Render("  When you're ready, ask for a build prompt for your favorite tool.") + "\n")
	b.WriteString("\n")
	b.WriteString("  " + StyleGreen.Render("/brief") + StyleDim.Render("     Answer guided questions instead of free-form text") + "\n")
	b.WriteString("  " + StyleGreen.Render("/v0") + StyleDim.Render("        Generate a v0.dev build prompt") + "\n")
	b.WriteString("  " + StyleGreen.Render("/figma") + StyleDim.Render("     Generate a Figma Make design prompt") + "\n")
	b.WriteString("  " + StyleGreen.Render("/status") + StyleDim.Render("    Show session state") + "\n")
	b.WriteString("  " + StyleGreen.Render("/clear") + StyleDim.Render("     Start over") + "\n")
	b.WriteString("  " + StyleGreen.Render("/help") + StyleDim.Render("      Show all commands") + "\n")
	b.WriteString("\n")

	return b.String()
}

// FormatHelp renders the command reference.
func FormatHelp() string {
	var b strings.Builder

	b.WriteString(Header("Commands") + "\n")
	commands := []struct{ name, desc string }{
		{"/start", "Show the welcome message"},
		{"/brief", "Guided questions, one at a time"},
		{"/v0", "Generate a v0.dev build prompt"},
		{"/figma", "Generate a Figma Make design prompt"},
		{"/status", "Show session state and collected turns"},
		{"/history", "Show previously generated prompts"},
		{"/clear", "Discard the session and start over"},
		{"/quit", "Exit"},
	}
	for _, c := range commands {
		b.WriteString(fmt.Sprintf("  %s %s\n", StyleGreen.Render(fmt.Sprintf("%-10s", c.name)), StyleDim.Render(c.desc)))
	}

	b.WriteString("\n" + Header("What to provide") + "\n")
	for _, item := range []string{
		"Business name & website",
		"Industry/niche",
		"Target customer",
		"Main offer/product",
		"Page goal (leads, sales, bookings)",
		"Brand tone & colors",
	} {
		b.WriteString(StyleDim.Render("  • "+item) + "\n")
	}

	return b.String()
}

// StatePill renders a session state as a colored indicator.
func StatePill(state domain.SessionState) string {
	switch state {
	case domain.StateNew:
		return StyleDim.Render("● NEW")
	case domain.StateCollecting:
		return StyleBlue.Render("● COLLECTING")
	case domain.StateResearching:
		return StyleYellow.Render("● RESEARCHING")
	case domain.StateResearched:
		return StyleGreen.Render("● RESEARCHED")
	case domain.StateFailed:
		return StyleRed.Render("● FAILED")
	default:
		return StyleDim.Render("● UNKNOWN")
	}
}

// FormatStatus renders the session state line shown for /status.
func FormatStatus(state domain.SessionState, transcriptLen int, hasResult bool) string {
	var b strings.Builder
	b.WriteString(StatePill(state))
	b.WriteString(Dim(fmt.Sprintf("  %d turn(s) collected", transcriptLen)))
	if hasResult {
		b.WriteString(Dim("  research cached"))
	}
	return b.String()
}

// FormatResearchSummary renders the synthesized research fields.
func FormatResearchSummary(result *domain.ResearchResult) string {
	if result == nil {
		return Dim("No research yet.")
	}

	sections := []struct{ title, body string }{
		{"Summary", result.Summary},
		{"Target Audience", result.TargetAudience},
		{"Key Features", result.KeyFeatures},
		{"Design Direction", result.DesignDirection},
	}

	var b strings.Builder
	for _, s := range sections {
		if s.body == "" {
			continue
		}
		b.WriteString(StyleHeader.Render(s.title) + "\n")
		b.WriteString(StyleFg.Render(s.body) + "\n\n")
	}
	if b.Len() == 0 {
		return Dim("Research produced no content.")
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatPrompt renders a generated prompt inside a titled box, chunked
// when it exceeds the transport-safe size.
func FormatPrompt(target domain.Target, prompt string) string {
	title := fmt.Sprintf("%s prompt", target)
	chunks := ChunkMessage(prompt)
	if len(chunks) == 1 {
		return RenderBox(title, prompt)
	}

	var b strings.Builder
	for i, chunk := range chunks {
		b.WriteString(RenderBox(fmt.Sprintf("%s (part %d/%d)", title, i+1, len(chunks)), chunk))
		if i < len(chunks)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// ChunkMessage splits text into pieces of at most MaxChunkRunes runes.
// Splits are rune-safe, never mid-codepoint.
func ChunkMessage(text string) []string {
	runes := []rune(text)
	if len(runes) <= MaxChunkRunes {
		return []string{text}
	}

	var chunks []string
	for start := 0; start < len(runes); start += MaxChunkRunes {
		end := start + MaxChunkRunes
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks
}

// FormatHistoryEntry renders one archived prompt as a list row.
func FormatHistoryEntry(createdAt time.Time, target domain.Target, summary string) string {
	ts := createdAt.Local().Format("2006-01-02 15:04")
	label := StyleGreen.Render(fmt.Sprintf("%-6s", string(target)))
	if summary == "" {
		summary = "(no summary)"
	}
	return fmt.Sprintf("  %s  %s  %s", Dim(ts), label, StyleFg.Render(truncate(summary, 60)))
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
