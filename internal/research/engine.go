// Package research turns an accumulated transcript into a structured
// business synthesis via one LLM completion call.
package research

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/avolkov/briefgen/internal/domain"
	"github.com/avolkov/briefgen/internal/llm"
)

// maxTranscriptChars bounds the concatenated transcript sent to the
// completion service; free-tier models reject oversized prompts.
const maxTranscriptChars = 20000

// ErrEmptyCompletion indicates the model returned no usable text at all.
// Partial output degrades to a partial result; total silence is an error.
var ErrEmptyCompletion = errors.New("completion was empty")

// Engine produces a ResearchResult from a transcript.
type Engine interface {
	Research(ctx context.Context, transcript []string) (*domain.ResearchResult, error)
}

type engine struct {
	client llm.Client
}

// NewEngine creates an Engine backed by an LLM client.
func NewEngine(client llm.Client) Engine {
	return &engine{client: client}
}

func (e *engine) Research(ctx context.Context, transcript []string) (*domain.ResearchResult, error) {
	if len(transcript) == 0 {
		return nil, fmt.Errorf("research: %w", domain.ErrNoData)
	}

	resp, err := e.client.Generate(ctx, llm.GenerateRequest{
		SystemPrompt: researchSystemPrompt,
		UserPrompt:   buildResearchUserPrompt(transcript),
	})
	if err != nil {
		return nil, fmt.Errorf("research generation failed: %w", err)
	}

	raw := strings.TrimSpace(resp.Text)
	if raw == "" {
		return nil, ErrEmptyCompletion
	}

	sections, found := ParseSections(raw)
	if !found {
		// Unparseable but non-empty output still has value: keep the raw
		// text as the summary and leave the other fields empty.
		return &domain.ResearchResult{Summary: raw}, nil
	}

	return &domain.ResearchResult{
		Summary:         sections[sectionSummary],
		TargetAudience:  sections[sectionAudience],
		KeyFeatures:     sections[sectionFeatures],
		DesignDirection: sections[sectionDesign],
	}, nil
}

func buildResearchUserPrompt(transcript []string) string {
	var b strings.Builder
	b.WriteString("## BUSINESS NOTES\n")
	for _, turn := range transcript {
		b.WriteString(turn)
		b.WriteString("\n")
	}

	prompt := b.String()
	// Truncate on rune boundaries; a byte slice could split a multibyte
	// character and send invalid UTF-8 to the completion endpoint.
	if runes := []rune(prompt); len(runes) > maxTranscriptChars {
		prompt = string(runes[:maxTranscriptChars]) + "\n\n[Content truncated for length]"
	}
	return prompt
}
