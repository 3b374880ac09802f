package composer

import (
	"strings"
	"testing"

	"github.com/avolkov/briefgen/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullResult() *domain.ResearchResult {
	return &domain.ResearchResult{
		Summary:         "Coffee shop selling artisan roasts.",
		TargetAudience:  "Young professionals in urban areas.",
		KeyFeatures:     "Hero with CTA, menu page, online ordering.",
		DesignDirection: "Warm earth tones, #6F4E37 primary.",
	}
}

func TestCompose_NilResult(t *testing.T) {
	_, err := Compose(nil, domain.TargetV0)
	assert.ErrorIs(t, err, domain.ErrMissingResult)
}

func TestCompose_UnknownTarget(t *testing.T) {
	_, err := Compose(fullResult(), domain.Target("bolt"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCompose_EmbedsAllFieldsVerbatim(t *testing.T) {
	result := fullResult()

	for target := range domain.ValidTargets {
		t.Run(string(target), func(t *testing.T) {
			prompt, err := Compose(result, target)
			require.NoError(t, err)

			assert.Contains(t, prompt, result.Summary)
			assert.Contains(t, prompt, result.TargetAudience)
			assert.Contains(t, prompt, result.KeyFeatures)
			assert.Contains(t, prompt, result.DesignDirection)
		})
	}
}

func TestCompose_TargetsDiffer(t *testing.T) {
	result := fullResult()

	v0, err := Compose(result, domain.TargetV0)
	require.NoError(t, err)
	figma, err := Compose(result, domain.TargetFigma)
	require.NoError(t, err)

	assert.NotEmpty(t, v0)
	assert.NotEmpty(t, figma)
	assert.NotEqual(t, v0, figma)

	assert.Contains(t, v0, "Next.js")
	assert.Contains(t, v0, "Tailwind")
	assert.NotContains(t, figma, "Next.js")
	assert.Contains(t, figma, "Figma Make")
	assert.Contains(t, figma, "Auto layout")
}

func TestCompose_PartialResultStillRendersEverySlot(t *testing.T) {
	result := &domain.ResearchResult{
		Summary:        "Coffee shop",
		TargetAudience: "young professionals",
	}

	prompt, err := Compose(result, domain.TargetV0)
	require.NoError(t, err)

	assert.Contains(t, prompt, "Coffee shop")
	assert.Contains(t, prompt, "young professionals")
	// Empty fields leave their headers in place.
	assert.Contains(t, prompt, "## Required Sections & Features")
	assert.Contains(t, prompt, "## Design Direction")
}

func TestCompose_Deterministic(t *testing.T) {
	result := fullResult()

	first, err := Compose(result, domain.TargetFigma)
	require.NoError(t, err)
	second, err := Compose(result, domain.TargetFigma)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCompose_DoesNotMutateResult(t *testing.T) {
	result := fullResult()
	before := *result

	_, err := Compose(result, domain.TargetV0)
	require.NoError(t, err)

	assert.Equal(t, before, *result)
}

func TestCompose_NoTemplateArtifacts(t *testing.T) {
	prompt, err := Compose(fullResult(), domain.TargetV0)
	require.NoError(t, err)

	assert.False(t, strings.Contains(prompt, "%s"))
	assert.False(t, strings.Contains(prompt, "{{"))
}
