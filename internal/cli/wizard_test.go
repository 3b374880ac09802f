package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBriefAnswers_TurnsDropSkipped(t *testing.T) {
	answers := &briefAnswers{
		BusinessName: "Bean There",
		Industry:     "coffee",
		Tone:         "  friendly  ",
	}

	turns := answers.turns()
	assert.Equal(t, []string{
		"Business name: Bean There",
		"Industry: coffee",
		"Brand tone: friendly",
	}, turns)
}

func TestBriefAnswers_AllSkipped(t *testing.T) {
	assert.Empty(t, (&briefAnswers{}).turns())
}

func TestBriefAnswers_OrderIsStable(t *testing.T) {
	answers := &briefAnswers{
		Additional:   "open late",
		BusinessName: "Bean There",
	}
	turns := answers.turns()
	assert.Equal(t, "Business name: Bean There", turns[0])
	assert.Equal(t, "Additional notes: open late", turns[1])
}

func TestNewBriefForm_Builds(t *testing.T) {
	form := newBriefForm(&briefAnswers{}, 80)
	assert.NotNil(t, form)
}
