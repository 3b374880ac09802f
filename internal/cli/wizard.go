package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/avolkov/briefgen/internal/cli/formatter"
)

// briefgenHuhTheme returns a custom huh theme using the existing Gruvbox palette.
func briefgenHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// briefAnswers holds the guided-brief responses. Empty answers are
// skipped questions.
type briefAnswers struct {
	BusinessName string
	Website      string
	Industry     string
	Target       string
	Offer        string
	Goal         string
	Tone         string
	Colors       string
	Examples     string
	Additional   string
}

// turns converts the answers into labeled transcript turns, dropping
// skipped questions.
func (a *briefAnswers) turns() []string {
	fields := []struct{ label, value string }{
		{"Business name", a.BusinessName},
		{"Website", a.Website},
		{"Industry", a.Industry},
		{"Target customer", a.Target},
		{"Main offer", a.Offer},
		{"Page goal", a.Goal},
		{"Brand tone", a.Tone},
		{"Brand colors", a.Colors},
		{"Style examples", a.Examples},
		{"Additional notes", a.Additional},
	}

	var turns []string
	for _, f := range fields {
		value := strings.TrimSpace(f.value)
		if value == "" {
			continue
		}
		turns = append(turns, fmt.Sprintf("%s: %s", f.label, value))
	}
	return turns
}

// newBriefForm builds the guided-questions form. Every field may be left
// blank to skip it.
func newBriefForm(answers *briefAnswers, width int) *huh.Form {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("What is your business name?").
				Placeholder("Enter to skip").
				Value(&answers.BusinessName),
			huh.NewInput().
				Title("Website URL?").
				Placeholder("Enter to skip").
				Value(&answers.Website),
			huh.NewInput().
				Title("What industry/niche?").
				Value(&answers.Industry),
			huh.NewInput().
				Title("Who is your target customer?").
				Value(&answers.Target),
			huh.NewInput().
				Title("What do you sell/offer?").
				Value(&answers.Offer),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Goal of the page?").
				Placeholder("leads, sales, bookings").
				Value(&answers.Goal),
			huh.NewInput().
				Title("Brand tone?").
				Placeholder("professional, friendly, luxurious, playful").
				Value(&answers.Tone),
			huh.NewInput().
				Title("Brand colors?").
				Placeholder("e.g. blue #1a73e8, white").
				Value(&answers.Colors),
			huh.NewInput().
				Title("Sites you like the style of?").
				Value(&answers.Examples),
			huh.NewText().
				Title("Anything else important?").
				Value(&answers.Additional),
		),
	).WithTheme(briefgenHuhTheme()).WithShowHelp(false)

	if width > 0 {
		form = form.WithWidth(width)
	}
	return form
}
