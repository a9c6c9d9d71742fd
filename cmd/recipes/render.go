package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/phrazzld/pantry-chef/internal/domain"
	"github.com/phrazzld/pantry-chef/internal/form"
)

// Styling
var (
	titleColor   = lipgloss.Color("#FF922B") // Orange
	headingColor = lipgloss.Color("#8BE9FD") // Cyan
	mutedColor   = lipgloss.Color("#6272A4") // Muted purple
	errorColor   = lipgloss.Color("#FF5555") // Red
	borderColor  = lipgloss.Color("#44475A") // Dark grey
)

// renderer writes form views to a terminal.
type renderer struct {
	w io.Writer

	title    lipgloss.Style
	heading  lipgloss.Style
	muted    lipgloss.Style
	errStyle lipgloss.Style
	card     lipgloss.Style
}

func newRenderer(w io.Writer) *renderer {
	return &renderer{
		w: w,
		title: lipgloss.NewStyle().
			Foreground(titleColor).
			Bold(true),
		heading: lipgloss.NewStyle().
			Foreground(headingColor).
			Bold(true),
		muted: lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true),
		errStyle: lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(errorColor).
			Padding(0, 1),
		card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(0, 1).
			Width(72),
	}
}

// Progress styles a progress line.
func (r *renderer) Progress(text string) string {
	return r.muted.Render(text)
}

// RenderView writes the settled state of a form: the error banner, the cards,
// or a note that nothing came back.
func (r *renderer) RenderView(view form.View) {
	switch {
	case view.HasError():
		fmt.Fprintln(r.w, r.errStyle.Render(view.Error))
	case len(view.Recipes) == 0:
		fmt.Fprintln(r.w, r.muted.Render("No recipes came back for these preferences."))
	default:
		for i, recipe := range view.Recipes {
			fmt.Fprintln(r.w, r.Card(recipe, i))
		}
	}
}

// Card renders one recipe with its ingredients and numbered steps.
func (r *renderer) Card(recipe domain.Recipe, index int) string {
	var b strings.Builder

	b.WriteString(r.title.Render(recipe.Name))
	b.WriteString("\n")
	b.WriteString(recipe.Description)
	b.WriteString("\n\n")

	b.WriteString(r.heading.Render("Ingredients"))
	b.WriteString("\n")
	for _, ingredient := range recipe.Ingredients {
		fmt.Fprintf(&b, "• %s\n", ingredient)
	}

	b.WriteString("\n")
	b.WriteString(r.heading.Render("Instructions"))
	b.WriteString("\n")
	for i, step := range recipe.Instructions {
		fmt.Fprintf(&b, "%d. %s\n", i+1, step)
	}

	b.WriteString("\n")
	b.WriteString(r.muted.Render(recipe.ImageURL(index)))

	return r.card.Render(b.String())
}
