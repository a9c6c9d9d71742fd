package domain

import (
	"fmt"
	"net/url"
	"strings"
	"unicode"
)

// Recipe is a single generated recipe. Ingredients and Instructions keep the
// order the generator returned them in.
type Recipe struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
}

// ImageURL returns a placeholder photo URL for the recipe card. The seed is
// the recipe name without whitespace followed by the card index, so the same
// list always renders the same pictures.
func (r Recipe) ImageURL(index int) string {
	seed := strings.Map(func(c rune) rune {
		if unicode.IsSpace(c) {
			return -1
		}
		return c
	}, r.Name)
	return fmt.Sprintf("https://picsum.photos/seed/%s%d/600/400", url.PathEscape(seed), index)
}
