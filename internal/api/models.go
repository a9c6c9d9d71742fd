package api

import (
	"github.com/phrazzld/pantry-chef/internal/domain"
	"github.com/phrazzld/pantry-chef/internal/form"
)

// GenerateRecipesRequest is the payload for POST /api/recipes. Blank
// enumerated fields take the form defaults.
type GenerateRecipesRequest struct {
	Age                  string   `json:"age"`
	Gender               string   `json:"gender"`
	HealthConditions     []string `json:"health_conditions"`
	OtherHealthCondition string   `json:"other_health_condition"`
	Allergies            string   `json:"allergies"`
	Ingredients          string   `json:"ingredients"`
	Mode                 string   `json:"mode"`
}

// RecipeResponse is one recipe card.
type RecipeResponse struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	ImageURL     string   `json:"image_url"`
}

// RecipesResponse is the successful response of POST /api/recipes.
type RecipesResponse struct {
	Recipes []RecipeResponse `json:"recipes"`
}

// toInput maps the payload onto form fields.
func (r GenerateRecipesRequest) toInput() form.Input {
	in := form.DefaultInput()
	if r.Age != "" {
		in.Age = domain.AgeBracket(r.Age)
	}
	if r.Gender != "" {
		in.Gender = domain.Gender(r.Gender)
	}
	if r.Mode != "" {
		in.Mode = domain.RecipeMode(r.Mode)
	}
	in.HealthConditions = r.HealthConditions
	in.OtherHealthCondition = r.OtherHealthCondition
	in.Allergies = r.Allergies
	in.Ingredients = r.Ingredients
	return in
}

// recipeToResponse converts a domain.Recipe to its card DTO. index is the
// position in the result list and seeds the placeholder image.
func recipeToResponse(recipe domain.Recipe, index int) RecipeResponse {
	return RecipeResponse{
		Name:         recipe.Name,
		Description:  recipe.Description,
		Ingredients:  nonNil(recipe.Ingredients),
		Instructions: nonNil(recipe.Instructions),
		ImageURL:     recipe.ImageURL(index),
	}
}

func recipesToResponse(recipes []domain.Recipe) []RecipeResponse {
	out := make([]RecipeResponse, len(recipes))
	for i, recipe := range recipes {
		out[i] = recipeToResponse(recipe, i)
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
