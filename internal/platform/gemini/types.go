package gemini

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/pantry-chef/internal/domain"
	"github.com/phrazzld/pantry-chef/internal/generation"
	"google.golang.org/genai"
)

// ResponseMIMEType is the output format requested from the model.
const ResponseMIMEType = "application/json"

// RecipeSchema represents a single recipe in the model's JSON output.
type RecipeSchema struct {
	// RecipeName is the name of the dish
	RecipeName string `json:"recipeName" validate:"required"`

	// Description is a short, appealing description of the dish
	Description string `json:"description" validate:"required"`

	// Ingredients lists what the dish needs
	Ingredients []string `json:"ingredients" validate:"required"`

	// Instructions are the cooking steps in order
	Instructions []string `json:"instructions" validate:"required"`
}

// ToDomain converts the wire shape into a domain.Recipe.
func (s RecipeSchema) ToDomain() domain.Recipe {
	return domain.Recipe{
		Name:         s.RecipeName,
		Description:  s.Description,
		Ingredients:  s.Ingredients,
		Instructions: s.Instructions,
	}
}

// FromDomain converts a domain.Recipe into the wire shape.
func FromDomain(r domain.Recipe) RecipeSchema {
	return RecipeSchema{
		RecipeName:   r.Name,
		Description:  r.Description,
		Ingredients:  r.Ingredients,
		Instructions: r.Instructions,
	}
}

// ResponseSchema returns the schema declared to the model: an array of
// objects with four required fields.
func ResponseSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"recipeName": {
					Type:        genai.TypeString,
					Description: "The name of the dish",
				},
				"description": {
					Type:        genai.TypeString,
					Description: "A short, appealing description of the dish",
				},
				"ingredients": {
					Type:        genai.TypeArray,
					Items:       &genai.Schema{Type: genai.TypeString},
					Description: "The ingredients the dish needs",
				},
				"instructions": {
					Type:        genai.TypeArray,
					Items:       &genai.Schema{Type: genai.TypeString},
					Description: "Step-by-step cooking instructions",
				},
			},
			Required: []string{"recipeName", "description", "ingredients", "instructions"},
		},
	}
}

var schemaValidator = validator.New()

// ParseRecipes decodes model output into recipes. The text must be a bare
// JSON array whose elements all carry the four required fields; anything
// else fails with generation.ErrInvalidResponse and no recipes are returned.
func ParseRecipes(text string) ([]domain.Recipe, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, generation.ErrEmptyResponse
	}

	var items []*RecipeSchema
	if err := json.Unmarshal([]byte(text), &items); err != nil {
		return nil, fmt.Errorf("%w: failed to parse JSON response: %v", generation.ErrInvalidResponse, err)
	}
	if items == nil {
		return nil, fmt.Errorf("%w: response is not an array", generation.ErrInvalidResponse)
	}

	recipes := make([]domain.Recipe, 0, len(items))
	for i, item := range items {
		if item == nil {
			return nil, fmt.Errorf("%w: recipe %d is null", generation.ErrInvalidResponse, i)
		}
		if err := schemaValidator.Struct(item); err != nil {
			return nil, fmt.Errorf("%w: recipe %d: %v", generation.ErrInvalidResponse, i, err)
		}
		recipes = append(recipes, item.ToDomain())
	}

	return recipes, nil
}
