package form

import (
	"fmt"
	"slices"

	"github.com/phrazzld/pantry-chef/internal/domain"
)

// Input holds the raw values of the six form fields. HealthConditions and
// OtherHealthCondition are kept apart; they are only combined by Request.
type Input struct {
	Age                  domain.AgeBracket
	Gender               domain.Gender
	HealthConditions     []string
	OtherHealthCondition string
	Allergies            string
	Ingredients          string
	Mode                 domain.RecipeMode
}

// DefaultInput returns the values shown on a fresh form.
func DefaultInput() Input {
	return Input{
		Age:    domain.DefaultAgeBracket,
		Gender: domain.DefaultGender,
		Mode:   domain.DefaultRecipeMode,
	}
}

// Request builds the generator request, flattening the checked health
// conditions and the free-text addendum into one field.
func (in Input) Request() (domain.RecipeRequest, error) {
	req := domain.RecipeRequest{
		Age:              in.Age,
		Gender:           in.Gender,
		HealthConditions: domain.CombineHealthConditions(in.HealthConditions, in.OtherHealthCondition),
		Allergies:        in.Allergies,
		Ingredients:      in.Ingredients,
		Mode:             in.Mode,
	}
	if err := req.Validate(); err != nil {
		return domain.RecipeRequest{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return req, nil
}

// Checked reports whether option is among the selected health conditions.
func (in Input) Checked(option string) bool {
	return slices.Contains(in.HealthConditions, option)
}

// clone copies the slice so snapshots never alias form state.
func (in Input) clone() Input {
	in.HealthConditions = slices.Clone(in.HealthConditions)
	return in
}
