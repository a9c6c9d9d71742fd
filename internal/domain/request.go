package domain

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// AgeBracket is the age range a user selects on the form.
type AgeBracket string

// Supported age brackets
const (
	AgeTeens    AgeBracket = "10s"
	AgeTwenties AgeBracket = "20s"
	AgeThirties AgeBracket = "30s"
	AgeForties  AgeBracket = "40s"
	AgeFifties  AgeBracket = "50s+"
)

// AgeBrackets lists the selectable age brackets in display order.
var AgeBrackets = []AgeBracket{AgeTeens, AgeTwenties, AgeThirties, AgeForties, AgeFifties}

// Gender is the gender a user selects on the form.
type Gender string

// Supported genders
const (
	GenderUnspecified Gender = "unspecified"
	GenderMale        Gender = "male"
	GenderFemale      Gender = "female"
)

// Genders lists the selectable genders in display order.
var Genders = []Gender{GenderUnspecified, GenderMale, GenderFemale}

// RecipeMode controls whether generated recipes may use ingredients beyond
// the ones the user listed.
type RecipeMode string

// Recipe modes
const (
	// ModeAvailableOnly restricts recipes to the available ingredients.
	ModeAvailableOnly RecipeMode = "available_only"
	// ModeFree lets the model add ingredients it considers worthwhile.
	ModeFree RecipeMode = "free"
)

// RecipeModes lists the recipe modes in display order.
var RecipeModes = []RecipeMode{ModeFree, ModeAvailableOnly}

// ParseRecipeMode converts a raw string into a RecipeMode.
func ParseRecipeMode(s string) (RecipeMode, error) {
	switch RecipeMode(strings.TrimSpace(s)) {
	case ModeAvailableOnly:
		return ModeAvailableOnly, nil
	case ModeFree:
		return ModeFree, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidRecipeMode, s)
	}
}

// Label returns the human readable name of the mode.
func (m RecipeMode) Label() string {
	switch m {
	case ModeAvailableOnly:
		return "Use only available ingredients"
	case ModeFree:
		return "Free recommendation"
	default:
		return string(m)
	}
}

// HealthConditionOptions is the fixed set of checkbox options offered for
// health conditions. Anything else goes in the free-text field.
var HealthConditionOptions = []string{
	"weight-loss",
	"hypertension",
	"diabetes",
	"low-sodium",
	"high-protein",
	"vegetarian",
}

// Defaults used when the form is first shown.
const (
	DefaultAgeBracket = AgeThirties
	DefaultGender     = GenderUnspecified
	DefaultRecipeMode = ModeFree
)

// RecipeRequest carries one user's dietary profile and constraints to the
// generator. It is built fresh for every submission and never stored.
type RecipeRequest struct {
	Age              AgeBracket `json:"age"               validate:"required,oneof=10s 20s 30s 40s 50s+"`
	Gender           Gender     `json:"gender"            validate:"required,oneof=unspecified male female"`
	HealthConditions string     `json:"health_conditions"`
	Allergies        string     `json:"allergies"`
	Ingredients      string     `json:"ingredients"`
	Mode             RecipeMode `json:"mode"              validate:"required,oneof=available_only free"`
}

var requestValidator = validator.New()

// Validate checks that the enumerated fields hold known values.
// Free-text fields may be empty.
func (r RecipeRequest) Validate() error {
	if err := requestValidator.Struct(r); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return nil
}

// CombineHealthConditions flattens the checked health conditions and the
// free-text addendum into the single field sent to the generator. Blank
// entries are dropped so the result never has leading, trailing, or doubled
// separators.
func CombineHealthConditions(selected []string, other string) string {
	parts := make([]string, 0, len(selected)+1)
	for _, s := range selected {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	if other = strings.TrimSpace(other); other != "" {
		parts = append(parts, other)
	}
	return strings.Join(parts, ", ")
}
