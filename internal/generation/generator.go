package generation

import (
	"context"

	"github.com/phrazzld/pantry-chef/internal/domain"
)

// Generator defines the interface for generating recipes from a dietary
// request. Implementations issue exactly one call to the external service.
type Generator interface {
	// GenerateRecipes returns the recipes the external service chose to return,
	// in order, or an error satisfying errors.Is(err, ErrGenerationFailed).
	// There are no partial results.
	GenerateRecipes(ctx context.Context, req domain.RecipeRequest) ([]domain.Recipe, error)
}
