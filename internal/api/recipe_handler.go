package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/phrazzld/pantry-chef/internal/api/shared"
	"github.com/phrazzld/pantry-chef/internal/generation"
)

// RecipeHandler serves the JSON generation endpoint.
type RecipeHandler struct {
	generator generation.Generator
	logger    *slog.Logger
}

// NewRecipeHandler creates a new RecipeHandler
func NewRecipeHandler(generator generation.Generator, logger *slog.Logger) *RecipeHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &RecipeHandler{
		generator: generator,
		logger:    logger.With("component", "recipe_handler"),
	}
}

// GenerateRecipes handles POST /api/recipes requests. It runs one generation
// call for the lifetime of the request and returns every recipe the model
// produced, in order.
func (h *RecipeHandler) GenerateRecipes(w http.ResponseWriter, r *http.Request) {
	var req GenerateRecipesRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			shared.RespondWithErrorAndLog(w, r, http.StatusRequestEntityTooLarge,
				"Request body too large", err, shared.WithElevatedLogLevel())
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	recipeReq, err := req.toInput().Request()
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	recipes, err := h.generator.GenerateRecipes(r.Context(), recipeReq)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	h.logger.InfoContext(r.Context(), "Recipes generated",
		"trace_id", shared.GetTraceID(r.Context()),
		"recipe_count", len(recipes),
		"mode", string(recipeReq.Mode))

	shared.RespondWithJSON(w, r, http.StatusOK, RecipesResponse{Recipes: recipesToResponse(recipes)})
}
