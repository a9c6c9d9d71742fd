package mocks

import (
	"context"
	"errors"
	"sync"

	"github.com/phrazzld/pantry-chef/internal/domain"
	"github.com/phrazzld/pantry-chef/internal/generation"
)

// MockGenerator implements generation.Generator for testing
type MockGenerator struct {
	// GenerateRecipesFn allows test cases to mock the GenerateRecipes behavior
	GenerateRecipesFn func(ctx context.Context, req domain.RecipeRequest) ([]domain.Recipe, error)

	// Default response values
	Recipes []domain.Recipe
	Err     error

	// mu protects the call tracking state for concurrent test cases
	mu sync.Mutex

	// requests contains all requests passed to GenerateRecipes calls
	requests []domain.RecipeRequest
}

var _ generation.Generator = (*MockGenerator)(nil)

// GenerateRecipes implements the generation.Generator interface
func (m *MockGenerator) GenerateRecipes(
	ctx context.Context,
	req domain.RecipeRequest,
) ([]domain.Recipe, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()

	if m.GenerateRecipesFn != nil {
		return m.GenerateRecipesFn(ctx, req)
	}

	return m.Recipes, m.Err
}

// Calls returns how many times GenerateRecipes was called.
func (m *MockGenerator) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

// Requests returns a copy of every request received, in call order.
func (m *MockGenerator) Requests() []domain.RecipeRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.RecipeRequest(nil), m.requests...)
}

// NewMockGeneratorWithRecipes creates a MockGenerator that returns the specified recipes
func NewMockGeneratorWithRecipes(recipes []domain.Recipe) *MockGenerator {
	return &MockGenerator{Recipes: recipes}
}

// NewMockGeneratorWithError creates a MockGenerator that returns the specified error
func NewMockGeneratorWithError(err error) *MockGenerator {
	return &MockGenerator{Err: err}
}

// MockGeneratorThatFails creates a MockGenerator that fails the way the real
// client does: with a GenerationError around an invalid response.
func MockGeneratorThatFails() *MockGenerator {
	return &MockGenerator{
		Err: generation.NewGenerationError(
			errors.Join(generation.ErrInvalidResponse, errors.New("unexpected end of JSON input")),
		),
	}
}

// NewBlockingMockGenerator creates a MockGenerator whose calls wait until
// release is closed (or the context ends) before returning recipes and err.
// started receives one value per call as soon as the call begins.
func NewBlockingMockGenerator(
	release <-chan struct{},
	recipes []domain.Recipe,
	err error,
) (m *MockGenerator, started <-chan struct{}) {
	startedCh := make(chan struct{}, 16)
	m = &MockGenerator{
		GenerateRecipesFn: func(ctx context.Context, _ domain.RecipeRequest) ([]domain.Recipe, error) {
			startedCh <- struct{}{}
			select {
			case <-release:
				return recipes, err
			case <-ctx.Done():
				return nil, generation.NewGenerationError(ctx.Err())
			}
		},
	}
	return m, startedCh
}

// SampleRecipes returns a small fixed recipe list.
func SampleRecipes() []domain.Recipe {
	return []domain.Recipe{
		{
			Name:         "Low-Sodium Veggie Stir Fry",
			Description:  "Crisp vegetables with ginger and garlic, no soy sauce needed.",
			Ingredients:  []string{"broccoli", "carrot", "ginger", "garlic", "sesame oil"},
			Instructions: []string{"Slice the vegetables.", "Heat the oil and aromatics.", "Stir fry for 5 minutes."},
		},
	}
}
