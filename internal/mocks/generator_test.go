package mocks_test

import (
	"context"
	"errors"
	"testing"

	"github.com/phrazzld/pantry-chef/internal/domain"
	"github.com/phrazzld/pantry-chef/internal/generation"
	"github.com/phrazzld/pantry-chef/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockGenerator(t *testing.T) {
	t.Parallel()

	req := domain.RecipeRequest{Age: domain.AgeThirties, Gender: domain.GenderUnspecified, Mode: domain.ModeFree}

	t.Run("Default success case", func(t *testing.T) {
		t.Parallel()

		mockGen := mocks.NewMockGeneratorWithRecipes(mocks.SampleRecipes())

		recipes, err := mockGen.GenerateRecipes(context.Background(), req)

		assert.NoError(t, err)
		assert.Len(t, recipes, 1)
		assert.Equal(t, 1, mockGen.Calls(), "GenerateRecipes should be called once")
		assert.Equal(t, []domain.RecipeRequest{req}, mockGen.Requests())
	})

	t.Run("Error case", func(t *testing.T) {
		t.Parallel()

		mockGen := mocks.MockGeneratorThatFails()

		recipes, err := mockGen.GenerateRecipes(context.Background(), req)

		require.Error(t, err)
		assert.ErrorIs(t, err, generation.ErrGenerationFailed)
		assert.ErrorIs(t, err, generation.ErrInvalidResponse)
		assert.Empty(t, recipes)
	})

	t.Run("Custom function", func(t *testing.T) {
		t.Parallel()

		sentinel := errors.New("custom")
		mockGen := &mocks.MockGenerator{
			GenerateRecipesFn: func(ctx context.Context, r domain.RecipeRequest) ([]domain.Recipe, error) {
				return nil, sentinel
			},
		}

		_, err := mockGen.GenerateRecipes(context.Background(), req)
		assert.ErrorIs(t, err, sentinel)
		assert.Equal(t, 1, mockGen.Calls(), "custom calls are still recorded")
	})

	t.Run("Blocking generator", func(t *testing.T) {
		t.Parallel()

		release := make(chan struct{})
		mockGen, started := mocks.NewBlockingMockGenerator(release, mocks.SampleRecipes(), nil)

		done := make(chan []domain.Recipe, 1)
		go func() {
			recipes, _ := mockGen.GenerateRecipes(context.Background(), req)
			done <- recipes
		}()

		<-started
		select {
		case <-done:
			t.Fatal("generator returned before release")
		default:
		}

		close(release)
		assert.Len(t, <-done, 1)
	})
}
