package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/pantry-chef/internal/config"
	"github.com/phrazzld/pantry-chef/internal/domain"
	"github.com/phrazzld/pantry-chef/internal/generation"
	"google.golang.org/genai"
)

// ContentClient is the subset of the genai client used by the generator.
// *genai.Models satisfies it.
type ContentClient interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// GeminiGenerator implements the generation.Generator interface using
// Google's Gemini API to generate recipes.
type GeminiGenerator struct {
	// logger is used for structured logging
	logger *slog.Logger

	// prompts renders requests into the instruction text
	prompts *generation.PromptBuilder

	// client performs the GenerateContent call
	client ContentClient

	// model is the name of the Gemini model to use
	model string
}

var _ generation.Generator = (*GeminiGenerator)(nil)

// NewGenerator creates a GeminiGenerator backed by a real genai client.
//
// It fails with generation.ErrInvalidConfig when the API key or model name is
// empty or when the prompt template cannot be loaded, so no generator can
// exist without a credential.
func NewGenerator(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*GeminiGenerator, error) {
	if logger == nil {
		return nil, ErrNilLogger
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
			generation.ErrInvalidConfig, err)
	}

	return NewGeneratorWithClient(logger, cfg, client.Models)
}

// NewGeneratorWithClient creates a GeminiGenerator that sends requests
// through client. The API key in cfg is still required.
func NewGeneratorWithClient(
	logger *slog.Logger,
	cfg config.LLMConfig,
	client ContentClient,
) (*GeminiGenerator, error) {
	if logger == nil {
		return nil, ErrNilLogger
	}
	if client == nil {
		return nil, ErrNilClient
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	prompts, err := generation.LoadPromptBuilder(cfg.PromptTemplatePath)
	if err != nil {
		return nil, err
	}

	return &GeminiGenerator{
		logger:  logger,
		prompts: prompts,
		client:  client,
		model:   cfg.ModelName,
	}, nil
}

func validateConfig(cfg config.LLMConfig) error {
	if strings.TrimSpace(cfg.GeminiAPIKey) == "" {
		return fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}
	if strings.TrimSpace(cfg.ModelName) == "" {
		return fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}
	return nil
}

// GenerateRecipes builds the prompt for req, calls Gemini once and decodes the
// result. Any failure is logged and returned as a *generation.GenerationError.
func (g *GeminiGenerator) GenerateRecipes(
	ctx context.Context,
	req domain.RecipeRequest,
) ([]domain.Recipe, error) {
	recipes, err := g.generate(ctx, req)
	if err != nil {
		g.logger.ErrorContext(ctx, "Recipe generation failed",
			"error", err,
			"model", g.model,
			"mode", string(req.Mode))
		return nil, generation.NewGenerationError(err)
	}

	g.logger.InfoContext(ctx, "Recipe generation succeeded",
		"model", g.model,
		"recipe_count", len(recipes))

	return recipes, nil
}

func (g *GeminiGenerator) generate(ctx context.Context, req domain.RecipeRequest) ([]domain.Recipe, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	prompt, err := g.prompts.Build(req)
	if err != nil {
		return nil, err
	}

	g.logger.DebugContext(ctx, "Making Gemini API call",
		"model", g.model,
		"prompt_length", len(prompt))

	resp, err := g.client.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: ResponseMIMEType,
		ResponseSchema:   ResponseSchema(),
	})
	if err != nil {
		return nil, fmt.Errorf("gemini API call: %w", err)
	}

	text, err := responseText(resp)
	if err != nil {
		return nil, err
	}

	return ParseRecipes(text)
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", fmt.Errorf("%w: nil response", generation.ErrEmptyResponse)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return "", fmt.Errorf("%w: no candidates", generation.ErrEmptyResponse)
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", generation.ErrContentBlocked
	}
	if candidate.Content == nil {
		return "", fmt.Errorf("%w: candidate has no content", generation.ErrEmptyResponse)
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}

	if strings.TrimSpace(sb.String()) == "" {
		return "", errors.Join(generation.ErrEmptyResponse,
			fmt.Errorf("finish reason %q", candidate.FinishReason))
	}

	return sb.String(), nil
}
