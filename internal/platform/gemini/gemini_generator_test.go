package gemini_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/phrazzld/pantry-chef/internal/config"
	"github.com/phrazzld/pantry-chef/internal/domain"
	"github.com/phrazzld/pantry-chef/internal/generation"
	"github.com/phrazzld/pantry-chef/internal/platform/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

// fakeContentClient records GenerateContent calls and returns a canned response.
type fakeContentClient struct {
	mu       sync.Mutex
	calls    int
	model    string
	contents []*genai.Content
	config   *genai.GenerateContentConfig

	resp *genai.GenerateContentResponse
	err  error
}

func (f *fakeContentClient) GenerateContent(
	ctx context.Context,
	model string,
	contents []*genai.Content,
	config *genai.GenerateContentConfig,
) (*genai.GenerateContentResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.model = model
	f.contents = contents
	f.config = config
	return f.resp, f.err
}

// textResponse wraps text in a single-candidate response.
func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{
				Content:      &genai.Content{Role: "model", Parts: []*genai.Part{{Text: text}}},
				FinishReason: genai.FinishReasonStop,
			},
		},
	}
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() config.LLMConfig {
	return config.LLMConfig{
		GeminiAPIKey: "test-api-key",
		ModelName:    "gemini-2.5-flash",
	}
}

func scenarioRequest() domain.RecipeRequest {
	return domain.RecipeRequest{
		Age:              domain.AgeThirties,
		Gender:           domain.GenderUnspecified,
		HealthConditions: "low-sodium",
		Mode:             domain.ModeFree,
	}
}

func sampleRecipes() []domain.Recipe {
	return []domain.Recipe{
		{
			Name:         "Lemon Herb Chicken",
			Description:  "Bright and light.",
			Ingredients:  []string{"chicken thigh", "lemon", "thyme"},
			Instructions: []string{"Marinate the chicken.", "Roast at 200C for 25 minutes."},
		},
		{
			Name:         "Egg Fried Rice",
			Description:  "A quick weeknight staple.",
			Ingredients:  []string{"rice", "egg", "spring onion"},
			Instructions: []string{"Scramble the eggs.", "Fry the rice.", "Combine."},
		},
	}
}

func encodeRecipes(t *testing.T, recipes []domain.Recipe) string {
	t.Helper()
	wire := make([]gemini.RecipeSchema, len(recipes))
	for i, r := range recipes {
		wire[i] = gemini.FromDomain(r)
	}
	data, err := json.Marshal(wire)
	require.NoError(t, err)
	return string(data)
}

func TestNewGeneratorWithClient(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		logger    *slog.Logger
		client    gemini.ContentClient
		mutate    func(*config.LLMConfig)
		errorType error
	}{
		{
			name:      "nil_logger_returns_error",
			logger:    nil,
			client:    &fakeContentClient{},
			errorType: gemini.ErrNilLogger,
		},
		{
			name:      "nil_client_returns_error",
			logger:    newTestLogger(),
			client:    nil,
			errorType: gemini.ErrNilClient,
		},
		{
			name:      "missing_api_key_returns_error",
			logger:    newTestLogger(),
			client:    &fakeContentClient{},
			mutate:    func(c *config.LLMConfig) { c.GeminiAPIKey = "  " },
			errorType: generation.ErrInvalidConfig,
		},
		{
			name:      "missing_model_returns_error",
			logger:    newTestLogger(),
			client:    &fakeContentClient{},
			mutate:    func(c *config.LLMConfig) { c.ModelName = "" },
			errorType: generation.ErrInvalidConfig,
		},
		{
			name:      "missing_template_returns_error",
			logger:    newTestLogger(),
			client:    &fakeContentClient{},
			mutate:    func(c *config.LLMConfig) { c.PromptTemplatePath = filepath.Join(os.TempDir(), "does-not-exist.tmpl") },
			errorType: generation.ErrInvalidConfig,
		},
		{
			name:   "valid_config",
			logger: newTestLogger(),
			client: &fakeContentClient{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := testConfig()
			if tt.mutate != nil {
				tt.mutate(&cfg)
			}

			gen, err := gemini.NewGeneratorWithClient(tt.logger, cfg, tt.client)

			if tt.errorType != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.errorType)
				assert.Nil(t, gen)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, gen)
		})
	}
}

// TestNewGenerator_MissingAPIKey verifies that no real client is ever built
// without a credential.
func TestNewGenerator_MissingAPIKey(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.GeminiAPIKey = ""

	gen, err := gemini.NewGenerator(context.Background(), newTestLogger(), cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)
	assert.Nil(t, gen)
}

func TestGenerateRecipes_Success(t *testing.T) {
	t.Parallel()

	expected := sampleRecipes()
	client := &fakeContentClient{resp: textResponse("\n" + encodeRecipes(t, expected) + "\n")}

	gen, err := gemini.NewGeneratorWithClient(newTestLogger(), testConfig(), client)
	require.NoError(t, err)

	recipes, err := gen.GenerateRecipes(context.Background(), scenarioRequest())

	require.NoError(t, err)
	assert.Equal(t, expected, recipes)
	assert.Equal(t, 1, client.calls, "exactly one request is issued")
}

func TestGenerateRecipes_RequestShape(t *testing.T) {
	t.Parallel()

	client := &fakeContentClient{resp: textResponse("[]")}
	gen, err := gemini.NewGeneratorWithClient(newTestLogger(), testConfig(), client)
	require.NoError(t, err)

	req := scenarioRequest()
	req.Mode = domain.ModeAvailableOnly
	req.Ingredients = "tofu, kimchi"

	_, err = gen.GenerateRecipes(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "gemini-2.5-flash", client.model)
	require.NotNil(t, client.config)
	assert.Equal(t, "application/json", client.config.ResponseMIMEType)

	schema := client.config.ResponseSchema
	require.NotNil(t, schema)
	assert.Equal(t, genai.TypeArray, schema.Type)
	require.NotNil(t, schema.Items)
	assert.Equal(t, genai.TypeObject, schema.Items.Type)
	assert.ElementsMatch(t,
		[]string{"recipeName", "description", "ingredients", "instructions"},
		schema.Items.Required)
	assert.Equal(t, genai.TypeArray, schema.Items.Properties["ingredients"].Type)
	assert.Equal(t, genai.TypeString, schema.Items.Properties["instructions"].Items.Type)

	require.Len(t, client.contents, 1)
	require.Len(t, client.contents[0].Parts, 1)
	prompt := client.contents[0].Parts[0].Text
	assert.Contains(t, prompt, generation.HardConstraintInstruction)
	assert.NotContains(t, prompt, generation.SoftConstraintInstruction)
	assert.Contains(t, prompt, "tofu, kimchi")
	assert.Contains(t, prompt, "low-sodium")
}

func TestGenerateRecipes_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		resp  *genai.GenerateContentResponse
		err   error
		req   func(*domain.RecipeRequest)
		cause error
	}{
		{
			name:  "transport_error",
			err:   errors.New("dial tcp: connection refused"),
			cause: nil,
		},
		{
			name:  "nil_response",
			resp:  nil,
			cause: generation.ErrEmptyResponse,
		},
		{
			name:  "no_candidates",
			resp:  &genai.GenerateContentResponse{},
			cause: generation.ErrEmptyResponse,
		},
		{
			name: "safety_block",
			resp: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonSafety}},
			},
			cause: generation.ErrContentBlocked,
		},
		{
			name:  "blank_text",
			resp:  textResponse("   "),
			cause: generation.ErrEmptyResponse,
		},
		{
			name:  "not_json",
			resp:  textResponse("Here are three recipes: ..."),
			cause: generation.ErrInvalidResponse,
		},
		{
			name:  "object_instead_of_array",
			resp:  textResponse(`{"recipeName":"Soup"}`),
			cause: generation.ErrInvalidResponse,
		},
		{
			name:  "missing_required_field",
			resp:  textResponse(`[{"recipeName":"Soup","description":"Warm","ingredients":["water"]}]`),
			cause: generation.ErrInvalidResponse,
		},
		{
			name:  "invalid_request",
			resp:  textResponse("[]"),
			req:   func(r *domain.RecipeRequest) { r.Mode = "sometimes" },
			cause: domain.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client := &fakeContentClient{resp: tt.resp, err: tt.err}
			gen, err := gemini.NewGeneratorWithClient(newTestLogger(), testConfig(), client)
			require.NoError(t, err)

			req := scenarioRequest()
			if tt.req != nil {
				tt.req(&req)
			}

			recipes, err := gen.GenerateRecipes(context.Background(), req)

			require.Error(t, err)
			assert.Nil(t, recipes, "no partial results")
			assert.Equal(t, generation.UserMessage, err.Error())
			assert.ErrorIs(t, err, generation.ErrGenerationFailed)

			var genErr *generation.GenerationError
			require.ErrorAs(t, err, &genErr)
			if tt.cause != nil {
				assert.ErrorIs(t, err, tt.cause)
			}
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
			}
		})
	}
}

func TestGenerateRecipes_LogsRedactedDetail(t *testing.T) {
	t.Parallel()

	var buf safeBuffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	client := &fakeContentClient{err: errors.New("upstream said no")}
	gen, err := gemini.NewGeneratorWithClient(logger, testConfig(), client)
	require.NoError(t, err)

	_, err = gen.GenerateRecipes(context.Background(), scenarioRequest())
	require.Error(t, err)

	assert.Contains(t, buf.String(), "upstream said no", "underlying detail is logged")
	assert.NotContains(t, err.Error(), "upstream said no", "underlying detail is not shown")
}

// safeBuffer is a goroutine-safe strings.Builder for log capture.
type safeBuffer struct {
	mu  sync.Mutex
	buf []byte
}

func (b *safeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf = append(b.buf, p...)
	return len(p), nil
}

func (b *safeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return string(b.buf)
}
