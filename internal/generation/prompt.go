package generation

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/phrazzld/pantry-chef/internal/domain"
)

// Mode instructions. Exactly one of them appears in every prompt.
const (
	// HardConstraintInstruction is used for domain.ModeAvailableOnly.
	HardConstraintInstruction = "You must suggest recipes that can be made using only the ingredients in the available ingredients list. Never add any other ingredient."

	// SoftConstraintInstruction is used for domain.ModeFree.
	SoftConstraintInstruction = "Make the most of the available ingredients, but you may suggest recipes that need additional ingredients for a tastier dish."
)

// emptyField replaces blank free-text fields in the prompt.
const emptyField = "none"

//go:embed prompts/recipes.tmpl
var defaultPromptTemplate string

// promptData is the data passed to the prompt template
type promptData struct {
	Age              string
	Gender           string
	HealthConditions string
	Allergies        string
	Ingredients      string
	ModeInstruction  string
}

// PromptBuilder renders recipe requests into the instruction text sent to
// the language model.
type PromptBuilder struct {
	tmpl *template.Template
}

// NewPromptBuilder parses the embedded default template.
func NewPromptBuilder() (*PromptBuilder, error) {
	return parsePromptTemplate("recipes", defaultPromptTemplate)
}

// LoadPromptBuilder parses the template at path, or the embedded default
// when path is empty.
func LoadPromptBuilder(path string) (*PromptBuilder, error) {
	if path == "" {
		return NewPromptBuilder()
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read prompt template from %s: %v",
			ErrInvalidConfig, path, err)
	}

	return parsePromptTemplate("recipes", string(content))
}

func parsePromptTemplate(name, content string) (*PromptBuilder, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Parse(content)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse prompt template: %v", ErrInvalidConfig, err)
	}
	return &PromptBuilder{tmpl: tmpl}, nil
}

// Build renders the prompt for req.
func (b *PromptBuilder) Build(req domain.RecipeRequest) (string, error) {
	instruction, err := ModeInstruction(req.Mode)
	if err != nil {
		return "", err
	}

	data := promptData{
		Age:              string(req.Age),
		Gender:           string(req.Gender),
		HealthConditions: orNone(req.HealthConditions),
		Allergies:        orNone(req.Allergies),
		Ingredients:      orNone(req.Ingredients),
		ModeInstruction:  instruction,
	}

	var buf bytes.Buffer
	if err := b.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}

	return strings.TrimSpace(buf.String()), nil
}

// ModeInstruction returns the constraint sentence for mode.
func ModeInstruction(mode domain.RecipeMode) (string, error) {
	switch mode {
	case domain.ModeAvailableOnly:
		return HardConstraintInstruction, nil
	case domain.ModeFree:
		return SoftConstraintInstruction, nil
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidRecipeMode, mode)
	}
}

func orNone(s string) string {
	if s = strings.TrimSpace(s); s != "" {
		return s
	}
	return emptyField
}
