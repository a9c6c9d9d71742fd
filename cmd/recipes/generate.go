package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/phrazzld/pantry-chef/internal/config"
	"github.com/phrazzld/pantry-chef/internal/domain"
	"github.com/phrazzld/pantry-chef/internal/form"
	"github.com/phrazzld/pantry-chef/internal/generation"
	"github.com/phrazzld/pantry-chef/internal/platform/gemini"
	"github.com/phrazzld/pantry-chef/internal/platform/logger"
	"github.com/spf13/cobra"
)

// generateOptions holds the flag values of the generate command.
type generateOptions struct {
	age            string
	gender         string
	conditions     []string
	otherCondition string
	allergies      string
	ingredients    string
	mode           string
	verbose        bool
}

// generatorFactory builds the generator for a run. Tests replace it.
var generatorFactory = func(ctx context.Context, log *slog.Logger, cfg config.LLMConfig) (generation.Generator, error) {
	return gemini.NewGenerator(ctx, log, cfg)
}

// spinnerInterval is the frame period of the progress line.
var spinnerInterval = 120 * time.Millisecond

func newGenerateCmd() *cobra.Command {
	opts := generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate recipes for a dietary profile",
		Long: `Generate recipes for a dietary profile with a single Gemini call.

Examples:
  recipes generate --age 30s --condition low-sodium
  recipes generate --ingredients "tofu, kimchi, rice" --mode available_only
  recipes generate --age 50s+ --gender female --condition diabetes --other-condition gout --allergies peanuts`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.age, "age", string(domain.DefaultAgeBracket), "Age bracket: 10s, 20s, 30s, 40s or 50s+")
	flags.StringVar(&opts.gender, "gender", string(domain.DefaultGender), "Gender: unspecified, male or female")
	flags.StringArrayVar(&opts.conditions, "condition", nil, "Health condition (repeatable): weight-loss, hypertension, diabetes, low-sodium, high-protein, vegetarian")
	flags.StringVar(&opts.otherCondition, "other-condition", "", "Any other health condition, free text")
	flags.StringVar(&opts.allergies, "allergies", "", "Allergies, free text")
	flags.StringVar(&opts.ingredients, "ingredients", "", "Available ingredients, free text")
	flags.StringVar(&opts.mode, "mode", string(domain.DefaultRecipeMode), "Recipe mode: free or available_only")
	flags.BoolVar(&opts.verbose, "verbose", false, "Write debug logs to stderr")

	return cmd
}

func init() {
	rootCmd.AddCommand(newGenerateCmd())
}

// input converts the flags into form fields.
func (o generateOptions) input() (form.Input, error) {
	mode, err := domain.ParseRecipeMode(o.mode)
	if err != nil {
		return form.Input{}, err
	}
	return form.Input{
		Age:                  domain.AgeBracket(o.age),
		Gender:               domain.Gender(o.gender),
		HealthConditions:     o.conditions,
		OtherHealthCondition: o.otherCondition,
		Allergies:            o.allergies,
		Ingredients:          o.ingredients,
		Mode:                 mode,
	}, nil
}

func runGenerate(ctx context.Context, stdout, stderr io.Writer, opts generateOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	in, err := opts.input()
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	serverCfg := cfg.Server
	serverCfg.LogLevel = "error"
	if opts.verbose {
		serverCfg.LogLevel = "debug"
	}
	log, err := logger.SetupWithWriter(serverCfg, stderr)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	generator, err := generatorFactory(ctx, log.With("component", "llm_generator"), cfg.LLM)
	if err != nil {
		return fmt.Errorf("failed to initialize LLM generator: %w", err)
	}

	f, err := form.New(generator, log)
	if err != nil {
		return err
	}

	r := newRenderer(stdout)

	done, err := f.Submit(ctx, in)
	if err != nil {
		return err
	}
	waitWithSpinner(stderr, r, done)

	view := f.View()
	r.RenderView(view)
	if view.State == form.StateFailed {
		return errGenerationFailed
	}
	return nil
}

// errGenerationFailed gives a non-zero exit after the banner is shown.
var errGenerationFailed = errors.New("recipe generation did not succeed")

// waitWithSpinner animates a progress line on w until done is closed.
func waitWithSpinner(w io.Writer, r *renderer, done <-chan struct{}) {
	frames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()

	for i := 0; ; i++ {
		fmt.Fprintf(w, "\r%s", r.Progress(frames[i%len(frames)]+" Generating recipes..."))
		select {
		case <-done:
			fmt.Fprint(w, "\r\033[K")
			return
		case <-ticker.C:
		}
	}
}
