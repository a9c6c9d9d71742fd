// Command recipes asks Gemini for recipes from the terminal, using the same
// form state machine and generator as the web server.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "recipes",
	Short: "Pantry Chef - recipe suggestions for your dietary profile",
	Long: `Pantry Chef suggests recipes that fit your age, gender, health conditions,
allergies and the ingredients you have on hand.

The Gemini API key is read from PANTRY_LLM_GEMINI_API_KEY, GEMINI_API_KEY or
API_KEY. A .env file in the working directory is loaded if present.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
