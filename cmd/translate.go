package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/c0rnelius/translate-pptx/internal/config"
	"github.com/c0rnelius/translate-pptx/internal/pptx"
	"github.com/c0rnelius/translate-pptx/internal/translate"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	outputFile  string
	backendFlag string
	modelFlag   string
	rpmFlag     int
)

var translateCmd = &cobra.Command{
	Use:   "translate <input.pptx> <target-language> [model]",
	Short: "Translate a PowerPoint presentation",
	Long: `Translate every slide of a .pptx presentation to the target language.

The translated copy is written next to the input as <name>_<language>.pptx
unless --output is given. The optional model argument picks the backend:
models containing "gpt-4o" use OpenAI, models containing "deepseek" use
SiliconFlow, models containing "gemini" use Google AI, and "nop" echoes the
original text back for testing.

Example:
  translate-pptx translate slides.pptx English
  translate-pptx translate slides.pptx French gpt-4o-2024-11-20`,
	Args: cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputFile := args[0]
		targetLanguage := args[1]

		cfg, err := config.LoadConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		// Model precedence: flag, positional argument, config file.
		model := cfg.Model
		if len(args) == 3 {
			model = args[2]
		}
		if modelFlag != "" {
			model = modelFlag
		}

		// The backend flag wins; otherwise the model name routes the
		// request, and with neither we fall back to the configured or
		// default backend.
		backend := translate.Backend(backendFlag)
		if backend == "" {
			if model != "" {
				backend, err = translate.BackendForModel(model)
				if err != nil {
					return err
				}
			} else if cfg.Backend != "" {
				backend = translate.Backend(cfg.Backend)
			} else {
				backend = translate.BackendDeepSeek
			}
		}

		rpm := cfg.RPM
		if rpmFlag > 0 {
			rpm = rpmFlag
		}

		service, err := translate.NewService(translate.ServiceConfig{
			APIKey:  cfg.ResolveAPIKey(string(backend)),
			BaseURL: cfg.BaseURL,
			Model:   model,
			Backend: backend,
			Verbose: verbose,
			RPM:     rpm,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize translation service: %w", err)
		}
		defer service.Close()

		doc, err := pptx.Extract(inputFile)
		if err != nil {
			return fmt.Errorf("failed to read presentation: %w", err)
		}

		log.Debug().
			Int("slides", len(doc.Slides)).
			Str("target_lang", targetLanguage).
			Str("backend", string(backend)).
			Msg("extracted presentation text")

		translated, err := service.Translate(cmd.Context(), doc.Structure(), targetLanguage)
		if err != nil {
			return fmt.Errorf("failed to translate presentation: %w", err)
		}

		output := outputFile
		if output == "" {
			output = outputPath(inputFile, targetLanguage)
		}

		if err := pptx.Replace(inputFile, output, translated, targetLanguage); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}

		fmt.Printf("Translated presentation saved to %s\n", output)
		return nil
	},
}

// outputPath derives the output filename from the input and target language,
// appending a counter until the name is free: deck_French.pptx,
// deck_French_1.pptx, and so on.
func outputPath(input, targetLanguage string) string {
	ext := filepath.Ext(input)
	base := strings.TrimSuffix(input, ext)
	if ext == "" {
		ext = ".pptx"
	}

	candidate := fmt.Sprintf("%s_%s%s", base, targetLanguage, ext)
	for counter := 1; ; counter++ {
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
		candidate = fmt.Sprintf("%s_%s_%d%s", base, targetLanguage, counter, ext)
	}
}

func init() {
	translateCmd.Flags().StringVarP(&outputFile, "output", "o", "", "output file (default <input>_<language>.pptx)")
	translateCmd.Flags().StringVarP(&backendFlag, "backend", "b", "", "translation backend (openai, deepseek, googleai, nop)")
	translateCmd.Flags().StringVarP(&modelFlag, "model", "m", "", "model identifier")
	translateCmd.Flags().IntVarP(&rpmFlag, "rpm", "r", 0, "maximum requests per minute (0 disables rate limiting)")

	rootCmd.AddCommand(translateCmd)
}
