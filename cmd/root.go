package cmd

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	// Flags
	cfgFile string
	verbose bool

	// Root command
	rootCmd = &cobra.Command{
		Use:   "translate-pptx",
		Short: "translate-pptx - PowerPoint Translation Tool",
		Long: `translate-pptx is a command-line tool for translating PowerPoint
presentations (.pptx) from one language to another using large language models.

Example:
  translate-pptx translate slides.pptx English`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
			if verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}

			// API keys may live in a local .env file
			if err := godotenv.Load(); err == nil {
				log.Debug().Msg("loaded environment from .env")
			}
		},
	}
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is config.toml)")
}
