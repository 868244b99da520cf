package cmd

import (
	"fmt"

	"github.com/c0rnelius/translate-pptx/internal/pptx"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <input.pptx>",
	Short: "Dump the extractable text structure of a presentation",
	Long: `Print the slide/shape/text structure that translation operates on.
Useful for checking what a presentation exposes before translating it.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := pptx.Extract(args[0])
		if err != nil {
			return fmt.Errorf("failed to read presentation: %w", err)
		}

		fmt.Printf("Total slides: %d\n", len(doc.Slides))
		for _, slide := range doc.Slides {
			fmt.Printf("\nSlide %d: %d shapes\n", slide.Number, len(slide.Shapes))
			for j, shape := range slide.Shapes {
				mode := "paragraphs"
				if shape.RunMode {
					mode = "runs"
				}
				fmt.Printf("  Shape %d: %d %s\n", j, len(shape.Texts), mode)
				for k, text := range shape.Texts {
					fmt.Printf("    [%d] %q\n", k, text)
				}
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
