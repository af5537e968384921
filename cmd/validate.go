package cmd

import (
	"fmt"
	"os"

	"github.com/cardforge/cardforge/internal/assets"
	"github.com/spf13/cobra"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate [assets_dir]",
	Short: "Validate an asset directory",
	Long: `Validate checks that an asset directory holds everything a render run
needs: one frame image per card color, the three fonts (title.ttf,
body.ttf, symbols.ttf) and a readable artwork directory. Frame and font
problems are errors, since a render run aborts without them; artwork
problems only warn, because missing art degrades to placeholder art.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := args[0]

		// Check if path exists
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			return fmt.Errorf("asset directory not found: %s", dir)
		}

		results := assets.Check(dir)

		fmt.Println("Validation Results:")
		fmt.Println("-------------------")

		if len(results.Errors) == 0 {
			fmt.Printf("✅ Asset directory '%s' can serve a render run.\n", dir)
		} else {
			fmt.Printf("❌ Asset directory '%s' has %d errors:\n", dir, len(results.Errors))
			for i, err := range results.Errors {
				fmt.Printf("%d. %s\n", i+1, err)
			}
		}

		if len(results.Warnings) > 0 {
			fmt.Println("\nWarnings:")
			for i, warn := range results.Warnings {
				fmt.Printf("%d. %s\n", i+1, warn)
			}
		}

		if len(results.Errors) > 0 {
			return fmt.Errorf("validation failed")
		}
		return nil
	},
}
