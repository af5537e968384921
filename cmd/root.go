package cmd

import (
	"github.com/spf13/cobra"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "cardforge",
	Short: "Render print-ready card images from tabular card data",
	Long: `Cardforge reads card records from a CSV file, composites each card from
frame art, artwork and laid-out text, and writes one print-ready CMYK
raster file per card at a fixed physical size and resolution.`,
}

func init() {
	RootCmd.AddCommand(renderCmd)
	RootCmd.AddCommand(validateCmd)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return RootCmd.Execute()
}
