package cmd

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/cardforge/cardforge/internal/assets"
	"github.com/cardforge/cardforge/internal/card"
	"github.com/cardforge/cardforge/internal/config"
	"github.com/cardforge/cardforge/internal/export"
	"github.com/cardforge/cardforge/internal/layout"
	"github.com/cardforge/cardforge/internal/render"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render [cards.csv] [output_dir]",
	Short: "Render every card in a CSV file to print-ready images",
	Long: `Render reads card records from a CSV file with header-named columns
(name, cost, type, subtype, color, art_file, strength, description),
renders each valid record and writes <output_dir>/<slug>.<ext>.

Bad rows, missing artwork and failed exports skip that single card; the
rest of the batch still renders. Missing frames or fonts abort the run
before any card is rendered, since every card needs them.

Examples:
  cardforge render cards.csv out/
  cardforge render --assets ./assets --bleed 3 cards.csv out/
  cardforge render --config print.toml cards.csv proofs/`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		csvPath, outDir := args[0], args[1]

		cfg, err := loadRenderConfig(cmd)
		if err != nil {
			return err
		}

		// Shared prerequisites load first and fail fast.
		lib, err := assets.Open(cfg.Assets.Dir)
		if err != nil {
			return fmt.Errorf("error opening assets: %v", err)
		}

		records, skips, err := card.LoadRecords(csvPath)
		if err != nil {
			return err
		}

		if err := os.MkdirAll(outDir, 0755); err != nil {
			return fmt.Errorf("error creating output directory: %v", err)
		}

		pipeline := render.New(lib, export.FromConfig(cfg.Page),
			layout.OverflowPolicy(cfg.Layout.OverflowPolicy))
		result := pipeline.Run(records, outDir)
		result.Skipped = append(skips, result.Skipped...)

		printSummary(result)

		if len(result.Rendered) == 0 {
			return fmt.Errorf("no cards rendered")
		}
		return nil
	},
}

func init() {
	renderCmd.Flags().StringP("config", "c", "", "Path to a cardforge.toml config file")
	renderCmd.Flags().StringP("assets", "a", "", "Asset directory (frames, fonts, art/)")
	renderCmd.Flags().Int("dpi", 0, "Output resolution in dots per inch")
	renderCmd.Flags().Float64("bleed", -1, "Bleed margin in millimeters")
	renderCmd.Flags().String("format", "", "Output format: tiff, jpeg or png")
}

// loadRenderConfig reads the config file and applies flag overrides.
func loadRenderConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if dir, _ := cmd.Flags().GetString("assets"); dir != "" {
		cfg.Assets.Dir = dir
	}
	if dpi, _ := cmd.Flags().GetInt("dpi"); dpi > 0 {
		cfg.Page.DPI = dpi
	}
	if bleed, _ := cmd.Flags().GetFloat64("bleed"); bleed >= 0 {
		cfg.Page.BleedMM = bleed
	}
	if format, _ := cmd.Flags().GetString("format"); format != "" {
		cfg.Page.Format = format
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// printSummary reports what rendered, what was skipped and why.
func printSummary(result render.Result) {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		width = 80
	}

	fmt.Println()
	fmt.Printf("%s %d rendered, %d skipped\n",
		colorize.CyanString("Done:"), len(result.Rendered), len(result.Skipped))

	for _, warn := range result.Warnings {
		for _, line := range wrapLine("warning: "+warn, width-2) {
			fmt.Printf("  %s\n", colorize.YellowString(line))
		}
	}
	for _, skip := range result.Skipped {
		name := skip.Name
		if name == "" {
			name = fmt.Sprintf("row %d", skip.Row)
		}
		for _, line := range wrapLine(fmt.Sprintf("skipped %s: %s", name, skip.Reason), width-2) {
			fmt.Printf("  %s\n", colorize.RedString(line))
		}
	}
}

// wrapLine wraps text to a specified width
func wrapLine(text string, width int) []string {
	if width < 20 {
		width = 80
	}

	var result []string
	var currentLine string
	for _, word := range strings.Fields(text) {
		if currentLine == "" {
			currentLine = word
		} else if len(currentLine)+1+len(word) <= width {
			currentLine += " " + word
		} else {
			result = append(result, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		result = append(result, currentLine)
	}
	return result
}
