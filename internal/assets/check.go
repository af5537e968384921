package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cardforge/cardforge/internal/card"
)

// CheckResults collects everything wrong with an asset directory.
type CheckResults struct {
	Errors   []string // shared prerequisites: would abort a render run
	Warnings []string // degraded but renderable
}

// Check inspects an asset directory without rendering anything: every
// frame and font must be present and decodable, while artwork problems
// only warn because missing art degrades to a placeholder.
func Check(dir string) CheckResults {
	var results CheckResults

	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		results.Errors = append(results.Errors, fmt.Sprintf("asset directory not found: %s", dir))
		return results
	}

	for _, color := range card.Colors {
		path := framePath(dir, color)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			results.Errors = append(results.Errors,
				fmt.Sprintf("missing %s frame: %s", strings.ToLower(string(color)), path))
			continue
		}
		if _, err := loadImage(path); err != nil {
			results.Errors = append(results.Errors, fmt.Sprintf("bad frame %s: %v", path, err))
		}
	}

	for _, name := range fontFiles {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			results.Errors = append(results.Errors, fmt.Sprintf("missing font: %s", path))
		}
	}
	if len(results.Errors) == 0 {
		if _, err := LoadFonts(dir); err != nil {
			results.Errors = append(results.Errors, err.Error())
		}
	}

	artDir := filepath.Join(dir, "art")
	info, err := os.Stat(artDir)
	if err != nil || !info.IsDir() {
		results.Warnings = append(results.Warnings,
			fmt.Sprintf("no artwork directory at %s, all cards will use placeholder art", artDir))
		return results
	}

	entries, err := os.ReadDir(artDir)
	if err != nil {
		results.Warnings = append(results.Warnings, fmt.Sprintf("unreadable artwork directory: %v", err))
		return results
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if !contains(artExtensions, ext) {
			results.Warnings = append(results.Warnings,
				fmt.Sprintf("artwork %s has unsupported extension %s", entry.Name(), ext))
			continue
		}
		if _, err := loadImage(filepath.Join(artDir, entry.Name())); err != nil {
			results.Warnings = append(results.Warnings,
				fmt.Sprintf("artwork %s: %v", entry.Name(), err))
		}
	}

	return results
}

// contains checks if a string is in a slice
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
