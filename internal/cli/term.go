package cli

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Color definitions for consistent styling across the CLI.
var (
	colorHeader = color.New(color.Bold)
	colorName   = color.New(color.FgCyan, color.Bold)
	colorTimes  = color.New(color.FgGreen)
	colorNote   = color.New(color.FgYellow)
	colorMuted  = color.New(color.FgWhite, color.Faint)
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}
