package utils

import "github.com/pterm/pterm"

// PrintBanner prints the bundlescan banner
func PrintBanner(version string) {
	pterm.DefaultHeader.
		WithBackgroundStyle(pterm.NewStyle(pterm.BgDarkGray)).
		WithTextStyle(pterm.NewStyle(pterm.FgLightCyan, pterm.Bold)).
		Printf(" bundlescan v%s - JS bundle recon ", version)
	pterm.Println()
}
