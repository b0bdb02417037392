package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
)

// ProgressBar creates and manages the dispatch progress bar
type ProgressBar struct {
	bar *progressbar.ProgressBar
}

// NewProgressBar creates a progress bar over the total work unit count
func NewProgressBar(units int) *ProgressBar {
	bar := progressbar.NewOptions(units,
		progressbar.OptionSetDescription(
			color.CyanString("Dispatching units: ")+
				color.GreenString("[passed: 0")+
				" | "+
				color.RedString("failed: 0]"),
		),
		progressbar.OptionSetWidth(50),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        color.CyanString("█"),
			SaucerHead:    color.CyanString("█"),
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(os.Stderr, "\n")
		}),
		progressbar.OptionSetRenderBlankState(true),
	)

	return &ProgressBar{bar: bar}
}

// Update advances the bar to completedUnits and refreshes the test counts
func (p *ProgressBar) Update(completedUnits, passedTests, failedTests int) {
	p.bar.Set(completedUnits)
	p.bar.Describe(
		color.CyanString("Dispatching units: ") +
			color.GreenString("[passed: %d", passedTests) +
			" | " +
			color.RedString("failed: %d]", failedTests),
	)
}

// Finish completes the progress bar
func (p *ProgressBar) Finish() {
	p.bar.Finish()
}
