package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/Veraticus/lifecycle-profiles/internal/model"
	"github.com/schollz/progressbar/v3"
)

// Progress renders a progress bar while profiles are generated.
type Progress struct {
	bar    *progressbar.ProgressBar
	writer io.Writer
}

// NewProgress creates a progress bar for total materials writing to w.
func NewProgress(w io.Writer, total int) *Progress {
	if w == nil {
		w = os.Stderr
	}

	p := &Progress{writer: w}
	p.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Profiling materials...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(w); err != nil {
				slog.Warn("Failed to write newline after progress bar", "error", err)
			}
		}),
	)
	return p
}

// Update matches engine.ProgressFunc.
func (p *Progress) Update(done, _ int, _ model.Material) {
	if err := p.bar.Set(done); err != nil {
		slog.Warn("Failed to update progress bar", "error", err)
	}
}
