package main

import (
	"fmt"
	"io"
	"path/filepath"
)

// PrintSummary writes the post-run report: selection counts, the per-class
// train/val distribution, the grand total and the absolute output root.
// The multi-label count is reported as 0 under force-first because no file
// was actually skipped for that reason.
func PrintSummary(w io.Writer, cfg Config, c Counters, splits []ClassSplit) {
	multi := c.MultiLabel
	if cfg.ForceFirst {
		multi = 0
	}
	fmt.Fprintf(w, "Usable samples: %d (skipped empty: %d, skipped multi: %d, missing images: %d)\n",
		c.Kept, c.SkippedEmpty, multi, c.MissingImage)
	if c.SmallClasses > 0 {
		fmt.Fprintf(w, "Classes dropped below min-count %d: %d\n", cfg.MinCount, c.SmallClasses)
	}

	fmt.Fprintln(w, "\nClass distribution in output (total, train, val):")
	for _, s := range splits {
		fmt.Fprintf(w, "  %s: %d, train %d, val %d\n", s.Class, s.Total, s.Train, s.Val)
	}

	verb := "copied"
	if cfg.Move {
		verb = "moved"
	}
	fmt.Fprintf(w, "\nTotal files %s: %d\n", verb, c.Written)

	abs, err := filepath.Abs(cfg.OutputDir)
	if err != nil {
		abs = cfg.OutputDir
	}
	fmt.Fprintf(w, "Output root: %s\n", abs)
}
