package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/bmpfx-cli/internal/hasher"
	"github.com/AnyUserName/bmpfx-cli/internal/report"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <report.json>",
	Short: "Check that the files listed in a report are present and unchanged",
	Args:  cobra.ExactArgs(1),
	RunE:  runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	r, err := report.ReadJSON(args[0])
	if err != nil {
		return err
	}

	errs := verifyReport(r)
	out := cmd.OutOrStdout()
	if len(errs) == 0 {
		fmt.Fprintf(out, "  ✓ %d file(s) from %s match the report\n", len(r.Files), r.Operation)
		return nil
	}

	fmt.Fprintf(out, "  ✗ Report has %d error(s):\n", len(errs))
	for _, e := range errs {
		fmt.Fprintf(out, "    • %s\n", e)
	}
	return fmt.Errorf("verification failed with %d errors", len(errs))
}

func verifyReport(r *report.Report) []string {
	var errs []string

	sources := make([]string, 0, len(r.Files))
	for src := range r.Files {
		sources = append(sources, src)
	}
	sort.Strings(sources)

	seen := map[string]bool{}
	for _, src := range sources {
		e := r.Files[src]
		if e.Output == "" {
			errs = append(errs, fmt.Sprintf("%s: missing output path", src))
			continue
		}
		if seen[e.Output] {
			errs = append(errs, fmt.Sprintf("%s: duplicate output %s", src, e.Output))
		}
		seen[e.Output] = true

		info, err := os.Stat(e.Output)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: output not found: %s", src, e.Output))
			continue
		}
		if info.Size() != e.OutputSize {
			errs = append(errs, fmt.Sprintf("%s: size mismatch: report=%d, disk=%d", src, e.OutputSize, info.Size()))
			continue
		}
		sum, err := hasher.FileHash(e.Output)
		if err != nil {
			errs = append(errs, err.Error())
			continue
		}
		if sum != e.Hash {
			errs = append(errs, fmt.Sprintf("%s: hash mismatch: report=%s, disk=%s", src, e.Hash, sum))
		}
	}

	// Verify stats consistency.
	var pixels int64
	for _, e := range r.Files {
		pixels += int64(e.Width) * int64(e.Height)
	}
	if r.Stats.TotalFiles != len(r.Files) {
		errs = append(errs, fmt.Sprintf("stats.total_files mismatch: %d != %d", r.Stats.TotalFiles, len(r.Files)))
	}
	if r.Stats.TotalPixels != pixels {
		errs = append(errs, fmt.Sprintf("stats.total_pixels mismatch: %d != %d", r.Stats.TotalPixels, pixels))
	}
	return errs
}
