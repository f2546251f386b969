package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/bmpfx-cli/internal/pipeline"
	"github.com/AnyUserName/bmpfx-cli/internal/report"
	"github.com/AnyUserName/bmpfx-cli/internal/transform"
)

var (
	convertOutDir  string
	convertWorkers int
	convertReport  string
	convertPadding string
)

func init() {
	for _, p := range transform.Builtin() {
		p := p // per-iteration copy: module targets go 1.21 loop semantics
		c := &cobra.Command{
			Use:   p.Name + " <file.bmp|dir>...",
			Short: p.Short,
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runConvert(cmd, p, "", args)
			},
		}
		addConvertFlags(c)
		rootCmd.AddCommand(c)
	}

	exprCmd := &cobra.Command{
		Use:   "expr <expression> <file.bmp|dir>...",
		Short: "Produce expr_<file> by evaluating an expression on every channel",
		Long: `Evaluates an arithmetic expression once per channel of every pixel.
The expression sees the current channel as c and the pixel's channels as
b, g and r; results are clamped to 0-255.

  bmpfx expr '255 - c' photo.bmp
  bmpfx expr 'c > 127 ? 255 : 0' photo.bmp`,
		Args: cobra.MinimumNArgs(2),
		RunE: runExpr,
	}
	addConvertFlags(exprCmd)
	rootCmd.AddCommand(exprCmd)
}

func addConvertFlags(c *cobra.Command) {
	c.Flags().StringVarP(&convertOutDir, "out", "o", "", "output directory (default: next to each source)")
	c.Flags().IntVarP(&convertWorkers, "workers", "w", 0, "parallel conversions (0 = config or NumCPU)")
	c.Flags().StringVar(&convertReport, "report", "", "write a JSON report to this path")
	c.Flags().StringVar(&convertPadding, "padding", "", "row padding policy: compat or aligned")
}

func runExpr(cmd *cobra.Command, args []string) error {
	e, err := transform.ParseExpr(args[0])
	if err != nil {
		return err
	}
	return runConvert(cmd, transform.ExprPolicy(e), e.String(), args[1:])
}

func runConvert(cmd *cobra.Command, policy transform.Policy, expression string, inputs []string) error {
	start := time.Now()

	pad, padName, err := paddingPolicy(cmd, convertPadding)
	if err != nil {
		return err
	}
	outDir := cfg.OutputDir
	if cmd.Flags().Changed("out") {
		outDir = convertOutDir
	}
	if outDir != "" {
		if outDir, err = filepath.Abs(outDir); err != nil {
			return fmt.Errorf("resolve output path: %w", err)
		}
	}
	workers := cfg.EffectiveWorkers()
	if convertWorkers > 0 {
		workers = convertWorkers
	}
	reportPath := cfg.Report
	if cmd.Flags().Changed("report") {
		reportPath = convertReport
	}

	logVerbose("operation: %s (prefix %s_)", policy.Name, policy.Prefix)
	logVerbose("padding:   %s", padName)
	if outDir != "" {
		logVerbose("output:    %s", outDir)
	}

	p := pipeline.New(pipeline.Config{
		Inputs:      inputs,
		OutputDir:   outDir,
		Policy:      policy,
		Expression:  expression,
		Padding:     pad,
		PaddingName: padName,
		Workers:     workers,
		Verbose:     verbose,
	})
	r, runErr := p.Run()

	if r != nil && reportPath != "" {
		if err := report.WriteJSON(r, reportPath); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		logVerbose("report:    %s", reportPath)
	}
	if runErr != nil {
		return runErr
	}

	logVerbose("%d file(s), %d pixels in %s",
		r.Stats.TotalFiles, r.Stats.TotalPixels, time.Since(start).Round(time.Millisecond))
	return nil
}
