package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/bmpfx-cli/internal/encoder"
	"github.com/AnyUserName/bmpfx-cli/internal/preview"
)

var (
	previewOut      string
	previewWidth    int
	previewFormat   string
	previewQuality  int
	previewTerminal bool
	previewPadding  string
)

var previewCmd = &cobra.Command{
	Use:   "preview <file.bmp>",
	Short: "Write a PNG/JPEG thumbnail of a BMP, or draw it in the terminal",
	Args:  cobra.ExactArgs(1),
	RunE:  runPreview,
}

func init() {
	previewCmd.Flags().StringVarP(&previewOut, "out", "o", "", "output file (default: <name>.<ext> next to the source)")
	previewCmd.Flags().IntVar(&previewWidth, "width", 0, "maximum width in pixels (0 = config)")
	previewCmd.Flags().StringVar(&previewFormat, "format", "", "png or jpeg (default: config)")
	previewCmd.Flags().IntVarP(&previewQuality, "quality", "q", 0, "jpeg quality 1-100 (0 = config)")
	previewCmd.Flags().BoolVarP(&previewTerminal, "terminal", "t", false, "draw colored blocks on the terminal instead of writing a file")
	previewCmd.Flags().StringVar(&previewPadding, "padding", "", "row padding policy: compat or aligned")
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	path := args[0]
	pad, _, err := paddingPolicy(cmd, previewPadding)
	if err != nil {
		return err
	}

	img, h, err := preview.Load(path, pad)
	if err != nil {
		return err
	}
	logVerbose("%s: %dx%d", path, h.Width, h.Height)

	width := cfg.Preview.Width
	if previewWidth > 0 {
		width = previewWidth
	}

	if previewTerminal {
		cols, ok := preview.TerminalColumns(os.Stdout)
		if !ok {
			return fmt.Errorf("stdout is not a terminal")
		}
		// Two columns per pixel.
		if width <= 0 || width > cols/2 {
			width = cols / 2
		}
		return preview.RenderBlocks(cmd.OutOrStdout(), preview.Fit(img, width))
	}

	format := cfg.Preview.Format
	if previewFormat != "" {
		format = previewFormat
	}
	enc, err := encoder.Get(format)
	if err != nil {
		return err
	}
	quality := cfg.Preview.Quality
	if previewQuality > 0 {
		quality = previewQuality
	}

	out := previewOut
	if out == "" {
		out = strings.TrimSuffix(path, filepath.Ext(path)) + "." + enc.Extension()
	}
	if err := preview.WriteFile(out, preview.Fit(img, width), enc, quality); err != nil {
		return err
	}
	logVerbose("wrote %s", out)
	return nil
}
