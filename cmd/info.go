package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/bmpfx-cli/internal/bmp"
)

var infoPadding string

var infoCmd = &cobra.Command{
	Use:   "info <file.bmp>...",
	Short: "Check that a file is a supported BMP and print its layout",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runInfo,
}

func init() {
	infoCmd.Flags().StringVar(&infoPadding, "padding", "", "row padding policy: compat or aligned")
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	pad, _, err := paddingPolicy(cmd, infoPadding)
	if err != nil {
		return err
	}
	for i, path := range args {
		if len(args) > 1 {
			if i > 0 {
				fmt.Fprintln(cmd.OutOrStdout())
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s:\n", path)
		}
		if err := printInfo(cmd.OutOrStdout(), path, pad); err != nil {
			return err
		}
	}
	return nil
}

func printInfo(w io.Writer, path string, pad bmp.Padding) error {
	src, err := bmp.Open(path, pad)
	if err != nil {
		return err
	}
	defer src.Close()

	h := src.Header
	fmt.Fprintf(w, "Size: %d x %d\n", h.Width, h.Height)
	fmt.Fprintf(w, "Padding between rows: %d\n", h.Padding)
	fmt.Fprintf(w, "Pixel data start offset: %d\n", h.PixelOffset)
	logVerbose("%s: %d bytes, %dbpp, stride %d", path, h.FileSize, h.BitDepth, h.Stride())
	return nil
}
