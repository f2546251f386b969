package cmd

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/bmpfx-cli/internal/bmp"
	"github.com/AnyUserName/bmpfx-cli/internal/config"
	"github.com/AnyUserName/bmpfx-cli/internal/transform"
)

var (
	version    = "0.1.0"
	verbose    bool
	configPath string

	// cfg is loaded before every command runs; flags override it.
	cfg = config.Default()
)

// ErrUsage is returned after usage text has been printed.
var ErrUsage = errors.New("usage")

var rootCmd = &cobra.Command{
	Use:   "bmpfx",
	Short: "Validate and transform 24-bit BMP images",
	Long: fmt.Sprintf(`bmpfx checks uncompressed 24-bit BMP files and rewrites their pixels
while keeping the original header bytes.

Operations: %s, expr.
Each converted file is written as <prefix>_<name> next to its source.`,
		strings.Join(transform.Names(), ", ")),
	Version:       version,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		// Argument errors are reported with usage; failures past this
		// point are not.
		cmd.SilenceUsage = true
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		cmd.Usage()
		return ErrUsage
	},
}

// Execute runs the command line.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath, "config file")
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"bmpfx %s (%s/%s, %s)\n",
		version, runtime.GOOS, runtime.GOARCH, runtime.Version(),
	))
}

func loadConfig(cmd *cobra.Command) error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cfg = loaded
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = verbose
	}
	verbose = cfg.Verbose
	logVerbose("config: %+v", cfg)
	return nil
}

// paddingPolicy resolves the --padding flag (or config value).
func paddingPolicy(cmd *cobra.Command, flagValue string) (bmp.Padding, string, error) {
	name := cfg.Padding
	if f := cmd.Flags().Lookup("padding"); f != nil && f.Changed {
		name = flagValue
	}
	pad, err := bmp.ParsePadding(name)
	if err != nil {
		return nil, "", err
	}
	if name == "" {
		name = bmp.PaddingNameCompat
	}
	return pad, name, nil
}

// logVerbose prints a message only when --verbose is set.
func logVerbose(format string, args ...any) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[bmpfx] "+format+"\n", args...)
	}
}
