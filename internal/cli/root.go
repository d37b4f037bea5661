package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/AbdelazizMoustafa10m/spectrum/internal/logging"
)

// Global flag values accessible to all subcommands.
var (
	flagVerbose bool
	flagQuiet   bool
	flagConfig  string
	flagDir     string
	flagNoColor bool
)

// rootCmd is the base command for spectrum.
var rootCmd = &cobra.Command{
	Use:   "spectrum",
	Short: "Inspect spectrum configuration and test reports",
	Long: `spectrum is the companion tool of the spectrum test library. It validates
spectrum.toml, summarizes the NDJSON reports written by test runs, browses a
report interactively, and scaffolds a configuration file.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupGlobals,
}

// setupGlobals applies the global flags and their SPECTRUM_* environment
// fallbacks before any subcommand runs.
func setupGlobals(cmd *cobra.Command, _ []string) error {
	// Check env vars for flags not explicitly set on command line.
	flags := cmd.Root().PersistentFlags()
	if !flags.Changed("verbose") && os.Getenv(logging.EnvVerbose) != "" {
		flagVerbose = true
	}
	if !flags.Changed("quiet") && os.Getenv(logging.EnvQuiet) != "" {
		flagQuiet = true
	}
	if !flags.Changed("no-color") && (os.Getenv("NO_COLOR") != "" || os.Getenv("SPECTRUM_NO_COLOR") != "") {
		flagNoColor = true
	}

	jsonFormat := os.Getenv(logging.EnvLogFormat) == "json"
	logging.Setup(flagVerbose, flagQuiet, jsonFormat)

	if flagNoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	if flagDir != "" {
		if err := os.Chdir(flagDir); err != nil {
			return fmt.Errorf("changing directory to %s: %w", flagDir, err)
		}
	}

	return nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable verbose (debug) output (env: SPECTRUM_VERBOSE)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress all output except errors (env: SPECTRUM_QUIET)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to spectrum.toml config file")
	rootCmd.PersistentFlags().StringVar(&flagDir, "dir", "", "Override working directory")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output (env: SPECTRUM_NO_COLOR, NO_COLOR)")
}

// Execute runs the root command and returns the exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), err)
		return 1
	}
	return 0
}

// NewRootCmd returns a new instance of the root command for use in external
// tools such as the shell completion generator and man page generator. It
// carries the same persistent flags as the global rootCmd, bound to local
// variables, so that generated docs and completions include all flags.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               rootCmd.Use,
		Short:             rootCmd.Short,
		Long:              rootCmd.Long,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: rootCmd.PersistentPreRunE,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose (debug) output (env: SPECTRUM_VERBOSE)")
	cmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress all output except errors (env: SPECTRUM_QUIET)")
	cmd.PersistentFlags().String("config", "", "Path to spectrum.toml config file")
	cmd.PersistentFlags().String("dir", "", "Override working directory")
	cmd.PersistentFlags().Bool("no-color", false, "Disable colored output (env: SPECTRUM_NO_COLOR, NO_COLOR)")

	for _, child := range rootCmd.Commands() {
		cmd.AddCommand(child)
	}
	return cmd
}
