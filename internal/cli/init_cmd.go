package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/AbdelazizMoustafa10m/spectrum/internal/config"
	"github.com/AbdelazizMoustafa10m/spectrum/internal/tui"
)

// initFlagYes and initFlagForce are the flag values for the init subcommand.
var (
	initFlagYes   bool
	initFlagForce bool
)

// initCmd implements "spectrum init".
// It writes a spectrum.toml into the working directory, either from the
// answers of an interactive form or from the defaults with --yes.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a spectrum.toml for this project",
	Long: `Create spectrum.toml in the current directory. Without --yes an
interactive form asks for tag selection, run settings and report output.
An existing file is preserved unless --force is supplied.

Examples:
  spectrum init           # answer the form
  spectrum init --yes     # accept the defaults
  spectrum init --force   # overwrite an existing spectrum.toml`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVarP(&initFlagYes, "yes", "y", false, "Skip the form and write the defaults")
	initCmd.Flags().BoolVar(&initFlagForce, "force", false, "Overwrite an existing spectrum.toml")
	rootCmd.AddCommand(initCmd)
}

// runInit is the RunE handler for the init command.
func runInit(cmd *cobra.Command, args []string) error {
	destDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	target := filepath.Join(destDir, config.ConfigFileName)
	if _, statErr := os.Stat(target); statErr == nil && !initFlagForce {
		return fmt.Errorf("%s already exists in %s; use --force to overwrite", config.ConfigFileName, destDir)
	}

	answers := tui.DefaultInitAnswers()
	if !initFlagYes {
		if err := tui.NewInitForm(&answers).Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return tui.ErrInitCancelled
			}
			return fmt.Errorf("running init form: %w", err)
		}
		if !answers.Confirm {
			return tui.ErrInitCancelled
		}
	}

	cfg, err := answers.Config()
	if err != nil {
		return err
	}

	if err := writeConfigFile(target, cfg); err != nil {
		return err
	}

	stderr := cmd.ErrOrStderr()
	fmt.Fprintf(stderr, "Wrote %s\n\n", target)
	fmt.Fprintln(stderr, "Next steps:")
	fmt.Fprintf(stderr, "  1. Review %s\n", config.ConfigFileName)
	fmt.Fprintln(stderr, "  2. Run: spectrum config validate")
	fmt.Fprintln(stderr, "  3. Run your specs with go test ./...")

	return nil
}

// writeConfigFile encodes cfg as TOML into path, replacing any previous file.
func writeConfigFile(path string, cfg *config.Config) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return f.Close()
}
