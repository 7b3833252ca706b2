package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kamusis/tagsheet/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default config and .env template",
	Long: `Create ~/.tagsheet/tagsheet.yaml with the default settings and a
~/.tagsheet/.env template listing the supported environment overrides.

Existing files are left alone unless --force is given. tagsheet works without
running init; it only makes the defaults visible and editable.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

var flagForce bool

func init() {
	initCmd.Flags().BoolVar(&flagForce, "force", false, "Overwrite an existing config file with the defaults")
	rootCmd.AddCommand(initCmd)
}

func runInit(_ *cobra.Command, _ []string) error {
	// ── 1. Resolve the config location ────────────────────────────────────────
	cfgPath, err := config.ExpandPath(flagConfig)
	if err != nil {
		return err
	}
	if cfgPath == "" {
		if cfgPath, err = config.Path(); err != nil {
			return err
		}
	}

	// ── 2. Write tagsheet.yaml if missing (or forced) ─────────────────────────
	_, statErr := os.Stat(cfgPath)
	switch {
	case statErr == nil && !flagForce:
		printSkip("", fmt.Sprintf("Config already exists: %s (use --force to reset)", cfgPath))
	case statErr == nil || os.IsNotExist(statErr):
		if err := config.Save(cfgPath, config.DefaultConfig()); err != nil {
			return err
		}
		printOK("", fmt.Sprintf("Config written: %s", cfgPath))
	default:
		return fmt.Errorf("cannot stat %s: %w", cfgPath, statErr)
	}

	// ── 3. Write the .env template ────────────────────────────────────────────
	envPath, err := config.DotEnvPath()
	if err != nil {
		return err
	}
	if err := config.EnsureDotEnvTemplate(); err != nil {
		return err
	}
	printOK("", fmt.Sprintf(".env ready: %s", envPath))

	fmt.Fprintln(stdout, "\n✓  tagsheet init complete. Run 'tagsheet session <file>' to start tagging.")
	return nil
}
