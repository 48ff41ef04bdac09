// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the fade-packs CLI, which extracts
// compendium pack databases into trees of JSON files.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// logger receives warnings and diagnostics; it is replaced in
// PersistentPreRunE once --verbose is known.
var logger = slog.New(slog.NewTextHandler(os.Stderr, nil))

// rootCmd is the base command for the fade-packs CLI.
var rootCmd = &cobra.Command{
	Use:   "fade-packs",
	Short: "Extract compendium pack databases into JSON source trees",
	Long: `fade-packs converts the single-file compendium databases under packs/
into one JSON file per document, laid out in directories that mirror the
compendium folder tree, so pack contents can be reviewed and diffed.

Settings are read from flags, FADE_PACKS_* environment variables (a .env
file in the working directory is loaded first), and fade-packs.yaml.`,
	// Unknown commands fail argument validation on the root so cobra prints
	// the usage text after the error.
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			return fmt.Errorf("unknown command %q for %q", args[0], cmd.CommandPath())
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("loading .env: %w", err)
		}

		level := slog.LevelInfo
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./fade-packs.yaml or ~/.config/fade-packs/config.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log every diagnostic, not only warnings")
	rootCmd.PersistentFlags().String("catalog", "", "SQLite catalog recording extraction runs (disabled when empty)")

	viper.BindPFlag("catalog.path", rootCmd.PersistentFlags().Lookup("catalog"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("fade-packs")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "fade-packs"))
		}
	}

	viper.SetEnvPrefix("FADE_PACKS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
