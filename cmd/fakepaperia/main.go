// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the fakepaperia CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fakepaperia/fakepaperia/internal/secrets"
	"github.com/fakepaperia/fakepaperia/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys resolved from .env and the environment.
var loadedSecrets secrets.Secrets

// rootCmd is the base command for the fakepaperia CLI.
var rootCmd = &cobra.Command{
	Use:   "fakepaperia",
	Short: "Generate convincingly formatted fake academic papers",
	Long: `fakepaperia turns any research question into a real literature search and
a completely fabricated paper. It extracts keywords, queries DBpia for open
papers, indexes their abstracts in a session vector store, and asks the chat
model to write an eight-section Korean paper grounded in the retrieved
context, complete with a reviewer reaction and GIF.

Each pipeline stage is a subcommand: search, generate, react, serve, and
cleanup.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		envFile, _ := cmd.Flags().GetString("env-file")
		s, err := secrets.Load(envFile)
		if err != nil {
			return err
		}
		loadedSecrets = s
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./fakepaperia.yaml or ~/.config/fakepaperia/config.yaml)")
	rootCmd.PersistentFlags().String("env-file", ".env", "env file holding API keys")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("fakepaperia")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "fakepaperia"))
		}
	}

	viper.SetEnvPrefix("FAKEPAPERIA")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig layers the config file over the built-in defaults. The
// struct yaml tags double as viper keys.
func loadConfig() (types.PipelineConfig, error) {
	cfg := types.DefaultPipelineConfig()
	err := viper.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "yaml"
	})
	if err != nil {
		return types.PipelineConfig{}, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
