package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/longkey1/mentorchat/internal/mentor/config"
	"github.com/spf13/cobra"
)

const sampleVariant = `# Sample variant. Select it with: mentorchat chat --variant coach
title = "Career Coach"
description = "キャリアの悩みを一緒に整理します"
heading = "Career Coach へようこそ"
welcome = "今のお仕事や目標について教えてください。"
placeholder = "メッセージを入力してください..."
greeting = "こんにちは。今日はどんなことを話しましょうか？"
# {{input}} is the user's message, other placeholders come from --var key:value
reply = "「{{input}}」についてですね。もう少し詳しく教えていただけますか？"
reply_delay = "1s"
`

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the configuration file",
	Long: `Initialize the configuration file with default settings.
The config file will be created at $HOME/.config/mentorchat/config.toml by default.
You can specify a different location using the --config option.

A sample variant is written to the variants directory next to the config file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := userConfigDir()
		if err != nil {
			return err
		}
		configFile := filepath.Join(configDir, "config.toml")
		if cfgFile != "" {
			configFile = cfgFile
			configDir = filepath.Dir(configFile)
		}

		if err := os.MkdirAll(configDir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}

		if _, err := os.Stat(configFile); err == nil {
			return fmt.Errorf("config file already exists at: %s", configFile)
		}

		cfg := config.NewDefaultConfig(configDir)

		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("failed to create config file: %w", err)
		}
		defer f.Close()

		if err := toml.NewEncoder(f).Encode(cfg); err != nil {
			return fmt.Errorf("failed to encode config: %w", err)
		}

		variantsDir := filepath.Join(configDir, "variants")
		if err := os.MkdirAll(variantsDir, 0755); err != nil {
			return fmt.Errorf("failed to create variants directory: %w", err)
		}
		samplePath := filepath.Join(variantsDir, "coach.toml")
		if _, err := os.Stat(samplePath); os.IsNotExist(err) {
			if err := os.WriteFile(samplePath, []byte(sampleVariant), 0644); err != nil {
				return fmt.Errorf("failed to write sample variant: %w", err)
			}
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Configuration file created at: %s\n", configFile)
		fmt.Fprintf(cmd.OutOrStdout(), "Variants directory created at: %s\n", variantsDir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
