package cmd

import (
	"fmt"
	"strings"

	"github.com/longkey1/mentorchat/internal/mentor/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config [field]",
	Short: "Show configuration values",
	Long: `Show the effective configuration after merging config files, environment
variables (MENTORCHAT_*) and defaults. Paths are shown resolved.

If a field is given, only that value is printed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		fields := []struct {
			name  string
			value string
		}{
			{"configfile", viper.ConfigFileUsed()},
			{"variant", cfg.Variant},
			{"variant_dirs", strings.Join(cfg.VariantDirs, ",")},
			{"reply_delay", cfg.ReplyDelay},
			{"session_store", cfg.SessionStore},
			{"session_dir", cfg.SessionDir},
			{"save_sessions", fmt.Sprint(cfg.SaveSessions)},
			{"session_retention_days", fmt.Sprint(cfg.SessionRetentionDays)},
			{"log_file", cfg.LogFile},
			{"theme", cfg.Theme},
		}

		out := cmd.OutOrStdout()
		if len(args) > 0 {
			field := strings.ToLower(args[0])
			var names []string
			for _, f := range fields {
				if f.name == field || strings.ReplaceAll(f.name, "_", "") == field {
					fmt.Fprintln(out, f.value)
					return nil
				}
				names = append(names, f.name)
			}
			return fmt.Errorf("unknown field: %s (available fields: %s)", args[0], strings.Join(names, ", "))
		}

		for _, f := range fields {
			fmt.Fprintf(out, "%s: %s\n", f.name, f.value)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
