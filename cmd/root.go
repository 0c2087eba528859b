package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/longkey1/mentorchat/internal/logging"
	"github.com/longkey1/mentorchat/internal/mentor/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	cfgFile string
	verbose bool
	logger  = zap.NewNop()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mentorchat",
	Short: "A terminal chat with an AI mentor",
	Long: `mentorchat is a terminal chat interface for talking with an AI mentor.
Replies are simulated for now; variants change the copy, greeting and reply text.
You can configure the tool using a TOML configuration file.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// The full-screen chat logs to a file so the screen is not corrupted
		var path string
		if isInteractiveChat(cmd, args) {
			logFile, err := config.ResolvePath(viper.GetString("log_file"))
			if err != nil {
				return fmt.Errorf("resolving log file: %w", err)
			}
			path = logFile
		}

		var err error
		logger, err = logging.New(logging.Options{Path: path, Verbose: verbose})
		if err != nil {
			return err
		}
		logger.Debug("Configuration loaded", zap.String("config_file", viper.ConfigFileUsed()))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/mentorchat/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// userConfigDir returns $HOME/.config/mentorchat
func userConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "mentorchat"), nil
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// Values in .env become environment overrides
	_ = godotenv.Load()

	viper.SetEnvPrefix(config.EnvPrefix)
	viper.AutomaticEnv()

	configDir, err := userConfigDir()
	cobra.CheckErr(err)
	config.SetDefaults(viper.GetViper(), config.NewDefaultConfig(configDir))

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			fmt.Fprintf(os.Stderr, "Error reading config file: %v\n", err)
		}
		return
	}

	if err := readConfigFiles(viper.GetViper(), systemConfigDirs, configDir); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading config file: %v\n", err)
	}
}

var systemConfigDirs = []string{"/etc/mentorchat", "/usr/local/etc/mentorchat"}

// readConfigFiles reads the first config.toml found in systemDirs, then
// merges userDir/config.toml over it. Missing files are not an error.
func readConfigFiles(v *viper.Viper, systemDirs []string, userDir string) error {
	v.SetConfigType("toml")
	v.SetConfigName("config")
	for _, dir := range systemDirs {
		v.AddConfigPath(dir)
	}
	if len(systemDirs) > 0 {
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return fmt.Errorf("reading system config: %w", err)
			}
		}
	}

	// The user file is merged by path; AddConfigPath would find the system file again
	userFile := filepath.Join(userDir, "config.toml")
	if _, err := os.Stat(userFile); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("checking user config: %w", err)
	}
	v.SetConfigFile(userFile)
	if err := v.MergeInConfig(); err != nil {
		return fmt.Errorf("merging user config: %w", err)
	}
	return nil
}

func isInteractiveChat(cmd *cobra.Command, args []string) bool {
	return cmd.Name() == "chat" && len(args) == 0
}
