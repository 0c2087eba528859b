package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// expandEnvVar expands environment variable references in the given value
// Supports both $VAR and ${VAR} syntax, alone or as a path prefix
// ("$HOME/notes"). Unset variables expand to the empty string.
func expandEnvVar(value string) string {
	if !strings.HasPrefix(value, "$") {
		return value
	}

	var name, rest string
	if strings.HasPrefix(value, "${") {
		end := strings.Index(value, "}")
		if end < 0 {
			return value
		}
		name, rest = value[2:end], value[end+1:]
	} else {
		name = strings.TrimPrefix(value, "$")
		if i := strings.IndexAny(name, `/\`); i >= 0 {
			name, rest = name[:i], name[i:]
		}
	}

	return os.Getenv(name) + rest
}

// ResolvePath converts a relative path to absolute path if needed, using
// the directory of the global viper config file as the base.
func ResolvePath(path string) (string, error) {
	return resolveConfigPath(viper.GetViper(), path)
}

func resolveConfigPath(v *viper.Viper, path string) (string, error) {
	path = expandEnvVar(path)
	if path == "" || filepath.IsAbs(path) {
		return path, nil
	}

	// Get config file directory as base directory
	configFile := v.ConfigFileUsed()
	if configFile == "" {
		// If no config file is used, fall back to current working directory
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("error getting current working directory: %w", err)
		}
		return filepath.Join(cwd, path), nil
	}

	configDir := filepath.Dir(configFile)
	if !filepath.IsAbs(configDir) {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("error getting current working directory: %w", err)
		}
		configDir = filepath.Join(cwd, configDir)
	}

	return filepath.Join(configDir, path), nil
}
