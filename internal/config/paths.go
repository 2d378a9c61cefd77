package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// ConfigDirName is the per-project configuration directory.
	ConfigDirName = ".extsort"
	// ConfigFileName is the configuration file inside ConfigDirName.
	ConfigFileName = "config.yaml"
	// ConfigEnvVar names an explicit configuration file.
	ConfigEnvVar = "EXTSORT_CONFIG"
)

// ResolveConfigPath returns the configuration file to load.
// Priority order:
//  1. EXTSORT_CONFIG environment variable (if set)
//  2. <workDir>/.extsort/config.yaml (if it exists)
//  3. <user config dir>/extsort/config.yaml (if it exists)
//
// An empty path means no configuration file applies and defaults are used.
func ResolveConfigPath(workDir string) (string, error) {
	if path := os.Getenv(ConfigEnvVar); path != "" {
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("config file from %s: %w", ConfigEnvVar, err)
		}
		return path, nil
	}

	local := filepath.Join(workDir, ConfigDirName, ConfigFileName)
	if fileExists(local) {
		return local, nil
	}

	if userDir, err := os.UserConfigDir(); err == nil {
		global := filepath.Join(userDir, "extsort", ConfigFileName)
		if fileExists(global) {
			return global, nil
		}
	}

	return "", nil
}

// Load resolves the configuration file for workDir, loads it, applies
// environment overrides and validates the result.
func Load(workDir string) (*Config, error) {
	path, err := ResolveConfigPath(workDir)
	if err != nil {
		return nil, err
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
