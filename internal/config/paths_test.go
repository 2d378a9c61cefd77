package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

// TestResolveConfigPathWithEnvVar tests EXTSORT_CONFIG takes precedence
func TestResolveConfigPathWithEnvVar(t *testing.T) {
	workDir := t.TempDir()
	writeConfig(t, filepath.Join(workDir, ConfigDirName, ConfigFileName), "log_level: debug\n")

	explicit := filepath.Join(t.TempDir(), "custom.yaml")
	writeConfig(t, explicit, "log_level: warn\n")
	t.Setenv(ConfigEnvVar, explicit)

	path, err := ResolveConfigPath(workDir)
	if err != nil {
		t.Fatalf("ResolveConfigPath() error = %v", err)
	}
	if path != explicit {
		t.Errorf("ResolveConfigPath() = %q, want %q", path, explicit)
	}
}

func TestResolveConfigPathMissingEnvFile(t *testing.T) {
	t.Setenv(ConfigEnvVar, filepath.Join(t.TempDir(), "nope.yaml"))

	if _, err := ResolveConfigPath(t.TempDir()); err == nil {
		t.Error("ResolveConfigPath() expected error for missing explicit config")
	}
}

// TestResolveConfigPathLocal tests the per-project config file
func TestResolveConfigPathLocal(t *testing.T) {
	t.Setenv(ConfigEnvVar, "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	workDir := t.TempDir()
	local := filepath.Join(workDir, ConfigDirName, ConfigFileName)
	writeConfig(t, local, "max_concurrency: 2\n")

	path, err := ResolveConfigPath(workDir)
	if err != nil {
		t.Fatalf("ResolveConfigPath() error = %v", err)
	}
	if path != local {
		t.Errorf("ResolveConfigPath() = %q, want %q", path, local)
	}
}

// TestResolveConfigPathNone tests that no config file yields an empty path
func TestResolveConfigPathNone(t *testing.T) {
	t.Setenv(ConfigEnvVar, "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	path, err := ResolveConfigPath(t.TempDir())
	if err != nil {
		t.Fatalf("ResolveConfigPath() error = %v", err)
	}
	if path != "" {
		t.Errorf("ResolveConfigPath() = %q, want empty", path)
	}
}

func TestLoadAppliesEnvAndValidates(t *testing.T) {
	t.Setenv(ConfigEnvVar, "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	workDir := t.TempDir()
	writeConfig(t, filepath.Join(workDir, ConfigDirName, ConfigFileName), "max_concurrency: 2\nlog_level: debug\n")
	t.Setenv("EXTSORT_MAX_CONCURRENCY", "5")

	cfg, err := Load(workDir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.MaxConcurrency != 5 {
		t.Errorf("MaxConcurrency = %d, environment should override file", cfg.MaxConcurrency)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug from file", cfg.LogLevel)
	}

	t.Setenv("EXTSORT_MAX_CONCURRENCY", "-3")
	if _, err := Load(workDir); err == nil {
		t.Error("Load() expected validation error for negative concurrency")
	}
}
