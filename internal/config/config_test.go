package config

import (
	"os"
	"path/filepath"
	"testing"
)

// writeConfig drops a config file under a temp XDG_CONFIG_HOME and points
// the loader at it for the duration of the test.
func writeConfig(t *testing.T, content string) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	if content != "" {
		cfgDir := filepath.Join(dir, ConfigDir)
		if err := os.MkdirAll(cfgDir, 0o755); err != nil {
			t.Fatalf("MkdirAll: %v", err)
		}
		if err := os.WriteFile(filepath.Join(cfgDir, ConfigFile), []byte(content), 0o644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
	}
	ResetCache()
	t.Cleanup(ResetCache)
}

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv(EnvMailto, "")
	t.Setenv(EnvORCIDToken, "")
	t.Setenv(EnvNoORCID, "")
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)
	writeConfig(t, "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if *cfg != (Config{}) {
		t.Errorf("Load() = %+v, want zero config", cfg)
	}
}

func TestLoad_FromFile(t *testing.T) {
	clearEnv(t)
	writeConfig(t, "mailto: alice@example.edu\norcid_token: tok-123\ncrossref_url: http://localhost:8080\n")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Mailto != "alice@example.edu" {
		t.Errorf("Mailto = %q", cfg.Mailto)
	}
	if cfg.ORCIDToken != "tok-123" {
		t.Errorf("ORCIDToken = %q", cfg.ORCIDToken)
	}
	if cfg.CrossrefURL != "http://localhost:8080" {
		t.Errorf("CrossrefURL = %q", cfg.CrossrefURL)
	}
	if cfg.DisableORCID {
		t.Error("DisableORCID = true, want false")
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	writeConfig(t, "mailto: file@example.edu\n")
	t.Setenv(EnvMailto, "env@example.edu")
	t.Setenv(EnvNoORCID, "1")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Mailto != "env@example.edu" {
		t.Errorf("Mailto = %q, want the environment value", cfg.Mailto)
	}
	if !cfg.DisableORCID {
		t.Error("DisableORCID = false, want true when CB_NO_ORCID is set")
	}
}

func TestLoad_Cached(t *testing.T) {
	clearEnv(t)
	writeConfig(t, "mailto: first@example.edu\n")

	first, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	// A second Load must return the cached value, not re-read the file.
	t.Setenv(EnvMailto, "changed@example.edu")
	second, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if second != first {
		t.Error("Load() should return the cached *Config")
	}
	if second.Mailto != "first@example.edu" {
		t.Errorf("Mailto = %q, want the originally loaded value", second.Mailto)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	clearEnv(t)
	writeConfig(t, "mailto: [unclosed\n")

	if _, err := Load(); err == nil {
		t.Fatal("Load() expected an error for malformed YAML")
	}
}

func TestPath_RespectsXDGConfigHome(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-test")
	want := filepath.Join("/tmp/xdg-test", ConfigDir, ConfigFile)
	if got := Path(); got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
}
