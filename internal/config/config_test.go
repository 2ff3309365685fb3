package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

// isolate points HOME at an empty directory so no real config is read.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	home := isolate(t)

	cfg, err := Load("", nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.API.BaseURL != "http://localhost:8080" {
		t.Errorf("base_url = %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 15*time.Second {
		t.Errorf("timeout = %v", cfg.API.Timeout)
	}
	if cfg.API.RateLimit != 5 || cfg.API.Burst != 2 {
		t.Errorf("rate = %v burst = %d", cfg.API.RateLimit, cfg.API.Burst)
	}
	if cfg.Loader.LookbackHours != 72 || cfg.Loader.PrefetchRows != 3 {
		t.Errorf("loader = %+v", cfg.Loader)
	}
	if cfg.Theme.PollInterval != 5*time.Second {
		t.Errorf("poll = %v", cfg.Theme.PollInterval)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("level = %q", cfg.Log.Level)
	}
	if want := filepath.Join(home, ".trendwatch"); cfg.DataDir != want {
		t.Errorf("data_dir = %q, want %q", cfg.DataDir, want)
	}
	if cfg.Location() != time.Local {
		t.Errorf("location = %v, want Local", cfg.Location())
	}
	if cfg.Lookback() != 72*time.Hour {
		t.Errorf("lookback = %v", cfg.Lookback())
	}
}

func TestLoadFile(t *testing.T) {
	isolate(t)
	path := writeConfig(t, "trendwatch.yaml", `
api:
  base_url: https://trends.example.com
  timeout: 3s
timezone: Asia/Seoul
loader:
  lookback_hours: 0
log:
  level: debug
`)

	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.API.BaseURL != "https://trends.example.com" || cfg.API.Timeout != 3*time.Second {
		t.Errorf("api = %+v", cfg.API)
	}
	if cfg.Loader.LookbackHours != 0 || cfg.Lookback() != 0 {
		t.Errorf("lookback = %d", cfg.Loader.LookbackHours)
	}
	if cfg.Location().String() != "Asia/Seoul" {
		t.Errorf("location = %v", cfg.Location())
	}
	// Unset keys keep defaults.
	if cfg.API.Burst != 2 {
		t.Errorf("burst = %d", cfg.API.Burst)
	}
}

func TestLoadFileFromHome(t *testing.T) {
	home := isolate(t)
	dir := filepath.Join(home, ".trendwatch")
	os.MkdirAll(dir, 0o755)
	os.WriteFile(filepath.Join(dir, "config.json"), []byte(`{"api":{"burst":9}}`), 0o644)

	cfg, err := Load("", nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.API.Burst != 9 {
		t.Errorf("burst = %d, want 9", cfg.API.Burst)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	isolate(t)
	path := writeConfig(t, "c.yaml", "api:\n  base_url: http://file\n")
	t.Setenv("TRENDWATCH_API_BASE_URL", "http://env")
	t.Setenv("TRENDWATCH_LOADER_PREFETCH_ROWS", "7")

	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.API.BaseURL != "http://env" {
		t.Errorf("base_url = %q, want env value", cfg.API.BaseURL)
	}
	if cfg.Loader.PrefetchRows != 7 {
		t.Errorf("prefetch_rows = %d", cfg.Loader.PrefetchRows)
	}
}

func TestFlagsOverrideEnv(t *testing.T) {
	isolate(t)
	t.Setenv("TRENDWATCH_API_BASE_URL", "http://env")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("api-url", "", "")
	flags.Int("lookback", 72, "")
	if err := flags.Parse([]string{"--api-url=http://flag", "--lookback=5"}); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("", flags)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.API.BaseURL != "http://flag" {
		t.Errorf("base_url = %q, want flag value", cfg.API.BaseURL)
	}
	if cfg.Loader.LookbackHours != 5 {
		t.Errorf("lookback = %d", cfg.Loader.LookbackHours)
	}
}

func TestUnsetFlagKeepsLowerLayers(t *testing.T) {
	isolate(t)
	t.Setenv("TRENDWATCH_API_BASE_URL", "http://env")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("api-url", "http://flag-default", "")
	flags.Parse(nil)

	cfg, err := Load("", flags)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.API.BaseURL != "http://env" {
		t.Errorf("base_url = %q, want env value", cfg.API.BaseURL)
	}
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"zero timeout", "api:\n  timeout: 0s\n", "api.timeout"},
		{"negative rate", "api:\n  rate_limit: -1\n", "api.rate_limit"},
		{"zero burst", "api:\n  burst: 0\n", "api.burst"},
		{"negative lookback", "loader:\n  lookback_hours: -2\n", "lookback_hours"},
		{"bad timezone", "timezone: Mars/Olympus\n", "timezone"},
		{"bad level", "log:\n  level: loud\n", "log level"},
		{"zero poll", "theme:\n  poll_interval: 0s\n", "poll_interval"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			path := writeConfig(t, "c.yaml", tt.body)

			_, err := Load(path, nil)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	isolate(t)
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}

func TestDefaultPaths(t *testing.T) {
	home := isolate(t)
	cfg, err := Load("", nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DataDir != filepath.Join(home, ".trendwatch") {
		t.Errorf("DataDir = %q", cfg.DataDir)
	}
	if cfg.DBPath() != filepath.Join(home, ".trendwatch", "trendwatch.db") {
		t.Errorf("DBPath() = %q", cfg.DBPath())
	}
}
