package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"shodhacli/internal/testutil"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "no-such.yaml"))
	if err != nil {
		t.Fatalf("missing file should not be an error: %v", err)
	}
	testutil.AssertEqual(t, cfg.BaseURL, DefaultBaseURL)
	testutil.AssertEqual(t, cfg.Timeout, DefaultTimeout)
	testutil.AssertEqual(t, cfg.PollInterval, DefaultPollInterval)
	testutil.AssertEqual(t, cfg.TrackTimeout, DefaultTrackTimeout)
	testutil.AssertEqual(t, cfg.BoardInterval, DefaultBoardInterval)
	testutil.AssertEqual(t, cfg.Log.Level, "info")
}

func TestLoadFillsUnsetFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cli.yaml")
	content := "baseURL: https://contest.example.com\npollInterval: 500ms\nlog:\n  level: debug\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config failed: %v", err)
	}
	testutil.AssertEqual(t, cfg.BaseURL, "https://contest.example.com")
	testutil.AssertEqual(t, cfg.PollInterval, 500*time.Millisecond)
	testutil.AssertEqual(t, cfg.TrackTimeout, DefaultTrackTimeout)
	testutil.AssertEqual(t, cfg.Log.Level, "debug")
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cli.yaml")
	if err := os.WriteFile(path, []byte("baseURL: [unclosed"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("malformed yaml should be an error")
	}
}
