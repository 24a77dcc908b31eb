package main

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/1broseidon/cubeclock/internal/config"
)

// runCLI executes the root command with args and returns the exit code and
// captured stdout.
func runCLI(t *testing.T, args ...string) (int, string) {
	t.Helper()
	globalOpts.verbose = false
	globalOpts.configPath = ""
	configOpts.defaults = false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	return execute(), out.String()
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestConfigValidateOK(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "rotation_speed: 0.01\n")

	rc, out := runCLI(t, "--config", path, "config", "validate")
	if rc != 0 {
		t.Fatalf("validate rc=%d, want 0", rc)
	}
	if strings.TrimSpace(out) != "config: ok" {
		t.Fatalf("output=%q, want config: ok", out)
	}
}

func TestConfigValidateInvalidExitsOne(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "font_size: -3\n")

	if rc, _ := runCLI(t, "--config", path, "config", "validate"); rc != 1 {
		t.Fatalf("validate rc=%d, want 1", rc)
	}
}

func TestConfigPrintDefaults(t *testing.T) {
	rc, out := runCLI(t, "config", "print", "--defaults")
	if rc != 0 {
		t.Fatalf("print rc=%d, want 0", rc)
	}
	if !strings.Contains(out, "caption: cube3d clock") {
		t.Fatalf("print output missing caption:\n%s", out)
	}
	if !strings.Contains(out, "frame_interval: 1ms") {
		t.Fatalf("print output missing frame_interval:\n%s", out)
	}
}

func TestConfigExplainReportsSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "caption: hello\n")

	rc, out := runCLI(t, "--config", path, "config", "explain", "caption")
	if rc != 0 {
		t.Fatalf("explain rc=%d, want 0", rc)
	}
	if !strings.Contains(out, "source: file:"+path+":1:") {
		t.Fatalf("explain output missing file source:\n%s", out)
	}
	if !strings.Contains(out, "hello") {
		t.Fatalf("explain output missing value:\n%s", out)
	}
}

func TestUsageErrorsExitTwo(t *testing.T) {
	tests := [][]string{
		{"config", "explain"},
		{"config"},
		{"run", "--bogus"},
		{"stray"},
	}
	for _, args := range tests {
		if rc, _ := runCLI(t, args...); rc != 2 {
			t.Fatalf("%v rc=%d, want 2", args, rc)
		}
	}
}

func TestFormatSource(t *testing.T) {
	tests := []struct {
		src  config.Source
		want string
	}{
		{config.Source{Kind: config.SourceDefault}, "default"},
		{config.Source{Kind: config.SourceDefault, Name: "font_size"}, "default:font_size"},
		{config.Source{Kind: config.SourceFile, File: "/c.yaml"}, "file:/c.yaml"},
		{config.Source{Kind: config.SourceFile, File: "/c.yaml", Line: 3, Column: 5}, "file:/c.yaml:3:5"},
	}
	for _, tt := range tests {
		if got := formatSource(tt.src); got != tt.want {
			t.Fatalf("formatSource(%+v)=%q, want %q", tt.src, got, tt.want)
		}
	}
}

func TestSetupLoggerLevels(t *testing.T) {
	globalOpts.verbose = false
	if l := setupLogger("warning"); l.Enabled(t.Context(), slog.LevelDebug) {
		t.Fatalf("warning level should not enable debug")
	}
	globalOpts.verbose = true
	t.Cleanup(func() { globalOpts.verbose = false })
	if l := setupLogger("error"); !l.Enabled(t.Context(), slog.LevelDebug) {
		t.Fatalf("--verbose should enable debug")
	}
}
