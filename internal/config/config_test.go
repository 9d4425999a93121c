package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

// isolate resets viper and points HOME at a temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("AMENT_PREFIX_PATH", "")
	t.Setenv("ROS2TYPES_AMENT_PREFIX_PATH", "")
	return home
}

func TestLoadDefaults(t *testing.T) {
	home := isolate(t)
	if err := Load(""); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if FilePath() != filepath.Join(home, ".ros2types", "config.yaml") {
		t.Errorf("FilePath() = %q", FilePath())
	}

	s := Current()
	if s.NATSURL != "nats://127.0.0.1:4222" {
		t.Errorf("NATSURL = %q", s.NATSURL)
	}
	if s.SubjectPrefix != "ros2types" {
		t.Errorf("SubjectPrefix = %q", s.SubjectPrefix)
	}
	if s.LogLevel != "info" || s.LogFormat != "json" {
		t.Errorf("log settings = %q/%q", s.LogLevel, s.LogFormat)
	}
	if len(s.EnvAllow) != 8 || s.EnvAllow[0] != "ROS_DISTRO" {
		t.Errorf("EnvAllow = %v", s.EnvAllow)
	}
	if s.AmentPrefixPath != "" || len(s.Roots) != 0 {
		t.Errorf("unexpected sources: %q %v", s.AmentPrefixPath, s.Roots)
	}
}

func TestLoadEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv("AMENT_PREFIX_PATH", "/opt/ros/jazzy:/ws/install")
	t.Setenv("ROS2TYPES_NATS_URL", "nats://bus:4222")
	t.Setenv("ROS2TYPES_ROOTS", "/extra/a, /extra/b")

	if err := Load(""); err != nil {
		t.Fatalf("Load: %v", err)
	}
	s := Current()
	if s.AmentPrefixPath != "/opt/ros/jazzy:/ws/install" {
		t.Errorf("AmentPrefixPath = %q", s.AmentPrefixPath)
	}
	if s.NATSURL != "nats://bus:4222" {
		t.Errorf("NATSURL = %q", s.NATSURL)
	}
	if len(s.Roots) != 2 || s.Roots[0] != "/extra/a" || s.Roots[1] != "/extra/b" {
		t.Errorf("Roots = %v", s.Roots)
	}
}

func TestPrefixedAmentPathWins(t *testing.T) {
	isolate(t)
	t.Setenv("AMENT_PREFIX_PATH", "/opt/ros/jazzy")
	t.Setenv("ROS2TYPES_AMENT_PREFIX_PATH", "/custom")

	if err := Load(""); err != nil {
		t.Fatal(err)
	}
	if got := Get(KeyAmentPrefixPath); got != "/custom" {
		t.Errorf("ament_prefix_path = %q, want /custom", got)
	}
}

func TestSetAndGet(t *testing.T) {
	home := isolate(t)
	if err := Load(""); err != nil {
		t.Fatal(err)
	}

	if err := Set(KeyHTTPAddr, ":8080"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got := Get(KeyHTTPAddr); got != ":8080" {
		t.Errorf("Get = %q", got)
	}

	configFile := filepath.Join(home, ".ros2types", "config.yaml")
	if _, err := os.Stat(configFile); err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	// A fresh load reads the value back from disk.
	viper.Reset()
	if err := Load(""); err != nil {
		t.Fatal(err)
	}
	if got := Get(KeyHTTPAddr); got != ":8080" {
		t.Errorf("Get after reload = %q", got)
	}
}

func TestLoadExplicitFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(path, []byte("log:\n  level: debug\nroots:\n  - /a\n  - /b\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := Load(path); err != nil {
		t.Fatalf("Load: %v", err)
	}
	s := Current()
	if s.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", s.LogLevel)
	}
	if len(s.Roots) != 2 {
		t.Errorf("Roots = %v", s.Roots)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("log: [unterminated\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := Load(path); err == nil {
		t.Error("expected error for malformed config file")
	}
}
