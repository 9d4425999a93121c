// Package branding provides compile-time identity values for the CLI and the
// keys it serves.
//
// The values live in branding.yaml next to this file and are baked into the
// binary with //go:embed.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName        string `yaml:"cli_name"`
	DisplayName    string `yaml:"display_name"`
	Description    string `yaml:"description"`
	HomeDir        string `yaml:"home_dir"`
	EnvPrefix      string `yaml:"env_prefix"`
	GoModule       string `yaml:"go_module"`
	TypesKeyPrefix string `yaml:"types_key_prefix"`
	EnvKeyPrefix   string `yaml:"env_key_prefix"`
	SubjectPrefix  string `yaml:"subject_prefix"`
}

func load() {
	once.Do(func() {
		// Set hard defaults in case the embedded file is missing/empty.
		defaults = brand{
			CLIName:        "ros2types",
			DisplayName:    "ROS 2 Types",
			Description:    "Registry of ROS 2 interface types",
			HomeDir:        ".ros2types",
			EnvPrefix:      "ROS2TYPES",
			GoModule:       "github.com/ros2types/ros2types",
			TypesKeyPrefix: "@ros2_types",
			EnvKeyPrefix:   "@ros2_env",
			SubjectPrefix:  "ros2types",
		}
		// Overlay with embedded YAML values.
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "ros2types").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".ros2types").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "ROS2TYPES").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// GoModule returns the Go module path. Not consumed at runtime.
func GoModule() string { load(); return defaults.GoModule }

// TypesKeyPrefix returns the first key segment of type queries and replies
// (e.g., "@ros2_types").
func TypesKeyPrefix() string { load(); return defaults.TypesKeyPrefix }

// EnvKeyPrefix returns the first key segment of environment queries and
// replies (e.g., "@ros2_env").
func EnvKeyPrefix() string { load(); return defaults.EnvKeyPrefix }

// SubjectPrefix returns the default NATS subject prefix.
func SubjectPrefix() string { load(); return defaults.SubjectPrefix }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("log_level") → "ROS2TYPES_LOG_LEVEL".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
