package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/ros2types/ros2types/internal/branding"
	"github.com/ros2types/ros2types/internal/query"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Configuration keys.
const (
	KeyAmentPrefixPath = "ament_prefix_path"
	KeyRoots           = "roots"
	KeyNATSURL         = "nats.url"
	KeySubjectPrefix   = "nats.subject_prefix"
	KeyHTTPAddr        = "http.addr"
	KeyLogLevel        = "log.level"
	KeyLogFormat       = "log.format"
	KeyEnvAllow        = "env.allow"
)

// amentPrefixPathEnv is read without the tool's env prefix, as sourced by a
// ROS setup script.
const amentPrefixPathEnv = "AMENT_PREFIX_PATH"

// Dir returns the path to the config directory (~/.ros2types/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.ros2types/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// Load initializes Viper to read from the config file and environment.
// An empty path selects FilePath().
func Load(path string) error {
	if path == "" {
		path = FilePath()
	}
	setDefaults()

	viper.SetConfigFile(path)
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	if err := viper.BindEnv(KeyAmentPrefixPath, branding.EnvVar(KeyAmentPrefixPath), amentPrefixPathEnv); err != nil {
		return fmt.Errorf("binding %s: %w", amentPrefixPathEnv, err)
	}

	// Ignore error if config file doesn't exist yet.
	if err := viper.ReadInConfig(); err != nil {
		if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
			return nil
		}
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	return nil
}

func setDefaults() {
	viper.SetDefault(KeyNATSURL, "nats://127.0.0.1:4222")
	viper.SetDefault(KeySubjectPrefix, branding.SubjectPrefix())
	viper.SetDefault(KeyHTTPAddr, "")
	viper.SetDefault(KeyLogLevel, "info")
	viper.SetDefault(KeyLogFormat, "json")
	viper.SetDefault(KeyEnvAllow, query.DefaultEnvAllowList)
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// GetStrings returns a list value. A single string is split on commas so
// list keys can be set from the environment.
func GetStrings(key string) []string {
	vals := viper.GetStringSlice(key)
	var out []string
	for _, v := range vals {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		configFile = FilePath()
	}
	if err := os.MkdirAll(filepath.Dir(configFile), 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", filepath.Dir(configFile), err)
	}

	viper.Set(key, value)

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// Settings is the resolved configuration of the serve and query commands.
type Settings struct {
	AmentPrefixPath string   `json:"ament_prefix_path"`
	Roots           []string `json:"roots"`
	NATSURL         string   `json:"nats_url"`
	SubjectPrefix   string   `json:"subject_prefix"`
	HTTPAddr        string   `json:"http_addr"`
	LogLevel        string   `json:"log_level"`
	LogFormat       string   `json:"log_format"`
	EnvAllow        []string `json:"env_allow"`
}

// Current returns the loaded configuration.
func Current() Settings {
	return Settings{
		AmentPrefixPath: Get(KeyAmentPrefixPath),
		Roots:           GetStrings(KeyRoots),
		NATSURL:         Get(KeyNATSURL),
		SubjectPrefix:   Get(KeySubjectPrefix),
		HTTPAddr:        Get(KeyHTTPAddr),
		LogLevel:        Get(KeyLogLevel),
		LogFormat:       Get(KeyLogFormat),
		EnvAllow:        GetStrings(KeyEnvAllow),
	}
}
