package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ros2types/ros2types/internal/branding"
	"github.com/ros2types/ros2types/internal/config"
	"github.com/ros2types/ros2types/internal/logging"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	cfgFile   string
	logLevel  string
	logFormat string

	logger = zerolog.Nop()
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default ~/"+branding.HomeDir()+"/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format (json, console)")
}

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` indexes the ROS 2 interface types (messages, services, actions)
installed under the ament prefix path and answers wildcard queries for their
descriptions, definitions, flattened schemas and hashes.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(cfgFile); err != nil {
			return err
		}
		s := config.Current()
		level, format := s.LogLevel, s.LogFormat
		if logLevel != "" {
			level = logLevel
		}
		if logFormat != "" {
			format = logFormat
		}
		logger = logging.New(level, format, os.Stderr)
		return nil
	},
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
