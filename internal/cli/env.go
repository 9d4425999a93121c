package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/ros2types/ros2types/internal/query"
	"github.com/ros2types/ros2types/internal/registry"
)

var envOutput string

func init() {
	envCmd.Flags().StringVarP(&envOutput, "output", "o", outputText, "Output mode (text, json, yaml)")
	rootCmd.AddCommand(envCmd)
}

var envCmd = &cobra.Command{
	Use:   "env [pattern]",
	Short: "Show the allow-listed ROS environment",
	Long: `Print the environment variables a server would answer for an env
request. Only names in env.allow are considered; unset ones are skipped.

  ros2types env
  ros2types env ROS_DISTRO`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pattern := "*"
		if len(args) == 1 {
			pattern = args[0]
		}

		var buf query.Buffer
		if _, err := newHandler(registry.New()).HandleEnv(envKey(pattern), &buf); err != nil {
			if buf.Err != "" {
				return errors.New(buf.Err)
			}
			return err
		}
		return printReplies(cmd.OutOrStdout(), buf.Replies, envOutput)
	},
}
