package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ros2types/ros2types/internal/query"
	"github.com/ros2types/ros2types/internal/registry"
)

var (
	queryFormat string
	queryOutput string
)

func init() {
	queryCmd.Flags().StringVarP(&queryFormat, "format", "f", "", "Reply format ("+strings.Join(query.Tokens(), ", ")+")")
	queryCmd.Flags().StringVarP(&queryOutput, "output", "o", outputText, "Output mode (text, json, yaml)")
	rootCmd.AddCommand(queryCmd)
}

var queryCmd = &cobra.Command{
	Use:   "query <pattern>",
	Short: "Query the local type index",
	Long: `Index the configured sources and answer a type query locally, exactly as
a running server would.

  ros2types query std_msgs/msg/String
  ros2types query 'geometry_msgs/msg/*' --format hash
  ros2types query '**/Time' --format flattened`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := loadRegistry(nil)
		if err != nil {
			return err
		}
		replies, err := runQuery(reg, args[0], queryFormat)
		if err != nil {
			return err
		}
		return printReplies(cmd.OutOrStdout(), replies, queryOutput)
	},
}

// runQuery answers pattern against reg in format.
func runQuery(reg *registry.Registry, pattern, format string) ([]query.Reply, error) {
	var buf query.Buffer
	if _, err := newHandler(reg).HandleTypes(typesKey(pattern), format, &buf); err != nil {
		if buf.Err != "" {
			return nil, errors.New(buf.Err)
		}
		return nil, fmt.Errorf("querying %s: %w", pattern, err)
	}
	return buf.Replies, nil
}
