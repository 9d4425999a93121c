package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"

	"github.com/ros2types/ros2types/internal/config"
	"github.com/ros2types/ros2types/internal/query"
	"github.com/ros2types/ros2types/internal/transport/natsq"
)

var (
	requestFormat  string
	requestOutput  string
	requestEnv     bool
	requestTimeout time.Duration
)

func init() {
	requestCmd.Flags().StringVarP(&requestFormat, "format", "f", "", "Reply format ("+strings.Join(query.Tokens(), ", ")+")")
	requestCmd.Flags().StringVarP(&requestOutput, "output", "o", outputText, "Output mode (text, json, yaml)")
	requestCmd.Flags().BoolVar(&requestEnv, "env", false, "Request environment variables instead of types")
	requestCmd.Flags().DurationVar(&requestTimeout, "timeout", natsq.DefaultTimeout, "Time to wait for the reply stream")
	rootCmd.AddCommand(requestCmd)
}

var requestCmd = &cobra.Command{
	Use:   "request <pattern>",
	Short: "Query a running server over NATS",
	Long: `Send a query to a server started with 'ros2types serve' and print the
replies. The server is reached at nats.url with subjects under
nats.subject_prefix.

  ros2types request 'std_msgs/msg/*' --format hash
  ros2types request --env 'ROS_*'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s := config.Current()
		nc, err := nats.Connect(s.NATSURL,
			nats.Name(cmd.Root().Name()+"-request"),
			nats.MaxReconnects(2),
			nats.ReconnectWait(500*time.Millisecond),
		)
		if err != nil {
			return fmt.Errorf("connecting to NATS at %s: %w", s.NATSURL, err)
		}
		defer nc.Close()

		client := natsq.NewClient(nc,
			natsq.WithSubjectPrefix(s.SubjectPrefix),
			natsq.WithLogger(logger),
		)

		ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
		defer cancel()

		var replies []query.Reply
		if requestEnv {
			replies, err = client.Env(ctx, envKey(args[0]))
		} else {
			replies, err = client.Query(ctx, typesKey(args[0]), requestFormat)
		}
		if err != nil {
			return err
		}
		return printReplies(cmd.OutOrStdout(), replies, requestOutput)
	},
}
