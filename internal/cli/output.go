package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"sigs.k8s.io/yaml"

	"github.com/ros2types/ros2types/internal/query"
)

// Output modes accepted by --output.
const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

// printReplies writes replies in the requested output mode. Text mode prints
// each key on its own line followed by the payload.
func printReplies(w io.Writer, replies []query.Reply, output string) error {
	if replies == nil {
		replies = []query.Reply{}
	}
	switch output {
	case outputJSON:
		data, err := json.MarshalIndent(replies, "", "  ")
		if err != nil {
			return fmt.Errorf("rendering replies: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case outputYAML:
		data, err := yaml.Marshal(replies)
		if err != nil {
			return fmt.Errorf("rendering replies: %w", err)
		}
		_, err = w.Write(data)
		return err
	case outputText, "":
		for _, r := range replies {
			payload := string(r.Payload)
			if !strings.HasSuffix(payload, "\n") {
				payload += "\n"
			}
			if _, err := fmt.Fprintf(w, "%s\n%s", r.Key, payload); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown output %q (want text, json or yaml)", output)
	}
}
