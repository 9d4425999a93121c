package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ros2types/ros2types/internal/registry"
)

var (
	listKindFilter string
	listJSON       bool
)

var listCmd = &cobra.Command{
	Use:   "list [pattern]",
	Short: "List indexed types",
	Long: `List the types found under the configured sources. The optional pattern
uses the same wildcards as queries and defaults to '**'.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVar(&listKindFilter, "kind", "", "Filter by kind (msg, srv, action)")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(listCmd)
}

// listEntry represents an indexed type for display.
type listEntry struct {
	Kind string `json:"kind"`
	Name string `json:"name"`
	Hash string `json:"hash"`
	Path string `json:"path"`
}

func runList(cmd *cobra.Command, args []string) error {
	pattern := "**"
	if len(args) == 1 {
		pattern = args[0]
	}

	var kind registry.Kind
	if listKindFilter != "" {
		k, ok := registry.ParseKind(listKindFilter)
		if !ok {
			return fmt.Errorf("unknown kind %q (want msg, srv or action)", listKindFilter)
		}
		kind = k
	}

	reg, err := loadRegistry(nil)
	if err != nil {
		return err
	}
	recs, err := reg.Query(pattern)
	if err != nil {
		return fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}

	entries := listEntries(recs, kind)
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No types found.")
		return nil
	}

	if listJSON {
		return printListJSON(cmd, entries)
	}
	return printListTable(cmd, entries)
}

// listEntries converts records to entries, keeping only kind unless it is
// the zero Kind.
func listEntries(recs []*registry.TypeRecord, kind registry.Kind) []listEntry {
	var entries []listEntry
	for _, rec := range recs {
		if kind != 0 && rec.Kind != kind {
			continue
		}
		entries = append(entries, listEntry{
			Kind: rec.Kind.Tag(),
			Name: rec.FullName,
			Hash: rec.Hash,
			Path: rec.DefinitionPath,
		})
	}
	return entries
}

func printListTable(cmd *cobra.Command, entries []listEntry) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "KIND\tNAME\tHASH")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\n", e.Kind, e.Name, e.Hash)
	}
	return w.Flush()
}

func printListJSON(cmd *cobra.Command, entries []listEntry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
