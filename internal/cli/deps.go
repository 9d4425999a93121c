package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ros2types/ros2types/internal/registry"
)

var depsFlat bool

func init() {
	depsCmd.Flags().BoolVar(&depsFlat, "flat", false, "List resolved dependencies in load order instead of a tree")
	rootCmd.AddCommand(depsCmd)
}

var depsCmd = &cobra.Command{
	Use:   "deps <type>",
	Short: "Show the nested types a type depends on",
	Long: `Print the tree of nested types used by a type's fields. Types referenced
more than once are marked (deduped); types missing from the index are
marked (missing).

  ros2types deps geometry_msgs/msg/PoseStamped
  ros2types deps nav_msgs/msg/Odometry --flat`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := loadRegistry(nil)
		if err != nil {
			return err
		}
		root, err := reg.BuildDependencyTree(args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if depsFlat {
			for _, rec := range registry.FlattenTree(root) {
				fmt.Fprintf(out, "%s\t%s\n", rec.FullName, rec.Hash)
			}
		} else {
			registry.PrintTree(out, root, "", true)
		}

		if missing := registry.MissingTypes(root); len(missing) > 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "%d dependencies not found: %v\n", len(missing), missing)
		}
		return nil
	},
}
