package query

import (
	"strings"

	"github.com/ros2types/ros2types/internal/ketree"
)

// DefaultEnvAllowList names the environment variables an env request may
// read.
var DefaultEnvAllowList = []string{
	"ROS_DISTRO",
	"ROS_VERSION",
	"ROS_PYTHON_VERSION",
	"ROS_DOMAIN_ID",
	"ROS_LOCALHOST_ONLY",
	"ROS_AUTOMATIC_DISCOVERY_RANGE",
	"RMW_IMPLEMENTATION",
	"AMENT_PREFIX_PATH",
}

// envTree indexes names so env patterns use the same matcher as type
// patterns. Each name is a single key segment; names containing the
// separator or a wildcard are ignored, as are duplicates.
func envTree(names []string) *ketree.Tree[string] {
	t := ketree.New[string]()
	for _, n := range names {
		if strings.Contains(n, ketree.Separator) {
			continue
		}
		_ = t.Insert(n, n)
	}
	return t
}
