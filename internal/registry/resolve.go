package registry

import (
	"path/filepath"
	"strings"
)

// shareDir is the directory under each ament prefix that holds package
// interface files.
const shareDir = "share"

// SharePaths converts an ament prefix path ("/opt/ros/jazzy:/ws/install")
// into one Source per prefix, in priority order. Empty entries are skipped.
func SharePaths(amentPrefixPath string) []Source {
	var sources []Source
	for _, prefix := range strings.Split(amentPrefixPath, string(filepath.ListSeparator)) {
		prefix = strings.TrimSpace(prefix)
		if prefix == "" {
			continue
		}
		sources = append(sources, Source{
			Name:     prefix,
			BasePath: filepath.Join(prefix, shareDir),
		})
	}
	return sources
}

// DirSources wraps plain directories as sources named after themselves.
func DirSources(dirs []string) []Source {
	var sources []Source
	for _, d := range dirs {
		if d == "" {
			continue
		}
		sources = append(sources, Source{Name: d, BasePath: d})
	}
	return sources
}
