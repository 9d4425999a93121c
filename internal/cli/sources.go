package cli

import (
	"errors"
	"strings"

	"github.com/ros2types/ros2types/internal/branding"
	"github.com/ros2types/ros2types/internal/config"
	"github.com/ros2types/ros2types/internal/query"
	"github.com/ros2types/ros2types/internal/registry"
)

var extraRoots []string

func init() {
	rootCmd.PersistentFlags().StringSliceVar(&extraRoots, "root", nil, "Additional directory to index (repeatable)")
}

var errNoSources = errors.New("no type sources: set AMENT_PREFIX_PATH, the roots setting or --root")

// typeSources lists the directories to index: the share directory of each
// ament prefix, then configured roots, then --root flags.
func typeSources(s config.Settings, roots []string) []registry.Source {
	sources := registry.SharePaths(s.AmentPrefixPath)
	sources = append(sources, registry.DirSources(s.Roots)...)
	sources = append(sources, registry.DirSources(roots)...)
	return sources
}

// loadRegistry indexes every configured source.
func loadRegistry(obs registry.Observer) (*registry.Registry, error) {
	sources := typeSources(config.Current(), extraRoots)
	if len(sources) == 0 {
		return nil, errNoSources
	}
	reg := registry.New(registry.WithLogger(logger), registry.WithObserver(obs))
	reg.LoadSources(sources)
	return reg, nil
}

func newHandler(reg *registry.Registry) *query.Handler {
	opts := []query.Option{query.WithLogger(logger)}
	if allow := config.Current().EnvAllow; len(allow) > 0 {
		opts = append(opts, query.WithEnvAllowList(allow))
	}
	return query.NewHandler(reg, opts...)
}

// typesKey accepts either a full key or a bare type pattern.
func typesKey(pattern string) string {
	return withPrefix(branding.TypesKeyPrefix(), pattern)
}

func envKey(pattern string) string {
	return withPrefix(branding.EnvKeyPrefix(), pattern)
}

func withPrefix(prefix, pattern string) string {
	if pattern == prefix || strings.HasPrefix(pattern, prefix+"/") {
		return pattern
	}
	return prefix + "/" + pattern
}
